package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type UserRepository struct {
	table[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{table: table[models.User]{db: db}}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.create(ctx, user)
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.take(ctx, "user_id = ?", id)
}

// List pages users ordered by creation, role filters when set.
func (r *UserRepository) List(ctx context.Context, role string, limit, offset int) ([]models.User, error) {
	var out []models.User
	tx := r.conn(ctx)
	if role != "" {
		tx = tx.Where("user_role = ?", role)
	}
	err := page(tx.Order("created_at ASC").Order("user_id ASC"), limit, offset).Find(&out).Error
	return out, translate(err)
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.update(ctx, user, "user_id = ?", user.UserID)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.remove(ctx, "user_id = ?", id)
}

// References counts the rows of other tables pointing at the user.
func (r *UserRepository) References(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	checks := []*gorm.DB{
		r.conn(ctx).Model(&models.Device{}).Where("user_id = ?", id),
		r.conn(ctx).Model(&models.UserRelationship{}).Where("subject_user_id = ? OR target_user_id = ?", id, id),
		r.conn(ctx).Model(&models.UserProfile{}).Where("user_id = ?", id),
		r.conn(ctx).Model(&models.HomeStateSnapshot{}).Where("user_id = ?", id),
	}
	for _, q := range checks {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return 0, translate(err)
		}
		total += n
	}
	return total, nil
}
