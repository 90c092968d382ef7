package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type ProfileRepository struct {
	table[models.UserProfile]
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{table: table[models.UserProfile]{db: db}}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	return r.create(ctx, profile)
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	return r.take(ctx, "user_id = ?", userID)
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	return r.update(ctx, profile, "user_id = ?", profile.UserID)
}

func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.remove(ctx, "user_id = ?", userID)
}

func (r *ProfileRepository) ByGender(ctx context.Context, gender models.Gender) ([]models.UserProfile, error) {
	var out []models.UserProfile
	err := r.conn(ctx).Where("gender = ?", gender).Order("user_id ASC").Find(&out).Error
	return out, translate(err)
}

// ByAgeRange matches profiles whose age in whole years at now is within
// [minAge, maxAge].
func (r *ProfileRepository) ByAgeRange(ctx context.Context, minAge, maxAge int, now time.Time) ([]models.UserProfile, error) {
	var out []models.UserProfile
	now = now.UTC()
	youngest := now.AddDate(-minAge, 0, 0)
	oldest := now.AddDate(-(maxAge + 1), 0, 0)
	err := r.conn(ctx).
		Where("date_of_birth IS NOT NULL AND date_of_birth > ? AND date_of_birth <= ?", oldest, youngest).
		Order("date_of_birth DESC").
		Find(&out).Error
	return out, translate(err)
}
