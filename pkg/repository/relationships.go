package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type RelationshipRepository struct {
	table[models.UserRelationship]
}

func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{table: table[models.UserRelationship]{db: db}}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *models.UserRelationship) error {
	return r.create(ctx, rel)
}

func (r *RelationshipRepository) Get(ctx context.Context, id uuid.UUID) (models.UserRelationship, error) {
	return r.take(ctx, "relationship_id = ?", id)
}

// List filters on subject and target when they are not nil.
func (r *RelationshipRepository) List(ctx context.Context, subject, target *uuid.UUID, limit, offset int) ([]models.UserRelationship, error) {
	var out []models.UserRelationship
	tx := r.conn(ctx)
	if subject != nil {
		tx = tx.Where("subject_user_id = ?", *subject)
	}
	if target != nil {
		tx = tx.Where("target_user_id = ?", *target)
	}
	err := page(tx.Order("created_at ASC").Order("relationship_id ASC"), limit, offset).Find(&out).Error
	return out, translate(err)
}

func (r *RelationshipRepository) Update(ctx context.Context, rel *models.UserRelationship) error {
	return r.update(ctx, rel, "relationship_id = ?", rel.RelationshipID)
}

func (r *RelationshipRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.remove(ctx, "relationship_id = ?", id)
}

// Caregivers joins the active edges of subject with the target users.
func (r *RelationshipRepository) Caregivers(ctx context.Context, subject uuid.UUID) ([]models.Caregiver, error) {
	var out []models.Caregiver
	err := r.conn(ctx).
		Table("user_relationships").
		Select("users.*, user_relationships.relationship_type").
		Joins("JOIN users ON users.user_id = user_relationships.target_user_id").
		Where("user_relationships.subject_user_id = ? AND user_relationships.status = ?", subject, models.RelationshipActive).
		Order("users.user_name ASC").
		Scan(&out).Error
	return out, translate(err)
}
