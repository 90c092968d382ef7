package iot

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func relationshipLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryRelationship),
	)
}

func (i *IOT) validateRelationship(ctx context.Context, rel *models.UserRelationship) error {
	if rel.SubjectUserID == uuid.Nil || rel.TargetUserID == uuid.Nil {
		return common.Invalid("subject_user_id and target_user_id are required")
	}
	if rel.SubjectUserID == rel.TargetUserID {
		return common.Invalid("a user cannot be related to itself")
	}
	if err := validateEnum("status", string(rel.Status), relStatuses); err != nil {
		return err
	}
	if err := validate(relationshipSchema, rel); err != nil {
		return err
	}
	if err := i.requireUser(ctx, rel.SubjectUserID); err != nil {
		return err
	}
	return i.requireUser(ctx, rel.TargetUserID)
}

func (i *IOT) createRelationship(ctx context.Context, input *models.UserRelationship) (models.UserRelationship, error) {
	logger := relationshipLogger()

	rel := *input
	if rel.RelationshipID == uuid.Nil {
		rel.RelationshipID = uuid.New()
	}
	if rel.Status == "" {
		rel.Status = models.RelationshipActive
	}
	if err := i.validateRelationship(ctx, &rel); err != nil {
		return models.UserRelationship{}, err
	}
	rel.CreatedAt = i.now()

	if err := i.Store.Relationships.Create(ctx, &rel); err != nil {
		return models.UserRelationship{}, fromRepository(logger, err, "relationship")
	}

	logger.Info("Created relationship",
		zap.String("relationship_id", rel.RelationshipID.String()),
		zap.String("subject_user_id", rel.SubjectUserID.String()),
		zap.String("target_user_id", rel.TargetUserID.String()))
	return rel, nil
}

func (i *IOT) getRelationship(ctx context.Context, id uuid.UUID) (models.UserRelationship, error) {
	rel, err := i.Store.Relationships.Get(ctx, id)
	return rel, fromRepository(relationshipLogger(), err, "relationship "+id.String())
}

func (i *IOT) listRelationships(ctx context.Context, subject, target *uuid.UUID, page, size int) ([]models.UserRelationship, error) {
	limit, offset, err := pageBounds(page, size)
	if err != nil {
		return nil, err
	}
	rels, err := i.Store.Relationships.List(ctx, subject, target, limit, offset)
	return rels, fromRepository(relationshipLogger(), err, "relationships")
}

func (i *IOT) updateRelationship(ctx context.Context, id uuid.UUID, patch models.Patch) (models.UserRelationship, error) {
	logger := relationshipLogger()

	current, err := i.getRelationship(ctx, id)
	if err != nil {
		return models.UserRelationship{}, err
	}
	merged, err := mergePatch(current, patch, "relationship_id", "created_at")
	if err != nil {
		return models.UserRelationship{}, err
	}
	if err := i.validateRelationship(ctx, &merged); err != nil {
		return models.UserRelationship{}, err
	}
	if err := i.Store.Relationships.Update(ctx, &merged); err != nil {
		return models.UserRelationship{}, fromRepository(logger, err, "relationship "+id.String())
	}

	logger.Info("Updated relationship", zap.String("relationship_id", id.String()))
	return merged, nil
}

func (i *IOT) deleteRelationship(ctx context.Context, id uuid.UUID) error {
	logger := relationshipLogger()

	deleted, err := i.Store.Relationships.Delete(ctx, id)
	if err != nil {
		return fromRepository(logger, err, "relationship "+id.String())
	}
	if !deleted {
		return common.NotFound("relationship %s not found", id)
	}
	logger.Info("Deleted relationship", zap.String("relationship_id", id.String()))
	return nil
}

func (i *IOT) caregivers(ctx context.Context, subject uuid.UUID) ([]models.Caregiver, error) {
	if err := i.requireUser(ctx, subject); err != nil {
		return nil, err
	}
	out, err := i.Store.Relationships.Caregivers(ctx, subject)
	return out, fromRepository(relationshipLogger(), err, "caregivers")
}

type IRelationshipImpl struct {
	iot *IOT
}

func (r *IRelationshipImpl) Create(ctx context.Context, rel *models.UserRelationship) (models.UserRelationship, error) {
	return r.iot.createRelationship(ctx, rel)
}

func (r *IRelationshipImpl) Get(ctx context.Context, id uuid.UUID) (models.UserRelationship, error) {
	return r.iot.getRelationship(ctx, id)
}

func (r *IRelationshipImpl) List(ctx context.Context, subject, target *uuid.UUID, page, size int) ([]models.UserRelationship, error) {
	return r.iot.listRelationships(ctx, subject, target, page, size)
}

func (r *IRelationshipImpl) Update(ctx context.Context, id uuid.UUID, patch models.Patch) (models.UserRelationship, error) {
	return r.iot.updateRelationship(ctx, id, patch)
}

func (r *IRelationshipImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.iot.deleteRelationship(ctx, id)
}

func (r *IRelationshipImpl) Caregivers(ctx context.Context, subject uuid.UUID) ([]models.Caregiver, error) {
	return r.iot.caregivers(ctx, subject)
}

func (i *IOT) GetIRelationship() IRelationship {
	return &IRelationshipImpl{iot: i}
}
