package iot

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const maxAge = 150

func profileLogger(userID uuid.UUID) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryProfile),
		zap.String(common.LoggerFieldUserID, userID.String()),
	)
}

func (i *IOT) validateProfile(profile *models.UserProfile) error {
	if profile.Gender != nil {
		if err := validateEnum("gender", string(*profile.Gender), genders); err != nil {
			return err
		}
	}
	if profile.DateOfBirth != nil {
		dob := profile.DateOfBirth.UTC()
		if dob.After(i.now()) {
			return common.Invalid("date_of_birth must not be in the future")
		}
		profile.DateOfBirth = &dob
	}
	return validate(profileSchema, profile)
}

func (i *IOT) createProfile(ctx context.Context, userID uuid.UUID, input *models.UserProfile) (models.UserProfile, error) {
	logger := profileLogger(userID)

	if err := i.requireUser(ctx, userID); err != nil {
		return models.UserProfile{}, err
	}
	profile := *input
	profile.UserID = userID
	if err := i.validateProfile(&profile); err != nil {
		return models.UserProfile{}, err
	}
	profile.UpdatedAt = i.now()

	if err := i.Store.Profiles.Create(ctx, &profile); err != nil {
		return models.UserProfile{}, fromRepository(logger, err, "profile")
	}

	logger.Info("Created profile")
	return profile, nil
}

func (i *IOT) getProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	profile, err := i.Store.Profiles.Get(ctx, userID)
	return profile, fromRepository(profileLogger(userID), err, "profile of user "+userID.String())
}

func (i *IOT) updateProfile(ctx context.Context, userID uuid.UUID, patch models.Patch) (models.UserProfile, error) {
	logger := profileLogger(userID)

	current, err := i.getProfile(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	merged, err := mergePatch(current, patch, "user_id")
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := i.validateProfile(&merged); err != nil {
		return models.UserProfile{}, err
	}
	merged.UpdatedAt = i.now()
	if err := i.Store.Profiles.Update(ctx, &merged); err != nil {
		return models.UserProfile{}, fromRepository(logger, err, "profile of user "+userID.String())
	}

	logger.Info("Updated profile")
	return merged, nil
}

func (i *IOT) deleteProfile(ctx context.Context, userID uuid.UUID) error {
	logger := profileLogger(userID)

	deleted, err := i.Store.Profiles.Delete(ctx, userID)
	if err != nil {
		return fromRepository(logger, err, "profile of user "+userID.String())
	}
	if !deleted {
		return common.NotFound("profile of user %s not found", userID)
	}
	logger.Info("Deleted profile")
	return nil
}

func (i *IOT) profilesByGender(ctx context.Context, gender string) ([]models.UserProfile, error) {
	if err := validateEnum("gender", gender, genders); err != nil {
		return nil, err
	}
	out, err := i.Store.Profiles.ByGender(ctx, models.Gender(gender))
	return out, fromRepository(profileLogger(uuid.Nil), err, "profiles")
}

func (i *IOT) profilesByAgeRange(ctx context.Context, minAge, maxAgeYears int) ([]models.UserProfile, error) {
	if minAge < 0 || maxAgeYears > maxAge {
		return nil, common.Invalid("age must be between 0 and %d", maxAge)
	}
	if minAge > maxAgeYears {
		return nil, common.Invalid("min_age must not be greater than max_age")
	}
	out, err := i.Store.Profiles.ByAgeRange(ctx, minAge, maxAgeYears, i.now())
	return out, fromRepository(profileLogger(uuid.Nil), err, "profiles")
}

type IProfileImpl struct {
	iot *IOT
}

func (p *IProfileImpl) Create(ctx context.Context, userID uuid.UUID, profile *models.UserProfile) (models.UserProfile, error) {
	return p.iot.createProfile(ctx, userID, profile)
}

func (p *IProfileImpl) Get(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	return p.iot.getProfile(ctx, userID)
}

func (p *IProfileImpl) Update(ctx context.Context, userID uuid.UUID, patch models.Patch) (models.UserProfile, error) {
	return p.iot.updateProfile(ctx, userID, patch)
}

func (p *IProfileImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	return p.iot.deleteProfile(ctx, userID)
}

func (p *IProfileImpl) ByGender(ctx context.Context, gender string) ([]models.UserProfile, error) {
	return p.iot.profilesByGender(ctx, gender)
}

func (p *IProfileImpl) ByAgeRange(ctx context.Context, minAge, maxAgeYears int) ([]models.UserProfile, error) {
	return p.iot.profilesByAgeRange(ctx, minAge, maxAgeYears)
}

func (i *IOT) GetIProfile() IProfile {
	return &IProfileImpl{iot: i}
}
