package iot

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const DefaultPageSize = 20

func userLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryUser),
	)
}

func validateUser(user *models.User) error {
	if err := validateEnum("user_role", string(user.UserRole), models.UserRoles); err != nil {
		return err
	}
	if user.Email != nil && *user.Email == "" {
		user.Email = nil
	}
	if user.PhoneNumber != nil && *user.PhoneNumber == "" {
		user.PhoneNumber = nil
	}
	return validate(userSchema, user)
}

func pageBounds(page, size int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return 0, 0, common.Invalid("page must be >= 1")
	}
	if size < 1 || size > MaxListLimit {
		return 0, 0, common.Invalid("size must be between 1 and %d", MaxListLimit)
	}
	return size, (page - 1) * size, nil
}

func (i *IOT) createUser(ctx context.Context, input *models.User) (models.User, error) {
	logger := userLogger()

	user := *input
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	if user.UserRole == "" {
		user.UserRole = models.RoleUser
	}
	if err := validateUser(&user); err != nil {
		return models.User{}, err
	}
	user.CreatedAt = i.now()

	if err := i.Store.Users.Create(ctx, &user); err != nil {
		return models.User{}, fromRepository(logger, err, "user")
	}

	logger.Info("Created user", zap.String(common.LoggerFieldUserID, user.UserID.String()), zap.String("role", string(user.UserRole)))
	return user, nil
}

func (i *IOT) getUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := i.Store.Users.Get(ctx, id)
	return user, fromRepository(userLogger(), err, "user "+id.String())
}

func (i *IOT) listUsers(ctx context.Context, role string, page, size int) ([]models.User, error) {
	if role != "" {
		if err := validateEnum("role", role, models.UserRoles); err != nil {
			return nil, err
		}
	}
	limit, offset, err := pageBounds(page, size)
	if err != nil {
		return nil, err
	}
	users, err := i.Store.Users.List(ctx, role, limit, offset)
	return users, fromRepository(userLogger(), err, "users")
}

func (i *IOT) updateUser(ctx context.Context, id uuid.UUID, patch models.Patch) (models.User, error) {
	logger := userLogger()

	current, err := i.getUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	merged, err := mergePatch(current, patch, "user_id", "created_at")
	if err != nil {
		return models.User{}, err
	}
	if err := validateUser(&merged); err != nil {
		return models.User{}, err
	}
	if err := i.Store.Users.Update(ctx, &merged); err != nil {
		return models.User{}, fromRepository(logger, err, "user "+id.String())
	}

	logger.Info("Updated user", zap.String(common.LoggerFieldUserID, id.String()))
	return merged, nil
}

// deleteUser refuses while devices, relationships, a profile or snapshots
// still point at the user.
func (i *IOT) deleteUser(ctx context.Context, id uuid.UUID) error {
	logger := userLogger()

	if _, err := i.getUser(ctx, id); err != nil {
		return err
	}
	refs, err := i.Store.Users.References(ctx, id)
	if err != nil {
		return fromRepository(logger, err, "user "+id.String())
	}
	if refs > 0 {
		return common.Conflict("user %s is still referenced by %d records", id, refs)
	}
	if _, err := i.Store.Users.Delete(ctx, id); err != nil {
		return fromRepository(logger, err, "user "+id.String())
	}

	logger.Info("Deleted user", zap.String(common.LoggerFieldUserID, id.String()))
	return nil
}

type IUserImpl struct {
	iot *IOT
}

func (u *IUserImpl) Create(ctx context.Context, user *models.User) (models.User, error) {
	return u.iot.createUser(ctx, user)
}

func (u *IUserImpl) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return u.iot.getUser(ctx, id)
}

func (u *IUserImpl) List(ctx context.Context, role string, page, size int) ([]models.User, error) {
	return u.iot.listUsers(ctx, role, page, size)
}

func (u *IUserImpl) Update(ctx context.Context, id uuid.UUID, patch models.Patch) (models.User, error) {
	return u.iot.updateUser(ctx, id, patch)
}

func (u *IUserImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return u.iot.deleteUser(ctx, id)
}

func (i *IOT) GetIUser() IUser {
	return &IUserImpl{iot: i}
}
