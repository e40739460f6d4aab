package usecases

import (
	"context"
	"strings"

	"skywrench/internal/domain/user"
	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type UpdateUserCommand struct {
	UserID     uint
	FullName   string
	Department string
	Role       string
	Active     *bool
}

// UpdateUserUseCase covers the admin-side profile, role and activation edits.
type UpdateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*UserResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user id is required")
	}

	u, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	u.UpdateProfile(cmd.FullName, cmd.Department)

	if cmd.Role != "" {
		role := authorization.UserRole(cmd.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role: " + cmd.Role)
		}
		if err := u.ChangeRole(role); err != nil {
			return nil, err
		}
	}
	if cmd.Active != nil {
		if *cmd.Active {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user updated", "user_id", u.ID(), "role", u.Role(), "active", u.IsActive())
	return userToResult(u), nil
}

type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if len(cmd.NewPassword) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if strings.TrimSpace(cmd.CurrentPassword) == "" {
		return errors.NewValidationError("current password is required")
	}

	u, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if err := uc.hasher.Compare(u.PasswordHash(), cmd.CurrentPassword); err != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return errors.NewInternalError("failed to process password")
	}
	if err := u.SetPasswordHash(hash); err != nil {
		return err
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update password", "user_id", cmd.UserID, "error", err)
		return err
	}

	uc.logger.Infow("password changed", "user_id", u.ID())
	return nil
}
