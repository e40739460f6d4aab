package usecases

import (
	"context"
	"strings"
	"time"

	"skywrench/internal/domain/user"
	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type CreateUserCommand struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Role       string
	Department string
}

type UserResult struct {
	ID          uint
	Username    string
	Email       string
	FullName    string
	Role        string
	Department  string
	Active      bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*UserResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(strings.ToLower(cmd.Username))
	email := strings.TrimSpace(strings.ToLower(cmd.Email))

	taken, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("username already taken")
	}
	taken, err = uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	role := authorization.UserRole(cmd.Role)
	u, err := user.NewUser(username, email, hash, cmd.FullName, role, cmd.Department)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Save(ctx, u); err != nil {
		uc.logger.Errorw("failed to save user", "username", username, "error", err)
		return nil, err
	}

	uc.logger.Infow("user created", "user_id", u.ID(), "username", u.Username(), "role", u.Role())
	return userToResult(u), nil
}

func (uc *CreateUserUseCase) validateCommand(cmd CreateUserCommand) error {
	if strings.TrimSpace(cmd.Username) == "" {
		return errors.NewValidationError("username is required")
	}
	if strings.TrimSpace(cmd.Email) == "" || !strings.Contains(cmd.Email, "@") {
		return errors.NewValidationError("a valid email is required")
	}
	if len(cmd.Password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if !authorization.UserRole(cmd.Role).IsValid() {
		return errors.NewValidationError("invalid role: " + cmd.Role)
	}
	return nil
}

func userToResult(u *user.User) *UserResult {
	return &UserResult{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		FullName:    u.FullName(),
		Role:        u.Role().String(),
		Department:  u.Department(),
		Active:      u.IsActive(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}
