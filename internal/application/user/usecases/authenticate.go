package usecases

import (
	"context"
	"strings"
	"time"

	"skywrench/internal/domain/user"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type AuthenticateCommand struct {
	Login    string
	Password string
}

type AuthenticateResult struct {
	UserID    uint
	Username  string
	FullName  string
	Role      string
	Token     string
	ExpiresAt time.Time
}

// AuthenticateUseCase verifies credentials and issues an access token.
// Login accepts the username or the email address.
type AuthenticateUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewAuthenticateUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenIssuer, logger logger.Interface) *AuthenticateUseCase {
	return &AuthenticateUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, logger: logger}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	login := strings.TrimSpace(strings.ToLower(cmd.Login))
	if login == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("login and password are required")
	}

	var (
		u   *user.User
		err error
	)
	if strings.Contains(login, "@") {
		u, err = uc.userRepo.FindByEmail(ctx, login)
	} else {
		u, err = uc.userRepo.FindByUsername(ctx, login)
	}
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !u.IsActive() {
		uc.logger.Warnw("login attempt on inactive account", "user_id", u.ID())
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}
	if err := uc.hasher.Compare(u.PasswordHash(), cmd.Password); err != nil {
		uc.logger.Warnw("failed login attempt", "login", login)
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, expiresAt, err := uc.tokens.Issue(u.ID(), u.Username(), u.Role().String())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", u.ID(), "error", err)
		return nil, err
	}

	u.RecordLogin()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to record login", "user_id", u.ID(), "error", err)
	}

	uc.logger.Infow("user authenticated", "user_id", u.ID(), "username", u.Username())
	return &AuthenticateResult{
		UserID:    u.ID(),
		Username:  u.Username(),
		FullName:  u.FullName(),
		Role:      u.Role().String(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
