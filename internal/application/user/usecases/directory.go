package usecases

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	assignmentuc "skywrench/internal/application/assignment/usecases"
	mailroomuc "skywrench/internal/application/mailroom/usecases"
	"skywrench/internal/domain/user"
	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

// Directory exposes the user store to the other contexts: assignment rules
// check whether a routing target is still active, and the mail intake maps
// sender addresses onto customer accounts.
type Directory struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

var (
	_ assignmentuc.UserDirectory   = (*Directory)(nil)
	_ mailroomuc.CustomerDirectory = (*Directory)(nil)
)

func NewDirectory(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *Directory {
	return &Directory{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (d *Directory) IsActiveUser(ctx context.Context, userID uint) (bool, error) {
	u, err := d.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsActive(), nil
}

// EnsureCustomer returns the account for the address, creating a customer
// account when the address is unknown. Mail-created accounts get a random
// password; the owner has to go through a reset before logging in.
func (d *Directory) EnsureCustomer(ctx context.Context, email, displayName string) (uint, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return 0, errors.NewValidationError("a valid email is required")
	}

	existing, err := d.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing.ID(), nil
	}
	if !errors.IsType(err, errors.ErrorTypeNotFound) {
		return 0, err
	}

	hash, err := d.hasher.Hash(randomPassword())
	if err != nil {
		return 0, errors.NewInternalError("failed to provision customer account")
	}
	u, err := user.NewUser(email, email, hash, displayName, authorization.RoleCustomer, "")
	if err != nil {
		return 0, err
	}
	if err := d.userRepo.Save(ctx, u); err != nil {
		d.logger.Errorw("failed to create customer account", "email", email, "error", err)
		return 0, err
	}

	d.logger.Infow("customer account created from email", "user_id", u.ID(), "email", email)
	return u.ID(), nil
}

func randomPassword() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
