package user

import (
	"strings"
	"time"

	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// User is an account in the service center: staff or customer. The
// password hash is produced by the infrastructure hasher, never here.
type User struct {
	id           uint
	username     string
	email        string
	passwordHash string
	fullName     string
	role         authorization.UserRole
	department   string
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, email, passwordHash, fullName string, role authorization.UserRole, department string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return nil, errors.NewValidationError("username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, errors.NewValidationError("password hash is required")
	}
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}
	now := biztime.NowUTC()
	return &User{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		fullName:     strings.TrimSpace(fullName),
		role:         role,
		department:   strings.TrimSpace(department),
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id uint, username, email, passwordHash, fullName string, role authorization.UserRole, department string, active bool, lastLoginAt *time.Time, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		role:         role,
		department:   department,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Username() string             { return u.username }
func (u *User) Email() string                { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) FullName() string             { return u.fullName }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) Department() string           { return u.department }
func (u *User) IsActive() bool               { return u.active }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return errors.NewInternalError("user ID already set")
	}
	u.id = id
	return nil
}

func (u *User) Activate() {
	u.active = true
	u.updatedAt = biztime.NowUTC()
}

func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = biztime.NowUTC()
}

// RecordLogin stamps a successful authentication.
func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// ChangeRole moves the user to a new role.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return errors.NewValidationError("invalid role")
	}
	u.role = role
	u.updatedAt = biztime.NowUTC()
	return nil
}

// SetPasswordHash replaces the stored credential hash.
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return errors.NewValidationError("password hash is required")
	}
	u.passwordHash = hash
	u.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateProfile replaces the descriptive attributes.
func (u *User) UpdateProfile(fullName, department string) {
	u.fullName = strings.TrimSpace(fullName)
	u.department = strings.TrimSpace(department)
	u.updatedAt = biztime.NowUTC()
}
