package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/user"
	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockUserRepo struct {
	byID    map[uint]*user.User
	byName  map[string]*user.User
	byEmail map[string]*user.User
	nextID  uint
	saved   []*user.User
	updated []*user.User
	saveErr error
	listErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    map[uint]*user.User{},
		byName:  map[string]*user.User{},
		byEmail: map[string]*user.User{},
		nextID:  100,
	}
}

func (m *mockUserRepo) add(u *user.User) {
	m.byID[u.ID()] = u
	m.byName[u.Username()] = u
	m.byEmail[u.Email()] = u
}

func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.nextID++
	_ = u.SetID(m.nextID)
	m.add(u)
	m.saved = append(m.saved, u)
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	m.updated = append(m.updated, u)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepo) List(ctx context.Context, search string, activeOnly bool, offset, limit int) ([]*user.User, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []*user.User
	for _, u := range m.byID {
		if activeOnly && !u.IsActive() {
			continue
		}
		if search != "" && !strings.Contains(u.Username(), search) {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := m.byName[username]
	return ok, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

// mockHasher "hashes" by prefixing so tests can assert without bcrypt.
type mockHasher struct {
	hashErr error
}

func (m *mockHasher) Hash(plain string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + plain, nil
}

func (m *mockHasher) Compare(hash, plain string) error {
	if hash == "hashed:"+plain {
		return nil
	}
	return fmt.Errorf("hash mismatch")
}

type mockTokenIssuer struct {
	issueErr error
	issued   []uint
}

func (m *mockTokenIssuer) Issue(userID uint, username, role string) (string, time.Time, error) {
	if m.issueErr != nil {
		return "", time.Time{}, m.issueErr
	}
	m.issued = append(m.issued, userID)
	return fmt.Sprintf("token-%d", userID), time.Now().Add(24 * time.Hour), nil
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func staffUser(t *testing.T, id uint, username string) *user.User {
	t.Helper()
	u, err := user.NewUser(username, username+"@skywrench.io", "hashed:s3cretpass", "Test Staff", authorization.RoleTechnician, "repair")
	require.NoError(t, err)
	require.NoError(t, u.SetID(id))
	return u
}

func TestAuthenticateUseCase_Execute(t *testing.T) {
	t.Run("authenticates by username and records login", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		tokens := &mockTokenIssuer{}
		uc := NewAuthenticateUseCase(repo, &mockHasher{}, tokens, testLogger())

		result, err := uc.Execute(context.Background(), AuthenticateCommand{Login: "jmartin", Password: "s3cretpass"})

		require.NoError(t, err)
		assert.Equal(t, uint(7), result.UserID)
		assert.Equal(t, "token-7", result.Token)
		assert.Equal(t, "technician", result.Role)
		assert.Equal(t, []uint{7}, tokens.issued)
		require.Len(t, repo.updated, 1)
		assert.NotNil(t, repo.updated[0].LastLoginAt())
	})

	t.Run("authenticates by email", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		uc := NewAuthenticateUseCase(repo, &mockHasher{}, &mockTokenIssuer{}, testLogger())

		result, err := uc.Execute(context.Background(), AuthenticateCommand{Login: "JMartin@skywrench.io", Password: "s3cretpass"})

		require.NoError(t, err)
		assert.Equal(t, "jmartin", result.Username)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		uc := NewAuthenticateUseCase(repo, &mockHasher{}, &mockTokenIssuer{}, testLogger())

		_, err := uc.Execute(context.Background(), AuthenticateCommand{Login: "jmartin", Password: "wrong"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnauthorized))
		assert.Empty(t, repo.updated)
	})

	t.Run("unknown login does not leak existence", func(t *testing.T) {
		uc := NewAuthenticateUseCase(newMockUserRepo(), &mockHasher{}, &mockTokenIssuer{}, testLogger())

		_, err := uc.Execute(context.Background(), AuthenticateCommand{Login: "ghost", Password: "whatever1"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnauthorized))
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		repo := newMockUserRepo()
		u := staffUser(t, 7, "jmartin")
		u.Deactivate()
		repo.add(u)
		uc := NewAuthenticateUseCase(repo, &mockHasher{}, &mockTokenIssuer{}, testLogger())

		_, err := uc.Execute(context.Background(), AuthenticateCommand{Login: "jmartin", Password: "s3cretpass"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnauthorized))
	})
}

func TestCreateUserUseCase_Execute(t *testing.T) {
	t.Run("creates a user with hashed password", func(t *testing.T) {
		repo := newMockUserRepo()
		uc := NewCreateUserUseCase(repo, &mockHasher{}, testLogger())

		result, err := uc.Execute(context.Background(), CreateUserCommand{
			Username:   "PWong",
			Email:      "p.wong@skywrench.io",
			Password:   "longenough",
			FullName:   "Priya Wong",
			Role:       "service_manager",
			Department: "operations",
		})

		require.NoError(t, err)
		assert.Equal(t, "pwong", result.Username)
		assert.Equal(t, "service_manager", result.Role)
		assert.True(t, result.Active)
		require.Len(t, repo.saved, 1)
		assert.Equal(t, "hashed:longenough", repo.saved[0].PasswordHash())
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "pwong"))
		uc := NewCreateUserUseCase(repo, &mockHasher{}, testLogger())

		_, err := uc.Execute(context.Background(), CreateUserCommand{
			Username: "pwong",
			Email:    "other@skywrench.io",
			Password: "longenough",
			Role:     "technician",
		})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "pwong"))
		uc := NewCreateUserUseCase(repo, &mockHasher{}, testLogger())

		_, err := uc.Execute(context.Background(), CreateUserCommand{
			Username: "someoneelse",
			Email:    "pwong@skywrench.io",
			Password: "longenough",
			Role:     "technician",
		})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("validates the command", func(t *testing.T) {
		uc := NewCreateUserUseCase(newMockUserRepo(), &mockHasher{}, testLogger())

		tests := []struct {
			name string
			cmd  CreateUserCommand
		}{
			{"missing username", CreateUserCommand{Email: "a@b.io", Password: "longenough", Role: "technician"}},
			{"bad email", CreateUserCommand{Username: "x", Email: "not-an-email", Password: "longenough", Role: "technician"}},
			{"short password", CreateUserCommand{Username: "x", Email: "a@b.io", Password: "short", Role: "technician"}},
			{"bad role", CreateUserCommand{Username: "x", Email: "a@b.io", Password: "longenough", Role: "superuser"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tt.cmd)
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
			})
		}
	})
}

func TestUpdateUserUseCase_Execute(t *testing.T) {
	t.Run("changes role and deactivates", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		uc := NewUpdateUserUseCase(repo, testLogger())

		inactive := false
		result, err := uc.Execute(context.Background(), UpdateUserCommand{
			UserID:     7,
			FullName:   "Jordan Martin",
			Department: "quality",
			Role:       "service_manager",
			Active:     &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, "service_manager", result.Role)
		assert.Equal(t, "quality", result.Department)
		assert.False(t, result.Active)
		require.Len(t, repo.updated, 1)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		uc := NewUpdateUserUseCase(repo, testLogger())

		_, err := uc.Execute(context.Background(), UpdateUserCommand{UserID: 7, Role: "root"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewUpdateUserUseCase(newMockUserRepo(), testLogger())

		_, err := uc.Execute(context.Background(), UpdateUserCommand{UserID: 404})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestChangePasswordUseCase_Execute(t *testing.T) {
	t.Run("replaces the hash when the current password matches", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		uc := NewChangePasswordUseCase(repo, &mockHasher{}, testLogger())

		err := uc.Execute(context.Background(), ChangePasswordCommand{
			UserID:          7,
			CurrentPassword: "s3cretpass",
			NewPassword:     "evenbetterpass",
		})

		require.NoError(t, err)
		require.Len(t, repo.updated, 1)
		assert.Equal(t, "hashed:evenbetterpass", repo.updated[0].PasswordHash())
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		uc := NewChangePasswordUseCase(repo, &mockHasher{}, testLogger())

		err := uc.Execute(context.Background(), ChangePasswordCommand{
			UserID:          7,
			CurrentPassword: "nope",
			NewPassword:     "evenbetterpass",
		})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnauthorized))
		assert.Empty(t, repo.updated)
	})
}

func TestDirectory(t *testing.T) {
	t.Run("IsActiveUser reflects account state", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		inactive := staffUser(t, 8, "parked")
		inactive.Deactivate()
		repo.add(inactive)
		dir := NewDirectory(repo, &mockHasher{}, testLogger())

		active, err := dir.IsActiveUser(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, active)

		active, err = dir.IsActiveUser(context.Background(), 8)
		require.NoError(t, err)
		assert.False(t, active)

		active, err = dir.IsActiveUser(context.Background(), 404)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("EnsureCustomer returns the existing account", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(staffUser(t, 7, "jmartin"))
		dir := NewDirectory(repo, &mockHasher{}, testLogger())

		id, err := dir.EnsureCustomer(context.Background(), "jmartin@skywrench.io", "Jordan Martin")

		require.NoError(t, err)
		assert.Equal(t, uint(7), id)
		assert.Empty(t, repo.saved)
	})

	t.Run("EnsureCustomer provisions unknown senders as customers", func(t *testing.T) {
		repo := newMockUserRepo()
		dir := NewDirectory(repo, &mockHasher{}, testLogger())

		id, err := dir.EnsureCustomer(context.Background(), "Jane.Doe@acme.com", "Jane Doe")

		require.NoError(t, err)
		require.Len(t, repo.saved, 1)
		created := repo.saved[0]
		assert.Equal(t, id, created.ID())
		assert.Equal(t, "jane.doe@acme.com", created.Username())
		assert.Equal(t, "jane.doe@acme.com", created.Email())
		assert.Equal(t, "Jane Doe", created.FullName())
		assert.Equal(t, authorization.RoleCustomer, created.Role())
	})

	t.Run("EnsureCustomer rejects junk addresses", func(t *testing.T) {
		dir := NewDirectory(newMockUserRepo(), &mockHasher{}, testLogger())

		_, err := dir.EnsureCustomer(context.Background(), "not-an-address", "X")

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}
