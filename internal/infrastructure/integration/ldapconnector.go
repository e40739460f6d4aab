package integration

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/go-ldap/ldap/v3"

	domain "skywrench/internal/domain/integration"
	"skywrench/internal/domain/user"
	"skywrench/internal/shared/authorization"
	sharedConfig "skywrench/internal/shared/config"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

// PasswordHasher hashes the placeholder password given to directory-synced
// accounts. Those accounts authenticate against the directory, not locally.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// LDAPConnector syncs directory users into the local user store. Synced
// accounts default to the technician role; admins promote them by hand.
type LDAPConnector struct {
	cfg    sharedConfig.LDAPConfig
	users  user.Repository
	hasher PasswordHasher
	logger logger.Interface
}

var _ domain.Connector = (*LDAPConnector)(nil)

func NewLDAPConnector(cfg sharedConfig.LDAPConfig, users user.Repository, hasher PasswordHasher, lg logger.Interface) *LDAPConnector {
	return &LDAPConnector{
		cfg:    cfg,
		users:  users,
		hasher: hasher,
		logger: lg,
	}
}

func (c *LDAPConnector) Name() string {
	return "ldap"
}

func (c *LDAPConnector) TestConnection(ctx context.Context) error {
	conn, err := ldap.DialURL(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to reach ldap server: %w", err)
	}
	conn.Close()
	return nil
}

func (c *LDAPConnector) Authenticate(ctx context.Context) error {
	conn, err := c.bind()
	if err != nil {
		return err
	}
	defer conn.Close()

	// A bounded base search proves the bind account has read permission.
	req := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		1, 0, false,
		"(objectClass=*)",
		[]string{"dn"},
		nil,
	)
	if _, err := conn.Search(req); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
			return nil
		}
		return fmt.Errorf("failed to read base dn: %w", err)
	}
	return nil
}

func (c *LDAPConnector) SyncData(ctx context.Context, entityType string, forceUpdate bool) (*domain.SyncResult, error) {
	if entityType != "" && entityType != "users" {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported entity type: %s", entityType))
	}

	conn, err := c.bind()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		0, 0, false,
		c.cfg.UserFilter,
		[]string{"uid", "cn", "sn", "mail", "displayName"},
		nil,
	)

	res, err := conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search directory users: %w", err)
	}

	result := &domain.SyncResult{RecordsProcessed: len(res.Entries)}
	for _, entry := range res.Entries {
		if err := c.importEntry(ctx, entry, forceUpdate); err != nil {
			result.RecordsError++
			result.Errors = append(result.Errors, err.Error())
			c.logger.Errorw("failed to import directory user", "dn", entry.DN, "error", err)
			continue
		}
		result.RecordsSuccess++
	}

	result.Success = result.RecordsError == 0
	return result, nil
}

func (c *LDAPConnector) importEntry(ctx context.Context, entry *ldap.Entry, forceUpdate bool) error {
	username := entry.GetAttributeValue("uid")
	if username == "" {
		username = entry.GetAttributeValue("cn")
	}
	if username == "" {
		return fmt.Errorf("directory entry %s has no usable account name", entry.DN)
	}

	email := entry.GetAttributeValue("mail")
	if email == "" {
		email = username + "@directory.local"
	}

	fullName := entry.GetAttributeValue("displayName")
	if fullName == "" {
		fullName = entry.GetAttributeValue("cn")
	}
	if fullName == "" {
		fullName = username
	}

	existing, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.IsType(err, errors.ErrorTypeNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", username, err)
		}
		return c.createUser(ctx, username, email, fullName)
	}

	if !forceUpdate {
		return nil
	}

	existing.UpdateProfile(fullName, existing.Department())
	if err := c.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update user %s: %w", username, err)
	}
	return nil
}

func (c *LDAPConnector) createUser(ctx context.Context, username, email, fullName string) error {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := c.hasher.Hash(hex.EncodeToString(buf))
	if err != nil {
		return fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	u, err := user.NewUser(username, email, hash, fullName, authorization.RoleTechnician, "")
	if err != nil {
		return fmt.Errorf("failed to build user %s: %w", username, err)
	}
	if err := c.users.Save(ctx, u); err != nil {
		return fmt.Errorf("failed to save user %s: %w", username, err)
	}
	return nil
}

func (c *LDAPConnector) bind() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ldap server: %w", err)
	}
	if err := conn.Bind(c.cfg.BindDN, c.cfg.BindPassword); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to bind to ldap server: %w", err)
	}
	return conn, nil
}
