package usecases

import "time"

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// TokenIssuer signs access tokens for authenticated sessions.
type TokenIssuer interface {
	Issue(userID uint, username, role string) (token string, expiresAt time.Time, err error)
}
