package usecases

import "context"

// UserDirectory answers whether a routing target can still take work.
// Inactive users make the rule non-resolvable.
type UserDirectory interface {
	IsActiveUser(ctx context.Context, userID uint) (bool, error)
}
