package assignment

import "context"

// RuleRepository persists assignment rules.
type RuleRepository interface {
	Save(ctx context.Context, rule *Rule) error
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Rule, error)
	ListActive(ctx context.Context) ([]*Rule, error)
	List(ctx context.Context, offset, limit int) ([]*Rule, int64, error)
}

// GroupRepository persists assignment groups.
type GroupRepository interface {
	Save(ctx context.Context, group *Group) error
	Update(ctx context.Context, group *Group) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Group, error)
	List(ctx context.Context, offset, limit int) ([]*Group, int64, error)
}
