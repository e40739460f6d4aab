package mailroom

import "context"

// RuleRepository persists inbound intake rules.
type RuleRepository interface {
	Save(ctx context.Context, r *InboundRule) error
	Update(ctx context.Context, r *InboundRule) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*InboundRule, error)
	ListActive(ctx context.Context) ([]*InboundRule, error)
	List(ctx context.Context, offset, limit int) ([]*InboundRule, int64, error)
}

// ProcessedEmailRepository persists the append-only intake log.
type ProcessedEmailRepository interface {
	Save(ctx context.Context, p *ProcessedEmail) error
	ExistsByMessageID(ctx context.Context, messageID string) (bool, error)
	List(ctx context.Context, outcome Outcome, offset, limit int) ([]*ProcessedEmail, int64, error)
}
