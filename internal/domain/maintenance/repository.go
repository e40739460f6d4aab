package maintenance

import (
	"context"
	"time"
)

// Repository persists preventive maintenance schedules.
type Repository interface {
	Save(ctx context.Context, s *Schedule) error
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Schedule, error)
	List(ctx context.Context, customerID uint, activeOnly bool, offset, limit int) ([]*Schedule, int64, error)
	// ListDue returns active schedules whose next due date is at or before
	// the given time.
	ListDue(ctx context.Context, at time.Time) ([]*Schedule, error)
}
