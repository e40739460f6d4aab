package workorder

import "context"

// Repository persists work orders and approval decisions.
type Repository interface {
	Save(ctx context.Context, wo *WorkOrder) error
	Update(ctx context.Context, wo *WorkOrder) error
	FindByID(ctx context.Context, id uint) (*WorkOrder, error)
	FindByIncidentID(ctx context.Context, incidentID uint) (*WorkOrder, error)
	List(ctx context.Context, status Status, offset, limit int) ([]*WorkOrder, int64, error)

	SaveApproval(ctx context.Context, a *Approval) error
	ListApprovals(ctx context.Context, workOrderID uint) ([]*Approval, error)
}

// NumberGenerator hands out unique work order numbers.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}
