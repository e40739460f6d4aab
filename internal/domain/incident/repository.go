package incident

import (
	"context"

	"skywrench/internal/domain/incident/valueobjects"
)

// ListFilter narrows incident listings. Zero values mean "any".
type ListFilter struct {
	Status       valueobjects.WorkflowStatus
	Category     valueobjects.ServiceCategory
	Priority     valueobjects.Priority
	CustomerID   uint
	TechnicianID uint
	GroupID      uint
	Search       string
}

// Repository persists incidents and their activity timeline.
type Repository interface {
	Save(ctx context.Context, inc *Incident) error
	Update(ctx context.Context, inc *Incident) error
	FindByID(ctx context.Context, id uint) (*Incident, error)
	FindByNumber(ctx context.Context, number string) (*Incident, error)
	List(ctx context.Context, filter ListFilter, offset, limit int, orderBy string) ([]*Incident, int64, error)
	CountByStatus(ctx context.Context) (map[valueobjects.WorkflowStatus]int64, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	AppendActivity(ctx context.Context, act *Activity) error
	ListActivities(ctx context.Context, incidentID uint) ([]*Activity, error)
}

// NumberGenerator hands out unique incident numbers.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}
