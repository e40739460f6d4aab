package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/incident"
)

// Transactor runs a function inside one database transaction. Repository
// calls made with the passed context join that transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResolvedAssignment is the routing decision returned by the assignment
// context for a new incident. TechnicianID is nil for plain group routing.
type ResolvedAssignment struct {
	RuleID       uint
	RuleName     string
	TechnicianID *uint
	GroupID      *uint
}

// AssignmentResolver matches a new incident against the assignment rules.
// A nil result with a nil error means no rule matched.
type AssignmentResolver interface {
	Resolve(ctx context.Context, inc *incident.Incident) (*ResolvedAssignment, error)
}

// PartLine is one part consumption request during diagnosis or repair.
type PartLine struct {
	ItemID   uint
	Quantity int
}

// PartsConsumer deducts stock for an incident and returns the total parts
// cost. The whole batch fails atomically on insufficient stock.
type PartsConsumer interface {
	ConsumeForIncident(ctx context.Context, incidentID uint, lines []PartLine, actorID *uint) (decimal.Decimal, error)
}

// WorkOrderService is the port into the work order context.
type WorkOrderService interface {
	OpenForIncident(ctx context.Context, incidentID uint, woType string, description string, assigneeID *uint, estimatedCost decimal.Decimal) (uint, error)
	RecordApproval(ctx context.Context, incidentID, approverID uint, approved bool, comment string) error
	CompleteForIncident(ctx context.Context, incidentID uint, actualCost decimal.Decimal) error
}

// MaintenanceScheduler is the port into the preventive maintenance
// context.
type MaintenanceScheduler interface {
	CreateForIncident(ctx context.Context, inc *incident.Incident, intervalType string, flightHoursInterval float64, dayInterval int, description string) (uint, error)
}

// Notifier sends incident lifecycle emails. Implementations deliver
// asynchronously; failures are logged, never returned.
type Notifier interface {
	NotifyIncidentRaised(inc *incident.Incident)
	NotifyTechnicianAssigned(inc *incident.Incident, technicianID uint)
	NotifyIncidentClosed(inc *incident.Incident)
}
