package workorder

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Type classifies the work ordered.
type Type string

const (
	TypeRepair      Type = "REPAIR"
	TypeReplace     Type = "REPLACE"
	TypeMaintenance Type = "MAINTENANCE"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeRepair, TypeReplace, TypeMaintenance:
		return true
	}
	return false
}

// Status is the work order's lifecycle state.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// WorkOrder is the executable work record spawned when an incident's
// diagnosis completes. It closes automatically with its incident.
type WorkOrder struct {
	id            uint
	number        string
	incidentID    uint
	woType        Type
	status        Status
	description   string
	assigneeID    *uint
	estimatedCost decimal.Decimal
	actualCost    decimal.Decimal
	startedAt     *time.Time
	completedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewWorkOrder opens a work order against an incident. The number is
// assigned by the persistence layer via SetNumber.
func NewWorkOrder(incidentID uint, woType Type, description string, assigneeID *uint, estimatedCost decimal.Decimal) (*WorkOrder, error) {
	if incidentID == 0 {
		return nil, errors.NewValidationError("incident is required")
	}
	if !woType.IsValid() {
		return nil, errors.NewValidationError("invalid work order type")
	}
	if estimatedCost.IsNegative() {
		return nil, errors.NewValidationError("estimated cost cannot be negative")
	}
	now := biztime.NowUTC()
	return &WorkOrder{
		incidentID:    incidentID,
		woType:        woType,
		status:        StatusOpen,
		description:   strings.TrimSpace(description),
		assigneeID:    assigneeID,
		estimatedCost: estimatedCost,
		actualCost:    decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructWorkOrder rebuilds a work order from persistence.
func ReconstructWorkOrder(id uint, number string, incidentID uint, woType Type, status Status, description string, assigneeID *uint, estimatedCost, actualCost decimal.Decimal, startedAt, completedAt *time.Time, createdAt, updatedAt time.Time) *WorkOrder {
	return &WorkOrder{
		id:            id,
		number:        number,
		incidentID:    incidentID,
		woType:        woType,
		status:        status,
		description:   description,
		assigneeID:    assigneeID,
		estimatedCost: estimatedCost,
		actualCost:    actualCost,
		startedAt:     startedAt,
		completedAt:   completedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (w *WorkOrder) ID() uint                       { return w.id }
func (w *WorkOrder) Number() string                 { return w.number }
func (w *WorkOrder) IncidentID() uint               { return w.incidentID }
func (w *WorkOrder) Type() Type                     { return w.woType }
func (w *WorkOrder) Status() Status                 { return w.status }
func (w *WorkOrder) Description() string            { return w.description }
func (w *WorkOrder) AssigneeID() *uint              { return w.assigneeID }
func (w *WorkOrder) EstimatedCost() decimal.Decimal { return w.estimatedCost }
func (w *WorkOrder) ActualCost() decimal.Decimal    { return w.actualCost }
func (w *WorkOrder) StartedAt() *time.Time          { return w.startedAt }
func (w *WorkOrder) CompletedAt() *time.Time        { return w.completedAt }
func (w *WorkOrder) CreatedAt() time.Time           { return w.createdAt }
func (w *WorkOrder) UpdatedAt() time.Time           { return w.updatedAt }

func (w *WorkOrder) SetID(id uint) error {
	if w.id != 0 {
		return errors.NewInternalError("work order ID already set")
	}
	w.id = id
	return nil
}

func (w *WorkOrder) SetNumber(number string) error {
	if w.number != "" {
		return errors.NewInternalError("work order number already set")
	}
	if number == "" {
		return errors.NewValidationError("work order number is required")
	}
	w.number = number
	return nil
}

// Start marks the work as underway.
func (w *WorkOrder) Start() error {
	if w.status != StatusOpen {
		return errors.NewConflictError("work order is not open")
	}
	now := biztime.NowUTC()
	w.status = StatusInProgress
	w.startedAt = &now
	w.updatedAt = now
	return nil
}

// Complete finishes the work order and records the final cost.
func (w *WorkOrder) Complete(actualCost decimal.Decimal) error {
	if w.status == StatusCompleted {
		return errors.NewConflictError("work order is already completed")
	}
	if actualCost.IsNegative() {
		return errors.NewValidationError("actual cost cannot be negative")
	}
	now := biztime.NowUTC()
	w.status = StatusCompleted
	w.actualCost = actualCost
	w.completedAt = &now
	w.updatedAt = now
	return nil
}

func (w *WorkOrder) Assign(userID uint) error {
	if w.status == StatusCompleted {
		return errors.NewConflictError("work order is completed")
	}
	if userID == 0 {
		return errors.NewValidationError("assignee is required")
	}
	w.assigneeID = &userID
	w.updatedAt = biztime.NowUTC()
	return nil
}
