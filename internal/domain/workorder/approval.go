package workorder

import (
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Decision is an approval gate outcome.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// Approval records one decision on a work order's approval gate. Rows are
// append-only; a rejected work order that is re-submitted gets a new row.
type Approval struct {
	id          uint
	workOrderID uint
	approverID  uint
	decision    Decision
	comment     string
	createdAt   time.Time
}

func NewApproval(workOrderID, approverID uint, decision Decision, comment string) (*Approval, error) {
	if workOrderID == 0 {
		return nil, errors.NewValidationError("work order is required")
	}
	if approverID == 0 {
		return nil, errors.NewValidationError("approver is required")
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, errors.NewValidationError("invalid approval decision")
	}
	comment = strings.TrimSpace(comment)
	if decision == DecisionRejected && comment == "" {
		return nil, errors.NewValidationError("rejection requires a comment")
	}
	return &Approval{
		workOrderID: workOrderID,
		approverID:  approverID,
		decision:    decision,
		comment:     comment,
		createdAt:   biztime.NowUTC(),
	}, nil
}

// ReconstructApproval rebuilds an approval from persistence.
func ReconstructApproval(id, workOrderID, approverID uint, decision Decision, comment string, createdAt time.Time) *Approval {
	return &Approval{
		id:          id,
		workOrderID: workOrderID,
		approverID:  approverID,
		decision:    decision,
		comment:     comment,
		createdAt:   createdAt,
	}
}

func (a *Approval) ID() uint             { return a.id }
func (a *Approval) WorkOrderID() uint    { return a.workOrderID }
func (a *Approval) ApproverID() uint     { return a.approverID }
func (a *Approval) Decision() Decision   { return a.decision }
func (a *Approval) Comment() string      { return a.comment }
func (a *Approval) CreatedAt() time.Time { return a.createdAt }

func (a *Approval) SetID(id uint) error {
	if a.id != 0 {
		return errors.NewInternalError("approval ID already set")
	}
	a.id = id
	return nil
}
