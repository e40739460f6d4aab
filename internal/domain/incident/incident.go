package incident

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// WorkOrderType classifies the work the diagnosis calls for.
type WorkOrderType string

const (
	WorkOrderRepair      WorkOrderType = "REPAIR"
	WorkOrderReplace     WorkOrderType = "REPLACE"
	WorkOrderMaintenance WorkOrderType = "MAINTENANCE"
)

func (w WorkOrderType) IsValid() bool {
	switch w {
	case WorkOrderRepair, WorkOrderReplace, WorkOrderMaintenance:
		return true
	}
	return false
}

// Incident is a UAV service incident moving through the fixed repair
// workflow. Fields are mutated only through the stage methods so every
// transition passes the status table.
type Incident struct {
	id             uint
	number         string
	title          string
	description    string
	category       valueobjects.ServiceCategory
	priority       valueobjects.Priority
	slaCategory    valueobjects.SLACategory
	status         valueobjects.WorkflowStatus
	department     string
	uavModel       string
	uavSerial      string
	underWarranty  bool
	customerID     uint
	technicianID   *uint
	groupID        *uint
	workOrderType  WorkOrderType
	diagnosisNotes string
	repairNotes    string
	qualityNotes   string
	laborHours     decimal.Decimal
	estimatedCost  decimal.Decimal
	actualCost     decimal.Decimal
	approvedBy     *uint
	rejectedReason string

	raisedAt              time.Time
	technicianAssignedAt  *time.Time
	diagnosisCompletedAt  *time.Time
	workOrderApprovedAt   *time.Time
	repairStartedAt       *time.Time
	repairCompletedAt     *time.Time
	qualityCheckAt        *time.Time
	handedOverAt          *time.Time
	preventiveScheduledAt *time.Time
	closedAt              *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int
}

// NewIncidentParams carries the attributes of a freshly raised incident.
type NewIncidentParams struct {
	Title         string
	Description   string
	Category      valueobjects.ServiceCategory
	Priority      valueobjects.Priority
	SLACategory   valueobjects.SLACategory
	Department    string
	UAVModel      string
	UAVSerial     string
	UnderWarranty bool
	CustomerID    uint
}

// NewIncident creates a freshly raised incident. The number is assigned
// later by the persistence layer via SetNumber.
func NewIncident(p NewIncidentParams) (*Incident, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, errors.NewValidationError("title is required")
	}
	if !p.Category.IsValid() {
		return nil, errors.NewValidationError("invalid service category")
	}
	if !p.Priority.IsValid() {
		return nil, errors.NewValidationError("invalid priority")
	}
	if !p.SLACategory.IsValid() {
		return nil, errors.NewValidationError("invalid SLA category")
	}
	if p.CustomerID == 0 {
		return nil, errors.NewValidationError("customer is required")
	}

	now := biztime.NowUTC()
	return &Incident{
		title:         title,
		description:   strings.TrimSpace(p.Description),
		category:      p.Category,
		priority:      p.Priority,
		slaCategory:   p.SLACategory,
		status:        valueobjects.StatusIncidentRaised,
		department:    strings.TrimSpace(p.Department),
		uavModel:      strings.TrimSpace(p.UAVModel),
		uavSerial:     strings.TrimSpace(p.UAVSerial),
		underWarranty: p.UnderWarranty,
		customerID:    p.CustomerID,
		laborHours:    decimal.Zero,
		estimatedCost: decimal.Zero,
		actualCost:    decimal.Zero,
		raisedAt:      now,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
	}, nil
}

// ReconstructedIncident carries every persisted field for rebuilding the
// aggregate without validation.
type ReconstructedIncident struct {
	ID             uint
	Number         string
	Title          string
	Description    string
	Category       valueobjects.ServiceCategory
	Priority       valueobjects.Priority
	SLACategory    valueobjects.SLACategory
	Status         valueobjects.WorkflowStatus
	Department     string
	UAVModel       string
	UAVSerial      string
	UnderWarranty  bool
	CustomerID     uint
	TechnicianID   *uint
	GroupID        *uint
	WorkOrderType  WorkOrderType
	DiagnosisNotes string
	RepairNotes    string
	QualityNotes   string
	LaborHours     decimal.Decimal
	EstimatedCost  decimal.Decimal
	ActualCost     decimal.Decimal
	ApprovedBy     *uint
	RejectedReason string

	RaisedAt              time.Time
	TechnicianAssignedAt  *time.Time
	DiagnosisCompletedAt  *time.Time
	WorkOrderApprovedAt   *time.Time
	RepairStartedAt       *time.Time
	RepairCompletedAt     *time.Time
	QualityCheckAt        *time.Time
	HandedOverAt          *time.Time
	PreventiveScheduledAt *time.Time
	ClosedAt              *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// ReconstructIncident rebuilds an incident from persistence.
func ReconstructIncident(r ReconstructedIncident) *Incident {
	return &Incident{
		id:                    r.ID,
		number:                r.Number,
		title:                 r.Title,
		description:           r.Description,
		category:              r.Category,
		priority:              r.Priority,
		slaCategory:           r.SLACategory,
		status:                r.Status,
		department:            r.Department,
		uavModel:              r.UAVModel,
		uavSerial:             r.UAVSerial,
		underWarranty:         r.UnderWarranty,
		customerID:            r.CustomerID,
		technicianID:          r.TechnicianID,
		groupID:               r.GroupID,
		workOrderType:         r.WorkOrderType,
		diagnosisNotes:        r.DiagnosisNotes,
		repairNotes:           r.RepairNotes,
		qualityNotes:          r.QualityNotes,
		laborHours:            r.LaborHours,
		estimatedCost:         r.EstimatedCost,
		actualCost:            r.ActualCost,
		approvedBy:            r.ApprovedBy,
		rejectedReason:        r.RejectedReason,
		raisedAt:              r.RaisedAt,
		technicianAssignedAt:  r.TechnicianAssignedAt,
		diagnosisCompletedAt:  r.DiagnosisCompletedAt,
		workOrderApprovedAt:   r.WorkOrderApprovedAt,
		repairStartedAt:       r.RepairStartedAt,
		repairCompletedAt:     r.RepairCompletedAt,
		qualityCheckAt:        r.QualityCheckAt,
		handedOverAt:          r.HandedOverAt,
		preventiveScheduledAt: r.PreventiveScheduledAt,
		closedAt:              r.ClosedAt,
		createdAt:             r.CreatedAt,
		updatedAt:             r.UpdatedAt,
		version:               r.Version,
	}
}

func (i *Incident) ID() uint                               { return i.id }
func (i *Incident) Number() string                         { return i.number }
func (i *Incident) Title() string                          { return i.title }
func (i *Incident) Description() string                    { return i.description }
func (i *Incident) Category() valueobjects.ServiceCategory { return i.category }
func (i *Incident) Priority() valueobjects.Priority        { return i.priority }
func (i *Incident) SLACategory() valueobjects.SLACategory  { return i.slaCategory }
func (i *Incident) Status() valueobjects.WorkflowStatus    { return i.status }
func (i *Incident) Department() string                     { return i.department }
func (i *Incident) UAVModel() string                       { return i.uavModel }
func (i *Incident) UAVSerial() string                      { return i.uavSerial }
func (i *Incident) UnderWarranty() bool                    { return i.underWarranty }
func (i *Incident) CustomerID() uint                       { return i.customerID }
func (i *Incident) TechnicianID() *uint                    { return i.technicianID }
func (i *Incident) GroupID() *uint                         { return i.groupID }
func (i *Incident) WorkOrderType() WorkOrderType           { return i.workOrderType }
func (i *Incident) DiagnosisNotes() string                 { return i.diagnosisNotes }
func (i *Incident) RepairNotes() string                    { return i.repairNotes }
func (i *Incident) QualityNotes() string                   { return i.qualityNotes }
func (i *Incident) LaborHours() decimal.Decimal            { return i.laborHours }
func (i *Incident) EstimatedCost() decimal.Decimal         { return i.estimatedCost }
func (i *Incident) ActualCost() decimal.Decimal            { return i.actualCost }
func (i *Incident) ApprovedBy() *uint                      { return i.approvedBy }
func (i *Incident) RejectedReason() string                 { return i.rejectedReason }
func (i *Incident) RaisedAt() time.Time                    { return i.raisedAt }
func (i *Incident) TechnicianAssignedAt() *time.Time       { return i.technicianAssignedAt }
func (i *Incident) DiagnosisCompletedAt() *time.Time       { return i.diagnosisCompletedAt }
func (i *Incident) WorkOrderApprovedAt() *time.Time        { return i.workOrderApprovedAt }
func (i *Incident) RepairStartedAt() *time.Time            { return i.repairStartedAt }
func (i *Incident) RepairCompletedAt() *time.Time          { return i.repairCompletedAt }
func (i *Incident) QualityCheckAt() *time.Time             { return i.qualityCheckAt }
func (i *Incident) HandedOverAt() *time.Time               { return i.handedOverAt }
func (i *Incident) PreventiveScheduledAt() *time.Time      { return i.preventiveScheduledAt }
func (i *Incident) ClosedAt() *time.Time                   { return i.closedAt }
func (i *Incident) CreatedAt() time.Time                   { return i.createdAt }
func (i *Incident) UpdatedAt() time.Time                   { return i.updatedAt }
func (i *Incident) Version() int                           { return i.version }

// SetID assigns the database identity once after insert.
func (i *Incident) SetID(id uint) error {
	if i.id != 0 {
		return errors.NewInternalError("incident ID already set")
	}
	i.id = id
	return nil
}

// SetNumber assigns the generated incident number once.
func (i *Incident) SetNumber(number string) error {
	if i.number != "" {
		return errors.NewInternalError("incident number already set")
	}
	if number == "" {
		return errors.NewValidationError("incident number is required")
	}
	i.number = number
	return nil
}

// AssignTechnician records the responding technician and optionally the
// assignment group. Reassignment is allowed while the incident is open;
// the first assignment stamps the response timestamp.
func (i *Incident) AssignTechnician(technicianID uint, groupID *uint) error {
	if i.status.IsClosed() {
		return errors.NewConflictError("incident is closed")
	}
	if technicianID == 0 {
		return errors.NewValidationError("technician is required")
	}
	now := biztime.NowUTC()
	i.technicianID = &technicianID
	i.groupID = groupID
	if i.technicianAssignedAt == nil {
		i.technicianAssignedAt = &now
	}
	i.touch(now)
	return nil
}

// AssignGroup routes the incident to a group without picking a technician.
func (i *Incident) AssignGroup(groupID uint) error {
	if i.status.IsClosed() {
		return errors.NewConflictError("incident is closed")
	}
	if groupID == 0 {
		return errors.NewValidationError("group is required")
	}
	i.groupID = &groupID
	i.touch(biztime.NowUTC())
	return nil
}

// StartDiagnosis moves a freshly raised incident into the diagnosis stage.
// A technician must be on the incident before diagnosis can begin.
func (i *Incident) StartDiagnosis() error {
	if i.technicianID == nil {
		return errors.NewValidationError("a technician must be assigned before diagnosis")
	}
	if err := i.transitionTo(valueobjects.StatusDiagnosisWO); err != nil {
		return err
	}
	i.touch(biztime.NowUTC())
	return nil
}

// CompleteDiagnosis records the findings, the work needed and the cost
// estimate. requiresApproval routes the incident through the approval gate
// instead of straight to repair.
func (i *Incident) CompleteDiagnosis(notes string, woType WorkOrderType, estimatedCost decimal.Decimal, requiresApproval bool) error {
	if i.status != valueobjects.StatusDiagnosisWO {
		return errors.NewConflictError("incident is not in diagnosis")
	}
	if !woType.IsValid() {
		return errors.NewValidationError("invalid work order type")
	}
	if estimatedCost.IsNegative() {
		return errors.NewValidationError("estimated cost cannot be negative")
	}
	next := valueobjects.StatusRepairMaintenance
	if requiresApproval {
		next = valueobjects.StatusWOApproval
	}
	if err := i.transitionTo(next); err != nil {
		return err
	}
	now := biztime.NowUTC()
	i.diagnosisNotes = notes
	i.workOrderType = woType
	i.estimatedCost = estimatedCost
	i.diagnosisCompletedAt = &now
	if next == valueobjects.StatusRepairMaintenance {
		i.repairStartedAt = &now
	}
	i.touch(now)
	return nil
}

// ApproveWorkOrder clears the approval gate and starts the repair stage.
func (i *Incident) ApproveWorkOrder(approverID uint) error {
	if i.status != valueobjects.StatusWOApproval {
		return errors.NewConflictError("incident is not awaiting approval")
	}
	if approverID == 0 {
		return errors.NewValidationError("approver is required")
	}
	if err := i.transitionTo(valueobjects.StatusRepairMaintenance); err != nil {
		return err
	}
	now := biztime.NowUTC()
	i.approvedBy = &approverID
	i.rejectedReason = ""
	i.workOrderApprovedAt = &now
	i.repairStartedAt = &now
	i.touch(now)
	return nil
}

// RejectWorkOrder sends the incident back to diagnosis with a reason.
func (i *Incident) RejectWorkOrder(reason string) error {
	if i.status != valueobjects.StatusWOApproval {
		return errors.NewConflictError("incident is not awaiting approval")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.NewValidationError("rejection reason is required")
	}
	if err := i.transitionTo(valueobjects.StatusDiagnosisWO); err != nil {
		return err
	}
	i.rejectedReason = reason
	i.approvedBy = nil
	i.touch(biztime.NowUTC())
	return nil
}

// CompleteRepair records the work done, the hours spent and the final cost,
// and freezes the SLA clock.
func (i *Incident) CompleteRepair(notes string, laborHours, actualCost decimal.Decimal) error {
	if laborHours.IsNegative() {
		return errors.NewValidationError("labor hours cannot be negative")
	}
	if actualCost.IsNegative() {
		return errors.NewValidationError("actual cost cannot be negative")
	}
	if err := i.transitionTo(valueobjects.StatusQualityCheck); err != nil {
		return err
	}
	now := biztime.NowUTC()
	i.repairNotes = notes
	i.laborHours = laborHours
	i.actualCost = actualCost
	i.repairCompletedAt = &now
	i.touch(now)
	return nil
}

// PassQualityCheck records the inspection outcome. Both the QA verification
// and the airworthiness certification must be in place. schedulePreventive
// moves the incident to the preventive maintenance stage instead of closing
// at handover.
func (i *Incident) PassQualityCheck(notes string, qaVerified, airworthinessCertified, schedulePreventive bool) error {
	if i.status != valueobjects.StatusQualityCheck {
		return errors.NewConflictError("incident is not in quality check")
	}
	if !qaVerified {
		return errors.NewValidationError("quality check is not verified")
	}
	if !airworthinessCertified {
		return errors.NewValidationError("airworthiness is not certified")
	}
	next := valueobjects.StatusClosed
	if schedulePreventive {
		next = valueobjects.StatusPreventiveMaintenance
	}
	if err := i.transitionTo(next); err != nil {
		return err
	}
	now := biztime.NowUTC()
	i.qualityNotes = notes
	i.qualityCheckAt = &now
	i.handedOverAt = &now
	if next == valueobjects.StatusClosed {
		i.closedAt = &now
	}
	i.touch(now)
	return nil
}

// MarkPreventiveScheduled records that the follow-up maintenance plan is in
// place.
func (i *Incident) MarkPreventiveScheduled() error {
	if i.status != valueobjects.StatusPreventiveMaintenance {
		return errors.NewConflictError("incident is not in preventive maintenance")
	}
	now := biztime.NowUTC()
	i.preventiveScheduledAt = &now
	i.touch(now)
	return nil
}

// Close finishes the incident from any stage that allows it.
func (i *Incident) Close() error {
	if err := i.transitionTo(valueobjects.StatusClosed); err != nil {
		return err
	}
	now := biztime.NowUTC()
	i.closedAt = &now
	i.touch(now)
	return nil
}

// SLAStatus derives the current SLA health. The clock stops at repair
// completion.
func (i *Incident) SLAStatus(now time.Time, th valueobjects.SLAThresholds) valueobjects.SLAStatus {
	return valueobjects.EvaluateSLA(i.slaCategory, i.raisedAt, now, i.repairCompletedAt, th)
}

func (i *Incident) transitionTo(next valueobjects.WorkflowStatus) error {
	if !i.status.CanTransitionTo(next) {
		return errors.NewConflictError("cannot transition from " + i.status.String() + " to " + next.String())
	}
	i.status = next
	return nil
}

func (i *Incident) touch(now time.Time) {
	i.updatedAt = now
	i.version++
}
