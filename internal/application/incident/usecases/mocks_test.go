package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockIncidentRepo struct {
	saveFunc           func(ctx context.Context, inc *incident.Incident) error
	updateFunc         func(ctx context.Context, inc *incident.Incident) error
	findByIDFunc       func(ctx context.Context, id uint) (*incident.Incident, error)
	findByNumberFunc   func(ctx context.Context, number string) (*incident.Incident, error)
	listFunc           func(ctx context.Context, filter incident.ListFilter, offset, limit int, orderBy string) ([]*incident.Incident, int64, error)
	countByStatusFunc  func(ctx context.Context) (map[vo.WorkflowStatus]int64, error)
	existsByNumberFunc func(ctx context.Context, number string) (bool, error)
	appendActivityFunc func(ctx context.Context, act *incident.Activity) error
	listActivitiesFunc func(ctx context.Context, incidentID uint) ([]*incident.Activity, error)

	activities []*incident.Activity
}

func (m *mockIncidentRepo) Save(ctx context.Context, inc *incident.Incident) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, inc)
	}
	return inc.SetID(1)
}

func (m *mockIncidentRepo) Update(ctx context.Context, inc *incident.Incident) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, inc)
	}
	return nil
}

func (m *mockIncidentRepo) FindByID(ctx context.Context, id uint) (*incident.Incident, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("incident not found")
}

func (m *mockIncidentRepo) FindByNumber(ctx context.Context, number string) (*incident.Incident, error) {
	if m.findByNumberFunc != nil {
		return m.findByNumberFunc(ctx, number)
	}
	return nil, errors.NewNotFoundError("incident not found")
}

func (m *mockIncidentRepo) List(ctx context.Context, filter incident.ListFilter, offset, limit int, orderBy string) ([]*incident.Incident, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, offset, limit, orderBy)
	}
	return nil, 0, nil
}

func (m *mockIncidentRepo) CountByStatus(ctx context.Context) (map[vo.WorkflowStatus]int64, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return nil, nil
}

func (m *mockIncidentRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if m.existsByNumberFunc != nil {
		return m.existsByNumberFunc(ctx, number)
	}
	return false, nil
}

func (m *mockIncidentRepo) AppendActivity(ctx context.Context, act *incident.Activity) error {
	if m.appendActivityFunc != nil {
		return m.appendActivityFunc(ctx, act)
	}
	m.activities = append(m.activities, act)
	return nil
}

func (m *mockIncidentRepo) ListActivities(ctx context.Context, incidentID uint) ([]*incident.Activity, error) {
	if m.listActivitiesFunc != nil {
		return m.listActivitiesFunc(ctx, incidentID)
	}
	return m.activities, nil
}

type mockNumberGen struct {
	nextFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGen) Next(ctx context.Context) (string, error) {
	if m.nextFunc != nil {
		return m.nextFunc(ctx)
	}
	return "UAV-2026-0001", nil
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, inc *incident.Incident) (*ResolvedAssignment, error)
}

func (m *mockResolver) Resolve(ctx context.Context, inc *incident.Incident) (*ResolvedAssignment, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, inc)
	}
	return nil, nil
}

type mockTransactor struct{}

func (mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPartsConsumer struct {
	consumeFunc func(ctx context.Context, incidentID uint, lines []PartLine, actorID *uint) (decimal.Decimal, error)
}

func (m *mockPartsConsumer) ConsumeForIncident(ctx context.Context, incidentID uint, lines []PartLine, actorID *uint) (decimal.Decimal, error) {
	if m.consumeFunc != nil {
		return m.consumeFunc(ctx, incidentID, lines, actorID)
	}
	return decimal.Zero, nil
}

type mockWorkOrderService struct {
	openFunc     func(ctx context.Context, incidentID uint, woType, description string, assigneeID *uint, estimatedCost decimal.Decimal) (uint, error)
	approvalFunc func(ctx context.Context, incidentID, approverID uint, approved bool, comment string) error
	completeFunc func(ctx context.Context, incidentID uint, actualCost decimal.Decimal) error

	completed []uint
}

func (m *mockWorkOrderService) OpenForIncident(ctx context.Context, incidentID uint, woType, description string, assigneeID *uint, estimatedCost decimal.Decimal) (uint, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, incidentID, woType, description, assigneeID, estimatedCost)
	}
	return 10, nil
}

func (m *mockWorkOrderService) RecordApproval(ctx context.Context, incidentID, approverID uint, approved bool, comment string) error {
	if m.approvalFunc != nil {
		return m.approvalFunc(ctx, incidentID, approverID, approved, comment)
	}
	return nil
}

func (m *mockWorkOrderService) CompleteForIncident(ctx context.Context, incidentID uint, actualCost decimal.Decimal) error {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, incidentID, actualCost)
	}
	m.completed = append(m.completed, incidentID)
	return nil
}

type mockMaintenanceScheduler struct {
	createFunc func(ctx context.Context, inc *incident.Incident, intervalType string, flightHoursInterval float64, dayInterval int, description string) (uint, error)
}

func (m *mockMaintenanceScheduler) CreateForIncident(ctx context.Context, inc *incident.Incident, intervalType string, flightHoursInterval float64, dayInterval int, description string) (uint, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, inc, intervalType, flightHoursInterval, dayInterval, description)
	}
	return 5, nil
}

type mockNotifier struct {
	raised   []uint
	assigned []uint
	closed   []uint
}

func (m *mockNotifier) NotifyIncidentRaised(inc *incident.Incident) {
	m.raised = append(m.raised, inc.ID())
}

func (m *mockNotifier) NotifyTechnicianAssigned(inc *incident.Incident, technicianID uint) {
	m.assigned = append(m.assigned, technicianID)
}

func (m *mockNotifier) NotifyIncidentClosed(inc *incident.Incident) {
	m.closed = append(m.closed, inc.ID())
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func incidentInDiagnosis(techID uint) *incident.Incident {
	inc, _ := incident.NewIncident(incident.NewIncidentParams{
		Title:         "Gimbal vibration",
		Category:      vo.CategoryCamera,
		Priority:      vo.PriorityHigh,
		SLACategory:   vo.SLAStandard,
		UnderWarranty: true,
		CustomerID:    42,
	})
	_ = inc.SetID(7)
	_ = inc.SetNumber("UAV-2026-0007")
	_ = inc.AssignTechnician(techID, nil)
	_ = inc.StartDiagnosis()
	return inc
}
