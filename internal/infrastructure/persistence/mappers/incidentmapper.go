package mappers

import (
	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/infrastructure/persistence/models"
)

// IncidentMapper handles the conversion between Incident domain entities
// and persistence models.
type IncidentMapper interface {
	ToModel(inc *incident.Incident) *models.IncidentModel
	ToDomain(model *models.IncidentModel) (*incident.Incident, error)
	ActivityToModel(act *incident.Activity) *models.IncidentActivityModel
	ActivityToDomain(model *models.IncidentActivityModel) *incident.Activity
}

type IncidentMapperImpl struct{}

func NewIncidentMapper() IncidentMapper {
	return &IncidentMapperImpl{}
}

func (m *IncidentMapperImpl) ToModel(inc *incident.Incident) *models.IncidentModel {
	return &models.IncidentModel{
		ID:             inc.ID(),
		Number:         inc.Number(),
		Title:          inc.Title(),
		Description:    inc.Description(),
		Category:       inc.Category().String(),
		Priority:       inc.Priority().String(),
		SLACategory:    inc.SLACategory().String(),
		Status:         inc.Status().String(),
		Department:     inc.Department(),
		UAVModel:       inc.UAVModel(),
		UAVSerial:      inc.UAVSerial(),
		UnderWarranty:  inc.UnderWarranty(),
		CustomerID:     inc.CustomerID(),
		TechnicianID:   inc.TechnicianID(),
		GroupID:        inc.GroupID(),
		WorkOrderType:  string(inc.WorkOrderType()),
		DiagnosisNotes: inc.DiagnosisNotes(),
		RepairNotes:    inc.RepairNotes(),
		QualityNotes:   inc.QualityNotes(),
		LaborHours:     inc.LaborHours().String(),
		EstimatedCost:  inc.EstimatedCost().String(),
		ActualCost:     inc.ActualCost().String(),
		ApprovedBy:     inc.ApprovedBy(),
		RejectedReason: inc.RejectedReason(),

		RaisedAt:              inc.RaisedAt().UnixMilli(),
		TechnicianAssignedAt:  timePtrToMillis(inc.TechnicianAssignedAt()),
		DiagnosisCompletedAt:  timePtrToMillis(inc.DiagnosisCompletedAt()),
		WorkOrderApprovedAt:   timePtrToMillis(inc.WorkOrderApprovedAt()),
		RepairStartedAt:       timePtrToMillis(inc.RepairStartedAt()),
		RepairCompletedAt:     timePtrToMillis(inc.RepairCompletedAt()),
		QualityCheckAt:        timePtrToMillis(inc.QualityCheckAt()),
		HandedOverAt:          timePtrToMillis(inc.HandedOverAt()),
		PreventiveScheduledAt: timePtrToMillis(inc.PreventiveScheduledAt()),
		ClosedAt:              timePtrToMillis(inc.ClosedAt()),

		Version:   inc.Version(),
		CreatedAt: inc.CreatedAt().UnixMilli(),
		UpdatedAt: inc.UpdatedAt().UnixMilli(),
	}
}

func (m *IncidentMapperImpl) ToDomain(model *models.IncidentModel) (*incident.Incident, error) {
	category, err := vo.NewServiceCategory(model.Category)
	if err != nil {
		return nil, err
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, err
	}
	slaCategory, err := vo.NewSLACategory(model.SLACategory)
	if err != nil {
		return nil, err
	}
	status, err := vo.NewWorkflowStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return incident.ReconstructIncident(incident.ReconstructedIncident{
		ID:             model.ID,
		Number:         model.Number,
		Title:          model.Title,
		Description:    model.Description,
		Category:       category,
		Priority:       priority,
		SLACategory:    slaCategory,
		Status:         status,
		Department:     model.Department,
		UAVModel:       model.UAVModel,
		UAVSerial:      model.UAVSerial,
		UnderWarranty:  model.UnderWarranty,
		CustomerID:     model.CustomerID,
		TechnicianID:   model.TechnicianID,
		GroupID:        model.GroupID,
		WorkOrderType:  incident.WorkOrderType(model.WorkOrderType),
		DiagnosisNotes: model.DiagnosisNotes,
		RepairNotes:    model.RepairNotes,
		QualityNotes:   model.QualityNotes,
		LaborHours:     parseDecimal(model.LaborHours),
		EstimatedCost:  parseDecimal(model.EstimatedCost),
		ActualCost:     parseDecimal(model.ActualCost),
		ApprovedBy:     model.ApprovedBy,
		RejectedReason: model.RejectedReason,

		RaisedAt:              millisToTime(model.RaisedAt),
		TechnicianAssignedAt:  millisPtrToTime(model.TechnicianAssignedAt),
		DiagnosisCompletedAt:  millisPtrToTime(model.DiagnosisCompletedAt),
		WorkOrderApprovedAt:   millisPtrToTime(model.WorkOrderApprovedAt),
		RepairStartedAt:       millisPtrToTime(model.RepairStartedAt),
		RepairCompletedAt:     millisPtrToTime(model.RepairCompletedAt),
		QualityCheckAt:        millisPtrToTime(model.QualityCheckAt),
		HandedOverAt:          millisPtrToTime(model.HandedOverAt),
		PreventiveScheduledAt: millisPtrToTime(model.PreventiveScheduledAt),
		ClosedAt:              millisPtrToTime(model.ClosedAt),

		CreatedAt: millisToTime(model.CreatedAt),
		UpdatedAt: millisToTime(model.UpdatedAt),
		Version:   model.Version,
	}), nil
}

func (m *IncidentMapperImpl) ActivityToModel(act *incident.Activity) *models.IncidentActivityModel {
	return &models.IncidentActivityModel{
		ID:              act.ID(),
		IncidentID:      act.IncidentID(),
		ActorID:         act.ActorID(),
		Action:          act.Action(),
		Detail:          act.Detail(),
		CustomerVisible: act.CustomerVisible(),
		CreatedAt:       act.CreatedAt().UnixMilli(),
	}
}

func (m *IncidentMapperImpl) ActivityToDomain(model *models.IncidentActivityModel) *incident.Activity {
	return incident.ReconstructActivity(
		model.ID,
		model.IncidentID,
		model.ActorID,
		model.Action,
		model.Detail,
		model.CustomerVisible,
		millisToTime(model.CreatedAt),
	)
}
