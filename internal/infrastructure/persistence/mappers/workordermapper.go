package mappers

import (
	"skywrench/internal/domain/workorder"
	"skywrench/internal/infrastructure/persistence/models"
)

type WorkOrderMapper interface {
	ToModel(wo *workorder.WorkOrder) *models.WorkOrderModel
	ToDomain(model *models.WorkOrderModel) *workorder.WorkOrder
	ApprovalToModel(a *workorder.Approval) *models.WorkOrderApprovalModel
	ApprovalToDomain(model *models.WorkOrderApprovalModel) *workorder.Approval
}

type WorkOrderMapperImpl struct{}

func NewWorkOrderMapper() WorkOrderMapper {
	return &WorkOrderMapperImpl{}
}

func (m *WorkOrderMapperImpl) ToModel(wo *workorder.WorkOrder) *models.WorkOrderModel {
	return &models.WorkOrderModel{
		ID:            wo.ID(),
		Number:        wo.Number(),
		IncidentID:    wo.IncidentID(),
		Type:          string(wo.Type()),
		Status:        string(wo.Status()),
		Description:   wo.Description(),
		AssigneeID:    wo.AssigneeID(),
		EstimatedCost: wo.EstimatedCost().String(),
		ActualCost:    wo.ActualCost().String(),
		StartedAt:     timePtrToMillis(wo.StartedAt()),
		CompletedAt:   timePtrToMillis(wo.CompletedAt()),
		CreatedAt:     wo.CreatedAt().UnixMilli(),
		UpdatedAt:     wo.UpdatedAt().UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) ToDomain(model *models.WorkOrderModel) *workorder.WorkOrder {
	return workorder.ReconstructWorkOrder(
		model.ID,
		model.Number,
		model.IncidentID,
		workorder.Type(model.Type),
		workorder.Status(model.Status),
		model.Description,
		model.AssigneeID,
		parseDecimal(model.EstimatedCost),
		parseDecimal(model.ActualCost),
		millisPtrToTime(model.StartedAt),
		millisPtrToTime(model.CompletedAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *WorkOrderMapperImpl) ApprovalToModel(a *workorder.Approval) *models.WorkOrderApprovalModel {
	return &models.WorkOrderApprovalModel{
		ID:          a.ID(),
		WorkOrderID: a.WorkOrderID(),
		ApproverID:  a.ApproverID(),
		Decision:    string(a.Decision()),
		Comment:     a.Comment(),
		CreatedAt:   a.CreatedAt().UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) ApprovalToDomain(model *models.WorkOrderApprovalModel) *workorder.Approval {
	return workorder.ReconstructApproval(
		model.ID,
		model.WorkOrderID,
		model.ApproverID,
		workorder.Decision(model.Decision),
		model.Comment,
		millisToTime(model.CreatedAt),
	)
}
