package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"skywrench/internal/application/workorder/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type WorkOrderHandler struct {
	getWorkOrderUC   *usecases.GetWorkOrderUseCase
	listWorkOrdersUC *usecases.ListWorkOrdersUseCase
	logger           logger.Interface
}

func NewWorkOrderHandler(
	getWorkOrderUC *usecases.GetWorkOrderUseCase,
	listWorkOrdersUC *usecases.ListWorkOrdersUseCase,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		getWorkOrderUC:   getWorkOrderUC,
		listWorkOrdersUC: listWorkOrdersUC,
		logger:           logger.NewLogger(),
	}
}

type WorkOrderResponse struct {
	ID            uint                `json:"id"`
	Number        string              `json:"number"`
	IncidentID    uint                `json:"incident_id"`
	Type          string              `json:"type"`
	Status        string              `json:"status"`
	Description   string              `json:"description,omitempty"`
	AssigneeID    *uint               `json:"assignee_id,omitempty"`
	EstimatedCost decimal.Decimal     `json:"estimated_cost"`
	ActualCost    decimal.Decimal     `json:"actual_cost"`
	StartedAt     *time.Time          `json:"started_at,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	Approvals     []ApprovalResponse  `json:"approvals,omitempty"`
}

type ApprovalResponse struct {
	ID         uint      `json:"id"`
	ApproverID uint      `json:"approver_id"`
	Decision   string    `json:"decision"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func workOrderToResponse(d *usecases.WorkOrderDetails) WorkOrderResponse {
	approvals := make([]ApprovalResponse, 0, len(d.Approvals))
	for _, a := range d.Approvals {
		approvals = append(approvals, ApprovalResponse{
			ID:         a.ID,
			ApproverID: a.ApproverID,
			Decision:   a.Decision,
			Comment:    a.Comment,
			CreatedAt:  a.CreatedAt,
		})
	}
	return WorkOrderResponse{
		ID:            d.ID,
		Number:        d.Number,
		IncidentID:    d.IncidentID,
		Type:          d.Type,
		Status:        d.Status,
		Description:   d.Description,
		AssigneeID:    d.AssigneeID,
		EstimatedCost: d.EstimatedCost,
		ActualCost:    d.ActualCost,
		StartedAt:     d.StartedAt,
		CompletedAt:   d.CompletedAt,
		Approvals:     approvals,
	}
}

func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	workOrderID, err := utils.ParseUintParam(c, "id", "work order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	details, err := h.getWorkOrderUC.Execute(c.Request.Context(), usecases.GetWorkOrderQuery{WorkOrderID: workOrderID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", workOrderToResponse(details))
}

func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listWorkOrdersUC.Execute(c.Request.Context(), usecases.ListWorkOrdersQuery{
		Status:     c.Query("status"),
		Pagination: p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	workOrders := make([]WorkOrderResponse, 0, len(result.WorkOrders))
	for i := range result.WorkOrders {
		workOrders = append(workOrders, workOrderToResponse(&result.WorkOrders[i]))
	}

	utils.ListSuccessResponse(c, workOrders, result.Total, p.Page, p.PageSize)
}
