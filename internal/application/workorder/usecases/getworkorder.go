package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/workorder"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type WorkOrderDetails struct {
	ID            uint
	Number        string
	IncidentID    uint
	Type          string
	Status        string
	Description   string
	AssigneeID    *uint
	EstimatedCost decimal.Decimal
	ActualCost    decimal.Decimal
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Approvals     []ApprovalEntry
}

type ApprovalEntry struct {
	ID         uint
	ApproverID uint
	Decision   string
	Comment    string
	CreatedAt  time.Time
}

type GetWorkOrderQuery struct {
	WorkOrderID uint
	IncidentID  uint
}

type GetWorkOrderUseCase struct {
	repo   workorder.Repository
	logger logger.Interface
}

func NewGetWorkOrderUseCase(repo workorder.Repository, logger logger.Interface) *GetWorkOrderUseCase {
	return &GetWorkOrderUseCase{repo: repo, logger: logger}
}

func (uc *GetWorkOrderUseCase) Execute(ctx context.Context, q GetWorkOrderQuery) (*WorkOrderDetails, error) {
	var (
		wo  *workorder.WorkOrder
		err error
	)
	switch {
	case q.WorkOrderID != 0:
		wo, err = uc.repo.FindByID(ctx, q.WorkOrderID)
	case q.IncidentID != 0:
		wo, err = uc.repo.FindByIncidentID(ctx, q.IncidentID)
	default:
		return nil, errors.NewValidationError("work order ID or incident ID is required")
	}
	if err != nil {
		return nil, err
	}

	approvals, err := uc.repo.ListApprovals(ctx, wo.ID())
	if err != nil {
		return nil, err
	}

	details := &WorkOrderDetails{
		ID:            wo.ID(),
		Number:        wo.Number(),
		IncidentID:    wo.IncidentID(),
		Type:          string(wo.Type()),
		Status:        string(wo.Status()),
		Description:   wo.Description(),
		AssigneeID:    wo.AssigneeID(),
		EstimatedCost: wo.EstimatedCost(),
		ActualCost:    wo.ActualCost(),
		StartedAt:     wo.StartedAt(),
		CompletedAt:   wo.CompletedAt(),
	}
	for _, a := range approvals {
		details.Approvals = append(details.Approvals, ApprovalEntry{
			ID:         a.ID(),
			ApproverID: a.ApproverID(),
			Decision:   string(a.Decision()),
			Comment:    a.Comment(),
			CreatedAt:  a.CreatedAt(),
		})
	}
	return details, nil
}

type ListWorkOrdersQuery struct {
	Status     string
	Pagination utils.Pagination
}

type ListWorkOrdersResult struct {
	WorkOrders []WorkOrderDetails
	Total      int64
}

type ListWorkOrdersUseCase struct {
	repo   workorder.Repository
	logger logger.Interface
}

func NewListWorkOrdersUseCase(repo workorder.Repository, logger logger.Interface) *ListWorkOrdersUseCase {
	return &ListWorkOrdersUseCase{repo: repo, logger: logger}
}

func (uc *ListWorkOrdersUseCase) Execute(ctx context.Context, q ListWorkOrdersQuery) (*ListWorkOrdersResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	orders, total, err := uc.repo.List(ctx, workorder.Status(q.Status), p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list work orders", "error", err)
		return nil, err
	}

	out := make([]WorkOrderDetails, 0, len(orders))
	for _, wo := range orders {
		out = append(out, WorkOrderDetails{
			ID:            wo.ID(),
			Number:        wo.Number(),
			IncidentID:    wo.IncidentID(),
			Type:          string(wo.Type()),
			Status:        string(wo.Status()),
			Description:   wo.Description(),
			AssigneeID:    wo.AssigneeID(),
			EstimatedCost: wo.EstimatedCost(),
			ActualCost:    wo.ActualCost(),
			StartedAt:     wo.StartedAt(),
			CompletedAt:   wo.CompletedAt(),
		})
	}
	return &ListWorkOrdersResult{WorkOrders: out, Total: total}, nil
}
