package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type ApproveWorkOrderCommand struct {
	IncidentID uint
	ApproverID uint
	Comment    string
}

type ApproveWorkOrderResult struct {
	IncidentID uint
	Status     string
}

// ApproveWorkOrderUseCase clears the approval gate and records the
// decision on the work order.
type ApproveWorkOrderUseCase struct {
	incidentRepo incident.Repository
	workOrders   WorkOrderService
	txManager    Transactor
	logger       logger.Interface
}

func NewApproveWorkOrderUseCase(
	incidentRepo incident.Repository,
	workOrders WorkOrderService,
	txManager Transactor,
	logger logger.Interface,
) *ApproveWorkOrderUseCase {
	return &ApproveWorkOrderUseCase{
		incidentRepo: incidentRepo,
		workOrders:   workOrders,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *ApproveWorkOrderUseCase) Execute(ctx context.Context, cmd ApproveWorkOrderCommand) (*ApproveWorkOrderResult, error) {
	if cmd.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}
	if cmd.ApproverID == 0 {
		return nil, errors.NewValidationError("approver ID is required")
	}

	var inc *incident.Incident
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByID(txCtx, cmd.IncidentID)
		if err != nil {
			return err
		}

		if err := inc.ApproveWorkOrder(cmd.ApproverID); err != nil {
			return err
		}
		if err := uc.workOrders.RecordApproval(txCtx, inc.ID(), cmd.ApproverID, true, cmd.Comment); err != nil {
			return err
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ApproverID, "work_order_approved", "Work order approved", true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to approve work order", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order approved", "incident_id", inc.ID(), "approver_id", cmd.ApproverID)

	return &ApproveWorkOrderResult{IncidentID: inc.ID(), Status: inc.Status().String()}, nil
}
