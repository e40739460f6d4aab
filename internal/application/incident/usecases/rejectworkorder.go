package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type RejectWorkOrderCommand struct {
	IncidentID uint
	ApproverID uint
	Reason     string
}

type RejectWorkOrderResult struct {
	IncidentID uint
	Status     string
}

// RejectWorkOrderUseCase sends an incident awaiting approval back to
// diagnosis for a requote.
type RejectWorkOrderUseCase struct {
	incidentRepo incident.Repository
	workOrders   WorkOrderService
	txManager    Transactor
	logger       logger.Interface
}

func NewRejectWorkOrderUseCase(
	incidentRepo incident.Repository,
	workOrders WorkOrderService,
	txManager Transactor,
	logger logger.Interface,
) *RejectWorkOrderUseCase {
	return &RejectWorkOrderUseCase{
		incidentRepo: incidentRepo,
		workOrders:   workOrders,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *RejectWorkOrderUseCase) Execute(ctx context.Context, cmd RejectWorkOrderCommand) (*RejectWorkOrderResult, error) {
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

		if err := inc.RejectWorkOrder(cmd.Reason); err != nil {
			return err
		}
		if err := uc.workOrders.RecordApproval(txCtx, inc.ID(), cmd.ApproverID, false, cmd.Reason); err != nil {
			return err
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ApproverID, "work_order_rejected", "Work order rejected: "+cmd.Reason, true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to reject work order", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order rejected", "incident_id", inc.ID(), "approver_id", cmd.ApproverID)

	return &RejectWorkOrderResult{IncidentID: inc.ID(), Status: inc.Status().String()}, nil
}
