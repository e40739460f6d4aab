package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type CloseIncidentCommand struct {
	IncidentID uint
	ActorID    uint
	Notes      string
}

type CloseIncidentResult struct {
	IncidentID uint
	Status     string
}

// CloseIncidentUseCase finishes an incident and completes its work order.
type CloseIncidentUseCase struct {
	incidentRepo incident.Repository
	workOrders   WorkOrderService
	txManager    Transactor
	notifier     Notifier
	logger       logger.Interface
}

func NewCloseIncidentUseCase(
	incidentRepo incident.Repository,
	workOrders WorkOrderService,
	txManager Transactor,
	notifier Notifier,
	logger logger.Interface,
) *CloseIncidentUseCase {
	return &CloseIncidentUseCase{
		incidentRepo: incidentRepo,
		workOrders:   workOrders,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *CloseIncidentUseCase) Execute(ctx context.Context, cmd CloseIncidentCommand) (*CloseIncidentResult, error) {
	if cmd.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}

	var inc *incident.Incident
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByID(txCtx, cmd.IncidentID)
		if err != nil {
			return err
		}

		if err := inc.Close(); err != nil {
			return err
		}
		if err := uc.workOrders.CompleteForIncident(txCtx, inc.ID(), inc.ActualCost()); err != nil {
			return err
		}

		detail := "Incident closed"
		if cmd.Notes != "" {
			detail += ": " + cmd.Notes
		}
		act, err := incident.NewActivity(inc.ID(), &cmd.ActorID, "incident_closed", detail, true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to close incident", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.notifier.NotifyIncidentClosed(inc)
	uc.logger.Infow("incident closed", "incident_id", inc.ID(), "number", inc.Number())

	return &CloseIncidentResult{IncidentID: inc.ID(), Status: inc.Status().String()}, nil
}
