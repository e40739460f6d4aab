package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type PassQualityCheckCommand struct {
	IncidentID             uint
	ActorID                uint
	Notes                  string
	QAVerified             bool
	AirworthinessCertified bool
	SchedulePreventive     bool
}

type PassQualityCheckResult struct {
	IncidentID uint
	Status     string
}

// PassQualityCheckUseCase records the inspection and handover. Without a
// preventive maintenance follow-up the incident closes here, completing
// its work order.
type PassQualityCheckUseCase struct {
	incidentRepo incident.Repository
	workOrders   WorkOrderService
	txManager    Transactor
	notifier     Notifier
	logger       logger.Interface
}

func NewPassQualityCheckUseCase(
	incidentRepo incident.Repository,
	workOrders WorkOrderService,
	txManager Transactor,
	notifier Notifier,
	logger logger.Interface,
) *PassQualityCheckUseCase {
	return &PassQualityCheckUseCase{
		incidentRepo: incidentRepo,
		workOrders:   workOrders,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *PassQualityCheckUseCase) Execute(ctx context.Context, cmd PassQualityCheckCommand) (*PassQualityCheckResult, error) {
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

		if err := inc.PassQualityCheck(cmd.Notes, cmd.QAVerified, cmd.AirworthinessCertified, cmd.SchedulePreventive); err != nil {
			return err
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ActorID, "quality_check_passed", "Quality check passed, aircraft handed over", true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}

		if inc.Status() == vo.StatusClosed {
			if err := uc.workOrders.CompleteForIncident(txCtx, inc.ID(), inc.ActualCost()); err != nil {
				return err
			}
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to pass quality check", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	if inc.Status() == vo.StatusClosed {
		uc.notifier.NotifyIncidentClosed(inc)
	}
	uc.logger.Infow("quality check passed", "incident_id", inc.ID(), "status", inc.Status())

	return &PassQualityCheckResult{IncidentID: inc.ID(), Status: inc.Status().String()}, nil
}
