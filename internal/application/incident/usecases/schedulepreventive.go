package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type SchedulePreventiveCommand struct {
	IncidentID          uint
	ActorID             uint
	IntervalType        string
	FlightHoursInterval float64
	DayInterval         int
	Description         string
}

type SchedulePreventiveResult struct {
	IncidentID uint
	ScheduleID uint
	Status     string
}

// SchedulePreventiveUseCase creates the follow-up maintenance plan for an
// incident in the preventive maintenance stage.
type SchedulePreventiveUseCase struct {
	incidentRepo incident.Repository
	maintenance  MaintenanceScheduler
	txManager    Transactor
	logger       logger.Interface
}

func NewSchedulePreventiveUseCase(
	incidentRepo incident.Repository,
	maintenance MaintenanceScheduler,
	txManager Transactor,
	logger logger.Interface,
) *SchedulePreventiveUseCase {
	return &SchedulePreventiveUseCase{
		incidentRepo: incidentRepo,
		maintenance:  maintenance,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *SchedulePreventiveUseCase) Execute(ctx context.Context, cmd SchedulePreventiveCommand) (*SchedulePreventiveResult, error) {
	if cmd.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}

	var (
		inc        *incident.Incident
		scheduleID uint
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByID(txCtx, cmd.IncidentID)
		if err != nil {
			return err
		}

		scheduleID, err = uc.maintenance.CreateForIncident(txCtx, inc, cmd.IntervalType, cmd.FlightHoursInterval, cmd.DayInterval, cmd.Description)
		if err != nil {
			return err
		}
		if err := inc.MarkPreventiveScheduled(); err != nil {
			return err
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ActorID, "preventive_scheduled", "Preventive maintenance plan created", true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to schedule preventive maintenance", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("preventive maintenance scheduled", "incident_id", inc.ID(), "schedule_id", scheduleID)

	return &SchedulePreventiveResult{
		IncidentID: inc.ID(),
		ScheduleID: scheduleID,
		Status:     inc.Status().String(),
	}, nil
}
