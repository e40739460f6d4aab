package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type AssignTechnicianCommand struct {
	IncidentID   uint
	TechnicianID uint
	GroupID      *uint
	ActorID      uint
}

type AssignTechnicianResult struct {
	IncidentID   uint
	Status       string
	TechnicianID uint
}

// AssignTechnicianUseCase puts a technician on an incident. A freshly
// raised incident moves into the diagnosis stage on first assignment.
type AssignTechnicianUseCase struct {
	incidentRepo incident.Repository
	txManager    Transactor
	notifier     Notifier
	logger       logger.Interface
}

func NewAssignTechnicianUseCase(
	incidentRepo incident.Repository,
	txManager Transactor,
	notifier Notifier,
	logger logger.Interface,
) *AssignTechnicianUseCase {
	return &AssignTechnicianUseCase{
		incidentRepo: incidentRepo,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *AssignTechnicianUseCase) Execute(ctx context.Context, cmd AssignTechnicianCommand) (*AssignTechnicianResult, error) {
	if cmd.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}
	if cmd.TechnicianID == 0 {
		return nil, errors.NewValidationError("technician ID is required")
	}

	var inc *incident.Incident
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByID(txCtx, cmd.IncidentID)
		if err != nil {
			return err
		}

		if err := inc.AssignTechnician(cmd.TechnicianID, cmd.GroupID); err != nil {
			return err
		}
		if inc.Status() == vo.StatusIncidentRaised {
			if err := inc.StartDiagnosis(); err != nil {
				return err
			}
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ActorID, "technician_assigned", "Technician assigned", true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to assign technician", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.notifier.NotifyTechnicianAssigned(inc, cmd.TechnicianID)
	uc.logger.Infow("technician assigned", "incident_id", inc.ID(), "technician_id", cmd.TechnicianID)

	return &AssignTechnicianResult{
		IncidentID:   inc.ID(),
		Status:       inc.Status().String(),
		TechnicianID: cmd.TechnicianID,
	}, nil
}
