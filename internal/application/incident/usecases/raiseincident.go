package usecases

import (
	"context"
	"time"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type RaiseIncidentCommand struct {
	Title         string
	Description   string
	Category      string
	Priority      string
	SLACategory   string
	Department    string
	UAVModel      string
	UAVSerial     string
	UnderWarranty bool
	CustomerID    uint
}

type RaiseIncidentResult struct {
	IncidentID   uint
	Number       string
	Status       string
	TechnicianID *uint
	GroupID      *uint
	RaisedAt     time.Time
}

// RaiseIncidentUseCase creates an incident, assigns its number, runs the
// assignment rules and writes the first activity row, all in one
// transaction.
type RaiseIncidentUseCase struct {
	incidentRepo incident.Repository
	numberGen    incident.NumberGenerator
	resolver     AssignmentResolver
	txManager    Transactor
	notifier     Notifier
	logger       logger.Interface
}

func NewRaiseIncidentUseCase(
	incidentRepo incident.Repository,
	numberGen incident.NumberGenerator,
	resolver AssignmentResolver,
	txManager Transactor,
	notifier Notifier,
	logger logger.Interface,
) *RaiseIncidentUseCase {
	return &RaiseIncidentUseCase{
		incidentRepo: incidentRepo,
		numberGen:    numberGen,
		resolver:     resolver,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *RaiseIncidentUseCase) Execute(ctx context.Context, cmd RaiseIncidentCommand) (*RaiseIncidentResult, error) {
	uc.logger.Infow("executing raise incident use case", "title", cmd.Title, "customer_id", cmd.CustomerID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid raise incident command", "error", err)
		return nil, err
	}

	sla := cmd.SLACategory
	if sla == "" {
		sla = string(vo.SLAStandard)
	}

	inc, err := incident.NewIncident(incident.NewIncidentParams{
		Title:         cmd.Title,
		Description:   cmd.Description,
		Category:      vo.ServiceCategory(cmd.Category),
		Priority:      vo.Priority(cmd.Priority),
		SLACategory:   vo.SLACategory(sla),
		Department:    cmd.Department,
		UAVModel:      cmd.UAVModel,
		UAVSerial:     cmd.UAVSerial,
		UnderWarranty: cmd.UnderWarranty,
		CustomerID:    cmd.CustomerID,
	})
	if err != nil {
		return nil, err
	}

	number, err := uc.numberGen.Next(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate incident number", "error", err)
		return nil, err
	}
	if err := inc.SetNumber(number); err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.incidentRepo.Save(txCtx, inc); err != nil {
			return err
		}

		if err := uc.appendActivity(txCtx, inc.ID(), nil, "incident_raised", "Incident "+inc.Number()+" raised", true); err != nil {
			return err
		}

		assigned, err := uc.resolver.Resolve(txCtx, inc)
		if err != nil {
			return err
		}
		if assigned == nil {
			return uc.incidentRepo.Update(txCtx, inc)
		}

		if assigned.TechnicianID != nil {
			if err := inc.AssignTechnician(*assigned.TechnicianID, assigned.GroupID); err != nil {
				return err
			}
		} else if assigned.GroupID != nil {
			if err := inc.AssignGroup(*assigned.GroupID); err != nil {
				return err
			}
		}
		if err := uc.appendActivity(txCtx, inc.ID(), nil, "auto_assigned", "Routed by rule "+assigned.RuleName, false); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to raise incident", "error", err)
		return nil, err
	}

	uc.notifier.NotifyIncidentRaised(inc)
	if inc.TechnicianID() != nil {
		uc.notifier.NotifyTechnicianAssigned(inc, *inc.TechnicianID())
	}

	uc.logger.Infow("incident raised", "incident_id", inc.ID(), "number", inc.Number())

	return &RaiseIncidentResult{
		IncidentID:   inc.ID(),
		Number:       inc.Number(),
		Status:       inc.Status().String(),
		TechnicianID: inc.TechnicianID(),
		GroupID:      inc.GroupID(),
		RaisedAt:     inc.RaisedAt(),
	}, nil
}

func (uc *RaiseIncidentUseCase) appendActivity(ctx context.Context, incidentID uint, actorID *uint, action, detail string, customerVisible bool) error {
	act, err := incident.NewActivity(incidentID, actorID, action, detail, customerVisible)
	if err != nil {
		return err
	}
	return uc.incidentRepo.AppendActivity(ctx, act)
}

func (uc *RaiseIncidentUseCase) validateCommand(cmd RaiseIncidentCommand) error {
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}
	if len(cmd.Title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	if len(cmd.Description) > 5000 {
		return errors.NewValidationError("description exceeds maximum length of 5000 characters")
	}
	if cmd.CustomerID == 0 {
		return errors.NewValidationError("customer ID is required")
	}
	if !vo.ServiceCategory(cmd.Category).IsValid() {
		return errors.NewValidationError("invalid category")
	}
	if !vo.Priority(cmd.Priority).IsValid() {
		return errors.NewValidationError("invalid priority")
	}
	if cmd.SLACategory != "" && !vo.SLACategory(cmd.SLACategory).IsValid() {
		return errors.NewValidationError("invalid SLA category")
	}
	return nil
}
