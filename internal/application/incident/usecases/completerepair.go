package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type CompleteRepairCommand struct {
	IncidentID uint
	ActorID    uint
	Notes      string
	LaborHours decimal.Decimal
	ActualCost decimal.Decimal
	Parts      []PartLine
}

type CompleteRepairResult struct {
	IncidentID uint
	Status     string
	PartsCost  decimal.Decimal
	TotalCost  decimal.Decimal
}

// CompleteRepairUseCase finishes the repair stage: deducts the parts
// consumed, records hours and cost, and moves the incident to quality
// check. The SLA clock stops here.
type CompleteRepairUseCase struct {
	incidentRepo incident.Repository
	parts        PartsConsumer
	txManager    Transactor
	logger       logger.Interface
}

func NewCompleteRepairUseCase(
	incidentRepo incident.Repository,
	parts PartsConsumer,
	txManager Transactor,
	logger logger.Interface,
) *CompleteRepairUseCase {
	return &CompleteRepairUseCase{
		incidentRepo: incidentRepo,
		parts:        parts,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *CompleteRepairUseCase) Execute(ctx context.Context, cmd CompleteRepairCommand) (*CompleteRepairResult, error) {
	if cmd.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}

	var (
		inc       *incident.Incident
		partsCost = decimal.Zero
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByID(txCtx, cmd.IncidentID)
		if err != nil {
			return err
		}

		if len(cmd.Parts) > 0 {
			partsCost, err = uc.parts.ConsumeForIncident(txCtx, inc.ID(), cmd.Parts, &cmd.ActorID)
			if err != nil {
				return err
			}
		}

		total := cmd.ActualCost.Add(partsCost)
		if err := inc.CompleteRepair(cmd.Notes, cmd.LaborHours, total); err != nil {
			return err
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ActorID, "repair_completed", "Repair completed, cost "+total.StringFixed(2), true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to complete repair", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("repair completed", "incident_id", inc.ID(), "total_cost", inc.ActualCost())

	return &CompleteRepairResult{
		IncidentID: inc.ID(),
		Status:     inc.Status().String(),
		PartsCost:  partsCost,
		TotalCost:  inc.ActualCost(),
	}, nil
}
