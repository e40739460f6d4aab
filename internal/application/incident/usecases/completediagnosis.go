package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type CompleteDiagnosisCommand struct {
	IncidentID    uint
	ActorID       uint
	Notes         string
	WorkOrderType string
	EstimatedCost decimal.Decimal
	Parts         []PartLine
}

type CompleteDiagnosisResult struct {
	IncidentID       uint
	Status           string
	WorkOrderID      uint
	RequiresApproval bool
	PartsCost        decimal.Decimal
}

// CompleteDiagnosisUseCase records the diagnosis findings, deducts any
// parts used during inspection, opens the work order and advances the
// incident. The approval gate triggers when the estimate exceeds the
// configured threshold or the service is out of warranty.
type CompleteDiagnosisUseCase struct {
	incidentRepo      incident.Repository
	workOrders        WorkOrderService
	parts             PartsConsumer
	txManager         Transactor
	approvalThreshold decimal.Decimal
	logger            logger.Interface
}

func NewCompleteDiagnosisUseCase(
	incidentRepo incident.Repository,
	workOrders WorkOrderService,
	parts PartsConsumer,
	txManager Transactor,
	approvalThreshold decimal.Decimal,
	logger logger.Interface,
) *CompleteDiagnosisUseCase {
	return &CompleteDiagnosisUseCase{
		incidentRepo:      incidentRepo,
		workOrders:        workOrders,
		parts:             parts,
		txManager:         txManager,
		approvalThreshold: approvalThreshold,
		logger:            logger,
	}
}

func (uc *CompleteDiagnosisUseCase) Execute(ctx context.Context, cmd CompleteDiagnosisCommand) (*CompleteDiagnosisResult, error) {
	if cmd.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}
	if !incident.WorkOrderType(cmd.WorkOrderType).IsValid() {
		return nil, errors.NewValidationError("invalid work order type")
	}

	var (
		inc         *incident.Incident
		workOrderID uint
		partsCost   = decimal.Zero
		approval    bool
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByID(txCtx, cmd.IncidentID)
		if err != nil {
			return err
		}

		approval = cmd.EstimatedCost.GreaterThan(uc.approvalThreshold) || !inc.UnderWarranty()
		if err := inc.CompleteDiagnosis(cmd.Notes, incident.WorkOrderType(cmd.WorkOrderType), cmd.EstimatedCost, approval); err != nil {
			return err
		}

		if len(cmd.Parts) > 0 {
			partsCost, err = uc.parts.ConsumeForIncident(txCtx, inc.ID(), cmd.Parts, &cmd.ActorID)
			if err != nil {
				return err
			}
		}

		workOrderID, err = uc.workOrders.OpenForIncident(txCtx, inc.ID(), cmd.WorkOrderType, cmd.Notes, inc.TechnicianID(), cmd.EstimatedCost)
		if err != nil {
			return err
		}

		act, err := incident.NewActivity(inc.ID(), &cmd.ActorID, "diagnosis_completed", "Diagnosis completed, estimate "+cmd.EstimatedCost.StringFixed(2), true)
		if err != nil {
			return err
		}
		if err := uc.incidentRepo.AppendActivity(txCtx, act); err != nil {
			return err
		}
		return uc.incidentRepo.Update(txCtx, inc)
	})
	if err != nil {
		uc.logger.Errorw("failed to complete diagnosis", "incident_id", cmd.IncidentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("diagnosis completed",
		"incident_id", inc.ID(),
		"work_order_id", workOrderID,
		"requires_approval", approval,
	)

	return &CompleteDiagnosisResult{
		IncidentID:       inc.ID(),
		Status:           inc.Status().String(),
		WorkOrderID:      workOrderID,
		RequiresApproval: approval,
		PartsCost:        partsCost,
	}, nil
}
