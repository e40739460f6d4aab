package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/workorder"
	"skywrench/internal/shared/logger"
)

// Service is the work order side of the incident workflow. Diagnosis
// opens the order, the approval gate records its decisions against it
// and closing the incident completes it.
type Service struct {
	repo      workorder.Repository
	numberGen workorder.NumberGenerator
	logger    logger.Interface
}

var _ incidentuc.WorkOrderService = (*Service)(nil)

func NewService(repo workorder.Repository, numberGen workorder.NumberGenerator, logger logger.Interface) *Service {
	return &Service{repo: repo, numberGen: numberGen, logger: logger}
}

func (s *Service) OpenForIncident(ctx context.Context, incidentID uint, woType string, description string, assigneeID *uint, estimatedCost decimal.Decimal) (uint, error) {
	wo, err := workorder.NewWorkOrder(incidentID, workorder.Type(woType), description, assigneeID, estimatedCost)
	if err != nil {
		return 0, err
	}

	number, err := s.numberGen.Next(ctx)
	if err != nil {
		return 0, err
	}
	if err := wo.SetNumber(number); err != nil {
		return 0, err
	}

	if err := s.repo.Save(ctx, wo); err != nil {
		s.logger.Errorw("failed to save work order", "incident_id", incidentID, "error", err)
		return 0, err
	}

	s.logger.Infow("work order opened", "work_order_id", wo.ID(), "number", wo.Number(), "incident_id", incidentID)
	return wo.ID(), nil
}

func (s *Service) RecordApproval(ctx context.Context, incidentID, approverID uint, approved bool, comment string) error {
	wo, err := s.repo.FindByIncidentID(ctx, incidentID)
	if err != nil {
		return err
	}

	decision := workorder.DecisionApproved
	if !approved {
		decision = workorder.DecisionRejected
	}
	approval, err := workorder.NewApproval(wo.ID(), approverID, decision, comment)
	if err != nil {
		return err
	}
	if err := s.repo.SaveApproval(ctx, approval); err != nil {
		return err
	}

	if approved {
		if err := wo.Start(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, wo); err != nil {
			return err
		}
	}

	s.logger.Infow("work order approval recorded",
		"work_order_id", wo.ID(), "decision", decision, "approver_id", approverID)
	return nil
}

func (s *Service) CompleteForIncident(ctx context.Context, incidentID uint, actualCost decimal.Decimal) error {
	wo, err := s.repo.FindByIncidentID(ctx, incidentID)
	if err != nil {
		return err
	}
	if err := wo.Complete(actualCost); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, wo); err != nil {
		return err
	}
	s.logger.Infow("work order completed", "work_order_id", wo.ID(), "incident_id", incidentID)
	return nil
}
