package usecases

import (
	"context"

	"skywrench/internal/domain/assignment"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type DeleteRuleUseCase struct {
	ruleRepo assignment.RuleRepository
	logger   logger.Interface
}

func NewDeleteRuleUseCase(ruleRepo assignment.RuleRepository, logger logger.Interface) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *DeleteRuleUseCase) Execute(ctx context.Context, ruleID uint) error {
	if ruleID == 0 {
		return errors.NewValidationError("rule ID is required")
	}
	if _, err := uc.ruleRepo.FindByID(ctx, ruleID); err != nil {
		return err
	}
	if err := uc.ruleRepo.Delete(ctx, ruleID); err != nil {
		uc.logger.Errorw("failed to delete assignment rule", "rule_id", ruleID, "error", err)
		return err
	}
	uc.logger.Infow("assignment rule deleted", "rule_id", ruleID)
	return nil
}
