package usecases

import (
	"context"

	"skywrench/internal/domain/assignment"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type UpdateRuleCommand struct {
	RuleID              uint
	Name                string
	Description         string
	Priority            int
	ConditionCategory   string
	ConditionPriority   string
	ConditionDepartment string
	Active              *bool
}

type UpdateRuleUseCase struct {
	ruleRepo assignment.RuleRepository
	logger   logger.Interface
}

func NewUpdateRuleUseCase(ruleRepo assignment.RuleRepository, logger logger.Interface) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *UpdateRuleUseCase) Execute(ctx context.Context, cmd UpdateRuleCommand) (*RuleResult, error) {
	if cmd.RuleID == 0 {
		return nil, errors.NewValidationError("rule ID is required")
	}

	rule, err := uc.ruleRepo.FindByID(ctx, cmd.RuleID)
	if err != nil {
		return nil, err
	}

	err = rule.UpdateDetails(cmd.Name, cmd.Description, cmd.Priority, assignment.Conditions{
		Category:   vo.ServiceCategory(cmd.ConditionCategory),
		Priority:   vo.Priority(cmd.ConditionPriority),
		Department: cmd.ConditionDepartment,
	})
	if err != nil {
		return nil, err
	}

	if cmd.Active != nil {
		if *cmd.Active {
			rule.Activate()
		} else {
			rule.Deactivate()
		}
	}

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		uc.logger.Errorw("failed to update assignment rule", "rule_id", cmd.RuleID, "error", err)
		return nil, err
	}

	uc.logger.Infow("assignment rule updated", "rule_id", rule.ID())
	return ruleToResult(rule), nil
}
