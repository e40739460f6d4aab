package usecases

import (
	"context"

	"skywrench/internal/domain/assignment"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/logger"
)

type CreateRuleCommand struct {
	Name                string
	Description         string
	Priority            int
	ConditionCategory   string
	ConditionPriority   string
	ConditionDepartment string
	Action              string
	TargetUserID        *uint
	GroupID             *uint
}

type RuleResult struct {
	ID                  uint
	Name                string
	Description         string
	Priority            int
	Active              bool
	ConditionCategory   string
	ConditionPriority   string
	ConditionDepartment string
	Action              string
	TargetUserID        *uint
	GroupID             *uint
	TimesTriggered      int
}

type CreateRuleUseCase struct {
	ruleRepo assignment.RuleRepository
	logger   logger.Interface
}

func NewCreateRuleUseCase(ruleRepo assignment.RuleRepository, logger logger.Interface) *CreateRuleUseCase {
	return &CreateRuleUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *CreateRuleUseCase) Execute(ctx context.Context, cmd CreateRuleCommand) (*RuleResult, error) {
	rule, err := assignment.NewRule(
		cmd.Name,
		cmd.Description,
		cmd.Priority,
		assignment.Conditions{
			Category:   vo.ServiceCategory(cmd.ConditionCategory),
			Priority:   vo.Priority(cmd.ConditionPriority),
			Department: cmd.ConditionDepartment,
		},
		assignment.ActionType(cmd.Action),
		cmd.TargetUserID,
		cmd.GroupID,
	)
	if err != nil {
		uc.logger.Errorw("invalid assignment rule", "name", cmd.Name, "error", err)
		return nil, err
	}

	if err := uc.ruleRepo.Save(ctx, rule); err != nil {
		uc.logger.Errorw("failed to save assignment rule", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("assignment rule created", "rule_id", rule.ID(), "name", rule.Name())
	return ruleToResult(rule), nil
}

func ruleToResult(rule *assignment.Rule) *RuleResult {
	cond := rule.Conditions()
	return &RuleResult{
		ID:                  rule.ID(),
		Name:                rule.Name(),
		Description:         rule.Description(),
		Priority:            rule.Priority(),
		Active:              rule.IsActive(),
		ConditionCategory:   string(cond.Category),
		ConditionPriority:   string(cond.Priority),
		ConditionDepartment: cond.Department,
		Action:              string(rule.Action()),
		TargetUserID:        rule.TargetUserID(),
		GroupID:             rule.GroupID(),
		TimesTriggered:      rule.TimesTriggered(),
	}
}
