package usecases

import (
	"context"

	"skywrench/internal/domain/assignment"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type ListRulesQuery struct {
	Pagination utils.Pagination
}

type ListRulesResult struct {
	Rules []RuleResult
	Total int64
}

type ListRulesUseCase struct {
	ruleRepo assignment.RuleRepository
	logger   logger.Interface
}

func NewListRulesUseCase(ruleRepo assignment.RuleRepository, logger logger.Interface) *ListRulesUseCase {
	return &ListRulesUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *ListRulesUseCase) Execute(ctx context.Context, q ListRulesQuery) (*ListRulesResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	rules, total, err := uc.ruleRepo.List(ctx, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list assignment rules", "error", err)
		return nil, err
	}

	out := make([]RuleResult, 0, len(rules))
	for _, rule := range rules {
		out = append(out, *ruleToResult(rule))
	}
	return &ListRulesResult{Rules: out, Total: total}, nil
}
