package usecases

import (
	"context"

	"skywrench/internal/domain/integration"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type ListSyncRunsQuery struct {
	ConnectorName string
	Pagination    utils.Pagination
}

type ListSyncRunsResult struct {
	Runs  []SyncRunResult
	Total int64
}

type ListSyncRunsUseCase struct {
	runRepo integration.Repository
	logger  logger.Interface
}

func NewListSyncRunsUseCase(runRepo integration.Repository, logger logger.Interface) *ListSyncRunsUseCase {
	return &ListSyncRunsUseCase{runRepo: runRepo, logger: logger}
}

func (uc *ListSyncRunsUseCase) Execute(ctx context.Context, q ListSyncRunsQuery) (*ListSyncRunsResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	runs, total, err := uc.runRepo.ListRuns(ctx, q.ConnectorName, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list sync runs", "error", err)
		return nil, err
	}

	out := make([]SyncRunResult, 0, len(runs))
	for _, run := range runs {
		out = append(out, *runToResult(run))
	}
	return &ListSyncRunsResult{Runs: out, Total: total}, nil
}
