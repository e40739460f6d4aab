package usecases

import (
	"context"
	"sort"
	"time"

	"skywrench/internal/domain/integration"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

// Registry holds the configured connectors keyed by name.
type Registry struct {
	connectors map[string]integration.Connector
}

func NewRegistry(connectors ...integration.Connector) *Registry {
	m := make(map[string]integration.Connector, len(connectors))
	for _, c := range connectors {
		m[c.Name()] = c
	}
	return &Registry{connectors: m}
}

func (r *Registry) Get(name string) (integration.Connector, error) {
	c, ok := r.connectors[name]
	if !ok {
		return nil, errors.NewNotFoundError("unknown connector: " + name)
	}
	return c, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type RunSyncCommand struct {
	ConnectorName string
	EntityType    string
	ForceUpdate   bool
}

type SyncRunResult struct {
	RunID            uint
	ConnectorName    string
	EntityType       string
	Success          bool
	RecordsProcessed int
	RecordsSuccess   int
	RecordsError     int
	ErrorDetail      string
	StartedAt        time.Time
	FinishedAt       time.Time
}

// RunSyncUseCase executes a connector sync and records the outcome. A
// failed sync is not an error of the use case itself; the run row carries
// the failure so operators can inspect it.
type RunSyncUseCase struct {
	registry *Registry
	runRepo  integration.Repository
	logger   logger.Interface
}

func NewRunSyncUseCase(registry *Registry, runRepo integration.Repository, logger logger.Interface) *RunSyncUseCase {
	return &RunSyncUseCase{registry: registry, runRepo: runRepo, logger: logger}
}

func (uc *RunSyncUseCase) Execute(ctx context.Context, cmd RunSyncCommand) (*SyncRunResult, error) {
	if cmd.ConnectorName == "" {
		return nil, errors.NewValidationError("connector name is required")
	}
	connector, err := uc.registry.Get(cmd.ConnectorName)
	if err != nil {
		return nil, err
	}

	startedAt := biztime.NowUTC()
	if err := connector.TestConnection(ctx); err != nil {
		uc.logger.Errorw("connector unreachable", "connector", cmd.ConnectorName, "error", err)
		return uc.record(ctx, cmd, &integration.SyncResult{Errors: []string{"connection failed: " + err.Error()}}, startedAt)
	}

	result, err := connector.SyncData(ctx, cmd.EntityType, cmd.ForceUpdate)
	if err != nil {
		uc.logger.Errorw("sync failed", "connector", cmd.ConnectorName, "entity_type", cmd.EntityType, "error", err)
		return uc.record(ctx, cmd, &integration.SyncResult{Errors: []string{err.Error()}}, startedAt)
	}

	uc.logger.Infow("sync finished",
		"connector", cmd.ConnectorName,
		"entity_type", cmd.EntityType,
		"success", result.Success,
		"processed", result.RecordsProcessed,
		"errors", result.RecordsError,
	)
	return uc.record(ctx, cmd, result, startedAt)
}

func (uc *RunSyncUseCase) record(ctx context.Context, cmd RunSyncCommand, result *integration.SyncResult, startedAt time.Time) (*SyncRunResult, error) {
	run, err := integration.NewSyncRun(cmd.ConnectorName, cmd.EntityType, result, startedAt)
	if err != nil {
		return nil, err
	}
	if err := uc.runRepo.SaveRun(ctx, run); err != nil {
		uc.logger.Errorw("failed to save sync run", "connector", cmd.ConnectorName, "error", err)
		return nil, err
	}
	return runToResult(run), nil
}

type TestConnectionUseCase struct {
	registry *Registry
	logger   logger.Interface
}

func NewTestConnectionUseCase(registry *Registry, logger logger.Interface) *TestConnectionUseCase {
	return &TestConnectionUseCase{registry: registry, logger: logger}
}

func (uc *TestConnectionUseCase) Execute(ctx context.Context, connectorName string) error {
	connector, err := uc.registry.Get(connectorName)
	if err != nil {
		return err
	}
	if err := connector.TestConnection(ctx); err != nil {
		return errors.NewExternalServiceError("connection test failed: " + err.Error())
	}
	if err := connector.Authenticate(ctx); err != nil {
		return errors.NewExternalServiceError("authentication failed: " + err.Error())
	}
	return nil
}

func runToResult(run *integration.SyncRun) *SyncRunResult {
	return &SyncRunResult{
		RunID:            run.ID(),
		ConnectorName:    run.ConnectorName(),
		EntityType:       run.EntityType(),
		Success:          run.Success(),
		RecordsProcessed: run.RecordsProcessed(),
		RecordsSuccess:   run.RecordsSuccess(),
		RecordsError:     run.RecordsError(),
		ErrorDetail:      run.ErrorDetail(),
		StartedAt:        run.StartedAt(),
		FinishedAt:       run.FinishedAt(),
	}
}
