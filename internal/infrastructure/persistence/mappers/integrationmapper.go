package mappers

import (
	"skywrench/internal/domain/integration"
	"skywrench/internal/infrastructure/persistence/models"
)

type IntegrationMapper interface {
	RunToModel(run *integration.SyncRun) *models.SyncRunModel
	RunToDomain(model *models.SyncRunModel) *integration.SyncRun
}

type IntegrationMapperImpl struct{}

func NewIntegrationMapper() IntegrationMapper {
	return &IntegrationMapperImpl{}
}

func (m *IntegrationMapperImpl) RunToModel(run *integration.SyncRun) *models.SyncRunModel {
	return &models.SyncRunModel{
		ID:               run.ID(),
		ConnectorName:    run.ConnectorName(),
		EntityType:       run.EntityType(),
		Success:          run.Success(),
		RecordsProcessed: run.RecordsProcessed(),
		RecordsSuccess:   run.RecordsSuccess(),
		RecordsError:     run.RecordsError(),
		ErrorDetail:      run.ErrorDetail(),
		StartedAt:        run.StartedAt().UnixMilli(),
		FinishedAt:       run.FinishedAt().UnixMilli(),
	}
}

func (m *IntegrationMapperImpl) RunToDomain(model *models.SyncRunModel) *integration.SyncRun {
	return integration.ReconstructSyncRun(
		model.ID,
		model.ConnectorName,
		model.EntityType,
		model.Success,
		model.RecordsProcessed,
		model.RecordsSuccess,
		model.RecordsError,
		model.ErrorDetail,
		millisToTime(model.StartedAt),
		millisToTime(model.FinishedAt),
	)
}
