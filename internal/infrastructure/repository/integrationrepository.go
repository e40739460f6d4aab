package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/integration"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
)

type SyncRunRepository struct {
	db     *gorm.DB
	mapper mappers.IntegrationMapper
}

func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{
		db:     db,
		mapper: mappers.NewIntegrationMapper(),
	}
}

func (r *SyncRunRepository) SaveRun(ctx context.Context, run *integration.SyncRun) error {
	model := r.mapper.RunToModel(run)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save sync run: %w", err)
	}

	return run.SetID(model.ID)
}

func (r *SyncRunRepository) ListRuns(ctx context.Context, connectorName string, offset, limit int) ([]*integration.SyncRun, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.SyncRunModel{})

	if connectorName != "" {
		tx = tx.Where("connector_name = ?", connectorName)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sync runs: %w", err)
	}

	var rows []models.SyncRunModel
	if err := tx.
		Order("finished_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sync runs: %w", err)
	}

	runs := make([]*integration.SyncRun, 0, len(rows))
	for i := range rows {
		runs = append(runs, r.mapper.RunToDomain(&rows[i]))
	}

	return runs, total, nil
}
