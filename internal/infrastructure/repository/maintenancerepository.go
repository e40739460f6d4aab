package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"skywrench/internal/domain/maintenance"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type MaintenanceRepository struct {
	db     *gorm.DB
	mapper mappers.MaintenanceMapper
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{
		db:     db,
		mapper: mappers.NewMaintenanceMapper(),
	}
}

func (r *MaintenanceRepository) Save(ctx context.Context, s *maintenance.Schedule) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save maintenance schedule: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *MaintenanceRepository) Update(ctx context.Context, s *maintenance.Schedule) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so clearing the notification flag after maintenance is
	// performed actually writes the false value.
	result := tx.
		Model(&models.MaintenanceScheduleModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update maintenance schedule: %w", result.Error)
	}

	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.MaintenanceScheduleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete maintenance schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("maintenance schedule not found")
	}
	return nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id uint) (*maintenance.Schedule, error) {
	var model models.MaintenanceScheduleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("maintenance schedule not found")
		}
		return nil, fmt.Errorf("failed to find maintenance schedule: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *MaintenanceRepository) List(ctx context.Context, customerID uint, activeOnly bool, offset, limit int) ([]*maintenance.Schedule, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.MaintenanceScheduleModel{})

	if customerID != 0 {
		tx = tx.Where("customer_id = ?", customerID)
	}
	if activeOnly {
		tx = tx.Where("active = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count maintenance schedules: %w", err)
	}

	var rows []models.MaintenanceScheduleModel
	if err := tx.
		Order("next_due_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance schedules: %w", err)
	}

	schedules := make([]*maintenance.Schedule, 0, len(rows))
	for i := range rows {
		schedules = append(schedules, r.mapper.ToDomain(&rows[i]))
	}

	return schedules, total, nil
}

func (r *MaintenanceRepository) ListDue(ctx context.Context, at time.Time) ([]*maintenance.Schedule, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.MaintenanceScheduleModel
	if err := tx.
		Where("active = ? AND next_due_at IS NOT NULL AND next_due_at <= ?", true, at.UnixMilli()).
		Order("next_due_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list due maintenance schedules: %w", err)
	}

	schedules := make([]*maintenance.Schedule, 0, len(rows))
	for i := range rows {
		schedules = append(schedules, r.mapper.ToDomain(&rows[i]))
	}
	return schedules, nil
}
