package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
)

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLogRepository records every outbound notification attempt.
type EmailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

func (r *EmailLogRepository) Record(ctx context.Context, recipient, subject, templateType, status, errorDetail string) error {
	model := &models.EmailLogModel{
		Recipient:    recipient,
		Subject:      subject,
		TemplateType: templateType,
		Status:       status,
		ErrorDetail:  errorDetail,
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to record email log: %w", err)
	}
	return nil
}

func (r *EmailLogRepository) List(ctx context.Context, status string, offset, limit int) ([]models.EmailLogModel, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.EmailLogModel{})

	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count email logs: %w", err)
	}

	var rows []models.EmailLogModel
	if err := tx.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list email logs: %w", err)
	}

	return rows, total, nil
}
