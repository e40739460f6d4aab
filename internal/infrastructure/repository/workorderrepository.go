package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/workorder"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type WorkOrderRepository struct {
	db     *gorm.DB
	mapper mappers.WorkOrderMapper
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{
		db:     db,
		mapper: mappers.NewWorkOrderMapper(),
	}
}

func (r *WorkOrderRepository) Save(ctx context.Context, wo *workorder.WorkOrder) error {
	model := r.mapper.ToModel(wo)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save work order: %w", err)
	}

	return wo.SetID(model.ID)
}

func (r *WorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	model := r.mapper.ToModel(wo)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.WorkOrderModel{}).
		Where("id = ?", model.ID).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update work order: %w", result.Error)
	}

	return nil
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("work order not found")
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *WorkOrderRepository) FindByIncidentID(ctx context.Context, incidentID uint) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("incident_id = ?", incidentID).
		Order("id DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("work order not found")
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *WorkOrderRepository) List(ctx context.Context, status workorder.Status, offset, limit int) ([]*workorder.WorkOrder, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.WorkOrderModel{})

	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count work orders: %w", err)
	}

	var rows []models.WorkOrderModel
	if err := tx.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list work orders: %w", err)
	}

	orders := make([]*workorder.WorkOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, r.mapper.ToDomain(&rows[i]))
	}

	return orders, total, nil
}

func (r *WorkOrderRepository) SaveApproval(ctx context.Context, a *workorder.Approval) error {
	model := r.mapper.ApprovalToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save approval: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *WorkOrderRepository) ListApprovals(ctx context.Context, workOrderID uint) ([]*workorder.Approval, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.WorkOrderApprovalModel
	if err := tx.
		Where("work_order_id = ?", workOrderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}

	approvals := make([]*workorder.Approval, 0, len(rows))
	for i := range rows {
		approvals = append(approvals, r.mapper.ApprovalToDomain(&rows[i]))
	}
	return approvals, nil
}
