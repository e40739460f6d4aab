package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/incident"
	"skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

// allowedIncidentOrderByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks.
var allowedIncidentOrderByFields = map[string]bool{
	"id":            true,
	"number":        true,
	"title":         true,
	"status":        true,
	"priority":      true,
	"category":      true,
	"customer_id":   true,
	"technician_id": true,
	"raised_at":     true,
	"created_at":    true,
	"updated_at":    true,
}

type IncidentRepository struct {
	db     *gorm.DB
	mapper mappers.IncidentMapper
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{
		db:     db,
		mapper: mappers.NewIncidentMapper(),
	}
}

func (r *IncidentRepository) Save(ctx context.Context, inc *incident.Incident) error {
	model := r.mapper.ToModel(inc)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save incident: %w", err)
	}

	return inc.SetID(model.ID)
}

func (r *IncidentRepository) Update(ctx context.Context, inc *incident.Incident) error {
	model := r.mapper.ToModel(inc)
	tx := db.GetTxFromContext(ctx, r.db)

	// Optimistic lock: the version column guards concurrent stage
	// transitions on the same incident.
	result := tx.
		Model(&models.IncidentModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update incident: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("incident was modified concurrently")
	}

	return nil
}

func (r *IncidentRepository) FindByID(ctx context.Context, id uint) (*incident.Incident, error) {
	var model models.IncidentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("incident not found")
		}
		return nil, fmt.Errorf("failed to find incident: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IncidentRepository) FindByNumber(ctx context.Context, number string) (*incident.Incident, error) {
	var model models.IncidentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("incident not found")
		}
		return nil, fmt.Errorf("failed to find incident: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IncidentRepository) List(ctx context.Context, filter incident.ListFilter, offset, limit int, orderBy string) ([]*incident.Incident, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.IncidentModel{})

	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status.String())
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category.String())
	}
	if filter.Priority != "" {
		tx = tx.Where("priority = ?", filter.Priority.String())
	}
	if filter.CustomerID != 0 {
		tx = tx.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.TechnicianID != 0 {
		tx = tx.Where("technician_id = ?", filter.TechnicianID)
	}
	if filter.GroupID != 0 {
		tx = tx.Where("group_id = ?", filter.GroupID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("number LIKE ? OR title LIKE ? OR uav_serial LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count incidents: %w", err)
	}

	if orderBy == "" || !allowedIncidentOrderByFields[orderBy] {
		orderBy = "raised_at"
	}

	var rows []models.IncidentModel
	if err := tx.
		Order(orderBy + " DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list incidents: %w", err)
	}

	incidents := make([]*incident.Incident, 0, len(rows))
	for i := range rows {
		inc, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		incidents = append(incidents, inc)
	}

	return incidents, total, nil
}

func (r *IncidentRepository) CountByStatus(ctx context.Context) (map[valueobjects.WorkflowStatus]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Status string
		Count  int64
	}
	if err := tx.
		Model(&models.IncidentModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count incidents by status: %w", err)
	}

	counts := make(map[valueobjects.WorkflowStatus]int64, len(rows))
	for _, row := range rows {
		counts[valueobjects.WorkflowStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *IncidentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.IncidentModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check incident number: %w", err)
	}
	return count > 0, nil
}

func (r *IncidentRepository) AppendActivity(ctx context.Context, act *incident.Activity) error {
	model := r.mapper.ActivityToModel(act)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	return act.SetID(model.ID)
}

func (r *IncidentRepository) ListActivities(ctx context.Context, incidentID uint) ([]*incident.Activity, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.IncidentActivityModel
	if err := tx.
		Where("incident_id = ?", incidentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]*incident.Activity, 0, len(rows))
	for i := range rows {
		activities = append(activities, r.mapper.ActivityToDomain(&rows[i]))
	}
	return activities, nil
}
