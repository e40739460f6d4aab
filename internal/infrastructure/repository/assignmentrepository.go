package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/assignment"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type AssignmentRuleRepository struct {
	db     *gorm.DB
	mapper mappers.AssignmentMapper
}

func NewAssignmentRuleRepository(db *gorm.DB) *AssignmentRuleRepository {
	return &AssignmentRuleRepository{
		db:     db,
		mapper: mappers.NewAssignmentMapper(),
	}
}

func (r *AssignmentRuleRepository) Save(ctx context.Context, rule *assignment.Rule) error {
	model := r.mapper.RuleToModel(rule)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save assignment rule: %w", err)
	}

	return rule.SetID(model.ID)
}

func (r *AssignmentRuleRepository) Update(ctx context.Context, rule *assignment.Rule) error {
	model := r.mapper.RuleToModel(rule)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AssignmentRuleModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update assignment rule: %w", result.Error)
	}

	return nil
}

func (r *AssignmentRuleRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.AssignmentRuleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete assignment rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("assignment rule not found")
	}
	return nil
}

func (r *AssignmentRuleRepository) FindByID(ctx context.Context, id uint) (*assignment.Rule, error) {
	var model models.AssignmentRuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("assignment rule not found")
		}
		return nil, fmt.Errorf("failed to find assignment rule: %w", err)
	}

	return r.mapper.RuleToDomain(&model), nil
}

func (r *AssignmentRuleRepository) ListActive(ctx context.Context) ([]*assignment.Rule, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.AssignmentRuleModel
	if err := tx.
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active assignment rules: %w", err)
	}

	rules := make([]*assignment.Rule, 0, len(rows))
	for i := range rows {
		rules = append(rules, r.mapper.RuleToDomain(&rows[i]))
	}
	return rules, nil
}

func (r *AssignmentRuleRepository) List(ctx context.Context, offset, limit int) ([]*assignment.Rule, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.AssignmentRuleModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignment rules: %w", err)
	}

	var rows []models.AssignmentRuleModel
	if err := tx.
		Order("priority ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assignment rules: %w", err)
	}

	rules := make([]*assignment.Rule, 0, len(rows))
	for i := range rows {
		rules = append(rules, r.mapper.RuleToDomain(&rows[i]))
	}

	return rules, total, nil
}

type AssignmentGroupRepository struct {
	db     *gorm.DB
	mapper mappers.AssignmentMapper
}

func NewAssignmentGroupRepository(db *gorm.DB) *AssignmentGroupRepository {
	return &AssignmentGroupRepository{
		db:     db,
		mapper: mappers.NewAssignmentMapper(),
	}
}

func (r *AssignmentGroupRepository) Save(ctx context.Context, group *assignment.Group) error {
	model := r.mapper.GroupToModel(group)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save assignment group: %w", err)
	}

	return group.SetID(model.ID)
}

func (r *AssignmentGroupRepository) Update(ctx context.Context, group *assignment.Group) error {
	model := r.mapper.GroupToModel(group)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") keeps a reset round robin cursor from being skipped as
	// a zero value.
	result := tx.
		Model(&models.AssignmentGroupModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update assignment group: %w", result.Error)
	}

	return nil
}

func (r *AssignmentGroupRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.AssignmentGroupModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete assignment group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("assignment group not found")
	}
	return nil
}

func (r *AssignmentGroupRepository) FindByID(ctx context.Context, id uint) (*assignment.Group, error) {
	var model models.AssignmentGroupModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("assignment group not found")
		}
		return nil, fmt.Errorf("failed to find assignment group: %w", err)
	}

	return r.mapper.GroupToDomain(&model)
}

func (r *AssignmentGroupRepository) List(ctx context.Context, offset, limit int) ([]*assignment.Group, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.AssignmentGroupModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignment groups: %w", err)
	}

	var rows []models.AssignmentGroupModel
	if err := tx.
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assignment groups: %w", err)
	}

	groups := make([]*assignment.Group, 0, len(rows))
	for i := range rows {
		group, err := r.mapper.GroupToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}
