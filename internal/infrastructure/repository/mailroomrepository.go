package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/mailroom"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type InboundRuleRepository struct {
	db     *gorm.DB
	mapper mappers.MailroomMapper
}

func NewInboundRuleRepository(db *gorm.DB) *InboundRuleRepository {
	return &InboundRuleRepository{
		db:     db,
		mapper: mappers.NewMailroomMapper(),
	}
}

func (r *InboundRuleRepository) Save(ctx context.Context, rule *mailroom.InboundRule) error {
	model := r.mapper.RuleToModel(rule)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save inbound rule: %w", err)
	}

	return rule.SetID(model.ID)
}

func (r *InboundRuleRepository) Update(ctx context.Context, rule *mailroom.InboundRule) error {
	model := r.mapper.RuleToModel(rule)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") keeps a deactivated rule from being skipped as a zero value.
	result := tx.
		Model(&models.InboundRuleModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update inbound rule: %w", result.Error)
	}

	return nil
}

func (r *InboundRuleRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.InboundRuleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inbound rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("inbound rule not found")
	}
	return nil
}

func (r *InboundRuleRepository) FindByID(ctx context.Context, id uint) (*mailroom.InboundRule, error) {
	var model models.InboundRuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("inbound rule not found")
		}
		return nil, fmt.Errorf("failed to find inbound rule: %w", err)
	}

	return r.mapper.RuleToDomain(&model), nil
}

func (r *InboundRuleRepository) ListActive(ctx context.Context) ([]*mailroom.InboundRule, error) {
	var rows []models.InboundRuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active inbound rules: %w", err)
	}

	rules := make([]*mailroom.InboundRule, 0, len(rows))
	for i := range rows {
		rules = append(rules, r.mapper.RuleToDomain(&rows[i]))
	}

	return rules, nil
}

func (r *InboundRuleRepository) List(ctx context.Context, offset, limit int) ([]*mailroom.InboundRule, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.InboundRuleModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inbound rules: %w", err)
	}

	var rows []models.InboundRuleModel
	if err := tx.
		Order("priority ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list inbound rules: %w", err)
	}

	rules := make([]*mailroom.InboundRule, 0, len(rows))
	for i := range rows {
		rules = append(rules, r.mapper.RuleToDomain(&rows[i]))
	}

	return rules, total, nil
}

type ProcessedEmailRepository struct {
	db     *gorm.DB
	mapper mappers.MailroomMapper
}

func NewProcessedEmailRepository(db *gorm.DB) *ProcessedEmailRepository {
	return &ProcessedEmailRepository{
		db:     db,
		mapper: mappers.NewMailroomMapper(),
	}
}

func (r *ProcessedEmailRepository) Save(ctx context.Context, p *mailroom.ProcessedEmail) error {
	model := r.mapper.ProcessedToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save processed email: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *ProcessedEmailRepository) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ProcessedEmailModel{}).
		Where("message_id = ?", messageID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check processed email: %w", err)
	}

	return count > 0, nil
}

func (r *ProcessedEmailRepository) List(ctx context.Context, outcome mailroom.Outcome, offset, limit int) ([]*mailroom.ProcessedEmail, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.ProcessedEmailModel{})

	if outcome != "" {
		tx = tx.Where("outcome = ?", outcome)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count processed emails: %w", err)
	}

	var rows []models.ProcessedEmailModel
	if err := tx.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list processed emails: %w", err)
	}

	emails := make([]*mailroom.ProcessedEmail, 0, len(rows))
	for i := range rows {
		emails = append(emails, r.mapper.ProcessedToDomain(&rows[i]))
	}

	return emails, total, nil
}
