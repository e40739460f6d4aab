package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skywrench/internal/domain/inventory"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type InventoryRepository struct {
	db     *gorm.DB
	mapper mappers.InventoryMapper
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{
		db:     db,
		mapper: mappers.NewInventoryMapper(),
	}
}

func (r *InventoryRepository) Save(ctx context.Context, item *inventory.Item) error {
	model := r.mapper.ToModel(item)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save inventory item: %w", err)
	}

	return item.SetID(model.ID)
}

func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	model := r.mapper.ToModel(item)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so a consumption that drives quantity to zero is not
	// dropped as a zero-valued field.
	result := tx.
		Model(&models.InventoryItemModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update inventory item: %w", result.Error)
	}

	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.InventoryItemModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("inventory item not found")
	}
	return nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	return r.findOne(ctx, id, false)
}

func (r *InventoryRepository) FindByIDForUpdate(ctx context.Context, id uint) (*inventory.Item, error) {
	return r.findOne(ctx, id, true)
}

func (r *InventoryRepository) findOne(ctx context.Context, id uint, forUpdate bool) (*inventory.Item, error) {
	var model models.InventoryItemModel
	tx := db.GetTxFromContext(ctx, r.db)

	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("inventory item not found")
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *InventoryRepository) FindByPartNumber(ctx context.Context, partNumber string) (*inventory.Item, error) {
	var model models.InventoryItemModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("part_number = ?", partNumber).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("inventory item not found")
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *InventoryRepository) List(ctx context.Context, search string, lowStockOnly bool, offset, limit int) ([]*inventory.Item, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.InventoryItemModel{})

	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("part_number LIKE ? OR name LIKE ? OR manufacturer LIKE ?", like, like, like)
	}
	if lowStockOnly {
		tx = tx.Where("quantity <= min_stock")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory items: %w", err)
	}

	var rows []models.InventoryItemModel
	if err := tx.
		Order("part_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory items: %w", err)
	}

	items := make([]*inventory.Item, 0, len(rows))
	for i := range rows {
		item, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, total, nil
}

func (r *InventoryRepository) SaveTransaction(ctx context.Context, movement *inventory.Transaction) error {
	model := r.mapper.TransactionToModel(movement)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save stock transaction: %w", err)
	}

	return movement.SetID(model.ID)
}

func (r *InventoryRepository) ListTransactions(ctx context.Context, itemID uint, offset, limit int) ([]*inventory.Transaction, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.StockTransactionModel{})

	if itemID != 0 {
		tx = tx.Where("item_id = ?", itemID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stock transactions: %w", err)
	}

	var rows []models.StockTransactionModel
	if err := tx.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list stock transactions: %w", err)
	}

	movements := make([]*inventory.Transaction, 0, len(rows))
	for i := range rows {
		movements = append(movements, r.mapper.TransactionToDomain(&rows[i]))
	}

	return movements, total, nil
}

func (r *InventoryRepository) ListTransactionsByReference(ctx context.Context, ref inventory.Reference) ([]*inventory.Transaction, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.StockTransactionModel
	if err := tx.
		Where("reference_type = ? AND reference_id = ?", string(ref.Type), ref.ID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock transactions: %w", err)
	}

	movements := make([]*inventory.Transaction, 0, len(rows))
	for i := range rows {
		movements = append(movements, r.mapper.TransactionToDomain(&rows[i]))
	}
	return movements, nil
}
