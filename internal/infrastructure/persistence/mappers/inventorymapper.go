package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"skywrench/internal/domain/inventory"
	"skywrench/internal/infrastructure/persistence/models"
)

type InventoryMapper interface {
	ToModel(item *inventory.Item) *models.InventoryItemModel
	ToDomain(model *models.InventoryItemModel) (*inventory.Item, error)
	TransactionToModel(tx *inventory.Transaction) *models.StockTransactionModel
	TransactionToDomain(model *models.StockTransactionModel) *inventory.Transaction
}

type InventoryMapperImpl struct{}

func NewInventoryMapper() InventoryMapper {
	return &InventoryMapperImpl{}
}

func (m *InventoryMapperImpl) ToModel(item *inventory.Item) *models.InventoryItemModel {
	model := &models.InventoryItemModel{
		ID:              item.ID(),
		PartNumber:      item.PartNumber(),
		Name:            item.Name(),
		Description:     item.Description(),
		Manufacturer:    item.Manufacturer(),
		Model:           item.Model(),
		Quantity:        item.Quantity(),
		MinStock:        item.MinStock(),
		MaxStock:        item.MaxStock(),
		Condition:       string(item.Condition()),
		UnitCost:        item.UnitCost().String(),
		WeightGrams:     item.WeightGrams(),
		Dimensions:      item.Dimensions(),
		Active:          item.IsActive(),
		LastRestockedAt: timePtrToMillis(item.LastRestockedAt()),
		CreatedAt:       item.CreatedAt().UnixMilli(),
		UpdatedAt:       item.UpdatedAt().UnixMilli(),
	}

	if len(item.CompatibleModels()) > 0 {
		compatJSON, _ := json.Marshal(item.CompatibleModels())
		model.CompatibleModels = datatypes.JSON(compatJSON)
	}

	return model
}

func (m *InventoryMapperImpl) ToDomain(model *models.InventoryItemModel) (*inventory.Item, error) {
	var compatibleModels []string
	if len(model.CompatibleModels) > 0 {
		if err := json.Unmarshal(model.CompatibleModels, &compatibleModels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal compatible models (id=%d): %w", model.ID, err)
		}
	}

	return inventory.ReconstructItem(inventory.ReconstructedItem{
		ID:               model.ID,
		PartNumber:       model.PartNumber,
		Name:             model.Name,
		Description:      model.Description,
		Manufacturer:     model.Manufacturer,
		Model:            model.Model,
		Quantity:         model.Quantity,
		MinStock:         model.MinStock,
		MaxStock:         model.MaxStock,
		Condition:        inventory.Condition(model.Condition),
		UnitCost:         parseDecimal(model.UnitCost),
		WeightGrams:      model.WeightGrams,
		Dimensions:       model.Dimensions,
		CompatibleModels: compatibleModels,
		Active:           model.Active,
		LastRestockedAt:  millisPtrToTime(model.LastRestockedAt),
		CreatedAt:        millisToTime(model.CreatedAt),
		UpdatedAt:        millisToTime(model.UpdatedAt),
	}), nil
}

func (m *InventoryMapperImpl) TransactionToModel(tx *inventory.Transaction) *models.StockTransactionModel {
	return &models.StockTransactionModel{
		ID:            tx.ID(),
		ItemID:        tx.ItemID(),
		Type:          string(tx.Type()),
		Quantity:      tx.Quantity(),
		UnitCost:      tx.UnitCost().String(),
		ReferenceType: string(tx.Reference().Type),
		ReferenceID:   tx.Reference().ID,
		ActorID:       tx.ActorID(),
		Note:          tx.Note(),
		CreatedAt:     tx.CreatedAt().UnixMilli(),
	}
}

func (m *InventoryMapperImpl) TransactionToDomain(model *models.StockTransactionModel) *inventory.Transaction {
	return inventory.ReconstructTransaction(
		model.ID,
		model.ItemID,
		inventory.TransactionType(model.Type),
		model.Quantity,
		parseDecimal(model.UnitCost),
		inventory.Reference{
			Type: inventory.ReferenceType(model.ReferenceType),
			ID:   model.ReferenceID,
		},
		model.ActorID,
		model.Note,
		millisToTime(model.CreatedAt),
	)
}
