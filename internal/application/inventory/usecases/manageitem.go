package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/inventory"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type CreateItemCommand struct {
	PartNumber       string
	Name             string
	Description      string
	Manufacturer     string
	Model            string
	Quantity         int
	MinStock         int
	MaxStock         int
	Condition        string
	UnitCost         decimal.Decimal
	WeightGrams      int
	Dimensions       string
	CompatibleModels []string
}

type ItemResult struct {
	ID               uint
	PartNumber       string
	Name             string
	Description      string
	Manufacturer     string
	Model            string
	Quantity         int
	MinStock         int
	MaxStock         int
	Condition        string
	UnitCost         decimal.Decimal
	WeightGrams      int
	Dimensions       string
	CompatibleModels []string
	Active           bool
	StockStatus      string
	LowStock         bool
	LastRestockedAt  *time.Time
}

type CreateItemUseCase struct {
	itemRepo inventory.Repository
	logger   logger.Interface
}

func NewCreateItemUseCase(itemRepo inventory.Repository, logger logger.Interface) *CreateItemUseCase {
	return &CreateItemUseCase{itemRepo: itemRepo, logger: logger}
}

func (uc *CreateItemUseCase) Execute(ctx context.Context, cmd CreateItemCommand) (*ItemResult, error) {
	if existing, err := uc.itemRepo.FindByPartNumber(ctx, cmd.PartNumber); err == nil && existing != nil {
		return nil, errors.NewConflictError("part number already exists")
	} else if err != nil && !errors.IsType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	item, err := inventory.NewItem(inventory.NewItemParams{
		PartNumber:       cmd.PartNumber,
		Name:             cmd.Name,
		Description:      cmd.Description,
		Manufacturer:     cmd.Manufacturer,
		Model:            cmd.Model,
		Quantity:         cmd.Quantity,
		MinStock:         cmd.MinStock,
		MaxStock:         cmd.MaxStock,
		Condition:        inventory.Condition(cmd.Condition),
		UnitCost:         cmd.UnitCost,
		WeightGrams:      cmd.WeightGrams,
		Dimensions:       cmd.Dimensions,
		CompatibleModels: cmd.CompatibleModels,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.itemRepo.Save(ctx, item); err != nil {
		uc.logger.Errorw("failed to save inventory item", "part_number", cmd.PartNumber, "error", err)
		return nil, err
	}

	uc.logger.Infow("inventory item created", "item_id", item.ID(), "part_number", item.PartNumber())
	return itemToResult(item), nil
}

type UpdateItemCommand struct {
	ItemID uint
	Params CreateItemCommand
	Active *bool
}

type UpdateItemUseCase struct {
	itemRepo inventory.Repository
	logger   logger.Interface
}

func NewUpdateItemUseCase(itemRepo inventory.Repository, logger logger.Interface) *UpdateItemUseCase {
	return &UpdateItemUseCase{itemRepo: itemRepo, logger: logger}
}

func (uc *UpdateItemUseCase) Execute(ctx context.Context, cmd UpdateItemCommand) (*ItemResult, error) {
	if cmd.ItemID == 0 {
		return nil, errors.NewValidationError("item ID is required")
	}

	item, err := uc.itemRepo.FindByID(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	p := cmd.Params
	err = item.UpdateDetails(inventory.NewItemParams{
		PartNumber:       p.PartNumber,
		Name:             p.Name,
		Description:      p.Description,
		Manufacturer:     p.Manufacturer,
		Model:            p.Model,
		Quantity:         item.Quantity(),
		MinStock:         p.MinStock,
		MaxStock:         p.MaxStock,
		Condition:        inventory.Condition(p.Condition),
		UnitCost:         p.UnitCost,
		WeightGrams:      p.WeightGrams,
		Dimensions:       p.Dimensions,
		CompatibleModels: p.CompatibleModels,
	})
	if err != nil {
		return nil, err
	}
	if cmd.Active != nil {
		if *cmd.Active {
			item.Activate()
		} else {
			item.Deactivate()
		}
	}

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		uc.logger.Errorw("failed to update inventory item", "item_id", cmd.ItemID, "error", err)
		return nil, err
	}
	return itemToResult(item), nil
}

type ListItemsQuery struct {
	Search       string
	LowStockOnly bool
	Pagination   utils.Pagination
}

type ListItemsResult struct {
	Items []ItemResult
	Total int64
}

type ListItemsUseCase struct {
	itemRepo inventory.Repository
	logger   logger.Interface
}

func NewListItemsUseCase(itemRepo inventory.Repository, logger logger.Interface) *ListItemsUseCase {
	return &ListItemsUseCase{itemRepo: itemRepo, logger: logger}
}

func (uc *ListItemsUseCase) Execute(ctx context.Context, q ListItemsQuery) (*ListItemsResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	items, total, err := uc.itemRepo.List(ctx, q.Search, q.LowStockOnly, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list inventory items", "error", err)
		return nil, err
	}

	out := make([]ItemResult, 0, len(items))
	for _, item := range items {
		out = append(out, *itemToResult(item))
	}
	return &ListItemsResult{Items: out, Total: total}, nil
}

type GetItemUseCase struct {
	itemRepo inventory.Repository
	logger   logger.Interface
}

func NewGetItemUseCase(itemRepo inventory.Repository, logger logger.Interface) *GetItemUseCase {
	return &GetItemUseCase{itemRepo: itemRepo, logger: logger}
}

func (uc *GetItemUseCase) Execute(ctx context.Context, itemID uint) (*ItemResult, error) {
	if itemID == 0 {
		return nil, errors.NewValidationError("item ID is required")
	}
	item, err := uc.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return itemToResult(item), nil
}

func itemToResult(item *inventory.Item) *ItemResult {
	return &ItemResult{
		ID:               item.ID(),
		PartNumber:       item.PartNumber(),
		Name:             item.Name(),
		Description:      item.Description(),
		Manufacturer:     item.Manufacturer(),
		Model:            item.Model(),
		Quantity:         item.Quantity(),
		MinStock:         item.MinStock(),
		MaxStock:         item.MaxStock(),
		Condition:        string(item.Condition()),
		UnitCost:         item.UnitCost(),
		WeightGrams:      item.WeightGrams(),
		Dimensions:       item.Dimensions(),
		CompatibleModels: item.CompatibleModels(),
		Active:           item.IsActive(),
		StockStatus:      string(item.StockStatus()),
		LowStock:         item.IsLowStock(),
		LastRestockedAt:  item.LastRestockedAt(),
	}
}
