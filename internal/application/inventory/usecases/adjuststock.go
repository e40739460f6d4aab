package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/inventory"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type RestockItemCommand struct {
	ItemID   uint
	Quantity int
	UnitCost decimal.Decimal
	ActorID  *uint
}

// RestockItemUseCase books incoming stock. A positive unit cost reprices
// the item.
type RestockItemUseCase struct {
	itemRepo  inventory.Repository
	txManager Transactor
	logger    logger.Interface
}

func NewRestockItemUseCase(itemRepo inventory.Repository, txManager Transactor, logger logger.Interface) *RestockItemUseCase {
	return &RestockItemUseCase{itemRepo: itemRepo, txManager: txManager, logger: logger}
}

func (uc *RestockItemUseCase) Execute(ctx context.Context, cmd RestockItemCommand) (*ItemResult, error) {
	if cmd.ItemID == 0 {
		return nil, errors.NewValidationError("item ID is required")
	}

	var item *inventory.Item
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		item, err = uc.itemRepo.FindByIDForUpdate(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		movement, err := item.Restock(cmd.Quantity, cmd.UnitCost, cmd.ActorID)
		if err != nil {
			return err
		}
		if err := uc.itemRepo.Update(txCtx, item); err != nil {
			return err
		}
		return uc.itemRepo.SaveTransaction(txCtx, movement)
	})
	if err != nil {
		uc.logger.Errorw("failed to restock item", "item_id", cmd.ItemID, "error", err)
		return nil, err
	}

	uc.logger.Infow("item restocked", "item_id", item.ID(), "quantity", cmd.Quantity)
	return itemToResult(item), nil
}

type AdjustStockCommand struct {
	ItemID  uint
	Delta   int
	Reason  string
	ActorID *uint
}

// AdjustStockUseCase books a signed stock correction. Corrections cannot
// drive stock negative.
type AdjustStockUseCase struct {
	itemRepo  inventory.Repository
	txManager Transactor
	logger    logger.Interface
}

func NewAdjustStockUseCase(itemRepo inventory.Repository, txManager Transactor, logger logger.Interface) *AdjustStockUseCase {
	return &AdjustStockUseCase{itemRepo: itemRepo, txManager: txManager, logger: logger}
}

func (uc *AdjustStockUseCase) Execute(ctx context.Context, cmd AdjustStockCommand) (*ItemResult, error) {
	if cmd.ItemID == 0 {
		return nil, errors.NewValidationError("item ID is required")
	}

	var item *inventory.Item
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		item, err = uc.itemRepo.FindByIDForUpdate(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		movement, err := item.Adjust(cmd.Delta, cmd.Reason, cmd.ActorID)
		if err != nil {
			return err
		}
		if err := uc.itemRepo.Update(txCtx, item); err != nil {
			return err
		}
		return uc.itemRepo.SaveTransaction(txCtx, movement)
	})
	if err != nil {
		uc.logger.Errorw("failed to adjust stock", "item_id", cmd.ItemID, "error", err)
		return nil, err
	}

	uc.logger.Infow("stock adjusted", "item_id", item.ID(), "delta", cmd.Delta)
	return itemToResult(item), nil
}

type TransactionEntry struct {
	ID        uint
	ItemID    uint
	Type      string
	Quantity  int
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
	Reference inventory.Reference
	ActorID   *uint
	Note      string
	CreatedAt string
}

type ListTransactionsQuery struct {
	ItemID     uint
	Pagination utils.Pagination
}

type ListTransactionsResult struct {
	Transactions []TransactionEntry
	Total        int64
}

type ListTransactionsUseCase struct {
	itemRepo inventory.Repository
	logger   logger.Interface
}

func NewListTransactionsUseCase(itemRepo inventory.Repository, logger logger.Interface) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{itemRepo: itemRepo, logger: logger}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, q ListTransactionsQuery) (*ListTransactionsResult, error) {
	if q.ItemID == 0 {
		return nil, errors.NewValidationError("item ID is required")
	}
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	movements, total, err := uc.itemRepo.ListTransactions(ctx, q.ItemID, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list stock transactions", "item_id", q.ItemID, "error", err)
		return nil, err
	}

	out := make([]TransactionEntry, 0, len(movements))
	for _, m := range movements {
		out = append(out, TransactionEntry{
			ID:        m.ID(),
			ItemID:    m.ItemID(),
			Type:      string(m.Type()),
			Quantity:  m.Quantity(),
			UnitCost:  m.UnitCost(),
			TotalCost: m.TotalCost(),
			Reference: m.Reference(),
			ActorID:   m.ActorID(),
			Note:      m.Note(),
			CreatedAt: m.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &ListTransactionsResult{Transactions: out, Total: total}, nil
}
