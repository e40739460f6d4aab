package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/inventory"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

// Transactor runs a function inside one database transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConsumePartsUseCase deducts a batch of parts for an incident. The batch
// is atomic: every line is checked against current stock before any item
// changes, and one failing line rolls back the lot.
type ConsumePartsUseCase struct {
	itemRepo  inventory.Repository
	txManager Transactor
	logger    logger.Interface
}

var _ incidentuc.PartsConsumer = (*ConsumePartsUseCase)(nil)

func NewConsumePartsUseCase(itemRepo inventory.Repository, txManager Transactor, logger logger.Interface) *ConsumePartsUseCase {
	return &ConsumePartsUseCase{itemRepo: itemRepo, txManager: txManager, logger: logger}
}

func (uc *ConsumePartsUseCase) ConsumeForIncident(ctx context.Context, incidentID uint, lines []incidentuc.PartLine, actorID *uint) (decimal.Decimal, error) {
	if incidentID == 0 {
		return decimal.Zero, errors.NewValidationError("incident ID is required")
	}
	if len(lines) == 0 {
		return decimal.Zero, errors.NewValidationError("at least one part line is required")
	}
	for _, line := range lines {
		if line.ItemID == 0 || line.Quantity <= 0 {
			return decimal.Zero, errors.NewValidationError("part lines need an item and a positive quantity")
		}
	}

	// Duplicate lines for the same item are merged up front, so each item is
	// fetched and decremented exactly once and the stock check sees the sum.
	merged := make([]incidentuc.PartLine, 0, len(lines))
	byItem := make(map[uint]int, len(lines))
	for _, line := range lines {
		if idx, ok := byItem[line.ItemID]; ok {
			merged[idx].Quantity += line.Quantity
			continue
		}
		byItem[line.ItemID] = len(merged)
		merged = append(merged, line)
	}

	total := decimal.Zero
	ref := inventory.Reference{Type: inventory.ReferenceIncident, ID: incidentID}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		items := make([]*inventory.Item, 0, len(merged))
		for _, line := range merged {
			item, err := uc.itemRepo.FindByIDForUpdate(txCtx, line.ItemID)
			if err != nil {
				return err
			}
			if item.Quantity() < line.Quantity {
				return errors.NewInsufficientStockError(
					fmt.Sprintf("insufficient stock for %s: have %d, need %d", item.PartNumber(), item.Quantity(), line.Quantity))
			}
			items = append(items, item)
		}

		for idx, line := range merged {
			movement, err := items[idx].Consume(line.Quantity, ref, actorID)
			if err != nil {
				return err
			}
			if err := uc.itemRepo.Update(txCtx, items[idx]); err != nil {
				return err
			}
			if err := uc.itemRepo.SaveTransaction(txCtx, movement); err != nil {
				return err
			}
			total = total.Add(movement.TotalCost())
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to consume parts", "incident_id", incidentID, "error", err)
		return decimal.Zero, err
	}

	uc.logger.Infow("parts consumed", "incident_id", incidentID, "lines", len(lines), "total_cost", total.StringFixed(2))
	return total, nil
}
