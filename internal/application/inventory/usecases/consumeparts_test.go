package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/inventory"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockItemRepo struct {
	items        map[uint]*inventory.Item
	updated      []*inventory.Item
	transactions []*inventory.Transaction
}

func newMockItemRepo(items ...*inventory.Item) *mockItemRepo {
	m := &mockItemRepo{items: make(map[uint]*inventory.Item)}
	for _, item := range items {
		m.items[item.ID()] = item
	}
	return m
}

func (m *mockItemRepo) Save(ctx context.Context, item *inventory.Item) error {
	return item.SetID(uint(len(m.items) + 1))
}

func (m *mockItemRepo) Update(ctx context.Context, item *inventory.Item) error {
	m.updated = append(m.updated, item)
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockItemRepo) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, errors.NewNotFoundError("item not found")
}

func (m *mockItemRepo) FindByPartNumber(ctx context.Context, partNumber string) (*inventory.Item, error) {
	for _, item := range m.items {
		if item.PartNumber() == partNumber {
			return item, nil
		}
	}
	return nil, errors.NewNotFoundError("item not found")
}

func (m *mockItemRepo) FindByIDForUpdate(ctx context.Context, id uint) (*inventory.Item, error) {
	return m.FindByID(ctx, id)
}

func (m *mockItemRepo) List(ctx context.Context, search string, lowStockOnly bool, offset, limit int) ([]*inventory.Item, int64, error) {
	return nil, 0, nil
}

func (m *mockItemRepo) SaveTransaction(ctx context.Context, tx *inventory.Transaction) error {
	m.transactions = append(m.transactions, tx)
	return nil
}

func (m *mockItemRepo) ListTransactions(ctx context.Context, itemID uint, offset, limit int) ([]*inventory.Transaction, int64, error) {
	return m.transactions, int64(len(m.transactions)), nil
}

func (m *mockItemRepo) ListTransactionsByReference(ctx context.Context, ref inventory.Reference) ([]*inventory.Transaction, error) {
	var out []*inventory.Transaction
	for _, tx := range m.transactions {
		if tx.Reference() == ref {
			out = append(out, tx)
		}
	}
	return out, nil
}

// reconstructingItemRepo rebuilds the aggregate from stored state on every
// find, the way the database-backed repository does. A caller holding two
// handles to the same item therefore sees two independent copies.
type reconstructingItemRepo struct {
	mockItemRepo
}

func (m *reconstructingItemRepo) FindByIDForUpdate(ctx context.Context, id uint) (*inventory.Item, error) {
	stored, ok := m.items[id]
	if !ok {
		return nil, errors.NewNotFoundError("item not found")
	}
	item, err := inventory.NewItem(inventory.NewItemParams{
		PartNumber: stored.PartNumber(),
		Name:       stored.Name(),
		Quantity:   stored.Quantity(),
		UnitCost:   stored.UnitCost(),
	})
	if err != nil {
		return nil, err
	}
	if err := item.SetID(id); err != nil {
		return nil, err
	}
	return item, nil
}

func (m *reconstructingItemRepo) Update(ctx context.Context, item *inventory.Item) error {
	m.items[item.ID()] = item
	m.updated = append(m.updated, item)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func stockedItem(t *testing.T, id uint, partNumber string, qty int, unitCost decimal.Decimal) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(inventory.NewItemParams{
		PartNumber: partNumber,
		Name:       partNumber,
		Quantity:   qty,
		UnitCost:   unitCost,
	})
	require.NoError(t, err)
	require.NoError(t, item.SetID(id))
	return item
}

func TestConsumePartsUseCase_ConsumeForIncident(t *testing.T) {
	t.Run("deducts stock and totals the batch cost", func(t *testing.T) {
		repo := newMockItemRepo(
			stockedItem(t, 1, "PROP-9450", 10, decimal.NewFromFloat(12.50)),
			stockedItem(t, 2, "BAT-4S", 4, decimal.NewFromInt(89)),
		)
		uc := NewConsumePartsUseCase(repo, passthroughTx{}, logger.NewLogger())

		total, err := uc.ConsumeForIncident(context.Background(), 7, []incidentuc.PartLine{
			{ItemID: 1, Quantity: 2},
			{ItemID: 2, Quantity: 1},
		}, nil)

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(114)), "got %s", total)
		assert.Equal(t, 8, repo.items[1].Quantity())
		assert.Equal(t, 3, repo.items[2].Quantity())
		require.Len(t, repo.transactions, 2)
		assert.Equal(t, inventory.TransactionOut, repo.transactions[0].Type())
		assert.Equal(t, inventory.Reference{Type: inventory.ReferenceIncident, ID: 7}, repo.transactions[0].Reference())
	})

	t.Run("one short line fails the whole batch before any deduction", func(t *testing.T) {
		repo := newMockItemRepo(
			stockedItem(t, 1, "PROP-9450", 10, decimal.NewFromFloat(12.50)),
			stockedItem(t, 2, "BAT-4S", 1, decimal.NewFromInt(89)),
		)
		uc := NewConsumePartsUseCase(repo, passthroughTx{}, logger.NewLogger())

		_, err := uc.ConsumeForIncident(context.Background(), 7, []incidentuc.PartLine{
			{ItemID: 1, Quantity: 2},
			{ItemID: 2, Quantity: 5},
		}, nil)

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeInsufficientStock))
		assert.Equal(t, 10, repo.items[1].Quantity())
		assert.Equal(t, 1, repo.items[2].Quantity())
		assert.Empty(t, repo.transactions)
	})

	t.Run("duplicate lines for one item are checked against their sum", func(t *testing.T) {
		repo := &reconstructingItemRepo{mockItemRepo: *newMockItemRepo(
			stockedItem(t, 1, "PROP-9450", 5, decimal.NewFromInt(10)),
		)}
		uc := NewConsumePartsUseCase(repo, passthroughTx{}, logger.NewLogger())

		_, err := uc.ConsumeForIncident(context.Background(), 7, []incidentuc.PartLine{
			{ItemID: 1, Quantity: 3},
			{ItemID: 1, Quantity: 3},
		}, nil)

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeInsufficientStock))
		assert.Equal(t, 5, repo.items[1].Quantity())
		assert.Empty(t, repo.transactions)
	})

	t.Run("duplicate lines within stock deduct once with the summed quantity", func(t *testing.T) {
		repo := &reconstructingItemRepo{mockItemRepo: *newMockItemRepo(
			stockedItem(t, 1, "PROP-9450", 5, decimal.NewFromInt(10)),
		)}
		uc := NewConsumePartsUseCase(repo, passthroughTx{}, logger.NewLogger())

		total, err := uc.ConsumeForIncident(context.Background(), 7, []incidentuc.PartLine{
			{ItemID: 1, Quantity: 2},
			{ItemID: 1, Quantity: 1},
		}, nil)

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(30)), "got %s", total)
		assert.Equal(t, 2, repo.items[1].Quantity())
		require.Len(t, repo.transactions, 1)
		assert.Equal(t, 3, repo.transactions[0].Quantity())
	})

	t.Run("rejects empty and malformed batches", func(t *testing.T) {
		uc := NewConsumePartsUseCase(newMockItemRepo(), passthroughTx{}, logger.NewLogger())

		_, err := uc.ConsumeForIncident(context.Background(), 7, nil, nil)
		require.Error(t, err)

		_, err = uc.ConsumeForIncident(context.Background(), 7, []incidentuc.PartLine{{ItemID: 1, Quantity: 0}}, nil)
		require.Error(t, err)

		_, err = uc.ConsumeForIncident(context.Background(), 0, []incidentuc.PartLine{{ItemID: 1, Quantity: 1}}, nil)
		require.Error(t, err)
	})
}

func TestRestockItemUseCase_Execute(t *testing.T) {
	repo := newMockItemRepo(stockedItem(t, 1, "PROP-9450", 2, decimal.NewFromFloat(12.50)))
	uc := NewRestockItemUseCase(repo, passthroughTx{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), RestockItemCommand{
		ItemID:   1,
		Quantity: 10,
		UnitCost: decimal.NewFromFloat(11.00),
	})

	require.NoError(t, err)
	assert.Equal(t, 12, result.Quantity)
	assert.True(t, result.UnitCost.Equal(decimal.NewFromFloat(11.00)))
	assert.NotNil(t, result.LastRestockedAt)
	require.Len(t, repo.transactions, 1)
	assert.Equal(t, inventory.TransactionIn, repo.transactions[0].Type())
}

func TestAdjustStockUseCase_Execute(t *testing.T) {
	t.Run("books a signed correction", func(t *testing.T) {
		repo := newMockItemRepo(stockedItem(t, 1, "PROP-9450", 10, decimal.NewFromFloat(12.50)))
		uc := NewAdjustStockUseCase(repo, passthroughTx{}, logger.NewLogger())

		result, err := uc.Execute(context.Background(), AdjustStockCommand{ItemID: 1, Delta: -3, Reason: "stocktake"})

		require.NoError(t, err)
		assert.Equal(t, 7, result.Quantity)
		require.Len(t, repo.transactions, 1)
		assert.Equal(t, inventory.TransactionAdjustment, repo.transactions[0].Type())
	})

	t.Run("cannot drive stock negative", func(t *testing.T) {
		repo := newMockItemRepo(stockedItem(t, 1, "PROP-9450", 2, decimal.NewFromFloat(12.50)))
		uc := NewAdjustStockUseCase(repo, passthroughTx{}, logger.NewLogger())

		_, err := uc.Execute(context.Background(), AdjustStockCommand{ItemID: 1, Delta: -5, Reason: "stocktake"})

		require.Error(t, err)
		assert.Equal(t, 2, repo.items[1].Quantity())
	})
}
