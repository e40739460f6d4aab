package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/shared/errors"
)

func newTestItem(t *testing.T, qty int) *Item {
	t.Helper()
	item, err := NewItem(NewItemParams{
		PartNumber:       "BAT-4S-5000",
		Name:             "4S 5000mAh battery",
		Manufacturer:     "VoltCore",
		Quantity:         qty,
		MinStock:         5,
		MaxStock:         50,
		UnitCost:         decimal.NewFromFloat(89.90),
		CompatibleModels: []string{"AgriScan X4", "AgriScan X6"},
	})
	require.NoError(t, err)
	require.NoError(t, item.SetID(1))
	return item
}

func incidentRef(id uint) Reference {
	return Reference{Type: ReferenceIncident, ID: id}
}

func TestItem_Consume(t *testing.T) {
	item := newTestItem(t, 10)

	tx, err := item.Consume(3, incidentRef(77), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity())
	assert.Equal(t, TransactionOut, tx.Type())
	assert.Equal(t, 3, tx.Quantity())
	assert.Equal(t, ReferenceIncident, tx.Reference().Type)
	assert.Equal(t, uint(77), tx.Reference().ID)
	assert.True(t, decimal.NewFromFloat(269.70).Equal(tx.TotalCost()))
}

func TestItem_ConsumeInsufficientStock(t *testing.T) {
	item := newTestItem(t, 2)

	_, err := item.Consume(3, incidentRef(77), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInsufficientStock))
	assert.Equal(t, 2, item.Quantity(), "stock unchanged on failure")
}

func TestItem_ConsumeExactStock(t *testing.T) {
	item := newTestItem(t, 3)
	_, err := item.Consume(3, incidentRef(77), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity())
	assert.Equal(t, StockOut, item.StockStatus())
}

func TestItem_ConsumeInvalidQuantity(t *testing.T) {
	item := newTestItem(t, 10)
	_, err := item.Consume(0, incidentRef(77), nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	_, err = item.Consume(-1, incidentRef(77), nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestItem_ConsumeInactive(t *testing.T) {
	item := newTestItem(t, 10)
	item.Deactivate()
	_, err := item.Consume(1, incidentRef(77), nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
}

func TestItem_CostSnapshotSurvivesReprice(t *testing.T) {
	item := newTestItem(t, 10)

	tx, err := item.Consume(2, incidentRef(77), nil)
	require.NoError(t, err)
	total := tx.TotalCost()

	_, err = item.Restock(5, decimal.NewFromFloat(120.00), nil)
	require.NoError(t, err)

	assert.True(t, total.Equal(tx.TotalCost()), "old transaction keeps its price")
	assert.True(t, decimal.NewFromFloat(120.00).Equal(item.UnitCost()))
}

func TestItem_Restock(t *testing.T) {
	item := newTestItem(t, 2)
	assert.Nil(t, item.LastRestockedAt())

	tx, err := item.Restock(8, decimal.Zero, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity())
	assert.Equal(t, TransactionIn, tx.Type())
	assert.NotNil(t, item.LastRestockedAt())
	assert.True(t, decimal.NewFromFloat(89.90).Equal(item.UnitCost()), "zero cost keeps current price")
}

func TestItem_Adjust(t *testing.T) {
	item := newTestItem(t, 10)

	tx, err := item.Adjust(-4, "cycle count", nil)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Quantity())
	assert.Equal(t, TransactionAdjustment, tx.Type())
	assert.Equal(t, -4, tx.Quantity())
	assert.Equal(t, "cycle count", tx.Note())

	_, err = item.Adjust(0, "", nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = item.Adjust(-7, "", nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInsufficientStock))
	assert.Equal(t, 6, item.Quantity())
}

func TestItem_StockStatus(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		want StockStatus
	}{
		{"out of stock", 0, StockOut},
		{"at min is low", 5, StockLow},
		{"below min is low", 3, StockLow},
		{"healthy", 20, StockIn},
		{"at max is in stock", 50, StockIn},
		{"over max", 51, StockOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newTestItem(t, tt.qty)
			assert.Equal(t, tt.want, item.StockStatus())
		})
	}
}

func TestItem_IsCompatibleWith(t *testing.T) {
	item := newTestItem(t, 1)
	assert.True(t, item.IsCompatibleWith("agriscan x4"))
	assert.False(t, item.IsCompatibleWith("HoverMap Z1"))

	untagged, err := NewItem(NewItemParams{PartNumber: "GEN-SCREW", Name: "M3 screw set"})
	require.NoError(t, err)
	assert.True(t, untagged.IsCompatibleWith("anything"))
}

func TestNewItem_Validation(t *testing.T) {
	_, err := NewItem(NewItemParams{Name: "name"})
	assert.Error(t, err)
	_, err = NewItem(NewItemParams{PartNumber: "PN"})
	assert.Error(t, err)
	_, err = NewItem(NewItemParams{PartNumber: "PN", Name: "n", Quantity: -1})
	assert.Error(t, err)
	_, err = NewItem(NewItemParams{PartNumber: "PN", Name: "n", MinStock: 10, MaxStock: 5})
	assert.Error(t, err)
	_, err = NewItem(NewItemParams{PartNumber: "PN", Name: "n", UnitCost: decimal.NewFromInt(-5)})
	assert.Error(t, err)
	_, err = NewItem(NewItemParams{PartNumber: "PN", Name: "n", Condition: "USED"})
	assert.Error(t, err)
}
