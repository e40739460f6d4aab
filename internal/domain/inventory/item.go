package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Condition describes the physical state of stocked parts.
type Condition string

const (
	ConditionNew    Condition = "NEW"
	ConditionFaulty Condition = "FAULTY"
)

func (c Condition) IsValid() bool {
	return c == ConditionNew || c == ConditionFaulty
}

// StockStatus is the derived stock health of an item.
type StockStatus string

const (
	StockOut  StockStatus = "OUT_OF_STOCK"
	StockLow  StockStatus = "LOW_STOCK"
	StockIn   StockStatus = "IN_STOCK"
	StockOver StockStatus = "OVERSTOCK"
)

// Item is a stocked spare part. Stock mutations go through Consume,
// Restock and Adjust so quantity can never go negative.
type Item struct {
	id               uint
	partNumber       string
	name             string
	description      string
	manufacturer     string
	model            string
	quantity         int
	minStock         int
	maxStock         int
	condition        Condition
	unitCost         decimal.Decimal
	weightGrams      int
	dimensions       string
	compatibleModels []string
	active           bool
	lastRestockedAt  *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewItemParams carries the attributes of a new inventory item.
type NewItemParams struct {
	PartNumber       string
	Name             string
	Description      string
	Manufacturer     string
	Model            string
	Quantity         int
	MinStock         int
	MaxStock         int
	Condition        Condition
	UnitCost         decimal.Decimal
	WeightGrams      int
	Dimensions       string
	CompatibleModels []string
}

func NewItem(p NewItemParams) (*Item, error) {
	partNumber := strings.TrimSpace(p.PartNumber)
	name := strings.TrimSpace(p.Name)
	if partNumber == "" {
		return nil, errors.NewValidationError("part number is required")
	}
	if name == "" {
		return nil, errors.NewValidationError("item name is required")
	}
	if p.Quantity < 0 {
		return nil, errors.NewValidationError("quantity cannot be negative")
	}
	if p.MinStock < 0 || p.MaxStock < 0 {
		return nil, errors.NewValidationError("stock levels cannot be negative")
	}
	if p.MaxStock > 0 && p.MaxStock < p.MinStock {
		return nil, errors.NewValidationError("max stock cannot be below min stock")
	}
	cond := p.Condition
	if cond == "" {
		cond = ConditionNew
	}
	if !cond.IsValid() {
		return nil, errors.NewValidationError("invalid item condition")
	}
	if p.UnitCost.IsNegative() {
		return nil, errors.NewValidationError("unit cost cannot be negative")
	}

	now := biztime.NowUTC()
	return &Item{
		partNumber:       partNumber,
		name:             name,
		description:      strings.TrimSpace(p.Description),
		manufacturer:     strings.TrimSpace(p.Manufacturer),
		model:            strings.TrimSpace(p.Model),
		quantity:         p.Quantity,
		minStock:         p.MinStock,
		maxStock:         p.MaxStock,
		condition:        cond,
		unitCost:         p.UnitCost,
		weightGrams:      p.WeightGrams,
		dimensions:       strings.TrimSpace(p.Dimensions),
		compatibleModels: normalizeTags(p.CompatibleModels),
		active:           true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructedItem carries every persisted field for rebuilding without
// validation.
type ReconstructedItem struct {
	ID               uint
	PartNumber       string
	Name             string
	Description      string
	Manufacturer     string
	Model            string
	Quantity         int
	MinStock         int
	MaxStock         int
	Condition        Condition
	UnitCost         decimal.Decimal
	WeightGrams      int
	Dimensions       string
	CompatibleModels []string
	Active           bool
	LastRestockedAt  *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ReconstructItem(r ReconstructedItem) *Item {
	return &Item{
		id:               r.ID,
		partNumber:       r.PartNumber,
		name:             r.Name,
		description:      r.Description,
		manufacturer:     r.Manufacturer,
		model:            r.Model,
		quantity:         r.Quantity,
		minStock:         r.MinStock,
		maxStock:         r.MaxStock,
		condition:        r.Condition,
		unitCost:         r.UnitCost,
		weightGrams:      r.WeightGrams,
		dimensions:       r.Dimensions,
		compatibleModels: r.CompatibleModels,
		active:           r.Active,
		lastRestockedAt:  r.LastRestockedAt,
		createdAt:        r.CreatedAt,
		updatedAt:        r.UpdatedAt,
	}
}

func (i *Item) ID() uint                   { return i.id }
func (i *Item) PartNumber() string         { return i.partNumber }
func (i *Item) Name() string               { return i.name }
func (i *Item) Description() string        { return i.description }
func (i *Item) Manufacturer() string       { return i.manufacturer }
func (i *Item) Model() string              { return i.model }
func (i *Item) Quantity() int              { return i.quantity }
func (i *Item) MinStock() int              { return i.minStock }
func (i *Item) MaxStock() int              { return i.maxStock }
func (i *Item) Condition() Condition       { return i.condition }
func (i *Item) UnitCost() decimal.Decimal  { return i.unitCost }
func (i *Item) WeightGrams() int           { return i.weightGrams }
func (i *Item) Dimensions() string         { return i.dimensions }
func (i *Item) CompatibleModels() []string { return i.compatibleModels }
func (i *Item) IsActive() bool             { return i.active }
func (i *Item) LastRestockedAt() *time.Time { return i.lastRestockedAt }
func (i *Item) CreatedAt() time.Time       { return i.createdAt }
func (i *Item) UpdatedAt() time.Time       { return i.updatedAt }

func (i *Item) SetID(id uint) error {
	if i.id != 0 {
		return errors.NewInternalError("item ID already set")
	}
	i.id = id
	return nil
}

// IsLowStock reports whether stock has fallen to the minimum level.
func (i *Item) IsLowStock() bool {
	return i.quantity <= i.minStock
}

// StockStatus derives the stock health band from the min/max levels.
func (i *Item) StockStatus() StockStatus {
	switch {
	case i.quantity == 0:
		return StockOut
	case i.quantity <= i.minStock:
		return StockLow
	case i.maxStock > 0 && i.quantity > i.maxStock:
		return StockOver
	default:
		return StockIn
	}
}

// IsCompatibleWith reports whether the part fits the given UAV model.
// An item with no compatibility tags fits everything.
func (i *Item) IsCompatibleWith(uavModel string) bool {
	if len(i.compatibleModels) == 0 {
		return true
	}
	for _, m := range i.compatibleModels {
		if strings.EqualFold(m, strings.TrimSpace(uavModel)) {
			return true
		}
	}
	return false
}

// Consume removes qty units and returns the OUT transaction priced at the
// item's current unit cost. The cost snapshot protects historical totals
// from later price changes.
func (i *Item) Consume(qty int, ref Reference, actorID *uint) (*Transaction, error) {
	if !i.active {
		return nil, errors.NewConflictError("item is inactive")
	}
	if qty <= 0 {
		return nil, errors.NewValidationError("quantity must be positive")
	}
	if qty > i.quantity {
		return nil, errors.NewInsufficientStockError("insufficient stock for " + i.name)
	}
	i.quantity -= qty
	i.updatedAt = biztime.NowUTC()
	return newTransaction(i.id, TransactionOut, qty, i.unitCost, ref, actorID), nil
}

// Restock adds qty units, stamps the restock time and returns the IN
// transaction. A positive unitCost also updates the item's current price.
func (i *Item) Restock(qty int, unitCost decimal.Decimal, actorID *uint) (*Transaction, error) {
	if qty <= 0 {
		return nil, errors.NewValidationError("quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, errors.NewValidationError("unit cost cannot be negative")
	}
	if unitCost.IsPositive() {
		i.unitCost = unitCost
	}
	now := biztime.NowUTC()
	i.quantity += qty
	i.lastRestockedAt = &now
	i.updatedAt = now
	return newTransaction(i.id, TransactionIn, qty, i.unitCost, Reference{}, actorID), nil
}

// Adjust applies a signed stock correction, for cycle counts. The result
// may not drive stock negative.
func (i *Item) Adjust(delta int, reason string, actorID *uint) (*Transaction, error) {
	if delta == 0 {
		return nil, errors.NewValidationError("adjustment cannot be zero")
	}
	if i.quantity+delta < 0 {
		return nil, errors.NewInsufficientStockError("adjustment would drive stock negative for " + i.name)
	}
	i.quantity += delta
	i.updatedAt = biztime.NowUTC()
	tx := newTransaction(i.id, TransactionAdjustment, delta, i.unitCost, Reference{}, actorID)
	tx.note = strings.TrimSpace(reason)
	return tx, nil
}

func (i *Item) Activate() {
	i.active = true
	i.updatedAt = biztime.NowUTC()
}

func (i *Item) Deactivate() {
	i.active = false
	i.updatedAt = biztime.NowUTC()
}

// UpdateDetails replaces the descriptive attributes of the item.
func (i *Item) UpdateDetails(p NewItemParams) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errors.NewValidationError("item name is required")
	}
	if p.MinStock < 0 || p.MaxStock < 0 {
		return errors.NewValidationError("stock levels cannot be negative")
	}
	if p.MaxStock > 0 && p.MaxStock < p.MinStock {
		return errors.NewValidationError("max stock cannot be below min stock")
	}
	if p.UnitCost.IsNegative() {
		return errors.NewValidationError("unit cost cannot be negative")
	}
	cond := p.Condition
	if cond == "" {
		cond = i.condition
	}
	if !cond.IsValid() {
		return errors.NewValidationError("invalid item condition")
	}
	i.name = name
	i.description = strings.TrimSpace(p.Description)
	i.manufacturer = strings.TrimSpace(p.Manufacturer)
	i.model = strings.TrimSpace(p.Model)
	i.minStock = p.MinStock
	i.maxStock = p.MaxStock
	i.condition = cond
	i.unitCost = p.UnitCost
	i.weightGrams = p.WeightGrams
	i.dimensions = strings.TrimSpace(p.Dimensions)
	i.compatibleModels = normalizeTags(p.CompatibleModels)
	i.updatedAt = biztime.NowUTC()
	return nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
