package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// TransactionType records the direction of a stock movement.
type TransactionType string

const (
	TransactionIn         TransactionType = "IN"
	TransactionOut        TransactionType = "OUT"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

// ReferenceType names the record a movement was made for.
type ReferenceType string

const (
	ReferenceIncident  ReferenceType = "incident"
	ReferenceWorkOrder ReferenceType = "work_order"
)

// Reference links a movement to the consuming record. The zero value means
// no reference (restocks, adjustments).
type Reference struct {
	Type ReferenceType
	ID   uint
}

// Transaction is an immutable stock movement. The unit cost is snapshotted
// at movement time; TotalCost never changes when the item is repriced.
type Transaction struct {
	id        uint
	itemID    uint
	txType    TransactionType
	quantity  int
	unitCost  decimal.Decimal
	reference Reference
	actorID   *uint
	note      string
	createdAt time.Time
}

func newTransaction(itemID uint, txType TransactionType, quantity int, unitCost decimal.Decimal, ref Reference, actorID *uint) *Transaction {
	return &Transaction{
		itemID:    itemID,
		txType:    txType,
		quantity:  quantity,
		unitCost:  unitCost,
		reference: ref,
		actorID:   actorID,
		createdAt: biztime.NowUTC(),
	}
}

// ReconstructTransaction rebuilds a transaction from persistence.
func ReconstructTransaction(id, itemID uint, txType TransactionType, quantity int, unitCost decimal.Decimal, ref Reference, actorID *uint, note string, createdAt time.Time) *Transaction {
	return &Transaction{
		id:        id,
		itemID:    itemID,
		txType:    txType,
		quantity:  quantity,
		unitCost:  unitCost,
		reference: ref,
		actorID:   actorID,
		note:      note,
		createdAt: createdAt,
	}
}

func (t *Transaction) ID() uint                  { return t.id }
func (t *Transaction) ItemID() uint              { return t.itemID }
func (t *Transaction) Type() TransactionType     { return t.txType }
func (t *Transaction) Quantity() int             { return t.quantity }
func (t *Transaction) UnitCost() decimal.Decimal { return t.unitCost }
func (t *Transaction) Reference() Reference      { return t.reference }
func (t *Transaction) ActorID() *uint            { return t.actorID }
func (t *Transaction) Note() string              { return t.note }
func (t *Transaction) CreatedAt() time.Time      { return t.createdAt }

func (t *Transaction) SetID(id uint) error {
	if t.id != 0 {
		return errors.NewInternalError("transaction ID already set")
	}
	t.id = id
	return nil
}

// TotalCost is the unit cost times quantity at movement time.
func (t *Transaction) TotalCost() decimal.Decimal {
	return t.unitCost.Mul(decimal.NewFromInt(int64(t.quantity)))
}
