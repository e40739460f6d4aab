package inventory

import "context"

// Repository persists inventory items and their stock movements. Batch
// consumption runs inside one transaction at the application layer so a
// failed line rolls back every deduction.
type Repository interface {
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Item, error)
	FindByPartNumber(ctx context.Context, partNumber string) (*Item, error)
	// FindByIDForUpdate reads the item with a row lock when the backing
	// store supports it.
	FindByIDForUpdate(ctx context.Context, id uint) (*Item, error)
	List(ctx context.Context, search string, lowStockOnly bool, offset, limit int) ([]*Item, int64, error)

	SaveTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, itemID uint, offset, limit int) ([]*Transaction, int64, error)
	ListTransactionsByReference(ctx context.Context, ref Reference) ([]*Transaction, error)
}
