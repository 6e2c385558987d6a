package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// BatchRepository defines the persistence port for stock batches
type BatchRepository interface {
	// FindByID retrieves a batch by its ID, including archived ones
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByKey retrieves the single active batch matching the key exactly.
	// A key with a nil expiry matches only batches with no expiry date.
	// Returns shared.ErrNotFound when no active batch exists for the key.
	FindByKey(ctx context.Context, key BatchKey) (*Batch, error)

	// FindByKeyForUpdate behaves like FindByKey but takes a row lock so the
	// caller can merge or decrement the batch without racing concurrent writers.
	// Must run inside a transaction.
	FindByKeyForUpdate(ctx context.Context, key BatchKey) (*Batch, error)

	// FindByIDForUpdate retrieves a batch by ID with a row lock.
	// Must run inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindAll retrieves active batches ordered by expiry date ascending with
	// no-expiry batches last, then by creation time
	FindAll(ctx context.Context, filter shared.Filter) ([]*Batch, error)

	// FindByProduct retrieves active batches for a given product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]*Batch, error)

	// FindByOutlet retrieves active batches for a given outlet
	FindByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]*Batch, error)

	// FindExpiringSoon retrieves active batches with stock whose expiry date
	// falls within the next withinDays days, soonest first
	FindExpiringSoon(ctx context.Context, withinDays int, filter shared.Filter) ([]*Batch, error)

	// FindBelowReorder retrieves products whose total active stock across all
	// batches is at or below the product's reorder level
	FindBelowReorder(ctx context.Context, filter shared.Filter) ([]*ReorderAlert, error)

	// Save persists a batch (create or update)
	Save(ctx context.Context, batch *Batch) error

	// Count returns the number of active batches matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReorderAlert reports a product whose on-hand total has fallen to or below
// its reorder level
type ReorderAlert struct {
	ProductID    uuid.UUID `gorm:"type:uuid"`
	ProductName  string
	OutletID     uuid.UUID       `gorm:"type:uuid"`
	OnHand       decimal.Decimal `gorm:"type:decimal(18,4)"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4)"`
}
