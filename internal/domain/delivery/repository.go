package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// DeliveryRepository defines the persistence port for deliveries
type DeliveryRepository interface {
	// FindByID retrieves a delivery with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)

	// FindAll retrieves deliveries ordered by date descending
	FindAll(ctx context.Context, filter shared.Filter) ([]*Delivery, error)

	// FindByStatus retrieves deliveries in the given status
	FindByStatus(ctx context.Context, status DeliveryStatus, filter shared.Filter) ([]*Delivery, error)

	// FindByVendor retrieves deliveries from the given vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]*Delivery, error)

	// Save persists a delivery and its lines (create or update)
	Save(ctx context.Context, delivery *Delivery) error

	// Delete removes a delivery; callers must enforce that only drafts and
	// cancelled deliveries are deletable
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of deliveries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
