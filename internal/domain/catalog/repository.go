package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID, archived or not
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds active products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByOutlet finds active products belonging to an outlet
	FindByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts active products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OutletRepository defines the interface for outlet persistence
type OutletRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Outlet, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Outlet, error)
	Save(ctx context.Context, outlet *Outlet) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, error)
	Save(ctx context.Context, location *Location) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)
	Save(ctx context.Context, vendor *Vendor) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
