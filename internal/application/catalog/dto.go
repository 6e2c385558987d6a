package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
)

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Brand        string           `json:"brand" binding:"max=200"`
	OutletID     uuid.UUID        `json:"outlet_id" binding:"required"`
	LocationID   uuid.UUID        `json:"location_id" binding:"required"`
	Uom          string           `json:"uom"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Brand        *string          `json:"brand"`
	LocationID   *uuid.UUID       `json:"location_id"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand,omitempty"`
	OutletID     uuid.UUID       `json:"outlet_id"`
	LocationID   uuid.UUID       `json:"location_id"`
	Uom          string          `json:"uom"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Active       bool            `json:"active"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its response representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		OutletID:     p.OutletID,
		LocationID:   p.LocationID,
		Uom:          p.Uom.String(),
		ReorderLevel: p.ReorderLevel,
		Active:       p.Active,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ==================== Outlet DTOs ====================

// CreateOutletRequest represents a request to create an outlet
type CreateOutletRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// UpdateOutletRequest represents a request to update an outlet
type UpdateOutletRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// OutletResponse represents an outlet in API responses
type OutletResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToOutletResponse converts an outlet to its response representation
func ToOutletResponse(o *catalog.Outlet) OutletResponse {
	return OutletResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ==================== Location DTOs ====================

// CreateLocationRequest represents a request to create a storage location
type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

// UpdateLocationRequest represents a request to update a storage location
type UpdateLocationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// LocationResponse represents a storage location in API responses
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToLocationResponse converts a location to its response representation
func ToLocationResponse(l *catalog.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type.String(),
		Description: l.Description,
		Active:      l.Active,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ==================== Vendor DTOs ====================

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name *string `json:"name"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToVendorResponse converts a vendor to its response representation
func ToVendorResponse(v *catalog.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Active:    v.Active,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
