package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// UnitOfMeasure represents how a product quantity is counted
type UnitOfMeasure string

const (
	UomUnit     UnitOfMeasure = "unit"
	UomKilogram UnitOfMeasure = "kg"
	UomLitre    UnitOfMeasure = "litre"
	UomPack     UnitOfMeasure = "pack"
	UomBox      UnitOfMeasure = "box"
)

// IsValid checks if the value is a known unit of measure
func (u UnitOfMeasure) IsValid() bool {
	switch u {
	case UomUnit, UomKilogram, UomLitre, UomPack, UomBox:
		return true
	}
	return false
}

// String returns the string representation of UnitOfMeasure
func (u UnitOfMeasure) String() string {
	return string(u)
}

// Product represents a stocked product in the catalog.
// Each product belongs to one outlet and carries a default storage location
// used to prefill delivery lines.
type Product struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Brand        string          `gorm:"type:varchar(200)"`
	OutletID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID   uuid.UUID       `gorm:"type:uuid;not null"`
	Uom          UnitOfMeasure   `gorm:"type:varchar(20);not null;default:'unit'"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, brand string, outletID, locationID uuid.UUID, uom UnitOfMeasure) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if outletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if uom == "" {
		uom = UomUnit
	}
	if !uom.IsValid() {
		return nil, shared.NewDomainError("INVALID_UOM", "Unknown unit of measure")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Brand:             brand,
		OutletID:          outletID,
		LocationID:        locationID,
		Uom:               uom,
		ReorderLevel:      decimal.Zero,
		Active:            true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Brand = brand
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDefaultLocation changes the product's default storage location
func (p *Product) SetDefaultLocation(locationID uuid.UUID) error {
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}

	p.LocationID = locationID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetReorderLevel sets the minimum quantity before reordering is needed
func (p *Product) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Archive hides the product without deleting it, preserving history
func (p *Product) Archive() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Restore makes an archived product visible again
func (p *Product) Restore() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
