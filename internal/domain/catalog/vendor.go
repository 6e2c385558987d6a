package catalog

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Vendor represents a supplier that delivers stock
type Vendor struct {
	shared.BaseAggregateRoot
	Name   string `gorm:"type:varchar(200);not null;index"`
	Active bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor
func NewVendor(name string) (*Vendor, error) {
	if err := validateRefName(name, "Vendor"); err != nil {
		return nil, err
	}

	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}, nil
}

// Update updates the vendor's information
func (v *Vendor) Update(name string) error {
	if err := validateRefName(name, "Vendor"); err != nil {
		return err
	}

	v.Name = strings.TrimSpace(name)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// Archive hides the vendor; past deliveries remain
func (v *Vendor) Archive() {
	v.Active = false
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Restore makes an archived vendor visible again
func (v *Vendor) Restore() {
	v.Active = true
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}
