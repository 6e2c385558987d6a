package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// BatchKey is the reconciliation key identifying a batch: one product, in one
// outlet, at one storage location, sharing one expiry date. A nil expiry date
// is a distinct key value ("no expiry"), never a wildcard.
type BatchKey struct {
	ProductID  uuid.UUID
	OutletID   uuid.UUID
	LocationID uuid.UUID
	ExpiryDate *time.Time
}

// NewBatchKey creates a batch key, normalizing the expiry to a date-only value
func NewBatchKey(productID, outletID, locationID uuid.UUID, expiryDate *time.Time) BatchKey {
	return BatchKey{
		ProductID:  productID,
		OutletID:   outletID,
		LocationID: locationID,
		ExpiryDate: normalizeDate(expiryDate),
	}
}

// Validate checks that all required key components are present
func (k BatchKey) Validate() error {
	if k.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if k.OutletID == uuid.Nil {
		return shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if k.LocationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	return nil
}

// Equal reports whether two keys identify the same batch. The comparison is
// total: absent expiry dates match only other absent expiry dates.
func (k BatchKey) Equal(other BatchKey) bool {
	if k.ProductID != other.ProductID || k.OutletID != other.OutletID || k.LocationID != other.LocationID {
		return false
	}
	if (k.ExpiryDate == nil) != (other.ExpiryDate == nil) {
		return false
	}
	if k.ExpiryDate == nil {
		return true
	}
	return k.ExpiryDate.Equal(*other.ExpiryDate)
}

// Batch represents a quantity of one product at one outlet/location sharing
// one expiry date. It is the unit of the batch ledger: at most one active
// batch exists per key, and its quantity never goes negative.
type Batch struct {
	shared.BaseAggregateRoot
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OutletID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpiryDate     *time.Time      `gorm:"index"`
	DeliveryLineID *uuid.UUID      `gorm:"type:uuid"` // Source delivery line, for traceability
	Active         bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// NewBatch creates a new stock batch for a key that has no active batch yet
func NewBatch(key BatchKey, quantity decimal.Decimal, deliveryLineID *uuid.UUID) (*Batch, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &Batch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         key.ProductID,
		OutletID:          key.OutletID,
		LocationID:        key.LocationID,
		Quantity:          quantity,
		ExpiryDate:        key.ExpiryDate,
		DeliveryLineID:    deliveryLineID,
		Active:            true,
	}, nil
}

// Key returns the batch's reconciliation key
func (b *Batch) Key() BatchKey {
	return BatchKey{
		ProductID:  b.ProductID,
		OutletID:   b.OutletID,
		LocationID: b.LocationID,
		ExpiryDate: b.ExpiryDate,
	}
}

// Add merges an incoming quantity into the batch
func (b *Batch) Add(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	b.Quantity = b.Quantity.Add(quantity)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Remove decrements the batch quantity. It fails with INSUFFICIENT_STOCK when
// the requested amount exceeds what is recorded; the quantity is left
// unchanged in that case and never goes negative.
func (b *Batch) Remove(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity.GreaterThan(b.Quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot remove %s, only %s available", quantity.String(), b.Quantity.String()))
	}

	b.Quantity = b.Quantity.Sub(quantity)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// CanRemove reports whether the requested quantity is currently available
func (b *Batch) CanRemove(quantity decimal.Decimal) bool {
	return quantity.LessThanOrEqual(b.Quantity)
}

// HasStock returns true if the batch has remaining quantity
func (b *Batch) HasStock() bool {
	return b.Quantity.GreaterThan(decimal.Zero)
}

// IsExpired returns true if the batch has expired
func (b *Batch) IsExpired() bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(time.Now())
}

// WillExpireWithin returns true if the batch will expire within the given duration
func (b *Batch) WillExpireWithin(duration time.Duration) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(time.Now().Add(duration))
}

// DaysUntilExpiry returns the number of days until expiry, -1 if no expiry date
func (b *Batch) DaysUntilExpiry() int {
	if b.ExpiryDate == nil {
		return -1
	}
	return int(time.Until(*b.ExpiryDate).Hours() / 24)
}

// Archive hides the batch without deleting it, preserving audit history
func (b *Batch) Archive() {
	b.Active = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Label builds the display label used to disambiguate batches in pickers and
// search results: product name, formatted expiry, location, outlet and a
// quantity label, joined with a fixed separator. Whole-number quantities
// render without a decimal part. Falls back to a generic "batch {id}" label
// when no attributes are set.
func (b *Batch) Label(productName, locationName, outletName string) string {
	parts := make([]string, 0, 5)
	if productName != "" {
		parts = append(parts, productName)
	}
	if b.ExpiryDate != nil {
		parts = append(parts, "Exp: "+b.ExpiryDate.Format("Jan 02, 2006"))
	}
	if locationName != "" {
		parts = append(parts, locationName)
	}
	if outletName != "" {
		parts = append(parts, outletName)
	}
	if productName == "" && b.ExpiryDate == nil && locationName == "" && outletName == "" {
		return fmt.Sprintf("batch %s", b.ID)
	}
	parts = append(parts, "Qty: "+QuantityLabel(b.Quantity))
	return strings.Join(parts, " · ")
}

// ShortLabel builds the compact name used in list views: the expiry date when
// the batch has one, otherwise the product name.
func (b *Batch) ShortLabel(productName string) string {
	if b.ExpiryDate != nil {
		return "Expiring " + b.ExpiryDate.Format("Jan 02, 2006")
	}
	if productName != "" {
		return productName
	}
	return "Batch"
}

// QuantityLabel renders a quantity as an integer string when the value is a
// whole number, else as the raw decimal.
func QuantityLabel(quantity decimal.Decimal) string {
	if quantity.IsInteger() {
		return quantity.Truncate(0).String()
	}
	return quantity.String()
}

// normalizeDate truncates a timestamp to its date component in UTC
func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
