package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// DeliveryStatus represents the status of a delivery
type DeliveryStatus string

const (
	DeliveryStatusDraft     DeliveryStatus = "DRAFT"
	DeliveryStatusConfirmed DeliveryStatus = "CONFIRMED"
	DeliveryStatusCancelled DeliveryStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusDraft, DeliveryStatusConfirmed, DeliveryStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	switch s {
	case DeliveryStatusDraft:
		return target == DeliveryStatusConfirmed || target == DeliveryStatusCancelled
	case DeliveryStatusConfirmed, DeliveryStatusCancelled:
		return false // Terminal states
	}
	return false
}

// DeliveryLine represents one product being received on a delivery
type DeliveryLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	DeliveryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	OutletID   uuid.UUID       `gorm:"type:uuid;not null"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpiryDate *time.Time
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryLine) TableName() string {
	return "delivery_lines"
}

// NewDeliveryLine creates a new delivery line
func NewDeliveryLine(deliveryID, productID, outletID, locationID uuid.UUID, quantity decimal.Decimal, expiryDate *time.Time) (*DeliveryLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if outletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &DeliveryLine{
		ID:         uuid.New(),
		DeliveryID: deliveryID,
		ProductID:  productID,
		OutletID:   outletID,
		LocationID: locationID,
		Quantity:   quantity,
		ExpiryDate: expiryDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update replaces the line's editable fields
func (l *DeliveryLine) Update(outletID, locationID uuid.UUID, quantity decimal.Decimal, expiryDate *time.Time) error {
	if outletID == uuid.Nil {
		return shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	l.OutletID = outletID
	l.LocationID = locationID
	l.Quantity = quantity
	l.ExpiryDate = expiryDate
	l.UpdatedAt = time.Now()

	return nil
}

// Delivery represents an incoming shipment from a vendor. It stays editable
// while in draft; confirming it posts every line to the batch ledger and
// freezes the record.
type Delivery struct {
	shared.BaseAggregateRoot
	Reference   string         `gorm:"type:varchar(100)"`
	VendorID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	OutletID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date        time.Time      `gorm:"not null"`
	Lines       []DeliveryLine `gorm:"foreignKey:DeliveryID;references:ID"`
	Status      DeliveryStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes       string         `gorm:"type:text"`
	ConfirmedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "deliveries"
}

// NewDelivery creates a new draft delivery
func NewDelivery(reference string, vendorID, outletID uuid.UUID, date time.Time) (*Delivery, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if outletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if len(reference) > 100 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 100 characters")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Delivery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         reference,
		VendorID:          vendorID,
		OutletID:          outletID,
		Date:              date,
		Lines:             make([]DeliveryLine, 0),
		Status:            DeliveryStatusDraft,
	}, nil
}

// AddLine adds a line to a draft delivery. Each line carries its own outlet
// so a single delivery can receive stock for more than one outlet.
func (d *Delivery) AddLine(productID, outletID, locationID uuid.UUID, quantity decimal.Decimal, expiryDate *time.Time) (*DeliveryLine, error) {
	if err := d.ensureEditable(); err != nil {
		return nil, err
	}

	line, err := NewDeliveryLine(d.ID, productID, outletID, locationID, quantity, expiryDate)
	if err != nil {
		return nil, err
	}

	d.Lines = append(d.Lines, *line)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return line, nil
}

// UpdateLine updates a line on a draft delivery
func (d *Delivery) UpdateLine(lineID, outletID, locationID uuid.UUID, quantity decimal.Decimal, expiryDate *time.Time) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}

	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			if err := d.Lines[i].Update(outletID, locationID, quantity, expiryDate); err != nil {
				return err
			}
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Delivery line not found")
}

// RemoveLine removes a line from a draft delivery
func (d *Delivery) RemoveLine(lineID uuid.UUID) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}

	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Delivery line not found")
}

// SetNotes sets free-form notes; allowed in any status since it does not
// affect posted stock
func (d *Delivery) SetNotes(notes string) {
	d.Notes = notes
	d.UpdatedAt = time.Now()
}

// UpdateHeader updates the delivery's header fields while in draft
func (d *Delivery) UpdateHeader(reference string, vendorID uuid.UUID, date time.Time) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if len(reference) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 100 characters")
	}

	d.Reference = reference
	d.VendorID = vendorID
	if !date.IsZero() {
		d.Date = date
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Confirm moves the delivery from draft to confirmed. The caller is
// responsible for posting the lines to the batch ledger in the same
// transaction.
func (d *Delivery) Confirm() error {
	if !d.Status.CanTransitionTo(DeliveryStatusConfirmed) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot confirm delivery in status "+d.Status.String())
	}
	if len(d.Lines) == 0 {
		return shared.NewDomainError("EMPTY_DELIVERY", "Cannot confirm a delivery with no lines")
	}

	now := time.Now()
	d.Status = DeliveryStatusConfirmed
	d.ConfirmedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// Cancel moves the delivery from draft to cancelled. No stock is touched
// because draft deliveries have never been posted.
func (d *Delivery) Cancel() error {
	if !d.Status.CanTransitionTo(DeliveryStatusCancelled) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot cancel delivery in status "+d.Status.String())
	}

	now := time.Now()
	d.Status = DeliveryStatusCancelled
	d.CancelledAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// IsDraft returns true if the delivery is in draft status
func (d *Delivery) IsDraft() bool {
	return d.Status == DeliveryStatusDraft
}

// IsConfirmed returns true if the delivery has been confirmed
func (d *Delivery) IsConfirmed() bool {
	return d.Status == DeliveryStatusConfirmed
}

// IsTerminal returns true if the delivery is in a terminal status
func (d *Delivery) IsTerminal() bool {
	return d.Status == DeliveryStatusConfirmed || d.Status == DeliveryStatusCancelled
}

// CanModify returns true if lines and header fields may still change
func (d *Delivery) CanModify() bool {
	return d.Status == DeliveryStatusDraft
}

// GetLine returns the line with the given ID, or nil
func (d *Delivery) GetLine(lineID uuid.UUID) *DeliveryLine {
	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			return &d.Lines[i]
		}
	}
	return nil
}

// LineCount returns the number of lines on the delivery
func (d *Delivery) LineCount() int {
	return len(d.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (d *Delivery) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range d.Lines {
		total = total.Add(d.Lines[i].Quantity)
	}
	return total
}

// ensureEditable rejects structural changes once the delivery has left draft
func (d *Delivery) ensureEditable() error {
	if !d.CanModify() {
		return shared.NewDomainError("LOCKED_RECORD",
			"Delivery in status "+d.Status.String()+" cannot be modified")
	}
	return nil
}
