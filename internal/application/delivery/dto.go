package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/delivery"
)

// CreateDeliveryRequest represents a request to create a draft delivery
type CreateDeliveryRequest struct {
	Reference string                `json:"reference" binding:"max=100"`
	VendorID  uuid.UUID             `json:"vendor_id" binding:"required"`
	OutletID  uuid.UUID             `json:"outlet_id" binding:"required"`
	Date      *time.Time            `json:"date"`
	Notes     string                `json:"notes"`
	Lines     []DeliveryLineRequest `json:"lines"`
}

// DeliveryLineRequest represents one line on a create or add-line request.
// OutletID and LocationID may be omitted; they default to the product's
// owning outlet and storage location.
type DeliveryLineRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	OutletID   *uuid.UUID      `json:"outlet_id"`
	LocationID *uuid.UUID      `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// UpdateDeliveryRequest represents a request to update a draft delivery's header
type UpdateDeliveryRequest struct {
	Reference *string    `json:"reference"`
	VendorID  *uuid.UUID `json:"vendor_id"`
	Date      *time.Time `json:"date"`
	Notes     *string    `json:"notes"`
}

// UpdateDeliveryLineRequest represents a request to update a line on a draft delivery
type UpdateDeliveryLineRequest struct {
	OutletID   *uuid.UUID       `json:"outlet_id"`
	LocationID *uuid.UUID       `json:"location_id"`
	Quantity   *decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time       `json:"expiry_date"`
}

// DeliveryLineResponse represents a delivery line in API responses
type DeliveryLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	OutletID   uuid.UUID       `json:"outlet_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// DeliveryResponse represents a delivery in API responses
type DeliveryResponse struct {
	ID          uuid.UUID              `json:"id"`
	Reference   string                 `json:"reference,omitempty"`
	VendorID    uuid.UUID              `json:"vendor_id"`
	OutletID    uuid.UUID              `json:"outlet_id"`
	Date        time.Time              `json:"date"`
	Status      string                 `json:"status"`
	Notes       string                 `json:"notes,omitempty"`
	Lines       []DeliveryLineResponse `json:"lines"`
	ConfirmedAt *time.Time             `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time             `json:"cancelled_at,omitempty"`
	Version     int                    `json:"version"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ReviewLineResponse is a delivery line enriched for pre-confirm inspection
type ReviewLineResponse struct {
	DeliveryLineResponse
	ProductName string `json:"product_name"`
	Uom         string `json:"uom"`
}

// ReviewResponse is a read-only snapshot of a delivery as it would post to
// the ledger. CanConfirm is false when confirming would be rejected; Warnings
// explain why.
type ReviewResponse struct {
	Delivery   DeliveryResponse     `json:"delivery"`
	Lines      []ReviewLineResponse `json:"lines"`
	CanConfirm bool                 `json:"can_confirm"`
	Warnings   []string             `json:"warnings,omitempty"`
}

// ToDeliveryResponse converts a delivery to its response representation
func ToDeliveryResponse(d *delivery.Delivery) DeliveryResponse {
	lines := make([]DeliveryLineResponse, 0, len(d.Lines))
	for i := range d.Lines {
		lines = append(lines, ToDeliveryLineResponse(&d.Lines[i]))
	}
	return DeliveryResponse{
		ID:          d.ID,
		Reference:   d.Reference,
		VendorID:    d.VendorID,
		OutletID:    d.OutletID,
		Date:        d.Date,
		Status:      d.Status.String(),
		Notes:       d.Notes,
		Lines:       lines,
		ConfirmedAt: d.ConfirmedAt,
		CancelledAt: d.CancelledAt,
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDeliveryLineResponse converts a delivery line to its response representation
func ToDeliveryLineResponse(l *delivery.DeliveryLine) DeliveryLineResponse {
	return DeliveryLineResponse{
		ID:         l.ID,
		ProductID:  l.ProductID,
		OutletID:   l.OutletID,
		LocationID: l.LocationID,
		Quantity:   l.Quantity,
		ExpiryDate: l.ExpiryDate,
	}
}
