package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// AddStockRequest represents a request to add stock to the ledger
type AddStockRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	OutletID   uuid.UUID       `json:"outlet_id" binding:"required"`
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// RemoveStockRequest represents a request to remove stock from a batch
type RemoveStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	OutletID       uuid.UUID       `json:"outlet_id"`
	OutletName     string          `json:"outlet_name,omitempty"`
	LocationID     uuid.UUID       `json:"location_id"`
	LocationName   string          `json:"location_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	DeliveryLineID *uuid.UUID      `json:"delivery_line_id,omitempty"`
	Label          string          `json:"label"`
	Active         bool            `json:"active"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ReorderAlertResponse reports a product at or below its reorder level
type ReorderAlertResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	OutletID     uuid.UUID       `json:"outlet_id"`
	OnHand       decimal.Decimal `json:"on_hand"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// ToBatchResponse converts a batch to its response representation.
// Names may be empty when the caller did not resolve them.
func ToBatchResponse(b *inventory.Batch, productName, locationName, outletName string) BatchResponse {
	return BatchResponse{
		ID:             b.ID,
		ProductID:      b.ProductID,
		ProductName:    productName,
		OutletID:       b.OutletID,
		OutletName:     outletName,
		LocationID:     b.LocationID,
		LocationName:   locationName,
		Quantity:       b.Quantity,
		ExpiryDate:     b.ExpiryDate,
		DeliveryLineID: b.DeliveryLineID,
		Label:          b.Label(productName, locationName, outletName),
		Active:         b.Active,
		Version:        b.Version,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// ToReorderAlertResponse converts a reorder alert to its response representation
func ToReorderAlertResponse(a *inventory.ReorderAlert) ReorderAlertResponse {
	return ReorderAlertResponse{
		ProductID:    a.ProductID,
		ProductName:  a.ProductName,
		OutletID:     a.OutletID,
		OnHand:       a.OnHand,
		ReorderLevel: a.ReorderLevel,
	}
}
