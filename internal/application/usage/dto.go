package usage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/usage"
)

// CreateUsageRequest represents a request to record consumption
type CreateUsageRequest struct {
	OutletID uuid.UUID          `json:"outlet_id" binding:"required"`
	Date     *time.Time         `json:"date"`
	Notes    string             `json:"notes"`
	Lines    []UsageLineRequest `json:"lines"`
}

// UsageLineRequest represents one batch draw-down
type UsageLineRequest struct {
	BatchID  uuid.UUID       `json:"batch_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// UpdateUsageRequest represents a request to update a usage record's header
type UpdateUsageRequest struct {
	Date  *time.Time `json:"date"`
	Notes *string    `json:"notes"`
}

// CheckQuantityRequest asks whether a draw-down would exceed available stock
type CheckQuantityRequest struct {
	BatchID  uuid.UUID       `json:"batch_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// CheckQuantityResponse reports the advisory result. Warning is empty when
// the quantity fits in the batch.
type CheckQuantityResponse struct {
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
	Warning   string          `json:"warning,omitempty"`
}

// UsageLineResponse represents a usage line in API responses. Available is
// the batch's remaining quantity at the moment of display, filled in on
// single-record reads; it is a derived view, never stored.
type UsageLineResponse struct {
	ID        uuid.UUID        `json:"id"`
	BatchID   uuid.UUID        `json:"batch_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Available *decimal.Decimal `json:"available,omitempty"`
}

// UsageResponse represents a usage record in API responses
type UsageResponse struct {
	ID        uuid.UUID           `json:"id"`
	OutletID  uuid.UUID           `json:"outlet_id"`
	Date      time.Time           `json:"date"`
	Notes     string              `json:"notes,omitempty"`
	Lines     []UsageLineResponse `json:"lines"`
	Version   int                 `json:"version"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToUsageResponse converts a usage record to its response representation
func ToUsageResponse(u *usage.Usage) UsageResponse {
	lines := make([]UsageLineResponse, 0, len(u.Lines))
	for i := range u.Lines {
		lines = append(lines, UsageLineResponse{
			ID:       u.Lines[i].ID,
			BatchID:  u.Lines[i].BatchID,
			Quantity: u.Lines[i].Quantity,
		})
	}
	return UsageResponse{
		ID:        u.ID,
		OutletID:  u.OutletID,
		Date:      u.Date,
		Notes:     u.Notes,
		Lines:     lines,
		Version:   u.Version,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
