package usage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// UsageLine records one quantity consumed from one batch
type UsageLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	UsageID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UsageLine) TableName() string {
	return "usage_lines"
}

// NewUsageLine creates a new usage line
func NewUsageLine(usageID, batchID uuid.UUID, quantity decimal.Decimal) (*UsageLine, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &UsageLine{
		ID:        uuid.New(),
		UsageID:   usageID,
		BatchID:   batchID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Usage represents one consumption event at an outlet: which batches were
// drawn down, by how much, and when
type Usage struct {
	shared.BaseAggregateRoot
	OutletID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Date     time.Time   `gorm:"not null;index"`
	Notes    string      `gorm:"type:text"`
	Lines    []UsageLine `gorm:"foreignKey:UsageID;references:ID"`
}

// TableName returns the table name for GORM
func (Usage) TableName() string {
	return "usages"
}

// NewUsage creates a new usage record
func NewUsage(outletID uuid.UUID, date time.Time, notes string) (*Usage, error) {
	if outletID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OUTLET", "Outlet ID cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Usage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OutletID:          outletID,
		Date:              date,
		Notes:             notes,
		Lines:             make([]UsageLine, 0),
	}, nil
}

// AddLine records a consumption line. The caller decrements the referenced
// batch in the same transaction; the line itself only validates its shape.
func (u *Usage) AddLine(batchID uuid.UUID, quantity decimal.Decimal) (*UsageLine, error) {
	line, err := NewUsageLine(u.ID, batchID, quantity)
	if err != nil {
		return nil, err
	}

	u.Lines = append(u.Lines, *line)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return line, nil
}

// RemoveLine deletes a consumption line and returns it so the caller can
// restore the removed quantity to the batch
func (u *Usage) RemoveLine(lineID uuid.UUID) (*UsageLine, error) {
	for i := range u.Lines {
		if u.Lines[i].ID == lineID {
			removed := u.Lines[i]
			u.Lines = append(u.Lines[:i], u.Lines[i+1:]...)
			u.UpdatedAt = time.Now()
			u.IncrementVersion()
			return &removed, nil
		}
	}

	return nil, shared.NewDomainError("LINE_NOT_FOUND", "Usage line not found")
}

// GetLine returns the line with the given ID, or nil
func (u *Usage) GetLine(lineID uuid.UUID) *UsageLine {
	for i := range u.Lines {
		if u.Lines[i].ID == lineID {
			return &u.Lines[i]
		}
	}
	return nil
}

// SetNotes updates the free-form notes
func (u *Usage) SetNotes(notes string) {
	u.Notes = notes
	u.UpdatedAt = time.Now()
}

// UpdateHeader updates the record's date and notes
func (u *Usage) UpdateHeader(date time.Time, notes string) {
	if !date.IsZero() {
		u.Date = date
	}
	u.Notes = notes
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// LineCount returns the number of consumption lines
func (u *Usage) LineCount() int {
	return len(u.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (u *Usage) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range u.Lines {
		total = total.Add(u.Lines[i].Quantity)
	}
	return total
}
