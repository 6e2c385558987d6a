package catalog

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// LocationType represents a section of the stock room
type LocationType string

const (
	LocationTypeFreezer1  LocationType = "freezer1"
	LocationTypeFreezer2  LocationType = "freezer2"
	LocationTypeSubway    LocationType = "subway"
	LocationTypeStarbucks LocationType = "starbucks"
	LocationTypePop       LocationType = "pop"
)

// IsValid checks if the value is a known location type
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeFreezer1, LocationTypeFreezer2, LocationTypeSubway, LocationTypeStarbucks, LocationTypePop:
		return true
	}
	return false
}

// String returns the string representation of LocationType
func (t LocationType) String() string {
	return string(t)
}

// Location represents a named storage location in the stock room
// (e.g. Freezer 1, Grill Shelf).
type Location struct {
	shared.BaseAggregateRoot
	Name        string       `gorm:"type:varchar(200);not null;index"`
	Type        LocationType `gorm:"type:varchar(20);not null"`
	Description string       `gorm:"type:text"`
	Active      bool         `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new storage location
func NewLocation(name string, locationType LocationType, description string) (*Location, error) {
	if err := validateRefName(name, "Location"); err != nil {
		return nil, err
	}
	if !locationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION_TYPE", "Unknown location type")
	}

	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Type:              locationType,
		Description:       description,
		Active:            true,
	}, nil
}

// Update updates the location's information
func (l *Location) Update(name, description string) error {
	if err := validateRefName(name, "Location"); err != nil {
		return err
	}

	l.Name = strings.TrimSpace(name)
	l.Description = description
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Archive hides the location without deleting it
func (l *Location) Archive() {
	l.Active = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Restore makes an archived location visible again
func (l *Location) Restore() {
	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
