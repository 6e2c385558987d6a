package catalog

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Outlet represents a sales outlet that owns products and consumes stock
// (e.g. Subway, Starbucks, Grill). Pure reference data.
type Outlet struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;index"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Outlet) TableName() string {
	return "outlets"
}

// NewOutlet creates a new outlet
func NewOutlet(name, description string) (*Outlet, error) {
	if err := validateRefName(name, "Outlet"); err != nil {
		return nil, err
	}

	return &Outlet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
	}, nil
}

// Update updates the outlet's information
func (o *Outlet) Update(name, description string) error {
	if err := validateRefName(name, "Outlet"); err != nil {
		return err
	}

	o.Name = strings.TrimSpace(name)
	o.Description = description
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

func validateRefName(name, kind string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", kind+" name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", kind+" name cannot exceed 200 characters")
	}
	return nil
}
