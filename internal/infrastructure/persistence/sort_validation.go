package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to DESC for anything unrecognized.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the requested sort column against a whitelist.
// Column names reach SQL verbatim, so anything off the list falls back to
// defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// BatchSortFields contains allowed sort fields for stock batches.
var BatchSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"expiry_date": true,
	"quantity":    true,
}

// DeliverySortFields contains allowed sort fields for deliveries.
var DeliverySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"reference":  true,
	"status":     true,
}

// UsageSortFields contains allowed sort fields for usage records.
var UsageSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"date":       true,
}

// CatalogSortFields contains allowed sort fields for reference data.
var CatalogSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}
