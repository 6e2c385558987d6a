package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted field", func(t *testing.T) {
		assert.Equal(t, "expiry_date", ValidateSortField("expiry_date", BatchSortFields, "created_at"))
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("quantity; DROP TABLE batches", BatchSortFields, "created_at"))
	})

	t.Run("empty input falls back to default", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("", CatalogSortFields, "name"))
	})

	t.Run("trims whitespace", func(t *testing.T) {
		assert.Equal(t, "date", ValidateSortField(" date ", DeliverySortFields, ""))
	})
}
