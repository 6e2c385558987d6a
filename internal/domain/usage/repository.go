package usage

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// UsageRepository defines the persistence port for usage records
type UsageRepository interface {
	// FindByID retrieves a usage record with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Usage, error)

	// FindAll retrieves usage records ordered by date descending
	FindAll(ctx context.Context, filter shared.Filter) ([]*Usage, error)

	// FindByOutlet retrieves usage records for the given outlet
	FindByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]*Usage, error)

	// FindByBatch retrieves usage records that consumed from the given batch
	FindByBatch(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]*Usage, error)

	// Save persists a usage record and its lines (create or update)
	Save(ctx context.Context, usage *Usage) error

	// Delete removes a usage record; callers restore consumed quantities to
	// their batches in the same transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of usage records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
