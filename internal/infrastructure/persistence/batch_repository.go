package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements inventory.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID, archived or not
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByIDForUpdate finds a batch by ID holding a row lock.
// Must run inside a transaction.
func (r *GormBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByKey finds the single active batch matching the key exactly.
// A nil expiry in the key matches only rows with no expiry date.
func (r *GormBatchRepository) FindByKey(ctx context.Context, key inventory.BatchKey) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.keyQuery(ctx, key).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByKeyForUpdate behaves like FindByKey but holds a row lock.
// Must run inside a transaction.
func (r *GormBatchRepository) FindByKeyForUpdate(ctx context.Context, key inventory.BatchKey) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.keyQuery(ctx, key).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func (r *GormBatchRepository) keyQuery(ctx context.Context, key inventory.BatchKey) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Where("product_id = ? AND outlet_id = ? AND location_id = ? AND active = ?",
			key.ProductID, key.OutletID, key.LocationID, true)
	if key.ExpiryDate != nil {
		return query.Where("expiry_date = ?", *key.ExpiryDate)
	}
	return query.Where("expiry_date IS NULL")
}

// FindAll finds active batches ordered by expiry date with no-expiry rows last
func (r *GormBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Batch{}).Where("active = ?", true),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByProduct finds active batches for a product
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Batch{}).
			Where("active = ? AND product_id = ?", true, productID),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByOutlet finds active batches for an outlet
func (r *GormBatchRepository) FindByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Batch{}).
			Where("active = ? AND outlet_id = ?", true, outletID),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindExpiringSoon finds active batches with stock that expire within the
// next withinDays days, past-due batches included, soonest first
func (r *GormBatchRepository) FindExpiringSoon(ctx context.Context, withinDays int, filter shared.Filter) ([]*inventory.Batch, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, withinDays)

	var batches []*inventory.Batch
	query := r.db.WithContext(ctx).Model(&inventory.Batch{}).
		Where("active = ? AND quantity > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", true, cutoff).
		Order("expiry_date ASC, created_at ASC")
	query = paginate(query, filter)

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindBelowReorder reports products whose total active stock has fallen to
// or below the product's reorder level. Products with a zero reorder level
// never alert.
func (r *GormBatchRepository) FindBelowReorder(ctx context.Context, filter shared.Filter) ([]*inventory.ReorderAlert, error) {
	var alerts []*inventory.ReorderAlert
	query := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name AS product_name, products.outlet_id AS outlet_id, "+
			"COALESCE(SUM(batches.quantity), 0) AS on_hand, products.reorder_level AS reorder_level").
		Joins("LEFT JOIN batches ON batches.product_id = products.id AND batches.active = ?", true).
		Where("products.active = ? AND products.reorder_level > 0", true).
		Group("products.id, products.name, products.outlet_id, products.reorder_level").
		Having("COALESCE(SUM(batches.quantity), 0) <= products.reorder_level").
		Order("products.name ASC")
	query = paginate(query, filter)

	if err := query.Scan(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Save creates or updates a batch. Updates carry a version predicate: a
// writer holding a stale copy affects zero rows and gets
// ErrConcurrencyConflict instead of silently overwriting. New batches start
// at version 1 and every mutation increments exactly once before save.
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	if batch.Version <= 1 {
		return r.db.WithContext(ctx).Create(batch).Error
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Where("id = ? AND version = ?", batch.ID, batch.Version-1).
		Updates(map[string]interface{}{
			"quantity":         batch.Quantity,
			"delivery_line_id": batch.DeliveryLineID,
			"active":           batch.Active,
			"version":          batch.Version,
			"updated_at":       batch.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts active batches matching the filter
func (r *GormBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Where("active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = paginate(query, filter)

	if filter.OrderBy != "" {
		if sortField := ValidateSortField(filter.OrderBy, BatchSortFields, ""); sortField != "" {
			return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		}
	}
	// Soonest expiry first; batches without an expiry sort last.
	return query.Order("expiry_date ASC NULLS LAST, created_at ASC")
}

// paginate applies page/page-size offsets shared by all repositories.
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
