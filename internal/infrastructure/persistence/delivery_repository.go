package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/delivery"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements delivery.DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery with its lines by ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	var d delivery.Delivery
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds deliveries ordered by date descending
func (r *GormDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*delivery.Delivery, error) {
	var deliveries []*delivery.Delivery
	query := r.applyFilter(r.db.WithContext(ctx).Model(&delivery.Delivery{}), filter)
	if err := query.Preload("Lines").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindByStatus finds deliveries in the given status
func (r *GormDeliveryRepository) FindByStatus(ctx context.Context, status delivery.DeliveryStatus, filter shared.Filter) ([]*delivery.Delivery, error) {
	var deliveries []*delivery.Delivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Delivery{}).Where("status = ?", status),
		filter,
	)
	if err := query.Preload("Lines").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindByVendor finds deliveries from the given vendor
func (r *GormDeliveryRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]*delivery.Delivery, error) {
	var deliveries []*delivery.Delivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Delivery{}).Where("vendor_id = ?", vendorID),
		filter,
	)
	if err := query.Preload("Lines").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// Save persists a delivery and reconciles its lines: removed lines are
// deleted, the rest are upserted. Updates to an existing header carry a
// version predicate; a stale writer affects zero rows and gets
// ErrConcurrencyConflict.
func (r *GormDeliveryRepository) Save(ctx context.Context, d *delivery.Delivery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&delivery.Delivery{}).Where("id = ?", d.ID).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := tx.Omit("Lines").Create(d).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&delivery.Delivery{}).
				Where("id = ? AND version = ?", d.ID, d.Version-1).
				Updates(map[string]interface{}{
					"reference":    d.Reference,
					"vendor_id":    d.VendorID,
					"outlet_id":    d.OutletID,
					"date":         d.Date,
					"status":       d.Status,
					"notes":        d.Notes,
					"confirmed_at": d.ConfirmedAt,
					"cancelled_at": d.CancelledAt,
					"version":      d.Version,
					"updated_at":   d.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrConcurrencyConflict
			}
		}

		currentLineIDs := make([]uuid.UUID, len(d.Lines))
		for i, line := range d.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("delivery_id = ? AND id NOT IN ?", d.ID, currentLineIDs).
				Delete(&delivery.DeliveryLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("delivery_id = ?", d.ID).
				Delete(&delivery.DeliveryLine{}).Error; err != nil {
				return err
			}
		}

		for i := range d.Lines {
			d.Lines[i].DeliveryID = d.ID
			if err := tx.Save(&d.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a delivery and its lines
func (r *GormDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("delivery_id = ?", id).Delete(&delivery.DeliveryLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&delivery.Delivery{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts deliveries matching the filter
func (r *GormDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&delivery.Delivery{})
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDeliveryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}

	query = paginate(query, filter)

	if filter.OrderBy != "" {
		if sortField := ValidateSortField(filter.OrderBy, DeliverySortFields, ""); sortField != "" {
			return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		}
	}
	return query.Order("date DESC, created_at DESC")
}

var _ delivery.DeliveryRepository = (*GormDeliveryRepository)(nil)
