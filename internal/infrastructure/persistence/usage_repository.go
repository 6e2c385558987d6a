package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/usage"
	"gorm.io/gorm"
)

// GormUsageRepository implements usage.UsageRepository using GORM
type GormUsageRepository struct {
	db *gorm.DB
}

// NewGormUsageRepository creates a new GormUsageRepository
func NewGormUsageRepository(db *gorm.DB) *GormUsageRepository {
	return &GormUsageRepository{db: db}
}

// FindByID finds a usage record with its lines by ID
func (r *GormUsageRepository) FindByID(ctx context.Context, id uuid.UUID) (*usage.Usage, error) {
	var u usage.Usage
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindAll finds usage records ordered by date descending
func (r *GormUsageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*usage.Usage, error) {
	var usages []*usage.Usage
	query := r.applyFilter(r.db.WithContext(ctx).Model(&usage.Usage{}), filter)
	if err := query.Preload("Lines").Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// FindByOutlet finds usage records for the given outlet
func (r *GormUsageRepository) FindByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]*usage.Usage, error) {
	var usages []*usage.Usage
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&usage.Usage{}).Where("outlet_id = ?", outletID),
		filter,
	)
	if err := query.Preload("Lines").Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// FindByBatch finds usage records that consumed from the given batch
func (r *GormUsageRepository) FindByBatch(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]*usage.Usage, error) {
	var usages []*usage.Usage
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&usage.Usage{}).
			Joins("JOIN usage_lines ON usage_lines.usage_id = usages.id").
			Where("usage_lines.batch_id = ?", batchID).
			Distinct("usages.*"),
		filter,
	)
	if err := query.Preload("Lines").Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// Save persists a usage record and reconciles its lines. Updates to an
// existing record carry a version predicate; a stale writer affects zero
// rows and gets ErrConcurrencyConflict.
func (r *GormUsageRepository) Save(ctx context.Context, u *usage.Usage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&usage.Usage{}).Where("id = ?", u.ID).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := tx.Omit("Lines").Create(u).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&usage.Usage{}).
				Where("id = ? AND version = ?", u.ID, u.Version-1).
				Updates(map[string]interface{}{
					"outlet_id":  u.OutletID,
					"date":       u.Date,
					"notes":      u.Notes,
					"version":    u.Version,
					"updated_at": u.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrConcurrencyConflict
			}
		}

		currentLineIDs := make([]uuid.UUID, len(u.Lines))
		for i, line := range u.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("usage_id = ? AND id NOT IN ?", u.ID, currentLineIDs).
				Delete(&usage.UsageLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("usage_id = ?", u.ID).
				Delete(&usage.UsageLine{}).Error; err != nil {
				return err
			}
		}

		for i := range u.Lines {
			u.Lines[i].UsageID = u.ID
			if err := tx.Save(&u.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a usage record and its lines
func (r *GormUsageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("usage_id = ?", id).Delete(&usage.UsageLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&usage.Usage{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts usage records matching the filter
func (r *GormUsageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&usage.Usage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormUsageRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = paginate(query, filter)

	if filter.OrderBy != "" {
		if sortField := ValidateSortField(filter.OrderBy, UsageSortFields, ""); sortField != "" {
			return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		}
	}
	return query.Order("date DESC, created_at DESC")
}

var _ usage.UsageRepository = (*GormUsageRepository)(nil)
