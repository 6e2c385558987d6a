package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOutletRepository implements catalog.OutletRepository using GORM
type GormOutletRepository struct {
	db *gorm.DB
}

// NewGormOutletRepository creates a new GormOutletRepository
func NewGormOutletRepository(db *gorm.DB) *GormOutletRepository {
	return &GormOutletRepository{db: db}
}

// FindByID finds an outlet by its ID
func (r *GormOutletRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Outlet, error) {
	var outlet catalog.Outlet
	if err := r.db.WithContext(ctx).First(&outlet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outlet, nil
}

// FindAll finds outlets matching the filter
func (r *GormOutletRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Outlet, error) {
	var outlets []catalog.Outlet
	query := r.db.WithContext(ctx).Model(&catalog.Outlet{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = paginate(query, filter).Order("name ASC")

	if err := query.Find(&outlets).Error; err != nil {
		return nil, err
	}
	return outlets, nil
}

// Save creates or updates an outlet
func (r *GormOutletRepository) Save(ctx context.Context, outlet *catalog.Outlet) error {
	return r.db.WithContext(ctx).Save(outlet).Error
}

// Count counts outlets matching the filter
func (r *GormOutletRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Outlet{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ catalog.OutletRepository = (*GormOutletRepository)(nil)
