package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, outletID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockOutletRepository is a mock implementation of OutletRepository
type MockOutletRepository struct {
	mock.Mock
}

func (m *MockOutletRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Outlet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Outlet), args.Error(1)
}

func (m *MockOutletRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Outlet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Outlet), args.Error(1)
}

func (m *MockOutletRepository) Save(ctx context.Context, outlet *catalog.Outlet) error {
	args := m.Called(ctx, outlet)
	return args.Error(0)
}

func (m *MockOutletRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationRepository is a mock implementation of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Location), args.Error(1)
}

func (m *MockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Location, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Location), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *catalog.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *catalog.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type catalogFixture struct {
	productRepo  *MockProductRepository
	outletRepo   *MockOutletRepository
	locationRepo *MockLocationRepository
	vendorRepo   *MockVendorRepository
	service      *CatalogService

	outlet   *catalog.Outlet
	location *catalog.Location
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	productRepo := new(MockProductRepository)
	outletRepo := new(MockOutletRepository)
	locationRepo := new(MockLocationRepository)
	vendorRepo := new(MockVendorRepository)

	outlet, err := catalog.NewOutlet("Main Street", "")
	require.NoError(t, err)
	location, err := catalog.NewLocation("Walk-in Freezer", catalog.LocationTypeFreezer1, "")
	require.NoError(t, err)

	return &catalogFixture{
		productRepo:  productRepo,
		outletRepo:   outletRepo,
		locationRepo: locationRepo,
		vendorRepo:   vendorRepo,
		service:      NewCatalogService(productRepo, outletRepo, locationRepo, vendorRepo),
		outlet:       outlet,
		location:     location,
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with reorder level", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.outletRepo.On("FindByID", mock.Anything, f.outlet.ID).Return(f.outlet, nil)
		f.locationRepo.On("FindByID", mock.Anything, f.location.ID).Return(f.location, nil)
		f.productRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		level := decimal.NewFromInt(5)
		resp, err := f.service.CreateProduct(ctx, CreateProductRequest{
			Name:         "Chicken Wings",
			Brand:        "FarmFresh",
			OutletID:     f.outlet.ID,
			LocationID:   f.location.ID,
			Uom:          "kg",
			ReorderLevel: &level,
		})

		require.NoError(t, err)
		assert.Equal(t, "Chicken Wings", resp.Name)
		assert.Equal(t, "kg", resp.Uom)
		assert.True(t, level.Equal(resp.ReorderLevel))
		assert.True(t, resp.Active)
	})

	t.Run("rejects unknown outlet", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.outletRepo.On("FindByID", mock.Anything, f.outlet.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateProduct(ctx, CreateProductRequest{
			Name:       "Chicken Wings",
			OutletID:   f.outlet.ID,
			LocationID: f.location.ID,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects archived default location", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.location.Archive()
		f.outletRepo.On("FindByID", mock.Anything, f.outlet.ID).Return(f.outlet, nil)
		f.locationRepo.On("FindByID", mock.Anything, f.location.ID).Return(f.location, nil)

		_, err := f.service.CreateProduct(ctx, CreateProductRequest{
			Name:       "Chicken Wings",
			OutletID:   f.outlet.ID,
			LocationID: f.location.ID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ARCHIVED_LOCATION", domainErr.Code)
	})

	t.Run("rejects invalid unit of measure", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.outletRepo.On("FindByID", mock.Anything, f.outlet.ID).Return(f.outlet, nil)
		f.locationRepo.On("FindByID", mock.Anything, f.location.ID).Return(f.location, nil)

		_, err := f.service.CreateProduct(ctx, CreateProductRequest{
			Name:       "Chicken Wings",
			OutletID:   f.outlet.ID,
			LocationID: f.location.ID,
			Uom:        "barrel",
		})

		assert.Error(t, err)
	})
}

func TestCatalogService_ArchiveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("archives and restores", func(t *testing.T) {
		f := newCatalogFixture(t)
		product, err := catalog.NewProduct("Chicken Wings", "", f.outlet.ID, f.location.ID, catalog.UomKilogram)
		require.NoError(t, err)

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.productRepo.On("Save", mock.Anything, product).Return(nil)

		require.NoError(t, f.service.ArchiveProduct(ctx, product.ID))
		assert.False(t, product.Active)

		require.NoError(t, f.service.RestoreProduct(ctx, product.ID))
		assert.True(t, product.Active)
	})
}

func TestCatalogService_Vendors(t *testing.T) {
	ctx := context.Background()

	t.Run("creates vendor", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.vendorRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.CreateVendor(ctx, CreateVendorRequest{Name: "Sysco"})

		require.NoError(t, err)
		assert.Equal(t, "Sysco", resp.Name)
		assert.True(t, resp.Active)
	})

	t.Run("renames vendor", func(t *testing.T) {
		f := newCatalogFixture(t)
		vendor, err := catalog.NewVendor("Sysco")
		require.NoError(t, err)

		f.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
		f.vendorRepo.On("Save", mock.Anything, vendor).Return(nil)

		name := "US Foods"
		resp, err := f.service.UpdateVendor(ctx, vendor.ID, UpdateVendorRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "US Foods", resp.Name)
	})

	t.Run("archives vendor", func(t *testing.T) {
		f := newCatalogFixture(t)
		vendor, err := catalog.NewVendor("Sysco")
		require.NoError(t, err)

		f.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
		f.vendorRepo.On("Save", mock.Anything, vendor).Return(nil)

		require.NoError(t, f.service.ArchiveVendor(ctx, vendor.ID))
		assert.False(t, vendor.Active)
	})
}

func TestCatalogService_Locations(t *testing.T) {
	ctx := context.Background()

	t.Run("creates location with typed section", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.locationRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.CreateLocation(ctx, CreateLocationRequest{
			Name: "Back Freezer",
			Type: "freezer2",
		})

		require.NoError(t, err)
		assert.Equal(t, "freezer2", resp.Type)
	})

	t.Run("rejects unknown section type", func(t *testing.T) {
		f := newCatalogFixture(t)

		_, err := f.service.CreateLocation(ctx, CreateLocationRequest{
			Name: "Attic",
			Type: "attic",
		})

		assert.Error(t, err)
		f.locationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
