package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// CatalogService manages the reference data the rest of the system points
// at: products, outlets, storage locations and vendors. Records referenced
// by history are archived, never deleted.
type CatalogService struct {
	productRepo  catalog.ProductRepository
	outletRepo   catalog.OutletRepository
	locationRepo catalog.LocationRepository
	vendorRepo   catalog.VendorRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productRepo catalog.ProductRepository,
	outletRepo catalog.OutletRepository,
	locationRepo catalog.LocationRepository,
	vendorRepo catalog.VendorRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		outletRepo:   outletRepo,
		locationRepo: locationRepo,
		vendorRepo:   vendorRepo,
	}
}

// ==================== Products ====================

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.outletRepo.FindByID(ctx, req.OutletID); err != nil {
		return nil, err
	}
	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.Active {
		return nil, shared.NewDomainError("ARCHIVED_LOCATION", "Default location is archived")
	}

	product, err := catalog.NewProduct(req.Name, req.Brand, req.OutletID, req.LocationID, catalog.UnitOfMeasure(req.Uom))
	if err != nil {
		return nil, err
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct retrieves a product by ID, archived ones included
func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts retrieves products; archived ones only when the filter asks
func (s *CatalogService) ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// ListProductsByOutlet retrieves active products stocked at one outlet
func (s *CatalogService) ListProductsByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByOutlet(ctx, outletID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// UpdateProduct updates a product's details
func (s *CatalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	brand := product.Brand
	if req.Brand != nil {
		brand = *req.Brand
	}
	if err := product.Update(name, brand); err != nil {
		return nil, err
	}

	if req.LocationID != nil {
		location, err := s.locationRepo.FindByID(ctx, *req.LocationID)
		if err != nil {
			return nil, err
		}
		if !location.Active {
			return nil, shared.NewDomainError("ARCHIVED_LOCATION", "Default location is archived")
		}
		if err := product.SetDefaultLocation(*req.LocationID); err != nil {
			return nil, err
		}
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ArchiveProduct hides a product from pickers while keeping its batches and
// history intact
func (s *CatalogService) ArchiveProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	product.Archive()
	return s.productRepo.Save(ctx, product)
}

// RestoreProduct brings an archived product back
func (s *CatalogService) RestoreProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	product.Restore()
	return s.productRepo.Save(ctx, product)
}

// ==================== Outlets ====================

// CreateOutlet creates a new outlet
func (s *CatalogService) CreateOutlet(ctx context.Context, req CreateOutletRequest) (*OutletResponse, error) {
	outlet, err := catalog.NewOutlet(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.outletRepo.Save(ctx, outlet); err != nil {
		return nil, err
	}

	response := ToOutletResponse(outlet)
	return &response, nil
}

// GetOutlet retrieves an outlet by ID
func (s *CatalogService) GetOutlet(ctx context.Context, outletID uuid.UUID) (*OutletResponse, error) {
	outlet, err := s.outletRepo.FindByID(ctx, outletID)
	if err != nil {
		return nil, err
	}
	response := ToOutletResponse(outlet)
	return &response, nil
}

// ListOutlets retrieves all outlets
func (s *CatalogService) ListOutlets(ctx context.Context, filter shared.Filter) ([]OutletResponse, error) {
	outlets, err := s.outletRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OutletResponse, 0, len(outlets))
	for i := range outlets {
		responses = append(responses, ToOutletResponse(&outlets[i]))
	}
	return responses, nil
}

// UpdateOutlet updates an outlet's details
func (s *CatalogService) UpdateOutlet(ctx context.Context, outletID uuid.UUID, req UpdateOutletRequest) (*OutletResponse, error) {
	outlet, err := s.outletRepo.FindByID(ctx, outletID)
	if err != nil {
		return nil, err
	}

	name := outlet.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := outlet.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := outlet.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.outletRepo.Save(ctx, outlet); err != nil {
		return nil, err
	}

	response := ToOutletResponse(outlet)
	return &response, nil
}

// ==================== Locations ====================

// CreateLocation creates a new storage location
func (s *CatalogService) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	location, err := catalog.NewLocation(req.Name, catalog.LocationType(req.Type), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// GetLocation retrieves a storage location by ID
func (s *CatalogService) GetLocation(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(location)
	return &response, nil
}

// ListLocations retrieves storage locations
func (s *CatalogService) ListLocations(ctx context.Context, filter shared.Filter) ([]LocationResponse, error) {
	locations, err := s.locationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToLocationResponse(&locations[i]))
	}
	return responses, nil
}

// UpdateLocation updates a storage location's details
func (s *CatalogService) UpdateLocation(ctx context.Context, locationID uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	name := location.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := location.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := location.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// ArchiveLocation hides a storage location from pickers
func (s *CatalogService) ArchiveLocation(ctx context.Context, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	location.Archive()
	return s.locationRepo.Save(ctx, location)
}

// RestoreLocation brings an archived storage location back
func (s *CatalogService) RestoreLocation(ctx context.Context, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	location.Restore()
	return s.locationRepo.Save(ctx, location)
}

// ==================== Vendors ====================

// CreateVendor creates a new vendor
func (s *CatalogService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := catalog.NewVendor(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetVendor retrieves a vendor by ID
func (s *CatalogService) GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// ListVendors retrieves vendors
func (s *CatalogService) ListVendors(ctx context.Context, filter shared.Filter) ([]VendorResponse, error) {
	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		responses = append(responses, ToVendorResponse(&vendors[i]))
	}
	return responses, nil
}

// UpdateVendor updates a vendor's details
func (s *CatalogService) UpdateVendor(ctx context.Context, vendorID uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := vendor.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// ArchiveVendor hides a vendor from pickers while keeping delivery history
func (s *CatalogService) ArchiveVendor(ctx context.Context, vendorID uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}
	vendor.Archive()
	return s.vendorRepo.Save(ctx, vendor)
}

// RestoreVendor brings an archived vendor back
func (s *CatalogService) RestoreVendor(ctx context.Context, vendorID uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}
	vendor.Restore()
	return s.vendorRepo.Save(ctx, vendor)
}
