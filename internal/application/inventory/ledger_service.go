package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// LedgerService handles stock batch operations. All quantity changes go
// through a transaction scope so merges and decrements are atomic.
type LedgerService struct {
	batchRepo    inventory.BatchRepository
	productRepo  catalog.ProductRepository
	outletRepo   catalog.OutletRepository
	locationRepo catalog.LocationRepository
	txScope      TransactionScope
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	batchRepo inventory.BatchRepository,
	productRepo catalog.ProductRepository,
	outletRepo catalog.OutletRepository,
	locationRepo catalog.LocationRepository,
	txScope TransactionScope,
) *LedgerService {
	return &LedgerService{
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		outletRepo:   outletRepo,
		locationRepo: locationRepo,
		txScope:      txScope,
	}
}

// PostToLedger merges a quantity into the active batch for the key, creating
// the batch when none exists. It must run inside a transaction; the repository
// is expected to be transaction-scoped.
func PostToLedger(ctx context.Context, repo inventory.BatchRepository, key inventory.BatchKey, quantity decimal.Decimal, deliveryLineID *uuid.UUID) (*inventory.Batch, error) {
	batch, err := repo.FindByKeyForUpdate(ctx, key)
	switch {
	case err == nil:
		if err := batch.Add(quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		batch, err = inventory.NewBatch(key, quantity, deliveryLineID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := repo.Save(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// AddStock records received stock. Quantities landing on an existing batch
// key merge into that batch; otherwise a new batch is created.
func (s *LedgerService) AddStock(ctx context.Context, req AddStockRequest) (*BatchResponse, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if err := s.validateKeyRefs(ctx, req.ProductID, req.OutletID, req.LocationID); err != nil {
		return nil, err
	}

	key := inventory.NewBatchKey(req.ProductID, req.OutletID, req.LocationID, req.ExpiryDate)

	var batch *inventory.Batch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		batch, txErr = PostToLedger(ctx, repos.BatchRepo(), key, req.Quantity, nil)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, batch)
	return &response, nil
}

// RemoveStock decrements a batch. Removing more than the batch holds fails
// with INSUFFICIENT_STOCK and leaves the batch unchanged.
func (s *LedgerService) RemoveStock(ctx context.Context, batchID uuid.UUID, req RemoveStockRequest) (*BatchResponse, error) {
	var batch *inventory.Batch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		batch, txErr = repos.BatchRepo().FindByIDForUpdate(ctx, batchID)
		if txErr != nil {
			return txErr
		}
		if txErr = batch.Remove(req.Quantity); txErr != nil {
			return txErr
		}
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, batch)
	return &response, nil
}

// GetBatch retrieves a single batch by ID
func (s *LedgerService) GetBatch(ctx context.Context, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(ctx, batch)
	return &response, nil
}

// ListBatches retrieves active batches, soonest-expiring first
func (s *LedgerService) ListBatches(ctx context.Context, filter shared.Filter) (*shared.Paginated[BatchResponse], error) {
	batches, err := s.batchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.batchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.NewPaginated(s.toResponses(ctx, batches), total, filter.Page, filter.PageSize), nil
}

// ListBatchesByProduct retrieves active batches for one product
func (s *LedgerService) ListBatchesByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, batches), nil
}

// ListBatchesByOutlet retrieves active batches for one outlet
func (s *LedgerService) ListBatchesByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindByOutlet(ctx, outletID, filter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, batches), nil
}

// ListExpiringSoon retrieves stocked batches expiring within the given
// number of days, soonest first
func (s *LedgerService) ListExpiringSoon(ctx context.Context, withinDays int, filter shared.Filter) ([]BatchResponse, error) {
	if withinDays <= 0 {
		withinDays = 7
	}
	batches, err := s.batchRepo.FindExpiringSoon(ctx, withinDays, filter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, batches), nil
}

// ListBelowReorder retrieves products whose on-hand total has fallen to or
// below their reorder level
func (s *LedgerService) ListBelowReorder(ctx context.Context, filter shared.Filter) ([]ReorderAlertResponse, error) {
	alerts, err := s.batchRepo.FindBelowReorder(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReorderAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, ToReorderAlertResponse(a))
	}
	return responses, nil
}

// ArchiveBatch hides a batch from active views while keeping its history
func (s *LedgerService) ArchiveBatch(ctx context.Context, batchID uuid.UUID) error {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return err
	}
	batch.Archive()
	return s.batchRepo.Save(ctx, batch)
}

// validateKeyRefs checks that the key's references exist and are active
func (s *LedgerService) validateKeyRefs(ctx context.Context, productID, outletID, locationID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active {
		return shared.NewDomainError("ARCHIVED_PRODUCT", "Cannot add stock for an archived product")
	}
	if _, err := s.outletRepo.FindByID(ctx, outletID); err != nil {
		return err
	}
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	if !location.Active {
		return shared.NewDomainError("ARCHIVED_LOCATION", "Cannot add stock at an archived location")
	}
	return nil
}

// toResponse enriches a batch with names for its display label. Lookup
// failures leave the name blank rather than failing the read.
func (s *LedgerService) toResponse(ctx context.Context, batch *inventory.Batch) BatchResponse {
	var productName, locationName, outletName string
	if product, err := s.productRepo.FindByID(ctx, batch.ProductID); err == nil {
		productName = product.Name
	}
	if location, err := s.locationRepo.FindByID(ctx, batch.LocationID); err == nil {
		locationName = location.Name
	}
	if outlet, err := s.outletRepo.FindByID(ctx, batch.OutletID); err == nil {
		outletName = outlet.Name
	}
	return ToBatchResponse(batch, productName, locationName, outletName)
}

func (s *LedgerService) toResponses(ctx context.Context, batches []*inventory.Batch) []BatchResponse {
	responses := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, s.toResponse(ctx, b))
	}
	return responses
}
