package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/usage"
)

// UsageService records stock consumption. Every line decrements its batch in
// the same transaction that saves the record, so over-consumption rolls the
// whole write back. Deleting lines or records restores the consumed
// quantities.
type UsageService struct {
	usageRepo usage.UsageRepository
	batchRepo inventory.BatchRepository
	txScope   TransactionScope
}

// NewUsageService creates a new UsageService
func NewUsageService(usageRepo usage.UsageRepository, batchRepo inventory.BatchRepository, txScope TransactionScope) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
		batchRepo: batchRepo,
		txScope:   txScope,
	}
}

// Create records a consumption event. Each line decrements its batch; any
// line exceeding available stock fails the whole request with
// INSUFFICIENT_STOCK.
func (s *UsageService) Create(ctx context.Context, req CreateUsageRequest) (*UsageResponse, error) {
	u, err := usage.NewUsage(req.OutletID, timeOrZero(req.Date), req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range req.Lines {
			if err := consumeFromBatch(ctx, repos.BatchRepo(), u.OutletID, line.BatchID, line.Quantity); err != nil {
				return err
			}
			if _, err := u.AddLine(line.BatchID, line.Quantity); err != nil {
				return err
			}
		}
		return repos.UsageRepo().Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, u)
	return &response, nil
}

// GetByID retrieves a usage record with its lines
func (s *UsageService) GetByID(ctx context.Context, usageID uuid.UUID) (*UsageResponse, error) {
	u, err := s.usageRepo.FindByID(ctx, usageID)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(ctx, u)
	return &response, nil
}

// List retrieves usage records, newest first
func (s *UsageService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UsageResponse], error) {
	usages, err := s.usageRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.usageRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UsageResponse, 0, len(usages))
	for _, u := range usages {
		responses = append(responses, ToUsageResponse(u))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// ListByOutlet retrieves usage records for one outlet
func (s *UsageService) ListByOutlet(ctx context.Context, outletID uuid.UUID, filter shared.Filter) ([]UsageResponse, error) {
	usages, err := s.usageRepo.FindByOutlet(ctx, outletID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UsageResponse, 0, len(usages))
	for _, u := range usages {
		responses = append(responses, ToUsageResponse(u))
	}
	return responses, nil
}

// Update updates a usage record's header fields. Lines change through
// AddLine and RemoveLine so stock stays consistent.
func (s *UsageService) Update(ctx context.Context, usageID uuid.UUID, req UpdateUsageRequest) (*UsageResponse, error) {
	u, err := s.usageRepo.FindByID(ctx, usageID)
	if err != nil {
		return nil, err
	}

	date := u.Date
	if req.Date != nil {
		date = *req.Date
	}
	notes := u.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	u.UpdateHeader(date, notes)

	if err := s.usageRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, u)
	return &response, nil
}

// AddLine records an additional draw-down on an existing usage record
func (s *UsageService) AddLine(ctx context.Context, usageID uuid.UUID, req UsageLineRequest) (*UsageResponse, error) {
	var u *usage.Usage
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		u, txErr = repos.UsageRepo().FindByID(ctx, usageID)
		if txErr != nil {
			return txErr
		}
		if txErr = consumeFromBatch(ctx, repos.BatchRepo(), u.OutletID, req.BatchID, req.Quantity); txErr != nil {
			return txErr
		}
		if _, txErr = u.AddLine(req.BatchID, req.Quantity); txErr != nil {
			return txErr
		}
		return repos.UsageRepo().Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, u)
	return &response, nil
}

// RemoveLine deletes a draw-down and restores its quantity to the batch
func (s *UsageService) RemoveLine(ctx context.Context, usageID, lineID uuid.UUID) (*UsageResponse, error) {
	var u *usage.Usage
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		u, txErr = repos.UsageRepo().FindByID(ctx, usageID)
		if txErr != nil {
			return txErr
		}
		removed, txErr := u.RemoveLine(lineID)
		if txErr != nil {
			return txErr
		}
		if txErr = restoreToBatch(ctx, repos.BatchRepo(), removed.BatchID, removed.Quantity); txErr != nil {
			return txErr
		}
		return repos.UsageRepo().Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, u)
	return &response, nil
}

// Delete removes a usage record and restores every consumed quantity
func (s *UsageService) Delete(ctx context.Context, usageID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		u, err := repos.UsageRepo().FindByID(ctx, usageID)
		if err != nil {
			return err
		}
		for i := range u.Lines {
			if err := restoreToBatch(ctx, repos.BatchRepo(), u.Lines[i].BatchID, u.Lines[i].Quantity); err != nil {
				return err
			}
		}
		return repos.UsageRepo().Delete(ctx, usageID)
	})
}

// CheckQuantity is the advisory pre-check used while a form is being filled
// in: it reports a warning when the requested quantity exceeds what the
// batch holds, without reserving or changing anything. The authoritative
// guard stays in Create and AddLine.
func (s *UsageService) CheckQuantity(ctx context.Context, req CheckQuantityRequest) (*CheckQuantityResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, req.BatchID)
	if err != nil {
		return nil, err
	}

	resp := &CheckQuantityResponse{
		Available: batch.Quantity,
		Requested: req.Quantity,
	}
	if req.Quantity.GreaterThan(batch.Quantity) {
		resp.Warning = fmt.Sprintf("Only %s available in this batch, you entered %s",
			inventory.QuantityLabel(batch.Quantity), inventory.QuantityLabel(req.Quantity))
	}
	return resp, nil
}

// toResponse builds a response with each line's current batch quantity, the
// "available" view shown alongside what was consumed. Lines whose batch
// cannot be read are returned without it.
func (s *UsageService) toResponse(ctx context.Context, u *usage.Usage) UsageResponse {
	resp := ToUsageResponse(u)
	for i := range resp.Lines {
		if batch, err := s.batchRepo.FindByID(ctx, resp.Lines[i].BatchID); err == nil {
			available := batch.Quantity
			resp.Lines[i].Available = &available
		}
	}
	return resp
}

// consumeFromBatch locks a batch and decrements it. The batch must belong to
// the outlet the usage record is for.
func consumeFromBatch(ctx context.Context, repo inventory.BatchRepository, outletID, batchID uuid.UUID, quantity decimal.Decimal) error {
	batch, err := repo.FindByIDForUpdate(ctx, batchID)
	if err != nil {
		return err
	}
	if batch.OutletID != outletID {
		return shared.NewDomainError("INVALID_BATCH", "Batch belongs to a different outlet")
	}
	if err := batch.Remove(quantity); err != nil {
		return err
	}
	return repo.Save(ctx, batch)
}

// restoreToBatch locks a batch and returns a previously consumed quantity
func restoreToBatch(ctx context.Context, repo inventory.BatchRepository, batchID uuid.UUID, quantity decimal.Decimal) error {
	batch, err := repo.FindByIDForUpdate(ctx, batchID)
	if err != nil {
		return err
	}
	if err := batch.Add(quantity); err != nil {
		return err
	}
	return repo.Save(ctx, batch)
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
