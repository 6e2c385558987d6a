package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/delivery"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// DeliveryService handles the delivery workflow: drafts are freely editable,
// confirming posts every line to the batch ledger atomically, and terminal
// deliveries are locked.
type DeliveryService struct {
	deliveryRepo delivery.DeliveryRepository
	productRepo  catalog.ProductRepository
	vendorRepo   catalog.VendorRepository
	txScope      TransactionScope
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(
	deliveryRepo delivery.DeliveryRepository,
	productRepo catalog.ProductRepository,
	vendorRepo catalog.VendorRepository,
	txScope TransactionScope,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		productRepo:  productRepo,
		vendorRepo:   vendorRepo,
		txScope:      txScope,
	}
}

// Create creates a new draft delivery with optional initial lines
func (s *DeliveryService) Create(ctx context.Context, req CreateDeliveryRequest) (*DeliveryResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.Active {
		return nil, shared.NewDomainError("ARCHIVED_VENDOR", "Cannot record a delivery from an archived vendor")
	}

	var date = timeOrZero(req.Date)
	d, err := delivery.NewDelivery(req.Reference, req.VendorID, req.OutletID, date)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		d.SetNotes(req.Notes)
	}

	for _, line := range req.Lines {
		if err := s.addLine(ctx, d, line); err != nil {
			return nil, err
		}
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// GetByID retrieves a delivery with its lines
func (s *DeliveryService) GetByID(ctx context.Context, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

// List retrieves deliveries, newest first
func (s *DeliveryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[DeliveryResponse], error) {
	deliveries, err := s.deliveryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.deliveryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		responses = append(responses, ToDeliveryResponse(d))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// ListByStatus retrieves deliveries in the given status
func (s *DeliveryService) ListByStatus(ctx context.Context, status delivery.DeliveryStatus, filter shared.Filter) ([]DeliveryResponse, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown delivery status "+status.String())
	}
	deliveries, err := s.deliveryRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		responses = append(responses, ToDeliveryResponse(d))
	}
	return responses, nil
}

// Update updates a draft delivery's header fields
func (s *DeliveryService) Update(ctx context.Context, deliveryID uuid.UUID, req UpdateDeliveryRequest) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	reference := d.Reference
	if req.Reference != nil {
		reference = *req.Reference
	}
	vendorID := d.VendorID
	if req.VendorID != nil {
		vendorID = *req.VendorID
	}
	date := d.Date
	if req.Date != nil {
		date = *req.Date
	}

	if err := d.UpdateHeader(reference, vendorID, date); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		d.SetNotes(*req.Notes)
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// AddLine adds a line to a draft delivery
func (s *DeliveryService) AddLine(ctx context.Context, deliveryID uuid.UUID, req DeliveryLineRequest) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if err := s.addLine(ctx, d, req); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// UpdateLine updates a line on a draft delivery
func (s *DeliveryService) UpdateLine(ctx context.Context, deliveryID, lineID uuid.UUID, req UpdateDeliveryLineRequest) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	line := d.GetLine(lineID)
	if line == nil {
		return nil, shared.NewDomainError("LINE_NOT_FOUND", "Delivery line not found")
	}

	outletID := line.OutletID
	if req.OutletID != nil {
		outletID = *req.OutletID
	}
	locationID := line.LocationID
	if req.LocationID != nil {
		locationID = *req.LocationID
	}
	quantity := line.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	expiry := line.ExpiryDate
	if req.ExpiryDate != nil {
		expiry = req.ExpiryDate
	}

	if err := d.UpdateLine(lineID, outletID, locationID, quantity, expiry); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// RemoveLine removes a line from a draft delivery
func (s *DeliveryService) RemoveLine(ctx context.Context, deliveryID, lineID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if err := d.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// Review returns a read-only snapshot of a delivery's lines enriched with
// product details, for inspection before confirming. It never touches the
// ledger.
func (s *DeliveryService) Review(ctx context.Context, deliveryID uuid.UUID) (*ReviewResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	review := ReviewResponse{
		Delivery: ToDeliveryResponse(d),
		Lines:    make([]ReviewLineResponse, 0, len(d.Lines)),
	}

	if !d.IsDraft() {
		review.Warnings = append(review.Warnings, "delivery is "+d.Status.String()+" and can no longer be confirmed")
	}
	if len(d.Lines) == 0 {
		review.Warnings = append(review.Warnings, "delivery has no lines")
	}

	for i := range d.Lines {
		line := &d.Lines[i]
		rl := ReviewLineResponse{DeliveryLineResponse: ToDeliveryLineResponse(line)}
		if product, err := s.productRepo.FindByID(ctx, line.ProductID); err == nil {
			rl.ProductName = product.Name
			rl.Uom = string(product.Uom)
			if !product.Active {
				review.Warnings = append(review.Warnings, "product "+product.Name+" is archived")
			}
		}
		review.Lines = append(review.Lines, rl)
	}

	review.CanConfirm = len(review.Warnings) == 0
	return &review, nil
}

// Confirm posts a draft delivery to the batch ledger. The delivery is
// re-read inside the transaction so the lines posted are the live ones, not
// a stale snapshot; each line merges into the active batch for its key or
// creates a new batch. The status flip and all ledger writes commit together.
func (s *DeliveryService) Confirm(ctx context.Context, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	var confirmed *delivery.Delivery
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DeliveryRepo().FindByID(ctx, deliveryID)
		if err != nil {
			return err
		}

		if err := d.Confirm(); err != nil {
			return err
		}

		for i := range d.Lines {
			line := &d.Lines[i]
			key := inventory.NewBatchKey(line.ProductID, line.OutletID, line.LocationID, line.ExpiryDate)
			lineID := line.ID
			if _, err := appinv.PostToLedger(ctx, repos.BatchRepo(), key, line.Quantity, &lineID); err != nil {
				return err
			}
		}

		if err := repos.DeliveryRepo().Save(ctx, d); err != nil {
			return err
		}

		confirmed = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(confirmed)
	return &response, nil
}

// Cancel cancels a draft delivery. No stock moves because drafts have never
// been posted.
func (s *DeliveryService) Cancel(ctx context.Context, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if err := d.Cancel(); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// Delete removes a delivery. Confirmed deliveries are locked: their lines
// back batches in the ledger, so the record must stay.
func (s *DeliveryService) Delete(ctx context.Context, deliveryID uuid.UUID) error {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return err
	}

	if d.IsConfirmed() {
		return shared.NewDomainError("LOCKED_RECORD", "Confirmed deliveries cannot be deleted")
	}

	return s.deliveryRepo.Delete(ctx, deliveryID)
}

// addLine validates the product and applies its default outlet and location
// when the request omits them
func (s *DeliveryService) addLine(ctx context.Context, d *delivery.Delivery, req DeliveryLineRequest) error {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !product.Active {
		return shared.NewDomainError("ARCHIVED_PRODUCT", "Cannot receive an archived product")
	}

	outletID := product.OutletID
	if req.OutletID != nil {
		outletID = *req.OutletID
	}
	locationID := product.LocationID
	if req.LocationID != nil {
		locationID = *req.LocationID
	}

	_, err = d.AddLine(req.ProductID, outletID, locationID, req.Quantity, req.ExpiryDate)
	return err
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
