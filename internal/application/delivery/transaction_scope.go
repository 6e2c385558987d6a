package delivery

import (
	"context"

	"github.com/stockroom/backend/internal/domain/delivery"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// delivery confirmation touches: confirming posts every line to the batch
// ledger and flips the delivery status in one transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides transaction-scoped repository access
type TransactionalRepositories interface {
	// DeliveryRepo returns the delivery repository scoped to the current transaction
	DeliveryRepo() delivery.DeliveryRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	deliveryRepo delivery.DeliveryRepository
	batchRepo    inventory.BatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(deliveryRepo delivery.DeliveryRepository, batchRepo inventory.BatchRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{deliveryRepo: deliveryRepo, batchRepo: batchRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DeliveryRepo returns the delivery repository
func (s *NoOpTransactionScope) DeliveryRepo() delivery.DeliveryRepository {
	return s.deliveryRepo
}

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
