package usage

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/usage"
)

// TransactionScope provides transactional access to the repositories a
// usage write touches: recording consumption decrements batches and saves
// the usage record in one transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides transaction-scoped repository access
type TransactionalRepositories interface {
	// UsageRepo returns the usage repository scoped to the current transaction
	UsageRepo() usage.UsageRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	usageRepo usage.UsageRepository
	batchRepo inventory.BatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(usageRepo usage.UsageRepository, batchRepo inventory.BatchRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{usageRepo: usageRepo, batchRepo: batchRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UsageRepo returns the usage repository
func (s *NoOpTransactionScope) UsageRepo() usage.UsageRepository {
	return s.usageRepo
}

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
