package inventory

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories the
// ledger mutates. Repository operations executed within a scope share one
// database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides transaction-scoped repository access
type TransactionalRepositories interface {
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	batchRepo inventory.BatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repository
func NewNoOpTransactionScope(batchRepo inventory.BatchRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{batchRepo: batchRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
