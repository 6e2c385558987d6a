package persistence

import (
	"context"

	appdelivery "github.com/stockroom/backend/internal/application/delivery"
	appinventory "github.com/stockroom/backend/internal/application/inventory"
	appusage "github.com/stockroom/backend/internal/application/usage"
	"github.com/stockroom/backend/internal/domain/delivery"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/usage"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the ledger's TransactionScope
// using GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls
// the transaction back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryTxRepos{tx: tx})
	})
}

type inventoryTxRepos struct {
	tx *gorm.DB
}

func (r *inventoryTxRepos) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

// GormDeliveryTransactionScope implements the delivery workflow's
// TransactionScope: confirming a delivery posts its lines to the ledger
// and flips the status atomically.
type GormDeliveryTransactionScope struct {
	db *gorm.DB
}

// NewGormDeliveryTransactionScope creates a new GormDeliveryTransactionScope
func NewGormDeliveryTransactionScope(db *gorm.DB) *GormDeliveryTransactionScope {
	return &GormDeliveryTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormDeliveryTransactionScope) Execute(ctx context.Context, fn func(repos appdelivery.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&deliveryTxRepos{tx: tx})
	})
}

type deliveryTxRepos struct {
	tx *gorm.DB
}

func (r *deliveryTxRepos) DeliveryRepo() delivery.DeliveryRepository {
	return NewGormDeliveryRepository(r.tx)
}

func (r *deliveryTxRepos) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

// GormUsageTransactionScope implements the usage workflow's
// TransactionScope: batch decrements and the usage record commit together.
type GormUsageTransactionScope struct {
	db *gorm.DB
}

// NewGormUsageTransactionScope creates a new GormUsageTransactionScope
func NewGormUsageTransactionScope(db *gorm.DB) *GormUsageTransactionScope {
	return &GormUsageTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormUsageTransactionScope) Execute(ctx context.Context, fn func(repos appusage.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&usageTxRepos{tx: tx})
	})
}

type usageTxRepos struct {
	tx *gorm.DB
}

func (r *usageTxRepos) UsageRepo() usage.UsageRepository {
	return NewGormUsageRepository(r.tx)
}

func (r *usageTxRepos) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

var (
	_ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
	_ appdelivery.TransactionScope  = (*GormDeliveryTransactionScope)(nil)
	_ appusage.TransactionScope     = (*GormUsageTransactionScope)(nil)
)
