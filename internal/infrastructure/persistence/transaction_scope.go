package persistence

import (
	"context"

	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos orderapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Groceries returns the grocery repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Groceries() catalog.GroceryRepository {
	return NewGormGroceryRepository(r.tx)
}

// Ledger returns the inventory ledger scoped to the current transaction.
func (r *gormTransactionalRepositories) Ledger() inventory.Ledger {
	return NewGormInventoryLedger(r.tx)
}

var (
	_ orderapp.TransactionScope          = (*GormTransactionScope)(nil)
	_ orderapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
