package order

import (
	"context"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories an order
// workflow touches. Everything done through the repositories handed to fn is
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	Orders() order.OrderRepository
	Groceries() catalog.GroceryRepository
	Ledger() inventory.Ledger
}
