package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// Query describes an order list query. Soft-deleted orders never match.
type Query struct {
	shared.Filter
	ID *uuid.UUID
	// OwnerID restricts results to one user's orders; nil means all users
	OwnerID *uuid.UUID
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an active order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns one page of orders with their items, newest first
	FindAll(ctx context.Context, query Query) ([]Order, error)

	// Count counts orders matching the query, ignoring pagination
	Count(ctx context.Context, query Query) (int64, error)

	// Create inserts the order and all of its items
	Create(ctx context.Context, order *Order) error

	// Update persists status, audit and soft-delete state with an optimistic lock.
	// Soft-deleting the order also soft-deletes its items.
	Update(ctx context.Context, order *Order) error
}

// OrderItemRepository defines read access to order lines
type OrderItemRepository interface {
	// FindByID finds an active order item
	FindByID(ctx context.Context, id uuid.UUID) (*OrderItem, error)
}
