package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// Visibility selects which groceries a query may return
type Visibility int

const (
	// VisibilityPublic returns only active items that are in stock
	VisibilityPublic Visibility = iota
	// VisibilityAll returns everything, including soft-deleted and zero-stock items
	VisibilityAll
)

// GroceryQuery describes a grocery list query
type GroceryQuery struct {
	shared.Filter
	ID         *uuid.UUID
	Visibility Visibility
}

// GroceryRepository defines the interface for grocery persistence.
// It never writes quantity after creation; stock changes go through inventory.Ledger.
type GroceryRepository interface {
	// FindByID finds a grocery by ID, including soft-deleted rows
	FindByID(ctx context.Context, id uuid.UUID) (*Grocery, error)

	// FindActiveByID finds a grocery that has not been soft-deleted
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Grocery, error)

	// FindAll returns one page of groceries matching the query
	FindAll(ctx context.Context, query GroceryQuery) ([]Grocery, error)

	// Count counts groceries matching the query, ignoring pagination
	Count(ctx context.Context, query GroceryQuery) (int64, error)

	// Create inserts a new grocery including its opening quantity
	Create(ctx context.Context, grocery *Grocery) error

	// Update persists descriptive fields and soft-delete state with an optimistic lock
	Update(ctx context.Context, grocery *Grocery) error
}
