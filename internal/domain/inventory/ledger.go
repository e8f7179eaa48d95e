package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// Ledger owns grocery stock quantities. Every write to a grocery's quantity
// goes through it.
type Ledger interface {
	// Available returns the quantity on hand of an active grocery
	Available(ctx context.Context, groceryID uuid.UUID) (int64, error)

	// Debit decrements stock by amount and returns the new quantity.
	// The check and the write happen as one conditional update, so two
	// concurrent debits can never both succeed past the available stock.
	Debit(ctx context.Context, groceryID uuid.UUID, amount int64, actorID uuid.UUID) (int64, error)

	// Credit increments stock by amount and returns the new quantity
	Credit(ctx context.Context, groceryID uuid.UUID, amount int64, actorID uuid.UUID) (int64, error)

	// SetQuantity overwrites the stock level (administrative override)
	SetQuantity(ctx context.Context, groceryID uuid.UUID, quantity int64, actorID uuid.UUID) (int64, error)
}

// ValidateAmount checks a debit or credit amount
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return shared.ErrInvalidInput.Withf("Amount must be positive, got %d", amount)
	}
	return nil
}

// ValidateQuantity checks an absolute stock level
func ValidateQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.ErrInvalidInput.Withf("Quantity cannot be negative, got %d", quantity)
	}
	return nil
}

// InsufficientStockError builds the error returned when a debit exceeds stock
func InsufficientStockError(groceryID uuid.UUID, requested, available int64) *shared.DomainError {
	return shared.ErrInsufficientStock.Withf(
		"Insufficient stock for grocery %s: requested %d, available %d",
		groceryID, requested, available,
	)
}

// NotFoundError builds the error returned for a missing or deleted grocery
func NotFoundError(groceryID uuid.UUID) *shared.DomainError {
	return shared.ErrNotFound.Withf("Grocery %s not found", groceryID)
}
