package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const (
	debitSQL = `UPDATE groceries SET quantity = quantity - ?, updated_by = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL AND quantity >= ? RETURNING quantity`

	creditSQL = `UPDATE groceries SET quantity = quantity + ?, updated_by = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL RETURNING quantity`

	setQuantitySQL = `UPDATE groceries SET quantity = ?, updated_by = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL RETURNING quantity`
)

// GormInventoryLedger implements inventory.Ledger with single conditional
// UPDATE statements on the groceries table.
type GormInventoryLedger struct {
	db *gorm.DB
}

// NewGormInventoryLedger creates a new GormInventoryLedger
func NewGormInventoryLedger(db *gorm.DB) *GormInventoryLedger {
	return &GormInventoryLedger{db: db}
}

type quantityRow struct {
	Quantity int64
}

// Available returns the quantity on hand of an active grocery
func (l *GormInventoryLedger) Available(ctx context.Context, groceryID uuid.UUID) (int64, error) {
	var row quantityRow
	err := l.db.WithContext(ctx).
		Model(&models.GroceryModel{}).
		Scopes(NotDeleted).
		Select("quantity").
		Where("id = ?", groceryID).
		Take(&row).Error
	if err != nil {
		return 0, notFoundOr(err, inventory.NotFoundError(groceryID))
	}
	return row.Quantity, nil
}

// Debit decrements stock only if enough is available
func (l *GormInventoryLedger) Debit(ctx context.Context, groceryID uuid.UUID, amount int64, actorID uuid.UUID) (int64, error) {
	if err := inventory.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var row quantityRow
	result := l.db.WithContext(ctx).
		Raw(debitSQL, amount, actorRef(actorID), time.Now(), groceryID, amount).
		Scan(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 1 {
		return row.Quantity, nil
	}

	// Nothing matched: the grocery is missing or has too little stock.
	available, err := l.Available(ctx, groceryID)
	if err != nil {
		return 0, err
	}
	return 0, inventory.InsufficientStockError(groceryID, amount, available)
}

// Credit increments stock
func (l *GormInventoryLedger) Credit(ctx context.Context, groceryID uuid.UUID, amount int64, actorID uuid.UUID) (int64, error) {
	if err := inventory.ValidateAmount(amount); err != nil {
		return 0, err
	}
	return l.exec(ctx, groceryID, creditSQL, amount, actorRef(actorID), time.Now(), groceryID)
}

// SetQuantity overwrites the stock level
func (l *GormInventoryLedger) SetQuantity(ctx context.Context, groceryID uuid.UUID, quantity int64, actorID uuid.UUID) (int64, error) {
	if err := inventory.ValidateQuantity(quantity); err != nil {
		return 0, err
	}
	return l.exec(ctx, groceryID, setQuantitySQL, quantity, actorRef(actorID), time.Now(), groceryID)
}

func (l *GormInventoryLedger) exec(ctx context.Context, groceryID uuid.UUID, sql string, args ...any) (int64, error) {
	var row quantityRow
	result := l.db.WithContext(ctx).Raw(sql, args...).Scan(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, inventory.NotFoundError(groceryID)
	}
	return row.Quantity, nil
}

func actorRef(actorID uuid.UUID) *uuid.UUID {
	if actorID == uuid.Nil {
		return nil
	}
	return &actorID
}

// Ensure GormInventoryLedger implements Ledger
var _ inventory.Ledger = (*GormInventoryLedger)(nil)
