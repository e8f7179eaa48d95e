package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits every write", func(t *testing.T) {
		db := setupSQLiteDB(t)
		milk := seedGrocery(t, db, "milk", 150, 10)
		actorID := uuid.New()
		var orderID uuid.UUID

		err := NewGormTransactionScope(db).Execute(ctx, func(repos orderapp.TransactionalRepositories) error {
			if _, err := repos.Ledger().Debit(ctx, milk.ID, 4, actorID); err != nil {
				return err
			}
			o, err := order.NewOrder(actorID)
			if err != nil {
				return err
			}
			if _, err := o.AddItem(milk.ID, 4, milk.Price); err != nil {
				return err
			}
			orderID = o.ID
			return repos.Orders().Create(ctx, o)
		})
		require.NoError(t, err)

		qty, err := NewGormInventoryLedger(db).Available(ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), qty)

		_, err = NewGormOrderRepository(db).FindByID(ctx, orderID)
		assert.NoError(t, err)
	})

	t.Run("rolls back earlier debits on failure", func(t *testing.T) {
		db := setupSQLiteDB(t)
		milk := seedGrocery(t, db, "milk", 150, 10)
		bread := seedGrocery(t, db, "bread", 200, 1)
		actorID := uuid.New()

		err := NewGormTransactionScope(db).Execute(ctx, func(repos orderapp.TransactionalRepositories) error {
			if _, err := repos.Ledger().Debit(ctx, milk.ID, 3, actorID); err != nil {
				return err
			}
			_, err := repos.Ledger().Debit(ctx, bread.ID, 2, actorID)
			return err
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		qty, err := NewGormInventoryLedger(db).Available(ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), qty)
	})

	t.Run("returns the callback error unchanged", func(t *testing.T) {
		db := setupSQLiteDB(t)
		boom := errors.New("boom")

		err := NewGormTransactionScope(db).Execute(ctx, func(repos orderapp.TransactionalRepositories) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
