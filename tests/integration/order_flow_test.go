package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/event"
	"github.com/grocery/backend/internal/infrastructure/persistence"
	"github.com/grocery/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	db      *TestDB
	service *orderapp.OrderService
	events  *testutil.MockEventHandler
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	tdb := NewTestDB(t)

	service := orderapp.NewOrderService(
		persistence.NewGormOrderRepository(tdb.DB),
		persistence.NewGormOrderItemRepository(tdb.DB),
		persistence.NewGormTransactionScope(tdb.DB),
	)

	bus := event.NewInMemoryEventBus(zap.NewNop())
	events := testutil.NewMockEventHandler(
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderCancelled,
		order.EventTypeOrderDeleted,
	)
	bus.Subscribe(events)
	require.NoError(t, bus.Start(context.Background()))
	service.SetEventPublisher(bus)

	return &orderFixture{db: tdb, service: service, events: events}
}

func TestOrderFlow_CreateDebitsStockAndCapturesPrice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	customer := uuid.New()

	apples := f.db.InsertGrocery("Apples", 120, 10)
	milk := f.db.InsertGrocery("Milk", 250, 4)

	created, err := f.service.CreateOrder(ctx, customer, orderapp.CreateOrderRequest{
		Items: []orderapp.OrderLineRequest{
			{GroceryID: apples, Quantity: 2},
			{GroceryID: milk, Quantity: 1},
			{GroceryID: apples, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(order.StatusPending), created.Status)
	assert.Equal(t, customer, created.CreatedBy)
	assert.Len(t, created.Items, 2, "repeated groceries are merged into one line")
	assert.Equal(t, int64(3*120+250), created.Total)

	assert.Equal(t, int64(7), f.db.Quantity(apples))
	assert.Equal(t, int64(3), f.db.Quantity(milk))
	assert.Equal(t, int64(2), f.db.CountRows("order_items", "order_id = ?", created.ID))

	// Later price changes do not touch the captured line price
	require.NoError(t, f.db.DB.Exec("UPDATE groceries SET price = 999 WHERE id = ?", apples).Error)
	fetched, err := f.service.GetOrders(ctx, orderapp.OrderFilter{ID: &created.ID}, &customer)
	require.NoError(t, err)
	require.Len(t, fetched.Data, 1)
	assert.Equal(t, created.Total, fetched.Data[0].Total)

	assert.Len(t, f.events.EventsOfType(order.EventTypeOrderCreated), 1)
}

func TestOrderFlow_RejectedLineRollsBackEarlierDebits(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	plenty := f.db.InsertGrocery("Rice", 500, 50)
	scarce := f.db.InsertGrocery("Saffron", 4000, 1)

	_, err := f.service.CreateOrder(ctx, uuid.New(), orderapp.CreateOrderRequest{
		Items: []orderapp.OrderLineRequest{
			{GroceryID: plenty, Quantity: 5},
			{GroceryID: scarce, Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	assert.Equal(t, int64(50), f.db.Quantity(plenty))
	assert.Equal(t, int64(1), f.db.Quantity(scarce))
	assert.Equal(t, int64(0), f.db.CountRows("orders", ""))
	assert.Equal(t, int64(0), f.db.CountRows("order_items", ""))
	assert.Equal(t, 0, f.events.HandledCount(), "nothing is published for a rolled back order")
}

func TestOrderFlow_UnknownOrDeletedGroceryIsRejected(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	deleted := f.db.InsertGrocery("Old stock", 100, 10)
	require.NoError(t, f.db.DB.Exec("UPDATE groceries SET deleted_at = NOW() WHERE id = ?", deleted).Error)

	for name, groceryID := range map[string]uuid.UUID{"deleted": deleted, "unknown": uuid.New()} {
		t.Run(name, func(t *testing.T) {
			_, err := f.service.CreateOrder(ctx, uuid.New(), orderapp.CreateOrderRequest{
				Items: []orderapp.OrderLineRequest{{GroceryID: groceryID, Quantity: 1}},
			})
			assert.ErrorIs(t, err, shared.ErrNotFound)
		})
	}
	assert.Equal(t, int64(10), f.db.Quantity(deleted))
}

func TestOrderFlow_ConcurrentOrdersForLastUnits(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	bread := f.db.InsertGrocery("Bread", 300, 3)

	const buyers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		placed int
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateOrder(ctx, uuid.New(), orderapp.CreateOrderRequest{
				Items: []orderapp.OrderLineRequest{{GroceryID: bread, Quantity: 1}},
			})
			if err == nil {
				mu.Lock()
				placed++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, placed)
	assert.Equal(t, int64(0), f.db.Quantity(bread))
	assert.Equal(t, int64(3), f.db.CountRows("orders", ""))
}

func TestOrderFlow_CancelRestocksOnce(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	customer := uuid.New()

	eggs := f.db.InsertGrocery("Eggs", 30, 12)
	created, err := f.service.CreateOrder(ctx, customer, orderapp.CreateOrderRequest{
		Items: []orderapp.OrderLineRequest{{GroceryID: eggs, Quantity: 6}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), f.db.Quantity(eggs))

	cancelled, err := f.service.UpdateStatus(ctx, created.ID, string(order.StatusCancelled), customer)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCancelled), cancelled.Status)
	assert.Equal(t, int64(12), f.db.Quantity(eggs))

	_, err = f.service.UpdateStatus(ctx, created.ID, string(order.StatusCancelled), customer)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, int64(12), f.db.Quantity(eggs), "a terminal order never restocks twice")

	assert.Len(t, f.events.EventsOfType(order.EventTypeOrderCancelled), 1)
}

func TestOrderFlow_OwnershipAndAdminTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	owner, stranger, admin := uuid.New(), uuid.New(), uuid.New()

	tea := f.db.InsertGrocery("Tea", 450, 5)
	created, err := f.service.CreateOrder(ctx, owner, orderapp.CreateOrderRequest{
		Items: []orderapp.OrderLineRequest{{GroceryID: tea, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, created.ID, string(order.StatusCompleted), stranger)
	assert.ErrorIs(t, err, shared.ErrNotFound, "other users' orders are invisible")

	_, err = f.service.GetOrderItem(ctx, created.Items[0].ID, &stranger)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	item, err := f.service.GetOrderItem(ctx, created.Items[0].ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Quantity)

	completed, err := f.service.AdminUpdateStatus(ctx, created.ID, string(order.StatusCompleted), admin)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCompleted), completed.Status)
	require.NotNil(t, completed.UpdatedBy)
	assert.Equal(t, admin, *completed.UpdatedBy)
	assert.Equal(t, int64(3), f.db.Quantity(tea), "completing keeps the stock debited")

	_, err = f.service.AdminUpdateStatus(ctx, created.ID, string(order.StatusCancelled), admin)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestOrderFlow_SoftDeleteHidesOrderAndKeepsStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	customer := uuid.New()

	coffee := f.db.InsertGrocery("Coffee", 800, 10)
	created, err := f.service.CreateOrder(ctx, customer, orderapp.CreateOrderRequest{
		Items: []orderapp.OrderLineRequest{{GroceryID: coffee, Quantity: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteOrder(ctx, created.ID, customer))

	assert.Equal(t, int64(6), f.db.Quantity(coffee), "deleting does not restock")
	assert.Equal(t, int64(1), f.db.CountRows("orders", "id = ? AND deleted_at IS NOT NULL", created.ID))
	assert.Equal(t, int64(1), f.db.CountRows("order_items", "order_id = ? AND deleted_at IS NOT NULL", created.ID))

	list, err := f.service.GetOrders(ctx, orderapp.OrderFilter{}, &customer)
	require.NoError(t, err)
	assert.Empty(t, list.Data)
	assert.Equal(t, int64(0), list.Total)

	_, err = f.service.GetOrderItem(ctx, created.Items[0].ID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, f.service.AdminDeleteOrder(ctx, created.ID, uuid.New()), shared.ErrNotFound)
	assert.Len(t, f.events.EventsOfType(order.EventTypeOrderDeleted), 1)
}

func TestOrderFlow_ListIsNewestFirstAndScopedToOwner(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	pasta := f.db.InsertGrocery("Pasta", 200, 100)
	place := func(owner uuid.UUID) uuid.UUID {
		created, err := f.service.CreateOrder(ctx, owner, orderapp.CreateOrderRequest{
			Items: []orderapp.OrderLineRequest{{GroceryID: pasta, Quantity: 1}},
		})
		require.NoError(t, err)
		return created.ID
	}
	first := place(alice)
	place(bob)
	last := place(alice)

	mine, err := f.service.GetOrders(ctx, orderapp.OrderFilter{}, &alice)
	require.NoError(t, err)
	require.Len(t, mine.Data, 2)
	assert.Equal(t, last, mine.Data[0].ID)
	assert.Equal(t, first, mine.Data[1].ID)

	all, err := f.service.GetOrders(ctx, orderapp.OrderFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	byID, err := f.service.GetOrders(ctx, orderapp.OrderFilter{ID: &first}, &bob)
	assert.Nil(t, byID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
