package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/inventory"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, query order.Query) ([]order.Order, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, query order.Query) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockOrderItemRepository is a mock implementation of order.OrderItemRepository
type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderItem), args.Error(1)
}

// MockGroceryRepository is a mock implementation of catalog.GroceryRepository
type MockGroceryRepository struct {
	mock.Mock
}

func (m *MockGroceryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Grocery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Grocery), args.Error(1)
}

func (m *MockGroceryRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Grocery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Grocery), args.Error(1)
}

func (m *MockGroceryRepository) FindAll(ctx context.Context, query catalog.GroceryQuery) ([]catalog.Grocery, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Grocery), args.Error(1)
}

func (m *MockGroceryRepository) Count(ctx context.Context, query catalog.GroceryQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGroceryRepository) Create(ctx context.Context, g *catalog.Grocery) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroceryRepository) Update(ctx context.Context, g *catalog.Grocery) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

// MockLedger is a mock implementation of inventory.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Available(ctx context.Context, groceryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groceryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) Debit(ctx context.Context, groceryID uuid.UUID, amount int64, actorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groceryID, amount, actorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) Credit(ctx context.Context, groceryID uuid.UUID, amount int64, actorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groceryID, amount, actorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) SetQuantity(ctx context.Context, groceryID uuid.UUID, quantity int64, actorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groceryID, quantity, actorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordStockRejection(ctx context.Context, groceryID uuid.UUID) {
	m.Called(ctx, groceryID)
}

// fakeTxScope runs fn directly against mock repositories and reports
// whether the transaction would have been committed.
type fakeTxScope struct {
	orders    *MockOrderRepository
	groceries *MockGroceryRepository
	ledger    *MockLedger
	calls     int
	committed int
}

func (s *fakeTxScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.calls++
	if err := fn(s); err != nil {
		return err
	}
	s.committed++
	return nil
}

func (s *fakeTxScope) Orders() order.OrderRepository { return s.orders }
func (s *fakeTxScope) Groceries() catalog.GroceryRepository { return s.groceries }
func (s *fakeTxScope) Ledger() inventory.Ledger { return s.ledger }
