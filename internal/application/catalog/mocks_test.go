package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

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

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockImageStorage) PublicURL(storageKey string) string {
	args := m.Called(storageKey)
	return args.String(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
