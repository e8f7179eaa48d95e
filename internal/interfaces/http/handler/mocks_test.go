package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/grocery/backend/internal/application/catalog"
	identityapp "github.com/grocery/backend/internal/application/identity"
	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TokenResponse), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, req identityapp.RefreshRequest) (*identityapp.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.TokenResponse), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, input identityapp.LogoutInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockAuthUseCase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Create(ctx context.Context, actorID uuid.UUID, req identityapp.CreateUserRequest) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context, filter identityapp.UserFilter) (*identityapp.UserListResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserListResponse), args.Error(1)
}

func (m *MockUserUseCase) Update(ctx context.Context, id uuid.UUID, actor identityapp.Actor, req identityapp.UpdateUserRequest) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, id, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func (m *MockUserUseCase) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

type MockGroceryUseCase struct {
	mock.Mock
}

func (m *MockGroceryUseCase) ListForUsers(ctx context.Context, filter catalogapp.GroceryFilter) (*catalogapp.GroceryListResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.GroceryListResponse), args.Error(1)
}

func (m *MockGroceryUseCase) ListForAdmin(ctx context.Context, filter catalogapp.GroceryFilter) (*catalogapp.AdminGroceryListResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.AdminGroceryListResponse), args.Error(1)
}

func (m *MockGroceryUseCase) Create(ctx context.Context, actorID uuid.UUID, req catalogapp.CreateGroceryRequest) (*catalogapp.AdminGroceryResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.AdminGroceryResponse), args.Error(1)
}

func (m *MockGroceryUseCase) Update(ctx context.Context, id, actorID uuid.UUID, req catalogapp.UpdateGroceryRequest) (*catalogapp.AdminGroceryResponse, error) {
	args := m.Called(ctx, id, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.AdminGroceryResponse), args.Error(1)
}

func (m *MockGroceryUseCase) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64, actorID uuid.UUID) (*catalogapp.AdminGroceryResponse, error) {
	args := m.Called(ctx, id, quantity, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.AdminGroceryResponse), args.Error(1)
}

func (m *MockGroceryUseCase) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockGroceryUseCase) UploadImage(ctx context.Context, id, actorID uuid.UUID, filename, contentType string, data []byte) (*catalogapp.AdminGroceryResponse, error) {
	args := m.Called(ctx, id, actorID, filename, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.AdminGroceryResponse), args.Error(1)
}

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, actorID uuid.UUID, req orderapp.CreateOrderRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderUseCase) GetOrders(ctx context.Context, filter orderapp.OrderFilter, requesterID *uuid.UUID) (*orderapp.OrderListResponse, error) {
	args := m.Called(ctx, filter, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderListResponse), args.Error(1)
}

func (m *MockOrderUseCase) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, status, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderUseCase) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, status, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderUseCase) DeleteOrder(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, orderID, actorID)
	return args.Error(0)
}

func (m *MockOrderUseCase) AdminDeleteOrder(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, orderID, actorID)
	return args.Error(0)
}

func (m *MockOrderUseCase) GetOrderItem(ctx context.Context, itemID uuid.UUID, requesterID *uuid.UUID) (*orderapp.OrderItemResponse, error) {
	args := m.Called(ctx, itemID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderItemResponse), args.Error(1)
}
