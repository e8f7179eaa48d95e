package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/grocery/backend/internal/application/catalog"
	identityapp "github.com/grocery/backend/internal/application/identity"
	orderapp "github.com/grocery/backend/internal/application/order"
)

// AuthUseCase is the sign-in surface of identityapp.AuthService
type AuthUseCase interface {
	Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.TokenResponse, error)
	Refresh(ctx context.Context, req identityapp.RefreshRequest) (*identityapp.TokenResponse, error)
	Logout(ctx context.Context, input identityapp.LogoutInput) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error)
}

// UserUseCase is the account management surface of identityapp.UserService
type UserUseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, req identityapp.CreateUserRequest) (*identityapp.UserResponse, error)
	List(ctx context.Context, filter identityapp.UserFilter) (*identityapp.UserListResponse, error)
	Update(ctx context.Context, id uuid.UUID, actor identityapp.Actor, req identityapp.UpdateUserRequest) (*identityapp.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

// GroceryUseCase is implemented by catalogapp.GroceryService
type GroceryUseCase interface {
	ListForUsers(ctx context.Context, filter catalogapp.GroceryFilter) (*catalogapp.GroceryListResponse, error)
	ListForAdmin(ctx context.Context, filter catalogapp.GroceryFilter) (*catalogapp.AdminGroceryListResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req catalogapp.CreateGroceryRequest) (*catalogapp.AdminGroceryResponse, error)
	Update(ctx context.Context, id, actorID uuid.UUID, req catalogapp.UpdateGroceryRequest) (*catalogapp.AdminGroceryResponse, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64, actorID uuid.UUID) (*catalogapp.AdminGroceryResponse, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	UploadImage(ctx context.Context, id, actorID uuid.UUID, filename, contentType string, data []byte) (*catalogapp.AdminGroceryResponse, error)
}

// OrderUseCase is implemented by orderapp.OrderService
type OrderUseCase interface {
	CreateOrder(ctx context.Context, actorID uuid.UUID, req orderapp.CreateOrderRequest) (*orderapp.OrderResponse, error)
	GetOrders(ctx context.Context, filter orderapp.OrderFilter, requesterID *uuid.UUID) (*orderapp.OrderListResponse, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*orderapp.OrderResponse, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*orderapp.OrderResponse, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error
	AdminDeleteOrder(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error
	GetOrderItem(ctx context.Context, itemID uuid.UUID, requesterID *uuid.UUID) (*orderapp.OrderItemResponse, error)
}

var (
	_ AuthUseCase    = (*identityapp.AuthService)(nil)
	_ UserUseCase    = (*identityapp.UserService)(nil)
	_ GroceryUseCase = (*catalogapp.GroceryService)(nil)
	_ OrderUseCase   = (*orderapp.OrderService)(nil)
)
