package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderRouter(svc *MockOrderUseCase, actorID uuid.UUID, role identity.Role) *gin.Engine {
	h := NewOrderHandler(svc)
	router := newTestRouter(authAs(actorID, role))
	router.GET("/orders", h.List)
	router.POST("/orders", h.Create)
	router.PUT("/orders/:id", h.UpdateStatus)
	router.DELETE("/orders/:id", h.Delete)
	router.GET("/order-items/:id", h.GetItem)
	router.GET("/admin/orders", h.AdminList)
	router.PUT("/admin/orders/:id", h.AdminUpdateStatus)
	router.DELETE("/admin/orders/:id", h.AdminDelete)
	return router
}

func sampleOrder(id, owner uuid.UUID, status string) *orderapp.OrderResponse {
	return &orderapp.OrderResponse{
		ID:        id,
		Status:    status,
		Total:     240,
		CreatedBy: owner,
		Items: []orderapp.OrderItemResponse{
			{ID: uuid.New(), OrderID: id, GroceryID: uuid.New(), Quantity: 2, PricePerUnit: 120, Subtotal: 240},
		},
		Version: 1,
	}
}

func TestOrderHandler_Create(t *testing.T) {
	userID := uuid.New()
	groceryID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		req := orderapp.CreateOrderRequest{Items: []orderapp.OrderLineRequest{{GroceryID: groceryID, Quantity: 2}}}
		svc.On("CreateOrder", mock.Anything, userID, req).
			Return(sampleOrder(uuid.New(), userID, "pending"), nil)

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPost, "/orders", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "pending", data["status"])
		assert.EqualValues(t, 240, data["total"])
		svc.AssertExpectations(t)
	})

	t.Run("empty items", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPost, "/orders",
			map[string]any{"items": []any{}})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("zero quantity line", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPost, "/orders",
			map[string]any{"items": []any{map[string]any{"grocery_id": groceryID, "quantity": 0}}})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		svc.On("CreateOrder", mock.Anything, userID, mock.Anything).
			Return(nil, shared.ErrInsufficientStock.Withf("Not enough Apple in stock"))

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPost, "/orders",
			orderapp.CreateOrderRequest{Items: []orderapp.OrderLineRequest{{GroceryID: groceryID, Quantity: 99}}})

		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock)
		assert.Contains(t, decodeResponse(t, w).Error.Message, "Apple")
	})
}

func TestOrderHandler_List(t *testing.T) {
	userID := uuid.New()
	page := &orderapp.OrderListResponse{
		Data:  []orderapp.OrderResponse{*sampleOrder(uuid.New(), userID, "pending")},
		Total: 1, Page: 1, Size: 5,
	}

	t.Run("user list is scoped to the caller", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		svc.On("GetOrders", mock.Anything, orderapp.OrderFilter{Page: 1, Size: 5}, &userID).Return(page, nil)

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodGet, "/orders?page=1&size=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("admin list is unscoped", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		svc.On("GetOrders", mock.Anything, orderapp.OrderFilter{}, (*uuid.UUID)(nil)).Return(page, nil)

		w := doJSON(newOrderRouter(svc, uuid.New(), identity.RoleAdmin), http.MethodGet, "/admin/orders", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("id filter", func(t *testing.T) {
		orderID := uuid.New()
		svc := new(MockOrderUseCase)
		svc.On("GetOrders", mock.Anything, orderapp.OrderFilter{ID: &orderID}, &userID).
			Return(nil, shared.ErrNotFound.Withf("Order %s not found", orderID))

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodGet, "/orders?id="+orderID.String(), nil)

		assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("user cancels own order", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		svc.On("UpdateStatus", mock.Anything, orderID, "cancelled", userID).
			Return(sampleOrder(orderID, userID, "cancelled"), nil)

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPut,
			"/orders/"+orderID.String(), orderapp.UpdateStatusRequest{Status: "cancelled"})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
		svc.AssertNotCalled(t, "AdminUpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already completed", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		svc.On("UpdateStatus", mock.Anything, orderID, "cancelled", userID).
			Return(nil, shared.ErrInvalidState.Withf("Order is already completed"))

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPut,
			"/orders/"+orderID.String(), orderapp.UpdateStatusRequest{Status: "cancelled"})

		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodPut,
			"/orders/"+orderID.String(), map[string]string{"status": "shipped"})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("admin path", func(t *testing.T) {
		adminID := uuid.New()
		svc := new(MockOrderUseCase)
		svc.On("AdminUpdateStatus", mock.Anything, orderID, "completed", adminID).
			Return(sampleOrder(orderID, userID, "completed"), nil)

		w := doJSON(newOrderRouter(svc, adminID, identity.RoleAdmin), http.MethodPut,
			"/admin/orders/"+orderID.String(), orderapp.UpdateStatusRequest{Status: "completed"})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestOrderHandler_Delete(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	svc := new(MockOrderUseCase)
	svc.On("DeleteOrder", mock.Anything, orderID, userID).Return(nil)
	svc.On("AdminDeleteOrder", mock.Anything, orderID, userID).Return(shared.ErrNotFound)

	router := newOrderRouter(svc, userID, identity.RoleAdmin)
	assert.Equal(t, http.StatusNoContent, doJSON(router, http.MethodDelete, "/orders/"+orderID.String(), nil).Code)
	assertError(t, doJSON(router, http.MethodDelete, "/admin/orders/"+orderID.String(), nil),
		http.StatusNotFound, dto.ErrCodeNotFound)
	svc.AssertExpectations(t)
}

func TestOrderHandler_GetItem(t *testing.T) {
	itemID := uuid.New()
	item := &orderapp.OrderItemResponse{ID: itemID, Quantity: 2, PricePerUnit: 120, Subtotal: 240}

	t.Run("user lookups are owner scoped", func(t *testing.T) {
		userID := uuid.New()
		svc := new(MockOrderUseCase)
		svc.On("GetOrderItem", mock.Anything, itemID, &userID).Return(item, nil)

		w := doJSON(newOrderRouter(svc, userID, identity.RoleUser), http.MethodGet, "/order-items/"+itemID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 240, decodeResponse(t, w).Data.(map[string]any)["subtotal"])
		svc.AssertExpectations(t)
	})

	t.Run("admin lookups are unscoped", func(t *testing.T) {
		svc := new(MockOrderUseCase)
		svc.On("GetOrderItem", mock.Anything, itemID, (*uuid.UUID)(nil)).Return(item, nil)

		w := doJSON(newOrderRouter(svc, uuid.New(), identity.RoleAdmin), http.MethodGet, "/order-items/"+itemID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(newOrderRouter(new(MockOrderUseCase), uuid.New(), identity.RoleUser), http.MethodGet, "/order-items/1", nil)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})
}
