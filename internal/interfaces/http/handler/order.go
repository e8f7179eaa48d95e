package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/grocery/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order and order item HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService OrderUseCase
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService OrderUseCase) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List godoc
// @Summary      List my orders
// @Description  List the caller's orders, newest first, with their items
// @Tags         orders
// @Produce      json
// @Param        id query string false "Order ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(5) minimum(1) maximum(10)
// @Success      200 {object} dto.Response{data=[]orderapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	h.list(c, &actorID)
}

// AdminList godoc
// @Summary      List all orders
// @Description  List every order, newest first, with their items
// @Tags         admin-orders
// @Produce      json
// @Param        id query string false "Order ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(5) minimum(1) maximum(10)
// @Success      200 {object} dto.Response{data=[]orderapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	h.list(c, nil)
}

func (h *OrderHandler) list(c *gin.Context, requesterID *uuid.UUID) {
	var q listQuery
	if !h.bindQuery(c, &q) {
		return
	}

	filter := orderapp.OrderFilter{ID: q.idFilter(), Page: q.Page, Size: q.Size}
	result, err := h.orderService.GetOrders(c.Request.Context(), filter, requesterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Data, result.Total, result.Page, result.Size)
}

// Create godoc
// @Summary      Place order
// @Description  Reserve stock for every line and create the order in one step. Repeated groceries are merged.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderapp.CreateOrderRequest true "Order lines"
// @Success      201 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req orderapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// UpdateStatus godoc
// @Summary      Change my order status
// @Description  Complete or cancel one of the caller's pending orders. Cancelling returns the stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.UpdateStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	h.updateStatus(c, h.orderService.UpdateStatus)
}

// AdminUpdateStatus godoc
// @Summary      Change any order status
// @Description  Complete or cancel any pending order. Cancelling returns the stock.
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.UpdateStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{id} [put]
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	h.updateStatus(c, h.orderService.AdminUpdateStatus)
}

type statusUpdater func(ctx context.Context, orderID uuid.UUID, status string, actorID uuid.UUID) (*orderapp.OrderResponse, error)

func (h *OrderHandler) updateStatus(c *gin.Context, update statusUpdater) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req orderapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := update(c.Request.Context(), id, req.Status, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete my order
// @Description  Soft-delete one of the caller's orders and its items. Stock is not returned.
// @Tags         orders
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	h.delete(c, h.orderService.DeleteOrder)
}

// AdminDelete godoc
// @Summary      Delete any order
// @Description  Soft-delete any order and its items. Stock is not returned.
// @Tags         admin-orders
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{id} [delete]
func (h *OrderHandler) AdminDelete(c *gin.Context) {
	h.delete(c, h.orderService.AdminDeleteOrder)
}

func (h *OrderHandler) delete(c *gin.Context, remove func(ctx context.Context, orderID, actorID uuid.UUID) error) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetItem godoc
// @Summary      Get order item
// @Description  Fetch one order line. Users only see lines of their own orders.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order item ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /order-items/{id} [get]
func (h *OrderHandler) GetItem(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var requesterID *uuid.UUID
	if !middleware.IsAdmin(c) {
		requesterID = &actorID
	}

	item, err := h.orderService.GetOrderItem(c.Request.Context(), id, requesterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
