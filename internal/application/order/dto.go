package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/order"
)

// OrderLineRequest is one requested grocery line
type OrderLineRequest struct {
	GroceryID uuid.UUID `json:"grocery_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest represents a request to change an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// OrderFilter represents filter options for order lists
type OrderFilter struct {
	ID   *uuid.UUID `form:"id"`
	Page int        `form:"page"`
	Size int        `form:"size"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	GroceryID    uuid.UUID `json:"grocery_id"`
	Quantity     int64     `json:"quantity"`
	PricePerUnit int64     `json:"price_per_unit"`
	Subtotal     int64     `json:"subtotal"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    string              `json:"status"`
	Total     int64               `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedBy uuid.UUID           `json:"created_by"`
	UpdatedBy *uuid.UUID          `json:"updated_by,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Version   int                 `json:"version"`
}

// OrderListResponse is one page of orders
type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// ToOrderItemResponse converts a domain OrderItem to a response
func ToOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:           item.ID,
		OrderID:      item.OrderID,
		GroceryID:    item.GroceryID,
		Quantity:     item.Quantity,
		PricePerUnit: item.PricePerUnit,
		Subtotal:     item.Subtotal(),
		CreatedAt:    item.CreatedAt,
	}
}

// ToOrderResponse converts a domain Order to a response
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	return OrderResponse{
		ID:        o.ID,
		Status:    o.Status.String(),
		Total:     o.Total(),
		Items:     items,
		CreatedBy: o.CreatedBy,
		UpdatedBy: o.UpdatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Version:   o.Version,
	}
}

// ToOrderResponses converts a slice of domain Orders to responses
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
