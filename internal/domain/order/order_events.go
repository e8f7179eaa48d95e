package order

import (
	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// AggregateTypeOrder is the aggregate type of order events
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderCancelled     = "OrderCancelled"
	EventTypeOrderDeleted       = "OrderDeleted"
)

// ItemInfo represents line information carried by events
type ItemInfo struct {
	ItemID       uuid.UUID `json:"item_id"`
	GroceryID    uuid.UUID `json:"grocery_id"`
	Quantity     int64     `json:"quantity"`
	PricePerUnit int64     `json:"price_per_unit"`
}

func itemInfos(o *Order) []ItemInfo {
	infos := make([]ItemInfo, len(o.Items))
	for i, item := range o.Items {
		infos[i] = ItemInfo{
			ItemID:       item.ID,
			GroceryID:    item.GroceryID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
		}
	}
	return infos
}

// OrderCreatedEvent is raised when an order is placed and stock has been debited
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID  `json:"order_id"`
	Total   int64      `json:"total"`
	Items   []ItemInfo `json:"items"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID, o.CreatedBy),
		OrderID:         o.ID,
		Total:           o.Total(),
		Items:           itemInfos(o),
	}
}

// OrderStatusChangedEvent is raised on every status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from Status, actorID uuid.UUID) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		FromStatus:      from,
		ToStatus:        o.Status,
	}
}

// OrderCancelledEvent is raised when an order is cancelled.
// Items lists the quantities handed back to the ledger.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID  `json:"order_id"`
	Items   []ItemInfo `json:"items"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, actorID uuid.UUID) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		Items:           itemInfos(o),
	}
}

// OrderDeletedEvent is raised when an order record is soft-deleted
type OrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Status  Status    `json:"status"`
}

// NewOrderDeletedEvent creates a new OrderDeletedEvent
func NewOrderDeletedEvent(o *Order, actorID uuid.UUID) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDeleted, AggregateTypeOrder, o.ID, actorID),
		OrderID:         o.ID,
		Status:          o.Status,
	}
}
