package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus converts a raw value to a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", shared.ErrInvalidInput.Withf("Invalid order status %q", s)
	}
	return status, nil
}

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && target.IsTerminal()
}

// OrderItem is one grocery line of an order.
// PricePerUnit is captured when the order is placed and never recalculated.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	GroceryID    uuid.UUID
	Quantity     int64
	PricePerUnit int64
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// NewOrderItem creates a new order line
func NewOrderItem(orderID, groceryID uuid.UUID, quantity, pricePerUnit int64) (*OrderItem, error) {
	if groceryID == uuid.Nil {
		return nil, shared.ErrInvalidInput.Withf("Grocery ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidInput.Withf("Quantity for grocery %s must be positive", groceryID)
	}
	if pricePerUnit < 0 {
		return nil, shared.ErrInvalidInput.Withf("Price for grocery %s cannot be negative", groceryID)
	}
	return &OrderItem{
		ID:           uuid.New(),
		OrderID:      orderID,
		GroceryID:    groceryID,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		CreatedAt:    time.Now(),
	}, nil
}

// Subtotal returns quantity times the captured unit price
func (i *OrderItem) Subtotal() int64 {
	return i.Quantity * i.PricePerUnit
}

// Order is the aggregate root for a user's order and its lines
type Order struct {
	shared.BaseAggregateRoot
	shared.SoftDelete
	Status    Status
	CreatedBy uuid.UUID
	UpdatedBy *uuid.UUID
	Items     []OrderItem
}

// NewOrder creates a pending order owned by actorID
func NewOrder(actorID uuid.UUID) (*Order, error) {
	if actorID == uuid.Nil {
		return nil, shared.ErrInvalidInput.Withf("Order owner cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            StatusPending,
		CreatedBy:         actorID,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line with the price captured at this moment
func (o *Order) AddItem(groceryID uuid.UUID, quantity, pricePerUnit int64) (*OrderItem, error) {
	if o.Status != StatusPending {
		return nil, shared.ErrInvalidState.Withf("Cannot add items to a %s order", o.Status)
	}
	for _, existing := range o.Items {
		if existing.GroceryID == groceryID {
			return nil, shared.ErrInvalidInput.Withf("Grocery %s already has a line in this order", groceryID)
		}
	}
	item, err := NewOrderItem(o.ID, groceryID, quantity, pricePerUnit)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	return &o.Items[len(o.Items)-1], nil
}

// Place finalises a new order and records the creation event
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.ErrInvalidInput.Withf("Order must contain at least one item")
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return nil
}

// TransitionTo moves the order to the target status
func (o *Order) TransitionTo(target Status, actorID uuid.UUID) error {
	if o.IsDeleted() {
		return shared.ErrNotFound.Withf("Order %s not found", o.ID)
	}
	if !target.IsValid() {
		return shared.ErrInvalidInput.Withf("Invalid order status %q", target)
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState.Withf("Order is already %s", o.Status)
	}

	from := o.Status
	o.Status = target
	o.touch(actorID)

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, actorID))
	if target == StatusCancelled {
		o.AddDomainEvent(NewOrderCancelledEvent(o, actorID))
	}
	return nil
}

// Delete soft-deletes the order together with its lines
func (o *Order) Delete(actorID uuid.UUID) error {
	if o.IsDeleted() {
		return shared.ErrNotFound.Withf("Order %s not found", o.ID)
	}
	now := time.Now()
	o.MarkDeleted(now)
	for i := range o.Items {
		if o.Items[i].DeletedAt == nil {
			o.Items[i].DeletedAt = &now
		}
	}
	o.touch(actorID)
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderDeletedEvent(o, actorID))
	return nil
}

// IsOwnedBy reports whether userID placed the order
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.CreatedBy == userID
}

// Total returns the sum of all line subtotals
func (o *Order) Total() int64 {
	var total int64
	for i := range o.Items {
		total += o.Items[i].Subtotal()
	}
	return total
}

// String returns a short description used in logs
func (o *Order) String() string {
	return fmt.Sprintf("order %s (%s, %d items)", o.ID, o.Status, len(o.Items))
}

func (o *Order) touch(actorID uuid.UUID) {
	o.UpdatedAt = time.Now()
	if actorID != uuid.Nil {
		o.UpdatedBy = &actorID
	}
}
