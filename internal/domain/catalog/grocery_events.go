package catalog

import (
	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
)

// AggregateTypeGrocery is the aggregate type of grocery events
const AggregateTypeGrocery = "Grocery"

// Event type constants
const (
	EventTypeGroceryCreated       = "GroceryCreated"
	EventTypeGroceryPriceChanged  = "GroceryPriceChanged"
	EventTypeGroceryDeleted       = "GroceryDeleted"
	EventTypeGroceryStockAdjusted = "GroceryStockAdjusted"
)

// GroceryCreatedEvent is published when a new grocery is added to the catalog
type GroceryCreatedEvent struct {
	shared.BaseDomainEvent
	GroceryID uuid.UUID `json:"grocery_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int64     `json:"quantity"`
}

// NewGroceryCreatedEvent creates a new GroceryCreatedEvent
func NewGroceryCreatedEvent(g *Grocery, actorID uuid.UUID) *GroceryCreatedEvent {
	return &GroceryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroceryCreated, AggregateTypeGrocery, g.ID, actorID),
		GroceryID:       g.ID,
		Name:            g.Name,
		Price:           g.Price,
		Quantity:        g.Quantity,
	}
}

// GroceryPriceChangedEvent is published when the catalog price changes
type GroceryPriceChangedEvent struct {
	shared.BaseDomainEvent
	GroceryID uuid.UUID `json:"grocery_id"`
	OldPrice  int64     `json:"old_price"`
	NewPrice  int64     `json:"new_price"`
}

// NewGroceryPriceChangedEvent creates a new GroceryPriceChangedEvent
func NewGroceryPriceChangedEvent(g *Grocery, oldPrice int64, actorID uuid.UUID) *GroceryPriceChangedEvent {
	return &GroceryPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroceryPriceChanged, AggregateTypeGrocery, g.ID, actorID),
		GroceryID:       g.ID,
		OldPrice:        oldPrice,
		NewPrice:        g.Price,
	}
}

// GroceryDeletedEvent is published when a grocery is soft-deleted
type GroceryDeletedEvent struct {
	shared.BaseDomainEvent
	GroceryID uuid.UUID `json:"grocery_id"`
}

// NewGroceryDeletedEvent creates a new GroceryDeletedEvent
func NewGroceryDeletedEvent(g *Grocery, actorID uuid.UUID) *GroceryDeletedEvent {
	return &GroceryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroceryDeleted, AggregateTypeGrocery, g.ID, actorID),
		GroceryID:       g.ID,
	}
}

// GroceryStockAdjustedEvent is published when an administrator overrides stock
type GroceryStockAdjustedEvent struct {
	shared.BaseDomainEvent
	GroceryID   uuid.UUID `json:"grocery_id"`
	NewQuantity int64     `json:"new_quantity"`
}

// NewGroceryStockAdjustedEvent creates a new GroceryStockAdjustedEvent
func NewGroceryStockAdjustedEvent(groceryID uuid.UUID, quantity int64, actorID uuid.UUID) *GroceryStockAdjustedEvent {
	return &GroceryStockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroceryStockAdjusted, AggregateTypeGrocery, groceryID, actorID),
		GroceryID:       groceryID,
		NewQuantity:     quantity,
	}
}
