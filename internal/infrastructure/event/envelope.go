package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
)

// EnvelopeVersion is bumped when the envelope layout changes incompatibly
const EnvelopeVersion = 1

// Envelope is the wire form of a domain event. Payload holds the full event JSON.
type Envelope struct {
	Version       int             `json:"version"`
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	ActorID       uuid.UUID       `json:"actor_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Codec converts domain events to and from envelopes
type Codec struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewCodec creates a codec with no registered types
func NewCodec() *Codec {
	return &Codec{types: make(map[string]reflect.Type)}
}

// NewDomainCodec creates a codec that can decode every event this service emits
func NewDomainCodec() *Codec {
	c := NewCodec()
	c.Register(order.EventTypeOrderCreated, &order.OrderCreatedEvent{})
	c.Register(order.EventTypeOrderStatusChanged, &order.OrderStatusChangedEvent{})
	c.Register(order.EventTypeOrderCancelled, &order.OrderCancelledEvent{})
	c.Register(order.EventTypeOrderDeleted, &order.OrderDeletedEvent{})

	c.Register(catalog.EventTypeGroceryCreated, &catalog.GroceryCreatedEvent{})
	c.Register(catalog.EventTypeGroceryPriceChanged, &catalog.GroceryPriceChangedEvent{})
	c.Register(catalog.EventTypeGroceryDeleted, &catalog.GroceryDeletedEvent{})
	c.Register(catalog.EventTypeGroceryStockAdjusted, &catalog.GroceryStockAdjustedEvent{})

	c.Register(identity.EventTypeUserCreated, &identity.UserCreatedEvent{})
	c.Register(identity.EventTypeUserPasswordChanged, &identity.UserPasswordChangedEvent{})
	c.Register(identity.EventTypeUserDeleted, &identity.UserDeletedEvent{})
	return c
}

// Register associates an event type with the concrete struct used to decode it
func (c *Codec) Register(eventType string, prototype shared.DomainEvent) {
	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[eventType] = t
}

// Encode wraps event in an envelope and marshals it
func (c *Codec) Encode(event shared.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.EventType(), err)
	}
	return json.Marshal(Envelope{
		Version:       EnvelopeVersion,
		ID:            event.EventID(),
		Type:          event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		ActorID:       event.ActorID(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	})
}

// Decode unmarshals an envelope and its payload into the registered event type
func (c *Codec) Decode(data []byte) (shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.Version)
	}

	c.mu.RLock()
	t, ok := c.types[env.Type]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	event, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("type registered for %q is not a domain event", env.Type)
	}
	return event, nil
}
