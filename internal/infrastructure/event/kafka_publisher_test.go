package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/grocery/backend/internal/domain/order"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessage(_ context.Context, msg kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msg)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Handle(t *testing.T) {
	writer := &fakeWriter{}
	codec := NewDomainCodec()
	p := NewKafkaPublisher(writer, codec, OrderEventTypes, nil)
	o := placedOrder(t)
	require.NoError(t, o.TransitionTo(order.StatusCancelled, o.CreatedBy))
	event := order.NewOrderCancelledEvent(o, o.CreatedBy)

	require.NoError(t, p.Handle(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, o.ID.String(), string(msg.Key))
	assert.Contains(t, msg.Headers, kafka.Header{Key: "event-type", Value: []byte(order.EventTypeOrderCancelled)})

	decoded, err := codec.Decode(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, event.EventID(), decoded.EventID())
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	p := NewKafkaPublisher(writer, NewDomainCodec(), OrderEventTypes, nil)

	err := p.Handle(context.Background(), order.NewOrderCreatedEvent(placedOrder(t)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write OrderCreated to kafka")
}

func TestKafkaPublisher_SubscribesToOrderEvents(t *testing.T) {
	writer := &fakeWriter{}
	p := NewKafkaPublisher(writer, NewDomainCodec(), OrderEventTypes, nil)
	bus := NewInMemoryEventBus(nil)
	bus.Subscribe(p)

	require.NoError(t, bus.Publish(context.Background(),
		order.NewOrderCreatedEvent(placedOrder(t)),
		newTestEvent("GroceryCreated"),
	))

	assert.Len(t, writer.messages, 1)
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}
