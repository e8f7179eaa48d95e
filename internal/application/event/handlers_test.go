package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockOrderRecorder struct {
	mock.Mock
}

func (m *MockOrderRecorder) RecordOrderCreated(ctx context.Context, total, units int64) {
	m.Called(ctx, total, units)
}

func (m *MockOrderRecorder) RecordOrderCancelled(ctx context.Context, units int64) {
	m.Called(ctx, units)
}

func (m *MockOrderRecorder) RecordOrderDeleted(ctx context.Context, status string) {
	m.Called(ctx, status)
}

func (m *MockOrderRecorder) RecordStatusChange(ctx context.Context, from, to string) {
	m.Called(ctx, from, to)
}

func newPlacedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(uuid.New())
	require.NoError(t, err)
	_, err = o.AddItem(uuid.New(), 2, 350)
	require.NoError(t, err)
	_, err = o.AddItem(uuid.New(), 1, 500)
	require.NoError(t, err)
	return o
}

func TestOrderMetricsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	o := newPlacedOrder(t)
	actor := uuid.New()

	recorder := new(MockOrderRecorder)
	recorder.On("RecordOrderCreated", ctx, int64(1200), int64(3)).Once()
	recorder.On("RecordOrderCancelled", ctx, int64(3)).Once()
	recorder.On("RecordStatusChange", ctx, "pending", "cancelled").Once()
	recorder.On("RecordOrderDeleted", ctx, "cancelled").Once()

	h := NewOrderMetricsHandler(recorder, nil)

	require.NoError(t, h.Handle(ctx, order.NewOrderCreatedEvent(o)))
	require.NoError(t, h.Handle(ctx, order.NewOrderCancelledEvent(o, actor)))

	o.Status = order.StatusCancelled
	require.NoError(t, h.Handle(ctx, order.NewOrderStatusChangedEvent(o, order.StatusPending, actor)))
	require.NoError(t, h.Handle(ctx, order.NewOrderDeletedEvent(o, actor)))

	recorder.AssertExpectations(t)
}

type otherEvent struct {
	shared.BaseDomainEvent
}

func TestOrderMetricsHandler_RejectsForeignEvents(t *testing.T) {
	recorder := new(MockOrderRecorder)
	h := NewOrderMetricsHandler(recorder, nil)

	ev := &otherEvent{shared.NewBaseDomainEvent("GroceryCreated", "Grocery", uuid.New(), uuid.New())}
	err := h.Handle(context.Background(), ev)

	assert.ErrorContains(t, err, "GroceryCreated")
	recorder.AssertNotCalled(t, "RecordOrderCreated", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderMetricsHandler_EventTypes(t *testing.T) {
	h := NewOrderMetricsHandler(new(MockOrderRecorder), nil)
	assert.ElementsMatch(t, []string{
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderCancelled,
		order.EventTypeOrderDeleted,
	}, h.EventTypes())
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewAuditLogHandler(zap.New(core))
	o := newPlacedOrder(t)

	ev := order.NewOrderCreatedEvent(o)
	require.NoError(t, h.Handle(context.Background(), ev))

	assert.Nil(t, h.EventTypes())
	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "OrderCreated", fields["event_type"])
	assert.Equal(t, o.ID.String(), fields["aggregate_id"])
	assert.Equal(t, "audit", entries[0].LoggerName)
}
