package event

import (
	"context"
	"fmt"

	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderRecorder receives order workflow counts
type OrderRecorder interface {
	RecordOrderCreated(ctx context.Context, total, units int64)
	RecordOrderCancelled(ctx context.Context, units int64)
	RecordOrderDeleted(ctx context.Context, status string)
	RecordStatusChange(ctx context.Context, from, to string)
}

// OrderMetricsHandler turns order events into metrics
type OrderMetricsHandler struct {
	recorder OrderRecorder
	logger   *zap.Logger
}

// NewOrderMetricsHandler creates a new OrderMetricsHandler
func NewOrderMetricsHandler(recorder OrderRecorder, logger *zap.Logger) *OrderMetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderMetricsHandler{recorder: recorder, logger: logger}
}

// EventTypes returns the order events
func (h *OrderMetricsHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderCancelled,
		order.EventTypeOrderDeleted,
	}
}

// Handle records one event
func (h *OrderMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		h.recorder.RecordOrderCreated(ctx, e.Total, units(e.Items))
	case *order.OrderCancelledEvent:
		h.recorder.RecordOrderCancelled(ctx, units(e.Items))
	case *order.OrderStatusChangedEvent:
		h.recorder.RecordStatusChange(ctx, e.FromStatus.String(), e.ToStatus.String())
	case *order.OrderDeletedEvent:
		h.recorder.RecordOrderDeleted(ctx, e.Status.String())
	default:
		return fmt.Errorf("order metrics: unexpected event %s (%T)", event.EventType(), event)
	}
	return nil
}

func units(items []order.ItemInfo) int64 {
	var n int64
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

var _ shared.EventHandler = (*OrderMetricsHandler)(nil)
