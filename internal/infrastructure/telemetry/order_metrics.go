package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OrderMetrics records order workflow instruments
type OrderMetrics struct {
	ordersCreated     metric.Int64Counter
	ordersCancelled   metric.Int64Counter
	ordersDeleted     metric.Int64Counter
	statusTransitions metric.Int64Counter
	unitsDebited      metric.Int64Counter
	unitsRestocked    metric.Int64Counter
	stockRejections   metric.Int64Counter
	orderValue        metric.Int64Histogram
}

// NewOrderMetrics creates the order instruments on meter
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	m := &OrderMetrics{}
	counters := []struct {
		dst         *metric.Int64Counter
		name        string
		description string
	}{
		{&m.ordersCreated, "grocery.orders.created", "Orders placed"},
		{&m.ordersCancelled, "grocery.orders.cancelled", "Orders cancelled"},
		{&m.ordersDeleted, "grocery.orders.deleted", "Orders soft-deleted"},
		{&m.statusTransitions, "grocery.orders.status_transitions", "Order status changes"},
		{&m.unitsDebited, "grocery.stock.units_debited", "Stock units debited by placed orders"},
		{&m.unitsRestocked, "grocery.stock.units_restocked", "Stock units returned by cancellations"},
		{&m.stockRejections, "grocery.stock.rejections", "Orders rejected for insufficient stock"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.description))
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	var err error
	m.orderValue, err = meter.Int64Histogram("grocery.orders.value",
		metric.WithDescription("Order total in minor currency units"),
		metric.WithExplicitBucketBoundaries(500, 1000, 2500, 5000, 10000, 25000, 50000, 100000))
	if err != nil {
		return nil, fmt.Errorf("create histogram grocery.orders.value: %w", err)
	}
	return m, nil
}

// RecordOrderCreated counts a placed order with its debited units and total
func (m *OrderMetrics) RecordOrderCreated(ctx context.Context, total, units int64) {
	m.ordersCreated.Add(ctx, 1)
	m.unitsDebited.Add(ctx, units)
	m.orderValue.Record(ctx, total)
}

// RecordOrderCancelled counts a cancellation with its restocked units
func (m *OrderMetrics) RecordOrderCancelled(ctx context.Context, units int64) {
	m.ordersCancelled.Add(ctx, 1)
	m.unitsRestocked.Add(ctx, units)
}

// RecordOrderDeleted counts a soft delete by the status it had
func (m *OrderMetrics) RecordOrderDeleted(ctx context.Context, status string) {
	m.ordersDeleted.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordStatusChange counts a transition
func (m *OrderMetrics) RecordStatusChange(ctx context.Context, from, to string) {
	m.statusTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordStockRejection counts an order refused for lack of stock
func (m *OrderMetrics) RecordStockRejection(ctx context.Context, groceryID uuid.UUID) {
	m.stockRejections.Add(ctx, 1, metric.WithAttributes(attribute.String("grocery_id", groceryID.String())))
}
