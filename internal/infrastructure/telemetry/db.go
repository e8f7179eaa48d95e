package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

// InstrumentDB registers the GORM tracing plugin. Bound values stay out of
// spans unless full SQL logging is enabled.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, dbName string) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(dbName)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register gorm tracing plugin: %w", err)
	}
	return nil
}

// PoolStatsFunc snapshots a connection pool
type PoolStatsFunc func() (sql.DBStats, error)

// RegisterDBPoolMetrics reports connection pool stats on every collection
func RegisterDBPoolMetrics(meter metric.Meter, poolStats PoolStatsFunc) (metric.Registration, error) {
	open, err := meter.Int64ObservableGauge("db.pool.open_connections",
		metric.WithDescription("Open connections, in use and idle"))
	if err != nil {
		return nil, err
	}
	inUse, err := meter.Int64ObservableGauge("db.pool.in_use",
		metric.WithDescription("Connections currently in use"))
	if err != nil {
		return nil, err
	}
	idle, err := meter.Int64ObservableGauge("db.pool.idle",
		metric.WithDescription("Idle connections"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db.pool.wait_count",
		metric.WithDescription("Total connections waited for"))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats, err := poolStats()
		if err != nil {
			return fmt.Errorf("read pool stats: %w", err)
		}
		o.ObserveInt64(open, int64(stats.OpenConnections))
		o.ObserveInt64(inUse, int64(stats.InUse))
		o.ObserveInt64(idle, int64(stats.Idle))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, open, inUse, idle, waits)
}
