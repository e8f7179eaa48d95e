package event

import (
	"context"

	"github.com/grocery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured log line per domain event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes returns nil, subscribing to every event
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event envelope fields
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("actor_id", event.ActorID().String()),
		zap.Time("occurred_at", event.OccurredAt()))
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
