package event

import (
	"context"
	"fmt"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/grocery/backend/internal/domain/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MessageWriter is the producer side of a Kafka client
type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// NewKafkaWriter builds a traced writer for cfg.Topic. Messages are
// partitioned by key so events of one order stay in order.
func NewKafkaWriter(cfg config.KafkaConfig, tp trace.TracerProvider) (*otelkafka.Writer, error) {
	base := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}

	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes([]attribute.KeyValue{
			semconv.MessagingDestinationNameKey.String(cfg.Topic),
			attribute.String("messaging.kafka.client_id", cfg.ClientID),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka writer: %w", err)
	}
	return writer, nil
}

// OrderEventTypes are the events forwarded to Kafka
var OrderEventTypes = []string{
	order.EventTypeOrderCreated,
	order.EventTypeOrderStatusChanged,
	order.EventTypeOrderCancelled,
	order.EventTypeOrderDeleted,
}

// KafkaPublisher forwards domain events to a Kafka topic as JSON envelopes
type KafkaPublisher struct {
	writer     MessageWriter
	codec      *Codec
	eventTypes []string
	logger     *zap.Logger
}

// NewKafkaPublisher creates a forwarder for eventTypes
func NewKafkaPublisher(writer MessageWriter, codec *Codec, eventTypes []string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{
		writer:     writer,
		codec:      codec,
		eventTypes: eventTypes,
		logger:     logger,
	}
}

// EventTypes returns the forwarded event types
func (p *KafkaPublisher) EventTypes() []string {
	return p.eventTypes
}

// Handle encodes the event and writes it keyed by aggregate ID
func (p *KafkaPublisher) Handle(ctx context.Context, event shared.DomainEvent) error {
	value, err := p.codec.Encode(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.EventType())},
			{Key: "event-id", Value: []byte(event.EventID().String())},
		},
	}
	if err := p.writer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("write %s to kafka: %w", event.EventType(), err)
	}

	p.logger.Debug("event forwarded to kafka",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()))
	return nil
}

// Close closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
