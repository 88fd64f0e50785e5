package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/allisson/orders/internal/messaging"

// Publisher publishes order events.
type Publisher interface {
	Publish(ctx context.Context, event *OrderCreatedEvent) error
}

// MessageWriter is the subset of *kafka.Writer used by the publisher and the dead-letter sink.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerConfig holds the producer settings.
type ProducerConfig struct {
	Brokers        []string
	Topic          string
	RequiredAcks   kafka.RequiredAcks
	MaxAttempts    int
	RequestTimeout time.Duration
	BatchTimeout   time.Duration
}

// ParseRequiredAcks converts all, one or none into a kafka.RequiredAcks value.
func ParseRequiredAcks(value string) (kafka.RequiredAcks, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "all", "-1", "":
		return kafka.RequireAll, nil
	case "one", "1":
		return kafka.RequireOne, nil
	case "none", "0":
		return kafka.RequireNone, nil
	default:
		return kafka.RequireAll, fmt.Errorf("invalid kafka required acks %q", value)
	}
}

// NewKafkaWriter builds a keyed writer: the hash balancer keeps every event of one
// order on the same partition.
func NewKafkaWriter(cfg ProducerConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: cfg.RequiredAcks,
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.RequestTimeout,
		BatchTimeout: cfg.BatchTimeout,
		Compression:  kafka.Snappy,
	}
}

// KafkaPublisher publishes OrderCreatedEvent records keyed by order id.
type KafkaPublisher struct {
	writer         MessageWriter
	topic          string
	requestTimeout time.Duration
	logger         *slog.Logger
}

// NewKafkaPublisher creates a KafkaPublisher. requestTimeout bounds every Publish call.
func NewKafkaPublisher(
	writer MessageWriter,
	topic string,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *KafkaPublisher {
	return &KafkaPublisher{
		writer:         writer,
		topic:          topic,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Publish writes the event and waits for the configured acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, event *OrderCreatedEvent) error {
	ctx, span := otel.Tracer(tracerName).Start(
		ctx,
		p.topic+" publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", p.topic),
			attribute.String("messaging.kafka.message.key", event.OrderID),
		),
	)
	defer span.End()

	value, err := event.Marshal()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal failed")
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	headers := []kafka.Header{{Key: "eventType", Value: []byte(event.EventType)}}
	otel.GetTextMapPropagator().Inject(ctx, NewHeaderCarrier(&headers))

	if p.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     event.Key(),
		Value:   value,
		Headers: headers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		p.logger.Error("failed to publish order event",
			slog.String("topic", p.topic),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	p.logger.Debug("order event published",
		slog.String("topic", p.topic),
		slog.String("order_id", event.OrderID),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events. Used when Kafka is disabled.
type NoopPublisher struct{}

// Publish does nothing.
func (NoopPublisher) Publish(_ context.Context, _ *OrderCreatedEvent) error { return nil }
