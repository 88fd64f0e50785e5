package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// MessageReader is the subset of *kafka.Reader used by the consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventHandler processes one decoded event.
type EventHandler interface {
	HandleOrderCreated(ctx context.Context, event *OrderCreatedEvent) error
}

// ConsumerConfig holds the consumer-group settings.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Workers int
}

// NewKafkaReaders creates one group member per worker. Every reader joins the same
// consumer group so partitions are shared between them and other instances.
func NewKafkaReaders(cfg ConsumerConfig) []MessageReader {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	readers := make([]MessageReader, 0, workers)
	for i := 0; i < workers; i++ {
		readers = append(readers, kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			Topic:       cfg.Topic,
			GroupID:     cfg.GroupID,
			StartOffset: kafka.FirstOffset,
			MinBytes:    1,
			MaxBytes:    10e6,
		}))
	}
	return readers
}

// KafkaConsumer drives an EventHandler from a set of readers. A failing message is
// logged, optionally dead-lettered, and committed so consumption continues.
type KafkaConsumer struct {
	readers      []MessageReader
	handler      EventHandler
	deadLetter   DeadLetterSink
	logger       *slog.Logger
	fetchBackoff time.Duration
}

// NewKafkaConsumer creates a KafkaConsumer. deadLetter may be nil.
func NewKafkaConsumer(
	readers []MessageReader,
	handler EventHandler,
	deadLetter DeadLetterSink,
	logger *slog.Logger,
) *KafkaConsumer {
	return &KafkaConsumer{
		readers:      readers,
		handler:      handler,
		deadLetter:   deadLetter,
		logger:       logger,
		fetchBackoff: time.Second,
	}
}

// Run consumes until ctx is cancelled, then closes every reader.
func (c *KafkaConsumer) Run(ctx context.Context) error {
	defer c.closeReaders()

	g, ctx := errgroup.WithContext(ctx)
	for i, reader := range c.readers {
		worker := i
		g.Go(func() error {
			return c.consume(ctx, worker, reader)
		})
	}
	return g.Wait()
}

func (c *KafkaConsumer) consume(ctx context.Context, worker int, reader MessageReader) error {
	c.logger.Info("kafka consumer worker started", slog.Int("worker", worker))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("kafka consumer worker stopped", slog.Int("worker", worker))
				return nil
			}
			c.logger.Error("failed to fetch message", slog.Int("worker", worker), slog.Any("error", err))

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.fetchBackoff):
			}
			continue
		}

		// In-flight messages finish even when shutdown starts.
		processCtx := context.WithoutCancel(ctx)
		c.process(processCtx, msg)

		if err := reader.CommitMessages(processCtx, msg); err != nil {
			c.logger.Error("failed to commit message",
				slog.String("topic", msg.Topic),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.Any("error", err),
			)
		}
	}
}

func (c *KafkaConsumer) process(ctx context.Context, msg kafka.Message) {
	headers := msg.Headers
	ctx = otel.GetTextMapPropagator().Extract(ctx, NewHeaderCarrier(&headers))
	ctx, span := otel.Tracer(tracerName).Start(
		ctx,
		msg.Topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	event, err := UnmarshalOrderCreatedEvent(msg.Value)
	if err == nil {
		err = c.handler.HandleOrderCreated(ctx, event)
	}
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "processing failed")
	c.logger.Error("failed to process message",
		slog.String("topic", msg.Topic),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
		slog.String("key", string(msg.Key)),
		slog.Any("error", err),
	)

	if c.deadLetter == nil {
		return
	}
	if dlErr := c.deadLetter.Send(ctx, msg, err); dlErr != nil {
		c.logger.Error("failed to dead-letter message",
			slog.String("key", string(msg.Key)),
			slog.Any("error", dlErr),
		)
	}
}

func (c *KafkaConsumer) closeReaders() {
	for _, reader := range c.readers {
		if err := reader.Close(); err != nil {
			c.logger.Error("failed to close kafka reader", slog.Any("error", err))
		}
	}
}
