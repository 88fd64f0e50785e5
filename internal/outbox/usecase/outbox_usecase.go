// Package usecase implements the outbox relay that republishes events whose eager
// publication failed.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/messaging"
	"github.com/allisson/orders/internal/outbox/domain"
)

// Config holds outbox relay configuration
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	// RetryDelay is the minimum age of a pending event before the relay picks it up.
	RetryDelay time.Duration
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	GetPendingEvents(ctx context.Context, olderThan time.Time, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor defines the interface for processing different event types
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase implements business logic for processing outbox events
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	logger         *slog.Logger
	now            func() time.Time
}

// NewOutboxUseCase creates a new OutboxUseCase
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the relay loop until ctx is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting outbox relay",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox relay")
			return nil
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process outbox events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents publishes one batch of pending events in a transaction. Events that
// fail again keep pending until MaxRetries is reached.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.now().Add(-uc.config.RetryDelay), uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return nil
		}

		uc.logger.Info("relaying outbox events", slog.Int("count", len(events)))

		for _, event := range events {
			if err := uc.eventProcessor.Process(ctx, event); err != nil {
				uc.logger.Error("failed to relay outbox event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", event.EventType),
					slog.Int("retries", event.Retries+1),
					slog.Any("error", err),
				)

				event.MarkAttemptFailed(err, uc.config.MaxRetries, uc.now())
				if err := uc.outboxRepo.Update(ctx, event); err != nil {
					return err
				}
				continue
			}

			event.MarkProcessed(uc.now())
			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
}

// PublishingProcessor republishes outbox events through the broker publisher.
type PublishingProcessor struct {
	publisher messaging.Publisher
}

// NewPublishingProcessor creates a PublishingProcessor.
func NewPublishingProcessor(publisher messaging.Publisher) *PublishingProcessor {
	return &PublishingProcessor{publisher: publisher}
}

// Process decodes the stored payload and publishes it.
func (p *PublishingProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case messaging.EventTypeOrderCreated:
		orderEvent, err := messaging.UnmarshalOrderCreatedEvent([]byte(event.Payload))
		if err != nil {
			return err
		}
		return p.publisher.Publish(ctx, orderEvent)
	default:
		return fmt.Errorf("%w: unknown event type %q", messaging.ErrInvalidEvent, event.EventType)
	}
}
