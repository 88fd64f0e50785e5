package commands

import (
	"context"
	"fmt"
	"log/slog"

	outboxUseCase "github.com/allisson/orders/internal/outbox/usecase"
)

// RunRelayOutbox republishes pending outbox events. With once set it processes a single
// batch and returns; otherwise it polls until ctx is cancelled.
func RunRelayOutbox(ctx context.Context, relay outboxUseCase.UseCase, logger *slog.Logger, once bool) error {
	if once {
		logger.Info("relaying one outbox batch")
		if err := relay.ProcessEvents(ctx); err != nil {
			return fmt.Errorf("failed to relay outbox events: %w", err)
		}
		return nil
	}

	logger.Info("starting outbox relay")
	if err := relay.Start(ctx); err != nil {
		return fmt.Errorf("outbox relay error: %w", err)
	}
	logger.Info("outbox relay stopped")
	return nil
}
