package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/orders/internal/app"
	"github.com/allisson/orders/internal/config"
)

// RunConsumer starts the notification consumer workers together with the consumer
// server (health and notification queries) and the metrics server. On SIGINT/SIGTERM
// the readers stop fetching, in-flight messages finish and the servers shut down.
func RunConsumer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting consumer",
		slog.String("version", version),
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group_id", cfg.KafkaConsumerGroupID),
		slog.Int("workers", cfg.KafkaConsumerWorkers),
	)

	defer closeContainer(container, logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	consumer, err := container.Consumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize consumer: %w", err)
	}

	server, err := container.ConsumerServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize consumer server: %w", err)
	}

	servers := []stoppable{server}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consumer.Run(gctx)
	})

	g.Go(func() error {
		if err := server.Start(gctx); err != nil {
			return fmt.Errorf("consumer server error: %w", err)
		}
		return nil
	})

	if cfg.MetricsEnabled {
		metricsServer, err := container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
		servers = append(servers, metricsServer)
		g.Go(func() error {
			if err := metricsServer.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		return shutdownServers(servers)
	})

	return g.Wait()
}
