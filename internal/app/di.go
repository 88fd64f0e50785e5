// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/allisson/orders/internal/config"
	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/http"
	"github.com/allisson/orders/internal/messaging"
	"github.com/allisson/orders/internal/metrics"
	notificationHTTP "github.com/allisson/orders/internal/notification/http"
	notificationUseCase "github.com/allisson/orders/internal/notification/usecase"
	orderHTTP "github.com/allisson/orders/internal/order/http"
	orderUseCase "github.com/allisson/orders/internal/order/usecase"
	outboxUseCase "github.com/allisson/orders/internal/outbox/usecase"
	userHTTP "github.com/allisson/orders/internal/user/http"
	userUseCase "github.com/allisson/orders/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	tracerProvider  *sdktrace.TracerProvider
	redisClient     redis.UniversalClient

	// Managers
	txManager database.TxManager

	// Repositories
	userRepo         userUseCase.UserRepository
	orderRepo        orderUseCase.OrderRepository
	outboxRepo       OutboxRepository
	notificationRepo notificationUseCase.NotificationRepository

	// Messaging
	kafkaWriter    *kafka.Writer
	publisher      messaging.Publisher
	deadLetterSink messaging.DeadLetterSink
	consumer       *messaging.KafkaConsumer

	// Use Cases
	userUseCase         userUseCase.UseCase
	orderUseCase        orderUseCase.UseCase
	outboxUseCase       outboxUseCase.UseCase
	notificationUseCase notificationUseCase.UseCase

	// Handlers
	userHandler         *userHTTP.UserHandler
	orderHandler        *orderHTTP.OrderHandler
	notificationHandler *notificationHTTP.NotificationHandler

	// Servers and Workers
	httpServer     *http.Server
	consumerServer *http.Server
	metricsServer  *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	tracerProviderInit      sync.Once
	redisClientInit         sync.Once
	txManagerInit           sync.Once
	userRepoInit            sync.Once
	orderRepoInit           sync.Once
	outboxRepoInit          sync.Once
	notificationRepoInit    sync.Once
	publisherInit           sync.Once
	deadLetterSinkInit      sync.Once
	consumerInit            sync.Once
	userUseCaseInit         sync.Once
	orderUseCaseInit        sync.Once
	outboxUseCaseInit       sync.Once
	notificationUseCaseInit sync.Once
	userHandlerInit         sync.Once
	orderHandlerInit        sync.Once
	notificationHandlerInit sync.Once
	httpServerInit          sync.Once
	consumerServerInit      sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection. It is nil when the memory driver is selected.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager matching the configured driver.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the Prometheus backed meter provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// TracerProvider installs the global tracer provider and propagators on first access.
func (c *Container) TracerProvider() *sdktrace.TracerProvider {
	c.tracerProviderInit.Do(func() {
		c.tracerProvider = metrics.InstallTracing(c.config.MetricsNamespace)
	})
	return c.tracerProvider
}

// HTTPServer returns the API server with the user and order routes mounted.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// ConsumerServer returns the consumer process server exposing health and notification queries.
func (c *Container) ConsumerServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.consumerServerInit.Do(func() {
		c.consumerServer, err = c.initConsumerServer(ctx)
		if err != nil {
			c.initErrors["consumerServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consumerServer"]; exists {
		return nil, storedErr
	}
	return c.consumerServer, nil
}

// MetricsServer returns the Prometheus metrics server.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.consumerServer != nil {
		if err := c.consumerServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("consumer server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.kafkaWriter != nil {
		if err := c.kafkaWriter.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kafka writer close: %w", err))
		}
	}

	if c.deadLetterSink != nil {
		if err := c.deadLetterSink.Close(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("dead letter sink close: %w", err))
		}
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.tracerProvider != nil {
		if err := c.tracerProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	if c.config.DBDriver == config.DriverMemory {
		return nil, nil
	}

	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the SQL transaction manager, or the in-memory unit of work for the memory driver.
func (c *Container) initTxManager() (database.TxManager, error) {
	if c.config.DBDriver == config.DriverMemory {
		return database.NewMemoryTxManager(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsProvider creates the meter provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// routerConfig builds the middleware settings shared by both servers.
func (c *Container) routerConfig() (http.RouterConfig, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return http.RouterConfig{}, fmt.Errorf("failed to get metrics provider for router: %w", err)
	}

	return http.RouterConfig{
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		MetricsProvider:         provider,
		MetricsNamespace:        c.config.MetricsNamespace,
	}, nil
}

// initHTTPServer creates the API server with the user and order routes.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	routerConfig, err := c.routerConfig()
	if err != nil {
		return nil, err
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	orderHandler, err := c.OrderHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get order handler for http server: %w", err)
	}

	var checks []http.HealthCheck
	if c.config.DBDriver != config.DriverMemory {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for http server: %w", err)
		}
		checks = append(checks, http.DatabaseCheck(db))
	}

	server := http.NewServer(c.config.ServerHost, c.config.ServerPort, logger, checks...)
	server.SetupRouter(ctx, routerConfig, userHandler, orderHandler)

	return server, nil
}

// initConsumerServer creates the consumer process server with the notification routes.
func (c *Container) initConsumerServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	routerConfig, err := c.routerConfig()
	if err != nil {
		return nil, err
	}

	notificationHandler, err := c.NotificationHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification handler for consumer server: %w", err)
	}

	var checks []http.HealthCheck
	if c.config.NotificationStoreDriver == config.DriverRedis {
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for consumer server: %w", err)
		}
		checks = append(checks, http.RedisCheck(client))
	}

	server := http.NewServer(c.config.ServerHost, c.config.ConsumerServerPort, logger, checks...)
	server.SetupRouter(ctx, routerConfig, notificationHandler)

	return server, nil
}

// initMetricsServer creates the metrics server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("metrics are disabled")
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
