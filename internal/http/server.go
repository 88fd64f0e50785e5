// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/allisson/orders/internal/metrics"
)

// RouteRegistrar mounts a module's routes on the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(group *gin.RouterGroup)
}

// HealthCheck is a named readiness check.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// DatabaseCheck pings a SQL connection pool.
func DatabaseCheck(db *sql.DB) HealthCheck {
	return HealthCheck{
		Name: "database",
		Check: func(ctx context.Context) error {
			if db == nil {
				return errors.New("database not configured")
			}
			return db.PingContext(ctx)
		},
	}
}

// RedisCheck pings a Redis client.
func RedisCheck(client redis.UniversalClient) HealthCheck {
	return HealthCheck{
		Name: "redis",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// RouterConfig holds the middleware settings of the API router.
type RouterConfig struct {
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	CORSEnabled             bool
	CORSAllowOrigins        string
	MetricsProvider         *metrics.Provider
	MetricsNamespace        string
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	checks []HealthCheck
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Readiness reports every check.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	checks ...HealthCheck,
) *Server {
	return &Server{
		logger: logger,
		checks: checks,
		server: newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// listen blocks until srv stops. A graceful shutdown is not an error.
func listen(srv *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name, slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// SetupRouter builds the gin engine: recovery, request id, logging, optional metrics,
// CORS and rate limiting, health endpoints and the /v1 routes of every registrar.
// The rate limiter cleanup stops when ctx is cancelled.
func (s *Server) SetupRouter(ctx context.Context, cfg RouterConfig, registrars ...RouteRegistrar) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	for _, registrar := range registrars {
		registrar.RegisterRoutes(v1)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves the router until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router
	return listen(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler runs every health check with a short timeout.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	components := make(map[string]string, len(s.checks))
	for _, check := range s.checks {
		if err := check.Check(ctx); err != nil {
			s.logger.Warn("readiness check failed",
				slog.String("component", check.Name),
				slog.Any("error", err),
			)
			components[check.Name] = "error"
			ready = false
			continue
		}
		components[check.Name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
