package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/orders/internal/config"
	notificationHTTP "github.com/allisson/orders/internal/notification/http"
	notificationRepository "github.com/allisson/orders/internal/notification/repository"
	notificationSender "github.com/allisson/orders/internal/notification/sender"
	notificationUseCase "github.com/allisson/orders/internal/notification/usecase"
)

// RedisClient returns the Redis client backing the notification store.
func (c *Container) RedisClient() (redis.UniversalClient, error) {
	var err error
	c.redisClientInit.Do(func() {
		c.redisClient, err = c.initRedisClient()
		if err != nil {
			c.initErrors["redisClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["redisClient"]; exists {
		return nil, storedErr
	}
	return c.redisClient, nil
}

// NotificationRepository returns the notification store for the configured driver.
func (c *Container) NotificationRepository() (notificationUseCase.NotificationRepository, error) {
	var err error
	c.notificationRepoInit.Do(func() {
		c.notificationRepo, err = c.initNotificationRepository()
		if err != nil {
			c.initErrors["notificationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationRepo"]; exists {
		return nil, storedErr
	}
	return c.notificationRepo, nil
}

// NotificationUseCase returns the notification projector.
func (c *Container) NotificationUseCase() (notificationUseCase.UseCase, error) {
	var err error
	c.notificationUseCaseInit.Do(func() {
		c.notificationUseCase, err = c.initNotificationUseCase()
		if err != nil {
			c.initErrors["notificationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationUseCase"]; exists {
		return nil, storedErr
	}
	return c.notificationUseCase, nil
}

// NotificationHandler returns the HTTP handler for notification queries.
func (c *Container) NotificationHandler() (*notificationHTTP.NotificationHandler, error) {
	var err error
	c.notificationHandlerInit.Do(func() {
		c.notificationHandler, err = c.initNotificationHandler()
		if err != nil {
			c.initErrors["notificationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationHandler"]; exists {
		return nil, storedErr
	}
	return c.notificationHandler, nil
}

func (c *Container) initRedisClient() (redis.UniversalClient, error) {
	if c.config.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}
	return redis.NewClient(&redis.Options{
		Addr:     c.config.RedisAddr,
		Password: c.config.RedisPassword,
		DB:       c.config.RedisDB,
	}), nil
}

func (c *Container) initNotificationRepository() (notificationUseCase.NotificationRepository, error) {
	switch c.config.NotificationStoreDriver {
	case config.DriverMemory:
		return notificationRepository.NewMemoryNotificationRepository(), nil
	case config.DriverRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for notification repository: %w", err)
		}
		return notificationRepository.NewRedisNotificationRepository(client, c.config.NotificationTTL), nil
	default:
		return nil, fmt.Errorf("unsupported notification store driver: %s", c.config.NotificationStoreDriver)
	}
}

func (c *Container) initNotificationUseCase() (notificationUseCase.UseCase, error) {
	logger := c.Logger()

	repo, err := c.NotificationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification repository for notification use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for notification use case: %w", err)
	}

	useCase := notificationUseCase.NewNotificationUseCase(
		repo,
		notificationSender.NewLogSender(logger),
		notificationUseCase.RetryConfig{
			Enabled:     c.config.NotificationRetryEnabled,
			MaxAttempts: c.config.NotificationMaxAttempts,
			Backoff:     c.config.NotificationRetryBackoff,
		},
		logger,
	)
	return notificationUseCase.NewNotificationUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initNotificationHandler() (*notificationHTTP.NotificationHandler, error) {
	useCase, err := c.NotificationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification use case for notification handler: %w", err)
	}
	return notificationHTTP.NewNotificationHandler(useCase, c.Logger()), nil
}
