package app

import (
	"fmt"

	"github.com/allisson/orders/internal/config"
	orderClient "github.com/allisson/orders/internal/order/client"
	orderDomain "github.com/allisson/orders/internal/order/domain"
	orderHTTP "github.com/allisson/orders/internal/order/http"
	orderRepository "github.com/allisson/orders/internal/order/repository"
	orderUseCase "github.com/allisson/orders/internal/order/usecase"
)

// OrderRepository returns the order repository for the configured driver.
func (c *Container) OrderRepository() (orderUseCase.OrderRepository, error) {
	var err error
	c.orderRepoInit.Do(func() {
		c.orderRepo, err = c.initOrderRepository()
		if err != nil {
			c.initErrors["orderRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["orderRepo"]; exists {
		return nil, storedErr
	}
	return c.orderRepo, nil
}

// OrderUseCase returns the order workflow.
func (c *Container) OrderUseCase() (orderUseCase.UseCase, error) {
	var err error
	c.orderUseCaseInit.Do(func() {
		c.orderUseCase, err = c.initOrderUseCase()
		if err != nil {
			c.initErrors["orderUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["orderUseCase"]; exists {
		return nil, storedErr
	}
	return c.orderUseCase, nil
}

// OrderHandler returns the HTTP handler for orders.
func (c *Container) OrderHandler() (*orderHTTP.OrderHandler, error) {
	var err error
	c.orderHandlerInit.Do(func() {
		c.orderHandler, err = c.initOrderHandler()
		if err != nil {
			c.initErrors["orderHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["orderHandler"]; exists {
		return nil, storedErr
	}
	return c.orderHandler, nil
}

func (c *Container) initOrderRepository() (orderUseCase.OrderRepository, error) {
	if c.config.DBDriver == config.DriverMemory {
		return orderRepository.NewMemoryOrderRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for order repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverMySQL:
		return orderRepository.NewMySQLOrderRepository(db), nil
	case config.DriverPostgres:
		return orderRepository.NewPostgreSQLOrderRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initOrderUseCase() (orderUseCase.UseCase, error) {
	logger := c.Logger()

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for order use case: %w", err)
	}

	orderRepo, err := c.OrderRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get order repository for order use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for order use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for order use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for order use case: %w", err)
	}

	// Spans started by the user client and the publisher need the global provider.
	c.TracerProvider()

	userClient := orderClient.NewUserClient(c.config.UserServiceURL, c.config.UserServiceTimeout, logger)

	useCase := orderUseCase.NewOrderUseCase(
		txManager,
		orderRepo,
		outboxRepo,
		userClient,
		publisher,
		orderUseCase.Config{
			Policy:           orderDomain.TransitionPolicy{AllowResetFromPaid: c.config.OrderAllowPaidReset},
			OutboxEnabled:    c.config.OutboxEnabled,
			OutboxMaxRetries: c.config.OutboxMaxRetries,
		},
		logger,
	)
	return orderUseCase.NewOrderUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initOrderHandler() (*orderHTTP.OrderHandler, error) {
	useCase, err := c.OrderUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get order use case for order handler: %w", err)
	}
	return orderHTTP.NewOrderHandler(useCase, c.Logger()), nil
}
