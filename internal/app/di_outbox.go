package app

import (
	"fmt"

	"github.com/allisson/orders/internal/config"
	orderUseCase "github.com/allisson/orders/internal/order/usecase"
	outboxRepository "github.com/allisson/orders/internal/outbox/repository"
	outboxUseCase "github.com/allisson/orders/internal/outbox/usecase"
)

// OutboxRepository is written by the order workflow and drained by the relay.
type OutboxRepository interface {
	orderUseCase.OutboxEventRepository
	outboxUseCase.OutboxEventRepository
}

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (OutboxRepository, error) {
	var err error
	c.outboxRepoInit.Do(func() {
		c.outboxRepo, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepo"]; exists {
		return nil, storedErr
	}
	return c.outboxRepo, nil
}

// OutboxUseCase returns the outbox relay.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

func (c *Container) initOutboxRepository() (OutboxRepository, error) {
	if c.config.DBDriver == config.DriverMemory {
		return outboxRepository.NewMemoryOutboxEventRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverMySQL:
		return outboxRepository.NewMySQLOutboxEventRepository(db), nil
	case config.DriverPostgres:
		return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	logger := c.Logger()

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for outbox use case: %w", err)
	}

	useCaseConfig := outboxUseCase.Config{
		Interval:   c.config.OutboxInterval,
		BatchSize:  c.config.OutboxBatchSize,
		MaxRetries: c.config.OutboxMaxRetries,
		RetryDelay: c.config.OutboxRetryDelay,
	}

	processor := outboxUseCase.NewPublishingProcessor(publisher)
	return outboxUseCase.NewOutboxUseCase(useCaseConfig, txManager, outboxRepo, processor, logger), nil
}
