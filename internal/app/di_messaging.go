package app

import (
	"context"
	"fmt"

	"github.com/allisson/orders/internal/messaging"
	notificationUseCase "github.com/allisson/orders/internal/notification/usecase"
)

// Publisher returns the Kafka publisher, or a publisher that discards events when Kafka is disabled.
func (c *Container) Publisher() (messaging.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		c.publisher, err = c.initPublisher()
		if err != nil {
			c.initErrors["publisher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publisher"]; exists {
		return nil, storedErr
	}
	return c.publisher, nil
}

// DeadLetterSink returns the sink for messages the consumer gave up on. It is nil when
// neither DEAD_LETTER_URL nor KAFKA_DEAD_LETTER_TOPIC is set.
func (c *Container) DeadLetterSink(ctx context.Context) (messaging.DeadLetterSink, error) {
	var err error
	c.deadLetterSinkInit.Do(func() {
		c.deadLetterSink, err = c.initDeadLetterSink(ctx)
		if err != nil {
			c.initErrors["deadLetterSink"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deadLetterSink"]; exists {
		return nil, storedErr
	}
	return c.deadLetterSink, nil
}

// Consumer returns the OrderCreated consumer feeding the notification use case.
func (c *Container) Consumer(ctx context.Context) (*messaging.KafkaConsumer, error) {
	var err error
	c.consumerInit.Do(func() {
		c.consumer, err = c.initConsumer(ctx)
		if err != nil {
			c.initErrors["consumer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consumer"]; exists {
		return nil, storedErr
	}
	return c.consumer, nil
}

func (c *Container) producerConfig(topic string) (messaging.ProducerConfig, error) {
	acks, err := messaging.ParseRequiredAcks(c.config.KafkaRequiredAcks)
	if err != nil {
		return messaging.ProducerConfig{}, err
	}
	return messaging.ProducerConfig{
		Brokers:        c.config.KafkaBrokers,
		Topic:          topic,
		RequiredAcks:   acks,
		MaxAttempts:    c.config.KafkaMaxAttempts,
		RequestTimeout: c.config.KafkaRequestTimeout,
		BatchTimeout:   c.config.KafkaBatchTimeout,
	}, nil
}

func (c *Container) initPublisher() (messaging.Publisher, error) {
	logger := c.Logger()

	if !c.config.KafkaEnabled {
		logger.Warn("kafka disabled, order events will be discarded")
		return messaging.NoopPublisher{}, nil
	}

	cfg, err := c.producerConfig(c.config.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to build producer config: %w", err)
	}

	c.TracerProvider()
	c.kafkaWriter = messaging.NewKafkaWriter(cfg)
	return messaging.NewKafkaPublisher(c.kafkaWriter, cfg.Topic, cfg.RequestTimeout, logger), nil
}

// initDeadLetterSink returns nil unless notification retries are enabled: without
// them a failed notification is recorded as FAILED and the message is dropped.
func (c *Container) initDeadLetterSink(ctx context.Context) (messaging.DeadLetterSink, error) {
	if !c.config.NotificationRetryEnabled {
		return nil, nil
	}

	if c.config.DeadLetterURL != "" {
		sink, err := messaging.OpenPubSubDeadLetterSink(ctx, c.config.DeadLetterURL)
		if err != nil {
			return nil, err
		}
		return sink, nil
	}

	if !c.config.KafkaEnabled || c.config.KafkaDeadLetterTopic == "" {
		return nil, nil
	}

	cfg, err := c.producerConfig(c.config.KafkaDeadLetterTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to build dead letter producer config: %w", err)
	}
	return messaging.NewKafkaDeadLetterSink(messaging.NewKafkaWriter(cfg)), nil
}

func (c *Container) initConsumer(ctx context.Context) (*messaging.KafkaConsumer, error) {
	if !c.config.KafkaEnabled {
		return nil, fmt.Errorf("kafka is disabled")
	}

	useCase, err := c.NotificationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification use case for consumer: %w", err)
	}

	deadLetter, err := c.DeadLetterSink(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dead letter sink for consumer: %w", err)
	}

	c.TracerProvider()

	readers := messaging.NewKafkaReaders(messaging.ConsumerConfig{
		Brokers: c.config.KafkaBrokers,
		Topic:   c.config.KafkaTopic,
		GroupID: c.config.KafkaConsumerGroupID,
		Workers: c.config.KafkaConsumerWorkers,
	})

	handler := notificationUseCase.NewEventHandler(useCase)
	return messaging.NewKafkaConsumer(readers, handler, deadLetter, c.Logger()), nil
}
