package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/messaging"
	orderDomain "github.com/allisson/orders/internal/order/domain"
	outboxDomain "github.com/allisson/orders/internal/outbox/domain"
	appValidation "github.com/allisson/orders/internal/validation"
)

// Config holds order use case configuration.
type Config struct {
	Policy           orderDomain.TransitionPolicy
	OutboxEnabled    bool
	OutboxMaxRetries int
}

// orderUseCase implements UseCase.
type orderUseCase struct {
	txManager     database.TxManager
	orderRepo     OrderRepository
	outboxRepo    OutboxEventRepository
	userValidator UserValidator
	publisher     EventPublisher
	config        Config
	logger        *slog.Logger
}

// NewOrderUseCase creates the order workflow. outboxRepo is only used when
// config.OutboxEnabled is set.
func NewOrderUseCase(
	txManager database.TxManager,
	orderRepo OrderRepository,
	outboxRepo OutboxEventRepository,
	userValidator UserValidator,
	publisher EventPublisher,
	config Config,
	logger *slog.Logger,
) UseCase {
	return &orderUseCase{
		txManager:     txManager,
		orderRepo:     orderRepo,
		outboxRepo:    outboxRepo,
		userValidator: userValidator,
		publisher:     publisher,
		config:        config,
		logger:        logger,
	}
}

func validateCreateOrderInput(input *orderDomain.CreateOrderInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.UserID,
			validation.Required.Error("userId is required"),
			is.UUID.Error("userId must be a valid UUID"),
			validation.NotIn(uuid.Nil.String()).Error("userId is required"),
		),
		validation.Field(&input.TotalAmount,
			appValidation.PositiveDecimal,
			appValidation.MaxScale(orderDomain.AmountScale),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create runs the order-creation workflow.
func (o *orderUseCase) Create(
	ctx context.Context,
	input *orderDomain.CreateOrderInput,
) (*orderDomain.Order, error) {
	if err := validateCreateOrderInput(input); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, orderDomain.ErrInvalidUserID
	}

	user, err := o.userValidator.ValidateUserExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := orderDomain.NewOrder(userID, input.TotalAmount)
	if err != nil {
		return nil, err
	}

	event := messaging.NewOrderCreatedEvent(order.ID, order.UserID, user.Email, order.TotalAmount, order.CreatedAt)

	var outboxEvent *outboxDomain.OutboxEvent
	if o.config.OutboxEnabled {
		payload, err := event.Marshal()
		if err != nil {
			return nil, fmt.Errorf("failed to encode order event: %w", err)
		}
		outboxEvent = outboxDomain.NewOutboxEvent(order.ID, event.EventType, payload)
	}

	err = o.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := o.orderRepo.Save(txCtx, order); err != nil {
			return err
		}
		if outboxEvent != nil {
			return o.outboxRepo.Create(txCtx, outboxEvent)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishErr := o.publisher.Publish(ctx, event)
	o.recordPublication(ctx, outboxEvent, publishErr)

	if publishErr != nil {
		o.logger.Warn("order persisted but event publication failed",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", publishErr),
		)
		return order, fmt.Errorf("%w: %w", orderDomain.ErrEventPublicationFailed, publishErr)
	}

	return order, nil
}

// recordPublication stores the eager publication outcome on the outbox record. The
// relay picks up records that stay pending.
func (o *orderUseCase) recordPublication(
	ctx context.Context,
	event *outboxDomain.OutboxEvent,
	publishErr error,
) {
	if event == nil {
		return
	}

	now := time.Now().UTC()
	if publishErr != nil {
		event.MarkAttemptFailed(publishErr, o.config.OutboxMaxRetries, now)
	} else {
		event.MarkProcessed(now)
	}

	if err := o.outboxRepo.Update(ctx, event); err != nil {
		o.logger.Error("failed to update outbox event",
			slog.String("event_id", event.ID.String()),
			slog.Any("error", err),
		)
	}
}

// GetByID retrieves an order by id.
func (o *orderUseCase) GetByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error) {
	return o.orderRepo.FindByID(ctx, id)
}

// List returns orders, optionally filtered by status.
func (o *orderUseCase) List(
	ctx context.Context,
	status *orderDomain.OrderStatus,
) ([]*orderDomain.Order, error) {
	if status == nil {
		return o.orderRepo.FindAll(ctx)
	}
	return o.orderRepo.FindByStatus(ctx, *status)
}

// UpdateStatus applies the transition to status on a freshly read order and saves it.
func (o *orderUseCase) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (*orderDomain.Order, error) {
	target, err := orderDomain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var order *orderDomain.Order
	err = o.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := o.orderRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := current.TransitionTo(target, o.config.Policy); err != nil {
			return err
		}

		if err := o.orderRepo.Save(txCtx, current); err != nil {
			return err
		}

		order = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Delete removes the order, bypassing the state machine.
func (o *orderUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := o.orderRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return orderDomain.ErrOrderNotFound
	}
	return o.orderRepo.DeleteByID(ctx, id)
}
