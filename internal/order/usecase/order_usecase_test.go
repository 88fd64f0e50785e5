package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/orders/internal/errors"
	"github.com/allisson/orders/internal/messaging"
	orderClient "github.com/allisson/orders/internal/order/client"
	orderDomain "github.com/allisson/orders/internal/order/domain"
	outboxDomain "github.com/allisson/orders/internal/outbox/domain"
)

type orderUseCaseFixture struct {
	txManager  *mockTxManager
	orderRepo  *mockOrderRepository
	outboxRepo *mockOutboxEventRepository
	validator  *mockUserValidator
	publisher  *mockEventPublisher
}

func newOrderUseCaseFixture(t *testing.T) *orderUseCaseFixture {
	t.Helper()
	f := &orderUseCaseFixture{
		txManager:  &mockTxManager{},
		orderRepo:  &mockOrderRepository{},
		outboxRepo: &mockOutboxEventRepository{},
		validator:  &mockUserValidator{},
		publisher:  &mockEventPublisher{},
	}
	t.Cleanup(func() {
		f.txManager.AssertExpectations(t)
		f.orderRepo.AssertExpectations(t)
		f.outboxRepo.AssertExpectations(t)
		f.validator.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})
	return f
}

func (f *orderUseCaseFixture) useCase(config Config) UseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrderUseCase(f.txManager, f.orderRepo, f.outboxRepo, f.validator, f.publisher, config, logger)
}

func newStoredOrder(status orderDomain.OrderStatus) *orderDomain.Order {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &orderDomain.Order{
		ID:          uuid.Must(uuid.NewV7()),
		UserID:      uuid.Must(uuid.NewV7()),
		TotalAmount: decimal.RequireFromString("99.99"),
		Status:      status,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func TestOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	user := &orderClient.UserInfo{ID: userID, Email: "ada@example.com", Name: "Ada"}

	t.Run("Success", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		input := &orderDomain.CreateOrderInput{
			UserID:      userID.String(),
			TotalAmount: decimal.RequireFromString("99.99"),
		}

		f.validator.On("ValidateUserExists", ctx, userID).Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("Save", ctx, mock.MatchedBy(func(o *orderDomain.Order) bool {
			return o.UserID == userID && o.Status == orderDomain.OrderStatusCreated
		})).Return(nil).Once()

		var published *messaging.OrderCreatedEvent
		f.publisher.On("Publish", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				published = args.Get(1).(*messaging.OrderCreatedEvent)
			}).
			Return(nil).
			Once()

		order, err := f.useCase(Config{}).Create(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderDomain.OrderStatusCreated, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("99.99")))
		assert.Equal(t, order.CreatedAt, order.UpdatedAt)

		require.NotNil(t, published)
		assert.Equal(t, order.ID.String(), published.OrderID)
		assert.Equal(t, userID.String(), published.CustomerID)
		assert.Equal(t, "ada@example.com", published.CustomerEmail)
		assert.Equal(t, "99.99", published.TotalAmount.String())
		assert.Equal(t, messaging.OrderCreatedDescription, published.Description)
		assert.Equal(t, messaging.EventTypeOrderCreated, published.EventType)
	})

	t.Run("Success_WithOutbox", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		input := &orderDomain.CreateOrderInput{
			UserID:      userID.String(),
			TotalAmount: decimal.RequireFromString("10"),
		}

		f.validator.On("ValidateUserExists", ctx, userID).Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil).Once()
		f.outboxRepo.On("Create", ctx, mock.MatchedBy(func(e *outboxDomain.OutboxEvent) bool {
			return e.EventType == messaging.EventTypeOrderCreated &&
				e.Status == outboxDomain.OutboxEventStatusPending
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()
		f.outboxRepo.On("Update", ctx, mock.MatchedBy(func(e *outboxDomain.OutboxEvent) bool {
			return e.Status == outboxDomain.OutboxEventStatusProcessed && e.ProcessedAt != nil
		})).Return(nil).Once()

		order, err := f.useCase(Config{OutboxEnabled: true, OutboxMaxRetries: 3}).Create(ctx, input)

		require.NoError(t, err)
		assert.NotNil(t, order)
	})

	t.Run("Error_InvalidInputBeforeAnyIO", func(t *testing.T) {
		tests := []struct {
			name  string
			input *orderDomain.CreateOrderInput
		}{
			{
				name:  "MissingUserID",
				input: &orderDomain.CreateOrderInput{TotalAmount: decimal.NewFromInt(1)},
			},
			{
				name: "MalformedUserID",
				input: &orderDomain.CreateOrderInput{
					UserID:      "not-a-uuid",
					TotalAmount: decimal.NewFromInt(1),
				},
			},
			{
				name: "NilUserID",
				input: &orderDomain.CreateOrderInput{
					UserID:      uuid.Nil.String(),
					TotalAmount: decimal.NewFromInt(1),
				},
			},
			{
				name:  "ZeroAmount",
				input: &orderDomain.CreateOrderInput{UserID: userID.String(), TotalAmount: decimal.Zero},
			},
			{
				name: "NegativeAmount",
				input: &orderDomain.CreateOrderInput{
					UserID:      userID.String(),
					TotalAmount: decimal.RequireFromString("-5.00"),
				},
			},
			{
				name: "SubCentAmount",
				input: &orderDomain.CreateOrderInput{
					UserID:      userID.String(),
					TotalAmount: decimal.RequireFromString("0.004"),
				},
			},
			{
				name: "ThreeDecimalAmount",
				input: &orderDomain.CreateOrderInput{
					UserID:      userID.String(),
					TotalAmount: decimal.RequireFromString("150.005"),
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newOrderUseCaseFixture(t)

				order, err := f.useCase(Config{}).Create(ctx, tt.input)

				assert.Nil(t, order)
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			})
		}
	})

	t.Run("Error_UserNotFound", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		input := &orderDomain.CreateOrderInput{
			UserID:      userID.String(),
			TotalAmount: decimal.NewFromInt(5),
		}

		f.validator.On("ValidateUserExists", ctx, userID).
			Return(nil, orderDomain.ErrUserNotFound).
			Once()

		order, err := f.useCase(Config{}).Create(ctx, input)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, orderDomain.ErrUserNotFound)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Error_ValidationUnavailable", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		input := &orderDomain.CreateOrderInput{
			UserID:      userID.String(),
			TotalAmount: decimal.NewFromInt(5),
		}

		f.validator.On("ValidateUserExists", ctx, userID).
			Return(nil, orderDomain.ErrValidationUnavailable).
			Once()

		order, err := f.useCase(Config{}).Create(ctx, input)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, orderDomain.ErrValidationUnavailable)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error_SaveFails", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		input := &orderDomain.CreateOrderInput{
			UserID:      userID.String(),
			TotalAmount: decimal.NewFromInt(5),
		}
		saveErr := errors.New("disk full")

		f.validator.On("ValidateUserExists", ctx, userID).Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("Save", ctx, mock.Anything).Return(saveErr).Once()

		order, err := f.useCase(Config{}).Create(ctx, input)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, saveErr)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Error_PublishFailsAfterPersist", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		input := &orderDomain.CreateOrderInput{
			UserID:      userID.String(),
			TotalAmount: decimal.NewFromInt(5),
		}

		f.validator.On("ValidateUserExists", ctx, userID).Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil).Once()
		f.outboxRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(messaging.ErrPublishFailed).Once()
		f.outboxRepo.On("Update", ctx, mock.MatchedBy(func(e *outboxDomain.OutboxEvent) bool {
			return e.Status == outboxDomain.OutboxEventStatusPending &&
				e.Retries == 1 &&
				e.LastError != nil
		})).Return(nil).Once()

		order, err := f.useCase(Config{OutboxEnabled: true, OutboxMaxRetries: 3}).Create(ctx, input)

		require.NotNil(t, order)
		assert.Equal(t, orderDomain.OrderStatusCreated, order.Status)
		assert.ErrorIs(t, err, orderDomain.ErrEventPublicationFailed)
		assert.ErrorIs(t, err, messaging.ErrPublishFailed)
		assert.True(t, apperrors.Is(err, apperrors.ErrPartialFailure))
	})
}

func TestOrderUseCase_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		stored := newStoredOrder(orderDomain.OrderStatusCreated)

		f.orderRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()

		order, err := f.useCase(Config{}).GetByID(ctx, stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored, order)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		id := uuid.Must(uuid.NewV7())

		f.orderRepo.On("FindByID", ctx, id).Return(nil, orderDomain.ErrOrderNotFound).Once()

		order, err := f.useCase(Config{}).GetByID(ctx, id)

		assert.Nil(t, order)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestOrderUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		orders := []*orderDomain.Order{
			newStoredOrder(orderDomain.OrderStatusCreated),
			newStoredOrder(orderDomain.OrderStatusPaid),
		}

		f.orderRepo.On("FindAll", ctx).Return(orders, nil).Once()

		result, err := f.useCase(Config{}).List(ctx, nil)

		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("ByStatus", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		status := orderDomain.OrderStatusPaid
		orders := []*orderDomain.Order{newStoredOrder(orderDomain.OrderStatusPaid)}

		f.orderRepo.On("FindByStatus", ctx, orderDomain.OrderStatusPaid).Return(orders, nil).Once()

		result, err := f.useCase(Config{}).List(ctx, &status)

		require.NoError(t, err)
		assert.Equal(t, orders, result)
		f.orderRepo.AssertNotCalled(t, "FindAll", mock.Anything)
	})
}

func TestOrderUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Pay", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		stored := newStoredOrder(orderDomain.OrderStatusCreated)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()
		f.orderRepo.On("Save", ctx, stored).Return(nil).Once()

		order, err := f.useCase(Config{}).UpdateStatus(ctx, stored.ID, "PAID")

		require.NoError(t, err)
		assert.Equal(t, orderDomain.OrderStatusPaid, order.Status)
	})

	t.Run("Success_CancelPaid", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		stored := newStoredOrder(orderDomain.OrderStatusPaid)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()
		f.orderRepo.On("Save", ctx, stored).Return(nil).Once()

		order, err := f.useCase(Config{}).UpdateStatus(ctx, stored.ID, "CANCELLED")

		require.NoError(t, err)
		assert.True(t, order.IsCancelled())
	})

	t.Run("Error_PayCancelled", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		stored := newStoredOrder(orderDomain.OrderStatusCancelled)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()

		order, err := f.useCase(Config{}).UpdateStatus(ctx, stored.ID, "PAID")

		assert.Nil(t, order)
		var transitionErr *orderDomain.InvalidStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, orderDomain.OrderStatusCancelled, transitionErr.Current)
		assert.Equal(t, orderDomain.OrderStatusPaid, transitionErr.Attempted)
		assert.Equal(t, orderDomain.OrderStatusCancelled, stored.Status)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error_ResetPaidWithoutPolicy", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		stored := newStoredOrder(orderDomain.OrderStatusPaid)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()

		_, err := f.useCase(Config{}).UpdateStatus(ctx, stored.ID, "CREATED")

		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
	})

	t.Run("Success_ResetPaidWithPolicy", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		stored := newStoredOrder(orderDomain.OrderStatusPaid)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()
		f.orderRepo.On("Save", ctx, stored).Return(nil).Once()

		config := Config{Policy: orderDomain.TransitionPolicy{AllowResetFromPaid: true}}
		order, err := f.useCase(config).UpdateStatus(ctx, stored.ID, "CREATED")

		require.NoError(t, err)
		assert.Equal(t, orderDomain.OrderStatusCreated, order.Status)
	})

	t.Run("Error_UnknownStatus", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)

		order, err := f.useCase(Config{}).UpdateStatus(ctx, uuid.Must(uuid.NewV7()), "SHIPPED")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, orderDomain.ErrInvalidStatus)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		id := uuid.Must(uuid.NewV7())

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.orderRepo.On("FindByID", ctx, id).Return(nil, orderDomain.ErrOrderNotFound).Once()

		order, err := f.useCase(Config{}).UpdateStatus(ctx, id, "PAID")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, orderDomain.ErrOrderNotFound)
	})

	t.Run("Error_TransactionFails", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		txErr := errors.New("begin failed")

		f.txManager.On("WithTx", ctx, mock.Anything).Return(txErr).Once()

		order, err := f.useCase(Config{}).UpdateStatus(ctx, uuid.Must(uuid.NewV7()), "PAID")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, txErr)
	})
}

func TestOrderUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		id := uuid.Must(uuid.NewV7())

		f.orderRepo.On("ExistsByID", ctx, id).Return(true, nil).Once()
		f.orderRepo.On("DeleteByID", ctx, id).Return(nil).Once()

		err := f.useCase(Config{}).Delete(ctx, id)

		assert.NoError(t, err)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		id := uuid.Must(uuid.NewV7())

		f.orderRepo.On("ExistsByID", ctx, id).Return(false, nil).Once()

		err := f.useCase(Config{}).Delete(ctx, id)

		assert.ErrorIs(t, err, orderDomain.ErrOrderNotFound)
		f.orderRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("Error_ExistsFails", func(t *testing.T) {
		f := newOrderUseCaseFixture(t)
		id := uuid.Must(uuid.NewV7())
		dbErr := errors.New("connection reset")

		f.orderRepo.On("ExistsByID", ctx, id).Return(false, dbErr).Once()

		err := f.useCase(Config{}).Delete(ctx, id)

		assert.ErrorIs(t, err, dbErr)
	})
}
