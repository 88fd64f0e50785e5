package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/order/domain"
)

var orderColumns = []string{"id", "user_id", "total_amount", "status", "created_at", "updated_at"}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestNewPostgreSQLOrderRepository(t *testing.T) {
	db, _ := newSQLMock(t)

	repo := NewPostgreSQLOrderRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLOrderRepository_Save(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)
		order := newOrderAt(t, time.Now().UTC(), domain.OrderStatusCreated)

		mock.ExpectExec("INSERT INTO orders .* ON CONFLICT \\(id\\) DO UPDATE").
			WithArgs(
				order.ID.String(),
				order.UserID.String(),
				sqlmock.AnyArg(),
				"CREATED",
				order.CreatedAt,
				order.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(context.Background(), order))
	})

	t.Run("Success_InsideTransaction", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)
		txManager := database.NewTxManager(db)
		order := newOrderAt(t, time.Now().UTC(), domain.OrderStatusCreated)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
			return repo.Save(ctx, order)
		})
		assert.NoError(t, err)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)
		order := newOrderAt(t, time.Now().UTC(), domain.OrderStatusCreated)

		mock.ExpectExec("INSERT INTO orders").WillReturnError(errors.New("connection reset"))

		err := repo.Save(context.Background(), order)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save order")
	})
}

func TestPostgreSQLOrderRepository_FindByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)
		id := uuid.Must(uuid.NewV7())
		userID := uuid.Must(uuid.NewV7())
		now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT .* FROM orders WHERE id = \\$1").
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(id.String(), userID.String(), "150.00", "PAID", now, now.Add(time.Minute)))

		order, err := repo.FindByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, order.ID)
		assert.Equal(t, userID, order.UserID)
		assert.True(t, decimal.RequireFromString("150").Equal(order.TotalAmount))
		assert.Equal(t, domain.OrderStatusPaid, order.Status)
		assert.Equal(t, now, order.CreatedAt)
		assert.Equal(t, now.Add(time.Minute), order.UpdatedAt)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)

		mock.ExpectQuery("SELECT .* FROM orders WHERE id").WillReturnRows(sqlmock.NewRows(orderColumns))

		order, err := repo.FindByID(context.Background(), uuid.New())
		assert.Nil(t, order)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestPostgreSQLOrderRepository_FindAll(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewPostgreSQLOrderRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .* FROM orders ORDER BY created_at, id").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(uuid.NewString(), uuid.NewString(), "10.00", "CREATED", now, now).
			AddRow(uuid.NewString(), uuid.NewString(), "20.50", "CANCELLED", now, now))

	orders, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "20.50", orders[1].TotalAmount.StringFixed(2))
	assert.Equal(t, domain.OrderStatusCancelled, orders[1].Status)
}

func TestPostgreSQLOrderRepository_FindByStatus(t *testing.T) {
	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)

		mock.ExpectQuery("SELECT .* FROM orders WHERE status = \\$1").
			WithArgs("PAID").
			WillReturnRows(sqlmock.NewRows(orderColumns))

		orders, err := repo.FindByStatus(context.Background(), domain.OrderStatusPaid)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLOrderRepository(db)

		mock.ExpectQuery("SELECT .* FROM orders WHERE status").WillReturnError(errors.New("boom"))

		orders, err := repo.FindByStatus(context.Background(), domain.OrderStatusPaid)
		assert.Nil(t, orders)
		assert.Contains(t, err.Error(), "failed to list orders")
	})
}

func TestPostgreSQLOrderRepository_ExistsByID(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewPostgreSQLOrderRepository(db)
	id := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgreSQLOrderRepository_DeleteByID(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewPostgreSQLOrderRepository(db)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM orders WHERE id = \\$1").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteByID(context.Background(), id))
}
