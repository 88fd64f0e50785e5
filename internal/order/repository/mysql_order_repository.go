package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/database"
	apperrors "github.com/allisson/orders/internal/errors"
	"github.com/allisson/orders/internal/order/domain"
)

const mysqlOrderColumns = `id, user_id, total_amount, status, created_at, updated_at`

// MySQLOrderRepository implements order persistence for MySQL. UUIDs are stored as BINARY(16).
type MySQLOrderRepository struct {
	db *sql.DB
}

// NewMySQLOrderRepository creates a new MySQLOrderRepository.
func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Save inserts the order or replaces the row with the same id.
func (r *MySQLOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO orders (id, user_id, total_amount, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			    user_id = VALUES(user_id),
			    total_amount = VALUES(total_amount),
			    status = VALUES(status),
			    updated_at = VALUES(updated_at)`

	id, err := order.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal order id")
	}
	userID, err := order.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		order.TotalAmount,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save order")
	}
	return nil
}

// FindByID retrieves an order by id.
func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal order id")
	}

	query := `SELECT ` + mysqlOrderColumns + ` FROM orders WHERE id = ?`

	order, err := scanMySQLOrder(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get order by id")
	}
	return order, nil
}

// FindAll returns every order ordered by creation time.
func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + mysqlOrderColumns + ` FROM orders ORDER BY created_at, id`
	return r.list(ctx, query)
}

// FindByStatus returns the orders in the given status ordered by creation time.
func (r *MySQLOrderRepository) FindByStatus(
	ctx context.Context,
	status domain.OrderStatus,
) ([]*domain.Order, error) {
	query := `SELECT ` + mysqlOrderColumns + ` FROM orders WHERE status = ? ORDER BY created_at, id`
	return r.list(ctx, query, string(status))
}

// ExistsByID reports whether a row with the id exists.
func (r *MySQLOrderRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal order id")
	}

	var exists bool
	err = querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = ?)`, idBytes).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check order existence")
	}
	return exists, nil
}

// DeleteByID physically removes the order row.
func (r *MySQLOrderRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal order id")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete order")
	}
	return nil
}

func (r *MySQLOrderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list orders")
	}
	defer func() {
		_ = rows.Close()
	}()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanMySQLOrder(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan order")
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate orders")
	}
	return orders, nil
}

func scanMySQLOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var idBytes, userIDBytes []byte
	var status string
	err := row.Scan(
		&idBytes,
		&userIDBytes,
		&order.TotalAmount,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := order.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, err
	}
	if err := order.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)
	return &order, nil
}
