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

const postgresOrderColumns = `id, user_id, total_amount, status, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgreSQLOrderRepository implements order persistence for PostgreSQL.
type PostgreSQLOrderRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrderRepository creates a new PostgreSQLOrderRepository.
func NewPostgreSQLOrderRepository(db *sql.DB) *PostgreSQLOrderRepository {
	return &PostgreSQLOrderRepository{db: db}
}

// Save inserts the order or replaces the row with the same id.
func (r *PostgreSQLOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO orders (id, user_id, total_amount, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE SET
			    user_id = EXCLUDED.user_id,
			    total_amount = EXCLUDED.total_amount,
			    status = EXCLUDED.status,
			    updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		order.ID,
		order.UserID,
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
func (r *PostgreSQLOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresOrderColumns + ` FROM orders WHERE id = $1`

	order, err := scanPostgreSQLOrder(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get order by id")
	}
	return order, nil
}

// FindAll returns every order ordered by creation time.
func (r *PostgreSQLOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + postgresOrderColumns + ` FROM orders ORDER BY created_at, id`
	return r.list(ctx, query)
}

// FindByStatus returns the orders in the given status ordered by creation time.
func (r *PostgreSQLOrderRepository) FindByStatus(
	ctx context.Context,
	status domain.OrderStatus,
) ([]*domain.Order, error) {
	query := `SELECT ` + postgresOrderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at, id`
	return r.list(ctx, query, string(status))
}

// ExistsByID reports whether a row with the id exists.
func (r *PostgreSQLOrderRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check order existence")
	}
	return exists, nil
}

// DeleteByID physically removes the order row.
func (r *PostgreSQLOrderRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete order")
	}
	return nil
}

func (r *PostgreSQLOrderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
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
		order, err := scanPostgreSQLOrder(rows)
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

func scanPostgreSQLOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)
	return &order, nil
}
