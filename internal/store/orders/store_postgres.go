// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/dberr"
	"github.com/minevale/api/pkg/pagination"
)

// PostgresRepository implements [Repository] over the store.order table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs an orders repository backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// The product name is denormalized onto the order row so the purchase
// history survives product deletion.
const orderColumns = `o.id, o.user_id, o.product_id, o.product_name, o.amount, o.status, o.created_at, o.updated_at`

// FindByID returns one order by id.
func (repository *PostgresRepository) FindByID(ctx context.Context, orderID string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s."order" o WHERE o.id = $1`, orderColumns, constants.SchemaStore)

	order, err := scanOrder(repository.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, dberr.Wrap(err, "orders_find_by_id")
	}

	return order, nil
}

// List returns a page of all orders and the total count.
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]Order, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s."order"`, constants.SchemaStore)
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "orders_count")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s."order" o
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2`, orderColumns, constants.SchemaStore)

	return repository.queryPage(ctx, query, total, params.Limit, params.Offset())
}

// ListByUser returns a page of one player's orders and their total count.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string, params pagination.Params) ([]Order, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s."order" WHERE user_id = $1`, constants.SchemaStore)
	if err := repository.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "orders_count_by_user")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s."order" o
		WHERE o.user_id = $3
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2`, orderColumns, constants.SchemaStore)

	return repository.queryPage(ctx, query, total, params.Limit, params.Offset(), userID)
}

// Create persists a new order.
func (repository *PostgresRepository) Create(ctx context.Context, order *Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s."order" (id, user_id, product_id, product_name, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`, constants.SchemaStore)

	err := repository.pool.QueryRow(ctx, query,
		order.ID,
		order.UserID,
		order.ProductID,
		order.ProductName,
		order.Amount,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "orders_create")
	}

	return nil
}

// UpdateStatus persists a new status for one order.
func (repository *PostgresRepository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	query := fmt.Sprintf(`
		UPDATE %s."order"
		SET status = $2, updated_at = NOW()
		WHERE id = $1`, constants.SchemaStore)

	tag, err := repository.pool.Exec(ctx, query, orderID, status)
	if err != nil {
		return dberr.Wrap(err, "orders_update_status")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// queryPage runs a paged order query with shared scan plumbing.
func (repository *PostgresRepository) queryPage(ctx context.Context, query string, total int, args ...any) ([]Order, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "orders_list")
	}
	defer rows.Close()

	results := make([]Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "orders_list_scan")
		}
		results = append(results, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "orders_list_rows")
	}

	return results, total, nil
}

// scanOrder reads one order row from a pgx row scanner.
func scanOrder(row pgx.Row) (*Order, error) {
	var order Order
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.ProductName,
		&order.Amount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
