// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/dberr"
	"github.com/minevale/api/pkg/pagination"
)

// PostgresRepository implements [Repository] over the store.product table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a catalog repository backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = "id, name, description, price, category, color, image, created_at, updated_at"

// FindByID returns one product by id.
func (repository *PostgresRepository) FindByID(ctx context.Context, productID string) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s.product WHERE id = $1`, productColumns, constants.SchemaStore)

	product, err := scanProduct(repository.pool.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, dberr.Wrap(err, "catalog_find_by_id")
	}

	return product, nil
}

// List returns a category-filtered page of products and the filter's total.
func (repository *PostgresRepository) List(ctx context.Context, category string, params pagination.Params) ([]Product, int, error) {
	filter := ""
	args := []any{params.Limit, params.Offset()}
	countArgs := []any{}

	if category != "" {
		filter = "WHERE category = $3"
		args = append(args, category)
		countArgs = append(countArgs, category)
	}

	var total int
	countFilter := ""
	if category != "" {
		countFilter = "WHERE category = $1"
	}
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.product %s`, constants.SchemaStore, countFilter)
	if err := repository.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "catalog_count")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.product
		%s
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, productColumns, constants.SchemaStore, filter)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "catalog_list")
	}
	defer rows.Close()

	products := make([]Product, 0, params.Limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "catalog_list_scan")
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "catalog_list_rows")
	}

	return products, total, nil
}

// Create persists a new product.
func (repository *PostgresRepository) Create(ctx context.Context, product *Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.product (id, name, description, price, category, color, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`, constants.SchemaStore)

	err := repository.pool.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Color,
		product.Image,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "catalog_create")
	}

	return nil
}

// Update persists changes to an existing product.
func (repository *PostgresRepository) Update(ctx context.Context, product *Product) error {
	query := fmt.Sprintf(`
		UPDATE %s.product
		SET name = $2, description = $3, price = $4, category = $5, color = $6, image = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`, constants.SchemaStore)

	err := repository.pool.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Color,
		product.Image,
	).Scan(&product.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "catalog_update")
	}

	return nil
}

// Delete removes a product by id.
func (repository *PostgresRepository) Delete(ctx context.Context, productID string) error {
	query := fmt.Sprintf(`DELETE FROM %s.product WHERE id = $1`, constants.SchemaStore)

	tag, err := repository.pool.Exec(ctx, query, productID)
	if err != nil {
		return dberr.Wrap(err, "catalog_delete")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// scanProduct reads one product row from a pgx row scanner.
func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Color,
		&product.Image,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
