// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package support

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/dberr"
	"github.com/minevale/api/pkg/pagination"
)

// PostgresRepository implements [Repository] over the support.ticket table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a support repository backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const ticketColumns = "id, user_id, subject, body, status, created_at, updated_at"

// FindByID returns one ticket by id.
func (repository *PostgresRepository) FindByID(ctx context.Context, ticketID string) (*Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s.ticket WHERE id = $1`, ticketColumns, constants.SchemaSupport)

	ticket, err := scanTicket(repository.pool.QueryRow(ctx, query, ticketID))
	if err != nil {
		return nil, dberr.Wrap(err, "support_find_by_id")
	}

	return ticket, nil
}

// List returns the staff queue: open tickets first, oldest on top, so the
// longest-waiting player gets handled next.
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]Ticket, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.ticket`, constants.SchemaSupport)
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "support_count")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.ticket
		ORDER BY (status = 'open') DESC, created_at ASC
		LIMIT $1 OFFSET $2`, ticketColumns, constants.SchemaSupport)

	return repository.queryPage(ctx, query, total, params.Limit, params.Offset())
}

// ListByUser returns a page of one player's tickets, newest first.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string, params pagination.Params) ([]Ticket, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.ticket WHERE user_id = $1`, constants.SchemaSupport)
	if err := repository.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "support_count_by_user")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.ticket
		WHERE user_id = $3
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, ticketColumns, constants.SchemaSupport)

	return repository.queryPage(ctx, query, total, params.Limit, params.Offset(), userID)
}

// Create persists a new ticket.
func (repository *PostgresRepository) Create(ctx context.Context, ticket *Ticket) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.ticket (id, user_id, subject, body, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`, constants.SchemaSupport)

	err := repository.pool.QueryRow(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.Subject,
		ticket.Body,
		ticket.Status,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "support_create")
	}

	return nil
}

// UpdateStatus persists a new handling state for one ticket.
func (repository *PostgresRepository) UpdateStatus(ctx context.Context, ticketID string, status Status) error {
	query := fmt.Sprintf(`
		UPDATE %s.ticket
		SET status = $2, updated_at = NOW()
		WHERE id = $1`, constants.SchemaSupport)

	tag, err := repository.pool.Exec(ctx, query, ticketID, status)
	if err != nil {
		return dberr.Wrap(err, "support_update_status")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// queryPage runs a paged ticket query with shared scan plumbing.
func (repository *PostgresRepository) queryPage(ctx context.Context, query string, total int, args ...any) ([]Ticket, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "support_list")
	}
	defer rows.Close()

	tickets := make([]Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "support_list_scan")
		}
		tickets = append(tickets, *ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "support_list_rows")
	}

	return tickets, total, nil
}

// scanTicket reads one ticket row from a pgx row scanner.
func scanTicket(row pgx.Row) (*Ticket, error) {
	var ticket Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.Subject,
		&ticket.Body,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
