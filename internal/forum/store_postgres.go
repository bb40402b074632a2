// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package forum

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/dberr"
	"github.com/minevale/api/pkg/pagination"
)

// PostgresRepository implements [Repository] over forum.thread and
// forum.report.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a forum repository backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// The author nickname is joined in from the account table so listings and
// thread pages render without a second query.
const threadColumns = `t.id, t.slug, t.title, t.body, t.author_id, a.nickname, t.solved, t.created_at, t.updated_at`

// FindBySlug returns one thread by its URL slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Thread, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.thread t
		JOIN %s.account a ON a.id = t.author_id
		WHERE t.slug = $1`, threadColumns, constants.SchemaForum, constants.SchemaUsers)

	var thread Thread
	err := repository.pool.QueryRow(ctx, query, slug).Scan(
		&thread.ID,
		&thread.Slug,
		&thread.Title,
		&thread.Body,
		&thread.AuthorID,
		&thread.AuthorNickname,
		&thread.Solved,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "forum_find_by_slug")
	}

	return &thread, nil
}

// List returns a page of threads and the total count.
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]Thread, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.thread`, constants.SchemaForum)
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "forum_count")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.thread t
		JOIN %s.account a ON a.id = t.author_id
		ORDER BY t.created_at DESC
		LIMIT $1 OFFSET $2`, threadColumns, constants.SchemaForum, constants.SchemaUsers)

	rows, err := repository.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "forum_list")
	}
	defer rows.Close()

	threads := make([]Thread, 0, params.Limit)
	for rows.Next() {
		var thread Thread
		err := rows.Scan(
			&thread.ID,
			&thread.Slug,
			&thread.Title,
			&thread.Body,
			&thread.AuthorID,
			&thread.AuthorNickname,
			&thread.Solved,
			&thread.CreatedAt,
			&thread.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "forum_list_scan")
		}
		threads = append(threads, thread)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "forum_list_rows")
	}

	return threads, total, nil
}

// Create persists a new thread.
func (repository *PostgresRepository) Create(ctx context.Context, thread *Thread) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.thread (id, slug, title, body, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`, constants.SchemaForum)

	err := repository.pool.QueryRow(ctx, query,
		thread.ID,
		thread.Slug,
		thread.Title,
		thread.Body,
		thread.AuthorID,
	).Scan(&thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "forum_create")
	}

	return nil
}

// MarkSolved sets the solved flag on a thread. Already-solved threads are
// written again with the same value, which is harmless.
func (repository *PostgresRepository) MarkSolved(ctx context.Context, threadID string) error {
	query := fmt.Sprintf(`
		UPDATE %s.thread
		SET solved = TRUE, updated_at = NOW()
		WHERE id = $1`, constants.SchemaForum)

	tag, err := repository.pool.Exec(ctx, query, threadID)
	if err != nil {
		return dberr.Wrap(err, "forum_mark_solved")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// CreateReport appends a moderation report.
func (repository *PostgresRepository) CreateReport(ctx context.Context, report *Report) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.report (id, thread_id, reporter_id, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`, constants.SchemaForum)

	err := repository.pool.QueryRow(ctx, query,
		report.ID,
		report.ThreadID,
		report.ReporterID,
		report.Reason,
	).Scan(&report.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "forum_create_report")
	}

	return nil
}
