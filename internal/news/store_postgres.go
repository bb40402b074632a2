// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package news

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/dberr"
	"github.com/minevale/api/pkg/pagination"
)

// PostgresRepository implements [Repository] over the news.post table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a news repository backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const postColumns = `p.id, p.slug, p.title, p.body, p.cover_image, p.author_id, a.nickname, p.created_at, p.updated_at`

// FindBySlug returns one post by its URL slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.post p
		JOIN %s.account a ON a.id = p.author_id
		WHERE p.slug = $1`, postColumns, constants.SchemaNews, constants.SchemaUsers)

	post, err := scanPost(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "news_find_by_slug")
	}

	return post, nil
}

// FindByID returns one post by id.
func (repository *PostgresRepository) FindByID(ctx context.Context, postID string) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.post p
		JOIN %s.account a ON a.id = p.author_id
		WHERE p.id = $1`, postColumns, constants.SchemaNews, constants.SchemaUsers)

	post, err := scanPost(repository.pool.QueryRow(ctx, query, postID))
	if err != nil {
		return nil, dberr.Wrap(err, "news_find_by_id")
	}

	return post, nil
}

// List returns a page of posts and the total count.
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]Post, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.post`, constants.SchemaNews)
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "news_count")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.post p
		JOIN %s.account a ON a.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`, postColumns, constants.SchemaNews, constants.SchemaUsers)

	rows, err := repository.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "news_list")
	}
	defer rows.Close()

	posts := make([]Post, 0, params.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "news_list_scan")
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "news_list_rows")
	}

	return posts, total, nil
}

// Create persists a new post.
func (repository *PostgresRepository) Create(ctx context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.post (id, slug, title, body, cover_image, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`, constants.SchemaNews)

	err := repository.pool.QueryRow(ctx, query,
		post.ID,
		post.Slug,
		post.Title,
		post.Body,
		post.CoverImage,
		post.AuthorID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "news_create")
	}

	return nil
}

// Update persists changes to an existing post.
func (repository *PostgresRepository) Update(ctx context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s.post
		SET title = $2, body = $3, cover_image = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`, constants.SchemaNews)

	err := repository.pool.QueryRow(ctx, query,
		post.ID,
		post.Title,
		post.Body,
		post.CoverImage,
	).Scan(&post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "news_update")
	}

	return nil
}

// Delete removes a post by id.
func (repository *PostgresRepository) Delete(ctx context.Context, postID string) error {
	query := fmt.Sprintf(`DELETE FROM %s.post WHERE id = $1`, constants.SchemaNews)

	tag, err := repository.pool.Exec(ctx, query, postID)
	if err != nil {
		return dberr.Wrap(err, "news_delete")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// scanPost reads one post row from a pgx row scanner.
func scanPost(row pgx.Row) (*Post, error) {
	var post Post
	err := row.Scan(
		&post.ID,
		&post.Slug,
		&post.Title,
		&post.Body,
		&post.CoverImage,
		&post.AuthorID,
		&post.AuthorNickname,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
