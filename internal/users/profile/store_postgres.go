// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/dberr"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
)

// PostgresRepository implements [Repository] over the account table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a profile repository backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const profileColumns = "id, nickname, email, role, created_at"

// FindRoleByID reads only the role column for one account.
func (repository *PostgresRepository) FindRoleByID(ctx context.Context, userID string) (sec.Role, error) {
	query := fmt.Sprintf(`SELECT role FROM %s.account WHERE id = $1`, constants.SchemaUsers)

	var role sec.Role
	if err := repository.pool.QueryRow(ctx, query, userID).Scan(&role); err != nil {
		return "", dberr.Wrap(err, "profile_find_role")
	}

	return role, nil
}

// FindByID returns the full profile projection for one account.
func (repository *PostgresRepository) FindByID(ctx context.Context, userID string) (*Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s.account WHERE id = $1`, profileColumns, constants.SchemaUsers)

	var profile Profile
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Nickname,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "profile_find_by_id")
	}

	return &profile, nil
}

// List returns a page of profiles and the total account count.
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]Profile, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.account`, constants.SchemaUsers)
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "profile_count")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.account
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, profileColumns, constants.SchemaUsers)

	rows, err := repository.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "profile_list")
	}
	defer rows.Close()

	profiles := make([]Profile, 0, params.Limit)
	for rows.Next() {
		var profile Profile
		err := rows.Scan(
			&profile.ID,
			&profile.Nickname,
			&profile.Email,
			&profile.Role,
			&profile.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "profile_list_scan")
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "profile_list_rows")
	}

	return profiles, total, nil
}

// UpdateRole persists a new role for one account.
func (repository *PostgresRepository) UpdateRole(ctx context.Context, userID string, role sec.Role) error {
	query := fmt.Sprintf(`
		UPDATE %s.account
		SET role = $2, updated_at = NOW()
		WHERE id = $1`, constants.SchemaUsers)

	tag, err := repository.pool.Exec(ctx, query, userID, role)
	if err != nil {
		return dberr.Wrap(err, "profile_update_role")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
