// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minevale/api/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const accountColumns = `id, nickname, email, password_hash, role, created_at, updated_at`

// Create persists a new account row. The role column doubles as the
// player's profile role, so the profile record exists from registration.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (id, nickname, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Nickname,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "account_create")
}

// FindByID returns the account with the given primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE id = $1`
	return repository.scanOne(ctx, query, id)
}

// FindByEmail returns the account with the given email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE email = $1`
	return repository.scanOne(ctx, query, email)
}

// FindByNickname returns the account with the given nickname.
func (repository *PostgresUserRepository) FindByNickname(ctx context.Context, nickname string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE nickname = $1`
	return repository.scanOne(ctx, query, nickname)
}

// scanOne runs a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}

	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Nickname,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "account_find")
	}

	return user, nil
}
