// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByNickname returns the account with the given nickname.
	FindByNickname(ctx context.Context, nickname string) (*User, error)

	// Create persists a brand-new user account to the storage.
	Create(ctx context.Context, user *User) error
}

// # Session Data Access

// SessionRepository tracks refresh tokens by their hash.
//
// Implementations store only the SHA-256 digest of the token, never the
// token itself.
type SessionRepository interface {
	// Create stores a refresh session for userID under tokenHash with a TTL.
	Create(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// Find returns the userID bound to tokenHash.
	Find(ctx context.Context, tokenHash string) (string, error)

	// Delete revokes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, tokenHash string) error
}
