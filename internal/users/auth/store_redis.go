// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis.
//
// Sessions expire naturally via TTL, so revocation-by-expiry needs no
// background sweeper.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Create stores a refresh session under the token hash with a TTL.
func (repository *RedisSessionRepository) Create(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

// Find returns the userID for a refresh token hash.
// Returns apperr.NotFound if the session is absent or expired.
func (repository *RedisSessionRepository) Find(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixSession + tokenHash

	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Sessão")
		}
		return "", fmt.Errorf("redis_session_find_failed: %w", err)
	}

	return userID, nil
}

// Delete revokes a session. Deleting an absent key is a no-op.
func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
