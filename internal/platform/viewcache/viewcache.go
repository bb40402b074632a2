// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

/*
Package viewcache provides the Redis-backed cache of rendered view payloads
and its invalidation entry point.

Reads follow the cache-aside pattern: list endpoints try the cache first and
fall back to the store. After every successful mutation, the gateway calls
[Cache.Invalidate] with the paths that depend on the mutated entity.

Invalidation is at-least-once and not transactional with the store write: a
crash between write and invalidation leaves a stale entry until the TTL
expires. This is an accepted staleness window — the store remains the source
of truth — so every cache error is logged and swallowed, never surfaced to
the caller.
*/
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minevale/api/internal/platform/constants"
)

// DefaultTTL bounds staleness when an invalidation signal is lost.
const DefaultTTL = 5 * time.Minute

// Recorder counts cache hits and misses for observability. May be nil.
type Recorder interface {
	RecordViewCacheHit()
	RecordViewCacheMiss()
}

// Cache is the Redis-backed rendered-view cache.
type Cache struct {
	client   *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
	recorder Recorder
}

// New constructs a [Cache]. A zero ttl falls back to [DefaultTTL];
// recorder may be nil.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger, recorder Recorder) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl, logger: logger, recorder: recorder}
}

// Get loads the cached payload for a view path into target.
// It returns false on a miss or any cache error.
func (cache *Cache) Get(ctx context.Context, path string, target any) bool {
	raw, err := cache.client.Get(ctx, key(path)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.WarnContext(ctx, "viewcache_get_failed",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
		cache.miss()
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		cache.logger.WarnContext(ctx, "viewcache_decode_failed", slog.String("path", path))
		cache.miss()
		return false
	}

	cache.hit()
	return true
}

// Set stores the payload for a view path. Best-effort: failures are logged.
func (cache *Cache) Set(ctx context.Context, path string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		cache.logger.WarnContext(ctx, "viewcache_encode_failed", slog.String("path", path))
		return
	}

	if err := cache.client.Set(ctx, key(path), raw, cache.ttl).Err(); err != nil {
		cache.logger.WarnContext(ctx, "viewcache_set_failed",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

// Invalidate marks the given view paths stale by deleting their entries.
//
// Implements gateway.ViewInvalidator. Errors are logged and swallowed: a
// failed invalidation must never fail the mutation that triggered it.
func (cache *Cache) Invalidate(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}

	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = key(path)
	}

	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		cache.logger.WarnContext(ctx, "viewcache_invalidate_failed",
			slog.Any("paths", paths),
			slog.Any("error", err),
		)
	}
}

func (cache *Cache) hit() {
	if cache.recorder != nil {
		cache.recorder.RecordViewCacheHit()
	}
}

func (cache *Cache) miss() {
	if cache.recorder != nil {
		cache.recorder.RecordViewCacheMiss()
	}
}

func key(path string) string {
	return constants.RedisPrefixView + path
}
