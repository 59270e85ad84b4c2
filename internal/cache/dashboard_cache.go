// Package cache holds the redis-backed stores: dashboard snapshots and the
// logout revocation list. Redis being unreachable degrades to cache misses,
// never to request failures.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/events"
)

// SupportDashboardKey caches the all-queries snapshot.
const SupportDashboardKey = "dashboard:support"

// ClientDashboardKey caches one user's snapshot.
func ClientDashboardKey(userID int64) string {
	return fmt.Sprintf("dashboard:client:%d", userID)
}

// SnapshotCache stores JSON-encoded dashboard snapshots with a short TTL.
// Snapshots are still recomputed from the full query set on every miss; the
// cache only absorbs repeated page reloads between mutations.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache builds the cache. A zero TTL disables storing.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached snapshot into dest. Returns false on miss, decode
// failure, or redis being unavailable.
func (c *SnapshotCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("dashboard cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a snapshot under key for the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("dashboard cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the given keys.
func (c *SnapshotCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("dashboard cache invalidation failed", zap.Error(err))
	}
}

// RegisterInvalidation subscribes to query lifecycle events so every
// mutation drops the snapshots it stales: the support dashboard and the
// owning client's dashboard.
func (c *SnapshotCache) RegisterInvalidation(dispatcher events.Dispatcher) {
	if c == nil || dispatcher == nil {
		return
	}
	handler := func(ctx context.Context, event events.Event) error {
		keys := []string{SupportDashboardKey}
		if event.OwnerID != 0 {
			keys = append(keys, ClientDashboardKey(event.OwnerID))
		}
		c.Invalidate(ctx, keys...)
		return nil
	}
	dispatcher.Subscribe(events.EventQuerySubmitted, handler)
	dispatcher.Subscribe(events.EventQueryClosed, handler)
	dispatcher.Subscribe(events.EventQueryReopened, handler)
}
