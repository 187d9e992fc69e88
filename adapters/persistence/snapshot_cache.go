package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
)

const snapshotKey = "portfolio:snapshot"

type redisSnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshotCache(rdb *redis.Client, ttl time.Duration) service.SnapshotCache {
	return &redisSnapshotCache{rdb: rdb, ttl: ttl}
}

func (c *redisSnapshotCache) GetSnapshot(ctx context.Context) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *redisSnapshotCache) SetSnapshot(ctx context.Context, data []byte) error {
	return c.rdb.Set(ctx, snapshotKey, data, c.ttl).Err()
}

func (c *redisSnapshotCache) InvalidateSnapshot(ctx context.Context) error {
	return c.rdb.Del(ctx, snapshotKey).Err()
}

// NopSnapshotCache always misses. Used when no redis address is configured.
type NopSnapshotCache struct{}

func (NopSnapshotCache) GetSnapshot(context.Context) ([]byte, bool, error) { return nil, false, nil }

func (NopSnapshotCache) SetSnapshot(context.Context, []byte) error { return nil }

func (NopSnapshotCache) InvalidateSnapshot(context.Context) error { return nil }
