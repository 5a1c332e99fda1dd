// Package cache keeps computed season statistics in Redis and publishes
// plate-appearance events to a Redis stream. Both are optional: the Nop
// variants stand in when Redis is disabled.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Kind names one cached season computation.
type Kind string

const (
	KindBatting  Kind = "batting"
	KindPitching Kind = "pitching"
)

// StatsCache stores season aggregates. Entries are stamped with the season's
// generation and InvalidateSeason advances it, so a value computed from rows
// read before an invalidation is never served after it. A miss is
// (gen, false, nil), never an error; the returned generation is the one a
// following Set must carry.
type StatsCache interface {
	Get(ctx context.Context, seasonID int64, kind Kind, dst any) (gen int64, hit bool, err error)
	Set(ctx context.Context, seasonID int64, kind Kind, gen int64, v any) error
	InvalidateSeason(ctx context.Context, seasonID int64) error
}

func generationKey(seasonID int64) string {
	return fmt.Sprintf("season:%d:gen", seasonID)
}

func entryKey(seasonID int64, kind Kind, gen int64) string {
	return fmt.Sprintf("season:%d:%s:%d", seasonID, kind, gen)
}

// RedisStatsCache stores JSON-encoded aggregates with a fixed TTL. Entries of
// past generations are left to expire.
type RedisStatsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStatsCache(client redis.UniversalClient, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func (c *RedisStatsCache) generation(ctx context.Context, seasonID int64) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(seasonID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading season generation: %w", err)
	}
	return gen, nil
}

func (c *RedisStatsCache) Get(ctx context.Context, seasonID int64, kind Kind, dst any) (int64, bool, error) {
	gen, err := c.generation(ctx, seasonID)
	if err != nil {
		return 0, false, err
	}
	data, err := c.client.Get(ctx, entryKey(seasonID, kind, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("reading %s cache: %w", kind, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return gen, false, fmt.Errorf("decoding %s cache: %w", kind, err)
	}
	return gen, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, seasonID int64, kind Kind, gen int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s cache: %w", kind, err)
	}
	return c.client.Set(ctx, entryKey(seasonID, kind, gen), data, c.ttl).Err()
}

// InvalidateSeason advances the season's generation, orphaning every entry
// written under the previous one.
func (c *RedisStatsCache) InvalidateSeason(ctx context.Context, seasonID int64) error {
	if err := c.client.Incr(ctx, generationKey(seasonID)).Err(); err != nil {
		return fmt.Errorf("advancing season generation: %w", err)
	}
	return nil
}

// NopStatsCache never stores anything.
type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context, int64, Kind, any) (int64, bool, error) { return 0, false, nil }
func (NopStatsCache) Set(context.Context, int64, Kind, int64, any) error { return nil }
func (NopStatsCache) InvalidateSeason(context.Context, int64) error { return nil }

var (
	_ StatsCache = (*RedisStatsCache)(nil)
	_ StatsCache = NopStatsCache{}
)
