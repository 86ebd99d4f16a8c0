package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/placement-analytics/internal/observability"
)

const (
	analyticsCachePrefix = "analytics:"
	adminCacheKey        = analyticsCachePrefix + "admin"
)

func studentCacheKey(studentID string) string {
	return analyticsCachePrefix + "student:" + studentID
}

func recruiterCacheKey(recruiterID string) string {
	return analyticsCachePrefix + "recruiter:" + recruiterID
}

// analyticsCache stores finished persona payloads in Redis. Only payloads built from
// the live store are written, so a recovered store is never shadowed by snapshot data.
type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func newAnalyticsCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *analyticsCache {
	return &analyticsCache{client: client, ttl: ttl, logger: logger}
}

func (c *analyticsCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func (c *analyticsCache) load(ctx context.Context, persona, key string, target interface{}) bool {
	if !c.enabled() {
		return false
	}

	cached, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("cache_key", key).Msg("failed to read analytics cache")
		}
		observability.CacheLookups().WithLabelValues(persona, "miss").Inc()
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("discarding malformed analytics cache entry")
		observability.CacheLookups().WithLabelValues(persona, "miss").Inc()
		return false
	}

	observability.CacheLookups().WithLabelValues(persona, "hit").Inc()
	return true
}

func (c *analyticsCache) store(ctx context.Context, key string, value interface{}) {
	if !c.enabled() {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("failed to encode analytics cache entry")
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("cache_key", key).Msg("failed to store analytics cache")
	}
}

// purgeAnalyticsCache removes every cached persona payload.
func purgeAnalyticsCache(ctx context.Context, client *redis.Client) (int64, error) {
	if client == nil {
		return 0, nil
	}

	var removed int64
	iter := client.Scan(ctx, 0, analyticsCachePrefix+"*", 100).Iterator()
	keys := make([]string, 0, 100)
	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		deleted, err := client.Del(ctx, keys...).Result()
		if err != nil {
			return err
		}
		removed += deleted
		keys = keys[:0]
		return nil
	}

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == cap(keys) {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, flush()
}
