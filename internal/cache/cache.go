package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/metrics"
)

const keyPrefix = "cache:"

// Cache is a best-effort read cache. Implementations never fail the caller:
// backend errors are logged and reported as a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	// Invalidate drops every key cached for entity.
	Invalidate(ctx context.Context, entity string)
}

// Key builds "cache:<entity>:<part>:<part>...".
func Key(entity string, parts ...string) string {
	return keyPrefix + entity + ":" + strings.Join(parts, ":")
}

// QueryKey keys a cached list by a digest of the query that produced it.
func QueryKey(entity, kind string, query interface{}) string {
	b, _ := json.Marshal(query)
	sum := sha1.Sum(b)
	return Key(entity, kind, hex.EncodeToString(sum[:8]))
}

// Remember returns the cached value for key or loads, caches and returns it.
func Remember[T any](ctx context.Context, c Cache, entity, key string, load func() (T, error)) (T, error) {
	var v T
	if c.Get(ctx, key, &v) {
		metrics.CacheHits.WithLabelValues(entity).Inc()
		return v, nil
	}
	metrics.CacheMisses.WithLabelValues(entity).Inc()

	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(ctx, key, v)
	return v, nil
}

type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    logger.ILogger
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration, log logger.ILogger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.fail("cache get failed", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.fail("cache entry is corrupt", key, err)
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.fail("cache encode failed", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.fail("cache set failed", key, err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, entity string) {
	pattern := keyPrefix + entity + ":*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			c.fail("cache scan failed", pattern, err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.fail("cache delete failed", pattern, err)
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

func (c *RedisCache) fail(msg, key string, err error) {
	metrics.CacheErrors.Inc()
	c.log.Warning(msg, logger.String("key", key), logger.Error(err))
}

// Noop never stores anything. Used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) bool { return false }
func (Noop) Set(context.Context, string, interface{})      {}
func (Noop) Invalidate(context.Context, string)             {}
