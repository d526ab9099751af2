// Package compilecache implements driver.CompileCache against Redis, so
// repeated compiles of the same source text skip the parse/analyse/
// generate pipeline entirely.
package compilecache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache caches compiled SQL under a key derived from the source text.
// It owns its own connection pool (one *redis.Client per cache) and never
// touches the compile pipeline itself: Compiler consults it strictly
// before and after a compile pass, never during.
type RedisCache struct {
	rdb    *redis.Client
	ctx    context.Context
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps an existing *redis.Client. prefix namespaces keys
// (useful when several Compilers, e.g. one per dialect, share a Redis
// instance); ttl of zero means entries never expire.
func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ctx: context.Background(), prefix: prefix, ttl: ttl}
}

// SetContext overrides the context used for subsequent Get/Put calls.
func (c *RedisCache) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// Get looks up the SQL previously compiled from key (the SaneQL source
// text). A Redis error is treated the same as a miss: the compile pipeline
// is always a safe fallback, so a flaky cache must never fail a compile.
func (c *RedisCache) Get(key string) (string, bool) {
	sql, err := c.rdb.Get(c.ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return sql, true
}

// Put stores sql under key. A write failure is swallowed for the same
// reason a read failure is: the cache is an optimization, not a
// correctness dependency.
func (c *RedisCache) Put(key string, sql string) {
	c.rdb.Set(c.ctx, c.prefix+key, sql, c.ttl)
}
