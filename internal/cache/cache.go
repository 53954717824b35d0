package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is a read-through, invalidate-on-write layer over Redis for list
// queries. It is never authoritative: a miss, a marshal failure or a Redis
// outage all degrade to the underlying database query.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New returns a Cache. rdb may be nil, in which case every operation is a
// no-op and Fetch always calls the loader.
func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

// Key builds a cache key from the entity tag and the serialized options, so
// distinct filter sets cache independently.
func Key(tag string, opts interface{}) string {
	b, err := json.Marshal(opts)
	if err != nil {
		return tag + ":0"
	}
	h := fnv.New64a()
	h.Write(b)
	return fmt.Sprintf("%s:%x", tag, h.Sum64())
}

// Fetch returns the cached value for key into dest, or runs load, caches the
// result and returns it.
func (c *Cache) Fetch(ctx context.Context, key string, dest interface{}, load func() (interface{}, error)) error {
	if c.rdb != nil {
		if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			if json.Unmarshal(raw, dest) == nil {
				return nil
			}
		} else if err != redis.Nil {
			c.log.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}
	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Debug("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// Invalidate drops every cached query for the entity tag. Fire-and-forget:
// mutations do not wait on it.
func (c *Cache) Invalidate(tag string) {
	if c.rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		iter := c.rdb.Scan(ctx, 0, tag+":*", 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				c.log.Debug("cache del failed", zap.String("key", iter.Val()), zap.Error(err))
			}
		}
		if err := iter.Err(); err != nil {
			c.log.Debug("cache scan failed", zap.String("tag", tag), zap.Error(err))
		}
	}()
}
