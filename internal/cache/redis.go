package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const tagKeyPrefix = "cachetag:"

// Config controls the behavior shared by TagCache implementations.
type Config struct {
	// TTL is the default entry lifetime used when GetOrSet receives a
	// non-positive ttl.
	TTL time.Duration

	// Coalesce deduplicates concurrent populates for the same missing key
	// into a single fetch. Off by default; the stampede on a cold key is an
	// accepted trade-off, not a correctness problem.
	Coalesce bool
}

func DefaultConfig() Config {
	return Config{TTL: DefaultTTL}
}

// RedisCache is the redis-backed TagCache. Entries are plain keys with TTLs;
// each tag maintains a set of member keys, so eviction is one SMEMBERS plus a
// batched DEL. Tag sets may accumulate members whose entries already expired,
// which only makes eviction delete keys that no longer exist.
type RedisCache struct {
	client redis.UniversalClient
	config Config
	group  singleflight.Group
}

func NewRedisCache(client redis.UniversalClient, config Config) *RedisCache {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}

	return &RedisCache{
		client: client,
		config: config,
	}
}

func (c *RedisCache) GetOrSet(ctx context.Context, key string, tags []string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return payload, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	if c.config.Coalesce {
		v, err, _ := c.group.Do(key, func() (any, error) {
			return c.populate(ctx, key, tags, ttl, fetch)
		})
		if err != nil {
			return nil, err
		}
		return v.([]byte), nil
	}

	return c.populate(ctx, key, tags, ttl, fetch)
}

func (c *RedisCache) populate(ctx context.Context, key string, tags []string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = c.config.TTL
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, payload, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagKeyPrefix+tag, key)
	}

	// A write failure only costs a re-fetch on the next call, so the payload
	// is returned regardless.
	if _, err := pipe.Exec(ctx); err != nil {
		return payload, nil
	}

	return payload, nil
}

func (c *RedisCache) EvictByTag(ctx context.Context, tag string) error {
	tagKey := tagKeyPrefix + tag

	keys, err := c.client.SMembers(ctx, tagKey).Result()
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, tagKey)

	_, err = pipe.Exec(ctx)

	return err
}
