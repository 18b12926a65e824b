// Package cache implements the tag-scoped response cache that sits between
// the service facades and the entity store. Entries carry a set of logical
// tags; a mutation evicts every entry under its tag in one call, while TTL
// expiry removes entries independently of tags.
package cache

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// DefaultTTL bounds how long an entry that escaped eviction can be served.
const DefaultTTL = 15 * time.Second

// FetchFunc loads the payload from the source of truth on a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

// TagCache is a read-through cache with tag-scoped bulk eviction.
//
// GetOrSet returns the cached payload for key if present and unexpired;
// otherwise it invokes fetch, stores the result under key associated with all
// tags, and returns it. Concurrent misses for the same key may each invoke
// fetch unless the implementation was configured to coalesce them.
//
// EvictByTag removes every entry whose tag set contains tag. It is idempotent:
// evicting a tag with no live entries is a no-op.
type TagCache interface {
	GetOrSet(ctx context.Context, key string, tags []string, ttl time.Duration, fetch FetchFunc) ([]byte, error)
	EvictByTag(ctx context.Context, tag string) error
}

// GetOrFetch is a typed wrapper over TagCache that round-trips values through
// JSON.
func GetOrFetch[T any](
	ctx context.Context,
	c TagCache,
	key string,
	tags []string,
	ttl time.Duration,
	fetch func(ctx context.Context) (T, error),
) (T, error) {
	var result T

	payload, err := c.GetOrSet(ctx, key, tags, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(payload, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Key builds the normalized request signature used as a cache key: the tag
// namespace, the request path, and the query parameters in sorted order, so
// that equivalent requests map to the same entry regardless of parameter
// order.
func Key(tag, path string, query url.Values) string {
	if len(query) == 0 {
		return tag + ":" + path
	}

	return tag + ":" + path + "?" + query.Encode()
}
