// Package service holds the entity facades that compose the repositories,
// the tag-scoped cache, and the mutation coordinator. Handlers talk to these
// facades, never to the repositories directly for cached reads or mutations.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/metinatakli/movies-catalog-api/internal/cache"
)

// Cache tag per entity family. Every cached read registers its entry under
// its tag; every successful mutation evicts the affected tags.
const (
	GenresTag  = "genres"
	MoviesTag  = "movies"
	RatingsTag = "ratings"
)

const evictionTimeout = 3 * time.Second

// mutator is the mutation coordinator: it runs the store mutation and, only
// after it committed, evicts the affected cache tags. Eviction failures are
// logged and swallowed: a failed eviction never fails the mutation, and
// readers see stale entries until the TTL expires.
type mutator struct {
	cache  cache.TagCache
	logger *slog.Logger
}

// do runs fn and evicts tags on success. Eviction uses a context detached
// from the request so a client disconnect after commit still triggers it.
func (m *mutator) do(ctx context.Context, tags []string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}

	evictCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), evictionTimeout)
	defer cancel()

	for _, tag := range tags {
		if err := m.cache.EvictByTag(evictCtx, tag); err != nil {
			m.logger.Warn("cache eviction failed", "tag", tag, "error", err)
		}
	}

	return nil
}
