// Package querycache caches list and detail responses so repeated
// navigation does not refetch data the server already sent. Entries
// are served fresh within the TTL, served stale while a background
// refresh runs, and refetched synchronously once they outlive the
// stale window. Concurrent fetches for the same key are collapsed
// into a single request.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// Fetch loads the value for a key from the backend.
type Fetch func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a keyed response cache with stale-while-revalidate reads.
type Cache struct {
	ttl      time.Duration
	staleFor time.Duration
	logger   *zap.Logger
	now      func() time.Time

	group singleflight.Group

	mu         sync.Mutex
	entries    map[string]entry
	refreshing map[string]struct{}
	seq        uint64
	flushed    map[string]uint64
	closed     bool
	wg         sync.WaitGroup
}

// Option configures the cache.
type Option func(*Cache)

// WithLogger sets a custom logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger.Named("querycache")
		}
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a cache. Entries younger than ttl are fresh; entries
// younger than ttl+staleFor are served stale while refreshed in the
// background; older entries are fetched synchronously.
func New(ttl, staleFor time.Duration, options ...Option) *Cache {
	c := &Cache{
		ttl:        ttl,
		staleFor:   staleFor,
		logger:     zap.NewNop(),
		now:        time.Now,
		entries:    make(map[string]entry),
		refreshing: make(map[string]struct{}),
		flushed:    make(map[string]uint64),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Get returns the cached value for key, fetching it when missing or
// expired. Stale values are returned immediately and refreshed in the
// background. Concurrent callers for the same key share one fetch.
func (c *Cache) Get(ctx context.Context, key string, fetch Fetch) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	closed := c.closed
	c.mu.Unlock()

	if ok && !closed {
		age := c.now().Sub(e.fetchedAt)
		switch {
		case age < c.ttl:
			c.logger.Debug("cache hit", zap.String("key", key))
			return e.value, nil
		case age < c.ttl+c.staleFor:
			c.logger.Debug("cache stale, refreshing in background", zap.String("key", key))
			c.refresh(key, fetch)
			return e.value, nil
		}
	}

	c.logger.Debug("cache miss", zap.String("key", key))
	return c.fetch(ctx, key, fetch)
}

// fetch loads key through the singleflight group so duplicate callers
// wait on the same request. The fetch itself is detached from the
// caller's context: one impatient caller must not cancel the request
// everyone else is waiting on, and a completed response is worth
// caching regardless.
func (c *Cache) fetch(ctx context.Context, key string, fetch Fetch) (any, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		c.mu.Lock()
		started := c.seq
		c.mu.Unlock()

		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, value, started)
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// refresh revalidates key in the background. At most one refresh per
// key runs at a time.
func (c *Cache) refresh(key string, fetch Fetch) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, busy := c.refreshing[key]; busy {
		c.mu.Unlock()
		return
	}
	c.refreshing[key] = struct{}{}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, key)
			c.mu.Unlock()
		}()

		if _, err := c.fetch(context.Background(), key, fetch); err != nil {
			// Keep serving the stale value; the next read past the
			// stale window will surface the failure.
			c.logger.Warn("background refresh failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// store commits a fetched value unless the key was invalidated after
// the fetch started: a response that left before a mutation must not
// resurrect the pre-mutation state.
func (c *Cache) store(key string, value any, started uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.flushedSinceLocked(key, started) {
		c.logger.Debug("discarding superseded fetch", zap.String("key", key))
		return
	}
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
}

// flushedSinceLocked reports whether key matched any invalidation that
// happened after the given sequence number. Callers hold c.mu.
func (c *Cache) flushedSinceLocked(key string, since uint64) bool {
	for prefix, at := range c.flushed {
		if at > since && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.flushed[key] = c.seq
	delete(c.entries, key)
}

// InvalidatePrefix drops every entry whose key starts with prefix.
// Mutations use it to flush all cached pages of a resource at once.
// Fetches in flight for a matching key are barred from committing.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.flushed[prefix] = c.seq
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Clear drops every entry. The empty prefix matches every key, so
// in-flight fetches are barred as well.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.flushed = map[string]uint64{"": c.seq}
	c.entries = make(map[string]entry)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops accepting new values and waits for in-flight background
// refreshes to finish.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}

// Typed fetches through the cache and asserts the cached value's type.
func Typed[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	value, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, apperror.New(apperror.KindUnknown, "common.unexpected_error",
			fmt.Sprintf("cache entry %q holds %T", key, value))
	}
	return typed, nil
}
