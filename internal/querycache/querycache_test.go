package querycache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestCacheGet(t *testing.T) {
	t.Run("fetches once within the fresh window", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			return fmt.Sprintf("v%d", calls.Add(1)), nil
		}

		first, err := Typed(context.Background(), cache, "orders:p1", fetch)
		require.NoError(t, err)
		second, err := Typed(context.Background(), cache, "orders:p1", fetch)
		require.NoError(t, err)

		assert.Equal(t, "v1", first)
		assert.Equal(t, "v1", second)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("collapses concurrent fetches for the same key", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			calls.Add(1)
			time.Sleep(50 * time.Millisecond)
			return "shared", nil
		}

		var wg sync.WaitGroup
		results := make([]string, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				value, err := Typed(context.Background(), cache, "orders:p1", fetch)
				assert.NoError(t, err)
				results[i] = value
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load(), "all callers should share one request")
		for _, value := range results {
			assert.Equal(t, "shared", value)
		}
	})

	t.Run("serves stale values while refreshing in the background", func(t *testing.T) {
		clock := newFakeClock()
		cache := New(time.Minute, time.Hour, WithClock(clock.Now))
		defer cache.Close()

		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			return fmt.Sprintf("v%d", calls.Add(1)), nil
		}

		first, err := Typed(context.Background(), cache, "courses:p1", fetch)
		require.NoError(t, err)
		assert.Equal(t, "v1", first)

		clock.Advance(2 * time.Minute)

		stale, err := Typed(context.Background(), cache, "courses:p1", fetch)
		require.NoError(t, err)
		assert.Equal(t, "v1", stale, "stale read should not block on the refresh")

		require.Eventually(t, func() bool {
			value, err := Typed(context.Background(), cache, "courses:p1", fetch)
			return err == nil && value == "v2"
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("refetches synchronously past the stale window", func(t *testing.T) {
		clock := newFakeClock()
		cache := New(time.Minute, time.Hour, WithClock(clock.Now))
		defer cache.Close()

		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			return fmt.Sprintf("v%d", calls.Add(1)), nil
		}

		_, err := Typed(context.Background(), cache, "products:p1", fetch)
		require.NoError(t, err)

		clock.Advance(2 * time.Hour)

		value, err := Typed(context.Background(), cache, "products:p1", fetch)
		require.NoError(t, err)
		assert.Equal(t, "v2", value)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not cache failures", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			if calls.Add(1) == 1 {
				return "", fmt.Errorf("boom")
			}
			return "recovered", nil
		}

		_, err := Typed(context.Background(), cache, "users:p1", fetch)
		require.Error(t, err)

		value, err := Typed(context.Background(), cache, "users:p1", fetch)
		require.NoError(t, err)
		assert.Equal(t, "recovered", value)
	})

	t.Run("returns early when the caller gives up", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		started := make(chan struct{})
		finished := make(chan struct{})
		fetch := func(ctx context.Context) (string, error) {
			close(started)
			defer close(finished)
			time.Sleep(50 * time.Millisecond)
			return "late", nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()

		_, err := Typed(ctx, cache, "orders:p1", fetch)
		assert.ErrorIs(t, err, context.Canceled)

		// The detached fetch still completes and lands in the cache.
		<-finished
		require.Eventually(t, func() bool { return cache.Len() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("rejects entries of the wrong type", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		_, err := Typed(context.Background(), cache, "orders:p1", func(ctx context.Context) (string, error) {
			return "a string", nil
		})
		require.NoError(t, err)

		_, err = Typed(context.Background(), cache, "orders:p1", func(ctx context.Context) (int, error) {
			return 0, nil
		})
		assert.Error(t, err)
	})
}

func TestCacheInvalidation(t *testing.T) {
	seed := func(t *testing.T, cache *Cache, keys ...string) {
		t.Helper()
		for _, key := range keys {
			_, err := Typed(context.Background(), cache, key, func(ctx context.Context) (string, error) {
				return "value", nil
			})
			require.NoError(t, err)
		}
	}

	t.Run("invalidates a single key", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		seed(t, cache, "orders:list:p1", "orders:list:p2")
		cache.Invalidate("orders:list:p1")
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("invalidates every page of a resource by prefix", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		seed(t, cache, "orders:list:p1", "orders:list:p2", "courses:list:p1")
		cache.InvalidatePrefix("orders:")
		assert.Equal(t, 1, cache.Len())

		cache.Clear()
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("a fetch overtaken by an invalidation does not commit", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		gate := make(chan struct{})
		started := make(chan struct{})
		done := make(chan struct{})
		var calls atomic.Int32

		go func() {
			defer close(done)
			_, err := Typed(context.Background(), cache, "orders:list:p1", func(ctx context.Context) (string, error) {
				calls.Add(1)
				close(started)
				<-gate
				return "pre-mutation page", nil
			})
			assert.NoError(t, err)
		}()

		<-started
		cache.InvalidatePrefix("orders:")
		close(gate)
		<-done

		// The mutation happened after the fetch left, so its response
		// must not land in the cache; the next read fetches again.
		assert.Equal(t, 0, cache.Len())

		fresh, err := Typed(context.Background(), cache, "orders:list:p1", func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "post-mutation page", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "post-mutation page", fresh)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("invalidating another resource keeps the in-flight commit", func(t *testing.T) {
		cache := New(time.Minute, time.Hour)
		defer cache.Close()

		gate := make(chan struct{})
		started := make(chan struct{})
		done := make(chan struct{})

		go func() {
			defer close(done)
			_, err := Typed(context.Background(), cache, "orders:list:p1", func(ctx context.Context) (string, error) {
				close(started)
				<-gate
				return "orders page", nil
			})
			assert.NoError(t, err)
		}()

		<-started
		cache.InvalidatePrefix("courses:")
		close(gate)
		<-done

		assert.Equal(t, 1, cache.Len())

		var calls atomic.Int32
		value, err := Typed(context.Background(), cache, "orders:list:p1", func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "refetched", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "orders page", value)
		assert.Zero(t, calls.Load())
	})
}
