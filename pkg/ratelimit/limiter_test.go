package ratelimit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-contact-relay/pkg/ratelimit"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := ratelimit.NewMemoryStore()

	t.Run("counts per key within a window", func(t *testing.T) {
		count, _, err := store.Incr(ctx, "a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, _, err = store.Incr(ctx, "a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		count, _, err = store.Incr(ctx, "b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("concurrent increments on one key never lose or duplicate counts", func(t *testing.T) {
		shared := ratelimit.NewMemoryStore()
		const workers = 100

		counts := make(chan int, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				count, _, err := shared.Incr(ctx, "shared-key", time.Minute)
				assert.NoError(t, err)
				counts <- count
			}()
		}
		wg.Wait()
		close(counts)

		seen := make(map[int]bool, workers)
		for count := range counts {
			assert.False(t, seen[count], "count %d returned twice", count)
			seen[count] = true
		}
		assert.Len(t, seen, workers)
	})

	t.Run("resets after the window elapses", func(t *testing.T) {
		window := 50 * time.Millisecond
		count, _, _ := store.Incr(ctx, "expiry", window)
		assert.Equal(t, 1, count)
		count, _, _ = store.Incr(ctx, "expiry", window)
		assert.Equal(t, 2, count)

		time.Sleep(window + 20*time.Millisecond)

		count, _, _ = store.Incr(ctx, "expiry", window)
		assert.Equal(t, 1, count)
	})
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := ratelimit.NewRedisStore(client)

	t.Run("increments atomically with expiry", func(t *testing.T) {
		count, _, err := store.Incr(ctx, "rl:test:k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, _, err = store.Incr(ctx, "rl:test:k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		_, _, err := store.Incr(ctx, "rl:test:exp", time.Minute)
		require.NoError(t, err)

		mr.FastForward(61 * time.Second)

		count, _, err := store.Incr(ctx, "rl:test:exp", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("errors when redis is down", func(t *testing.T) {
		mr.Close()
		_, _, err := store.Incr(ctx, "rl:test:down", time.Minute)
		assert.Error(t, err)
	})
}

// failingStore simulates an unreachable shared backend.
type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func TestLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("enforces the window limit", func(t *testing.T) {
		limiter := ratelimit.NewInMemory()
		w := ratelimit.Window{Limit: 2, Period: time.Minute, Prefix: "rl:t:"}

		assert.True(t, limiter.Allow(ctx, w, "ip1").Allowed)
		assert.True(t, limiter.Allow(ctx, w, "ip1").Allowed)
		assert.False(t, limiter.Allow(ctx, w, "ip1").Allowed)

		// independent key is unaffected
		assert.True(t, limiter.Allow(ctx, w, "ip2").Allowed)
	})

	t.Run("windows with different prefixes are independent", func(t *testing.T) {
		limiter := ratelimit.NewInMemory()
		short := ratelimit.Window{Limit: 1, Period: time.Minute, Prefix: "rl:short:"}
		daily := ratelimit.Window{Limit: 5, Period: 24 * time.Hour, Prefix: "rl:day:"}

		assert.True(t, limiter.Allow(ctx, short, "k").Allowed)
		assert.False(t, limiter.Allow(ctx, short, "k").Allowed)
		// daily window still has budget for the same key
		assert.True(t, limiter.Allow(ctx, daily, "k").Allowed)
	})

	t.Run("falls back to memory when the primary store errors", func(t *testing.T) {
		limiter := ratelimit.New(failingStore{}, ratelimit.NewMemoryStore())
		w := ratelimit.Window{Limit: 1, Period: time.Minute, Prefix: "rl:fb:"}

		assert.True(t, limiter.Allow(ctx, w, "k").Allowed)
		assert.False(t, limiter.Allow(ctx, w, "k").Allowed)
	})

	t.Run("prefers the primary store when healthy", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		limiter := ratelimit.New(ratelimit.NewRedisStore(client), ratelimit.NewMemoryStore())
		w := ratelimit.Window{Limit: 1, Period: time.Minute, Prefix: "rl:p:"}

		assert.True(t, limiter.Allow(ctx, w, "k").Allowed)
		assert.False(t, limiter.Allow(ctx, w, "k").Allowed)
		got, err := mr.Get("rl:p:k")
		require.NoError(t, err)
		assert.Equal(t, "2", got) // counted in redis, not memory
	})
}
