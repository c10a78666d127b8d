package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limits map[string]int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLimiter(client, time.Minute, limits), mr
}

func TestLimiter_BlocksAfterLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, map[string]int{PurposeLogin: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i)
	}

	allowed, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.2", PurposeLogin)
	require.NoError(t, err)
	assert.True(t, allowed, "other IPs keep their own window")
}

func TestLimiter_WindowSetOnFirstRequest(t *testing.T) {
	limiter, mr := newTestLimiter(t, map[string]int{PurposeLogin: 5})
	ctx := context.Background()

	_, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)
	key := ipKey(PurposeLogin, "10.0.0.1")
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(30 * time.Second)
	_, err = limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL(key), "later requests do not extend the window")
}

func TestLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, map[string]int{PurposeLogin: 1})
	ctx := context.Background()

	allowed, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(61 * time.Second)

	allowed, err = limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_ConcurrentBurstAdmitsOnlyLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, map[string]int{PurposeSignup: 4})
	ctx := context.Background()

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeSignup)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, allowed)
}

func TestLimiter_PurposesAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, map[string]int{PurposeLogin: 1, PurposeSignup: 1})
	ctx := context.Background()

	_, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeLogin)
	require.NoError(t, err)

	allowed, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", PurposeSignup)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_UnknownPurposeNeverThrottles(t *testing.T) {
	limiter, mr := newTestLimiter(t, map[string]int{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.AllowIPRequestWithPurpose(ctx, "10.0.0.1", "other")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	assert.False(t, mr.Exists(ipKey("other", "10.0.0.1")))
}
