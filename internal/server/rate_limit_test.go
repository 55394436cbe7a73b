package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/polyroots/internal/config"
	"github.com/agbru/polyroots/internal/logging"
)

// manualClock is a time source tests advance by hand.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// newTestLimiter earns one token per second per client.
func newTestLimiter(t *testing.T, clock *manualClock) *RateLimiter {
	t.Helper()
	rl := newRateLimiter(RateLimiterConfig{Budget: 60}, clock.Now)
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_Allow(t *testing.T) {
	clock := newManualClock()
	rl := newTestLimiter(t, clock)

	for i := 0; i < 60; i++ {
		_, ok := rl.Allow("10.0.0.1")
		require.True(t, ok, "request %d", i)
	}
	wait, ok := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	_, ok = rl.Allow("10.0.0.2")
	assert.True(t, ok, "clients have separate buckets")

	clock.Advance(time.Second)
	_, ok = rl.Allow("10.0.0.1")
	assert.True(t, ok, "one token earned per second")
	_, ok = rl.Allow("10.0.0.1")
	assert.False(t, ok)
}

func TestRateLimiter_RefillStopsAtBudget(t *testing.T) {
	clock := newManualClock()
	rl := newTestLimiter(t, clock)

	_, ok := rl.Allow("a")
	require.True(t, ok)
	clock.Advance(time.Hour)

	allowed := 0
	for {
		if _, ok := rl.Allow("a"); !ok {
			break
		}
		allowed++
	}
	assert.Equal(t, 60, allowed)
}

func TestRateLimiter_Charge(t *testing.T) {
	clock := newManualClock()
	rl := newTestLimiter(t, clock)

	_, ok := rl.Allow("a") // 59 left
	require.True(t, ok)
	_, ok = rl.Charge("a", 40) // 19 left
	require.True(t, ok)
	_, ok = rl.Allow("a") // 18 left
	require.True(t, ok)

	wait, ok := rl.Charge("a", 40)
	assert.False(t, ok)
	assert.Equal(t, 22*time.Second, wait)

	// A refused charge takes nothing.
	for i := 0; i < 18; i++ {
		_, ok := rl.Allow("a")
		require.True(t, ok, "admission %d", i)
	}
	_, ok = rl.Allow("a")
	assert.False(t, ok)

	_, ok = rl.Charge("a", 0)
	assert.True(t, ok, "free work never waits")
}

func TestRateLimiter_ChargeIsCappedBelowBudget(t *testing.T) {
	clock := newManualClock()
	rl := newTestLimiter(t, clock)

	_, ok := rl.Allow("a")
	require.True(t, ok)
	_, ok = rl.Charge("a", 1_000_000)
	assert.True(t, ok, "a full bucket covers admission plus any charge")

	_, ok = rl.Allow("a")
	assert.False(t, ok, "the capped charge drained the bucket")
}

func TestRateLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	clock := newManualClock()
	rl := newRateLimiter(RateLimiterConfig{Budget: 60, CleanupInterval: 5 * time.Millisecond}, clock.Now)
	defer rl.Stop()

	_, ok := rl.Allow("a")
	require.True(t, ok)
	clock.Advance(2 * time.Minute)

	require.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.buckets) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig())
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRootsCost(t *testing.T) {
	tests := []struct {
		degree, refine, want int
	}{
		{2, 10, 0},
		{2, 0, 0},
		{1000, 0, 1},
		{100, 20, 2},
		{500, 1000, 500},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, rootsCost(tc.degree, tc.refine), "rootsCost(%d, %d)", tc.degree, tc.refine)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"remote ipv4", "192.168.1.1:8080", nil, "192.168.1.1"},
		{"remote ipv6", "[::1]:8080", nil, "::1"},
		{"remote without port", "[::1]", nil, "::1"},
		{"forwarded list", "10.0.0.1:1", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.9"}, "203.0.113.7"},
		{"real ip", "10.0.0.1:1", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "198.51.100.2"},
		{"forwarded wins", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, "203.0.113.7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, clientKey(r))
		})
	}
}

func TestHandleRoots_ChargesIsolationWork(t *testing.T) {
	clock := newManualClock()
	svc := &fakeService{res: unitRoots()}
	srv := NewServer(config.AppConfig{Port: "0", Prec: 32},
		WithService(svc),
		WithLogger(logging.NewLogger(io.Discard, "test")),
		WithRateLimiter(newTestLimiter(t, clock)),
	)
	t.Cleanup(srv.Close)

	// degree 2 x 20000 digits costs 40 tokens on top of admission
	const target = "/roots?poly=-1+0+1&refine=20000"
	w := get(t, srv, target)
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, srv, target)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "22", w.Header().Get("Retry-After"))

	w = get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code, "cheap endpoints keep the remaining tokens")

	clock.Advance(30 * time.Second)
	w = get(t, srv, target)
	assert.Equal(t, http.StatusOK, w.Code)
}
