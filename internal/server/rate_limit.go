package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// rootsCostUnit is the degree x digits product that costs one token. With
// the default limits the most expensive /roots request costs 500 tokens.
const rootsCostUnit = 1000

// RateLimiter is a per-client token bucket. Every request pays one token
// to get in, and /roots then pays for the isolation work it asks for with
// Charge. Buckets refill continuously at Budget tokens per minute and hold
// at most Budget tokens.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	perSec   float64
	idle     time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// Budget is the number of tokens a client earns per minute, and the
	// size of its bucket. Default: 600.
	Budget int
	// CleanupInterval is how often full, idle buckets are dropped.
	// Default: 5 minutes.
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Budget:          600,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine,
// which runs until Stop.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	return newRateLimiter(config, time.Now)
}

func newRateLimiter(config RateLimiterConfig, now func() time.Time) *RateLimiter {
	def := DefaultRateLimiterConfig()
	if config.Budget <= 0 {
		config.Budget = def.Budget
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = def.CleanupInterval
	}

	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(config.Budget),
		perSec:   float64(config.Budget) / time.Minute.Seconds(),
		idle:     config.CleanupInterval,
		now:      now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow takes the admission token for one request from client. When the
// bucket is empty it returns false and how long until a token is available.
func (rl *RateLimiter) Allow(client string) (time.Duration, bool) {
	return rl.take(client, 1)
}

// Charge takes cost tokens from client for work beyond admission. cost is
// capped at one token below the budget, so that a full bucket always
// covers an admission and a charge. Nothing is taken when the bucket
// cannot cover the whole cost.
func (rl *RateLimiter) Charge(client string, cost int) (time.Duration, bool) {
	if cost <= 0 {
		return 0, true
	}
	return rl.take(client, min(float64(cost), rl.capacity-1))
}

func (rl *RateLimiter) take(client string, cost float64) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{tokens: rl.capacity, seen: now}
		rl.buckets[client] = b
	}
	b.tokens = min(rl.capacity, b.tokens+now.Sub(b.seen).Seconds()*rl.perSec)
	b.seen = now

	if b.tokens >= cost {
		b.tokens -= cost
		return 0, true
	}
	missing := (cost - b.tokens) / rl.perSec
	return time.Duration(math.Ceil(missing * float64(time.Second))), false
}

// cleanupLoop drops buckets that have been idle long enough to be full
// again; a fresh bucket is equivalent.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()

	refill := time.Duration(rl.capacity / rl.perSec * float64(time.Second))
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for client, b := range rl.buckets {
				if now.Sub(b.seen) > max(refill, rl.idle) {
					delete(rl.buckets, client)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop stops the background cleanup goroutine. It is safe to call more
// than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// rootsCost is the token charge of isolating a polynomial of the given
// degree to refine digits. Round cost grows with degree and precision, and
// the number of rounds with the digits asked for.
func rootsCost(degree, refine int) int {
	return degree * max(refine, 1) / rootsCostUnit
}

// RateLimitMiddleware rejects requests whose client has no admission token
// left.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wait, ok := rl.Allow(clientKey(r)); !ok {
			writeRateLimited(w, wait)
			return
		}
		next(w, r)
	}
}

// writeRateLimited writes a 429 with a Retry-After rounded up to whole
// seconds.
func writeRateLimited(w http.ResponseWriter, wait time.Duration) {
	secs := max(1, int(math.Ceil(wait.Seconds())))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded, retry later."}`))
}

// clientKey identifies the client a bucket belongs to: the first
// X-Forwarded-For hop, then X-Real-IP, then the remote host.
func clientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
