package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"nexus-api/internal/httpx"
	"nexus-api/internal/netutil"
	"nexus-api/internal/observability/metrics"
	obsmw "nexus-api/internal/observability/middleware"

	"github.com/go-chi/httprate"
)

const throttledMessage = "ThrottlerException: Too Many Requests"

// ThrottleConfig allows Limit requests per client within TTL. A client that
// goes over is rejected until Block has passed, after which it starts a
// fresh window.
type ThrottleConfig struct {
	Limit int
	TTL   time.Duration
	Block time.Duration
}

// Throttle builds the per-IP limiter middleware.
func Throttle(cfg ThrottleConfig) func(http.Handler) http.Handler {
	return throttle(cfg, newBlockingCounter(cfg.Block, time.Now))
}

func throttle(cfg ThrottleConfig, counter httprate.LimitCounter) func(http.Handler) http.Handler {
	return httprate.Limit(cfg.Limit, cfg.TTL,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return netutil.ClientIP(r), nil
		}),
		httprate.WithLimitCounter(counter),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.ThrottledRequestsTotal.WithLabelValues().Inc()
			slog.Warn("request throttled", "ip", netutil.ClientIP(r), "path", r.URL.Path,
				"request_id", obsmw.RequestIDFromContext(r.Context()), "trace_id", obsmw.TraceIDFromContext(r.Context()))
			httpx.WriteStatus(w, http.StatusTooManyRequests, throttledMessage)
		}),
	)
}

// blockingCounter is an httprate.LimitCounter with fixed windows that start
// at a client's first hit, instead of httprate's sliding estimate. Once a
// client reaches the limit it is reported as saturated until the block
// expires, and its window restarts afterwards.
type blockingCounter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	block     time.Duration
	now       func() time.Time
	entries   map[string]*throttleEntry
	lastSweep time.Time
}

type throttleEntry struct {
	hits         int
	windowEnds   time.Time
	blockedUntil time.Time
}

var _ httprate.LimitCounter = (*blockingCounter)(nil)

func newBlockingCounter(block time.Duration, now func() time.Time) *blockingCounter {
	return &blockingCounter{
		block:   block,
		now:     now,
		entries: make(map[string]*throttleEntry),
	}
}

func (c *blockingCounter) Config(requestLimit int, windowLength time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = requestLimit
	c.window = windowLength
}

func (c *blockingCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *blockingCounter) IncrementBy(key string, _ time.Time, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.entry(key, now).hits += amount
	c.sweep(now)
	return nil
}

// Get reports the current window count and never a previous one, which turns
// httprate's sliding window into a fixed one.
func (c *blockingCounter) Get(key string, _, _ time.Time) (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	e := c.entry(key, now)
	if now.Before(e.blockedUntil) {
		return c.limit, 0, nil
	}
	if e.hits >= c.limit {
		e.blockedUntil = now.Add(c.block)
		return c.limit, 0, nil
	}
	return e.hits, 0, nil
}

// entry returns the live entry for key, starting a new window when the old
// one and any block have both run out.
func (c *blockingCounter) entry(key string, now time.Time) *throttleEntry {
	e, ok := c.entries[key]
	if !ok || c.expired(e, now) {
		e = &throttleEntry{windowEnds: now.Add(c.window)}
		c.entries[key] = e
	}
	return e
}

func (c *blockingCounter) expired(e *throttleEntry, now time.Time) bool {
	if !e.blockedUntil.IsZero() {
		return !now.Before(e.blockedUntil)
	}
	return !now.Before(e.windowEnds)
}

func (c *blockingCounter) sweep(now time.Time) {
	if now.Sub(c.lastSweep) < c.window {
		return
	}
	c.lastSweep = now
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
		}
	}
}
