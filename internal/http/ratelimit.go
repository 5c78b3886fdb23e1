package http

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-client limiter. Entries are pruned
// lazily on access, so no cleanup goroutine is needed.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	clients map[string]*clientWindow
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

func newRateLimiter(perMinute int) *rateLimiter {
	return &rateLimiter{
		limit:   perMinute,
		clients: make(map[string]*clientWindow),
	}
}

// allow reports whether a request from the given client fits in the current
// one-minute window.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[clientIP]
	if !ok || now.Sub(c.windowStart) >= time.Minute {
		rl.prune(now)
		rl.clients[clientIP] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	if c.requests >= rl.limit {
		return false
	}
	c.requests++
	return true
}

// prune drops windows stale for more than ten minutes. Called with the
// lock held.
func (rl *rateLimiter) prune(now time.Time) {
	cutoff := now.Add(-10 * time.Minute)
	for ip, c := range rl.clients {
		if c.windowStart.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}
