package server

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-client counter. Each client gets
// maxRequests per window; the window resets wholesale rather than
// sliding, matching the behavior the public site has always had.
type RateLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	clients     map[string]*clientWindow
}

type clientWindow struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a rate limiter with the given window and
// per-client request budget.
func NewRateLimiter(window time.Duration, maxRequests int) *RateLimiter {
	return &RateLimiter{
		window:      window,
		maxRequests: maxRequests,
		clients:     make(map[string]*clientWindow),
	}
}

// Allow reports whether the client identified by key may proceed, and
// counts the request against its window if so.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[key]
	if !ok || now.Sub(cw.windowStart) >= rl.window {
		// Sweep expired entries while we hold the lock and the map has
		// grown; keeps memory bounded without a janitor goroutine.
		if len(rl.clients) > 1024 {
			for k, v := range rl.clients {
				if now.Sub(v.windowStart) >= rl.window {
					delete(rl.clients, k)
				}
			}
		}
		rl.clients[key] = &clientWindow{windowStart: now, count: 1}
		return true
	}

	if cw.count >= rl.maxRequests {
		return false
	}
	cw.count++
	return true
}
