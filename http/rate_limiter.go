package http

import (
	"sync"
	"time"
)

const (
	staleBucketAge = time.Hour
	sweepInterval  = 30 * time.Minute
)

type window struct {
	remaining int
	started   time.Time
}

// RateLimiter gives every client key a fixed number of requests per window.
// A key's allowance resets in full once its window has elapsed.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	period    time.Duration
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow spends one request from key's window. When the window is used up it
// returns false and the time left until it resets.
func (r *RateLimiter) Allow(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	w, ok := r.windows[key]
	if !ok || now.Sub(w.started) >= r.period {
		w = &window{remaining: r.limit, started: now}
		r.windows[key] = w
	}
	if w.remaining <= 0 {
		return false, w.started.Add(r.period).Sub(now)
	}
	w.remaining--
	return true, 0
}

// sweep drops windows idle for longer than staleBucketAge. Callers hold mu.
func (r *RateLimiter) sweep(now time.Time) {
	if r.lastSweep.IsZero() {
		r.lastSweep = now
		return
	}
	if now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now
	for key, w := range r.windows {
		if now.Sub(w.started) > staleBucketAge {
			delete(r.windows, key)
		}
	}
}
