package ratelimit

import (
	"sync"
	"time"
)

// FixedWindow provides per-origin request throttling using coarse fixed
// windows: the counter resets when a full window has elapsed since the
// window start, so a burst of up to 2x the limit is possible across a
// window boundary. State is process-local only.
type FixedWindow struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
}

type bucket struct {
	count       int
	windowStart time.Time
}

// NewFixedWindow creates a limiter allowing limit requests per origin per window.
func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether a request from origin fits in its current window.
// The check and increment happen under one lock so concurrent requests from
// the same origin cannot slip past the limit.
func (fw *FixedWindow) Allow(origin string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	b, ok := fw.buckets[origin]
	if !ok || now.Sub(b.windowStart) > fw.window {
		fw.buckets[origin] = &bucket{count: 1, windowStart: now}
		return true
	}

	b.count++
	return b.count <= fw.limit
}
