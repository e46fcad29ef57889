// rate_limiter.go
// ----------------
// This file defines the Limiter type, a fixed-window request counter keyed by
// an opaque string (typically the node id). It is used defensively so a
// misbehaving flow cannot overwhelm the backend.
//
// Responsibilities:
// - Counting dispatches per key within a fixed window.
// - Lazily resetting a key's window once its deadline has passed.
// - Forgetting a key's state on Clear so it is allowed again immediately.
//
// The limiter is owned by the VisionBridge and injected into dispatchers; it
// is valid only within a single process's lifetime.
package visionbridge

import (
	"sync"
	"time"
)

type Limiter struct {
	mu      sync.Mutex
	windows map[string]*limiterWindow
}

type limiterWindow struct {
	count   int
	resetAt time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string]*limiterWindow),
	}
}

// Allow reports whether another request may be made for key. The first call
// for a key opens a window of the given length with count 1; later calls
// increment the count until maxRequests is reached, after which calls are
// denied without incrementing. Once the deadline passes the window is reset
// and the call is allowed.
func (l *Limiter) Allow(key string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &limiterWindow{count: 1, resetAt: now.Add(window)}
		return true
	}
	if w.count >= maxRequests {
		return false
	}
	w.count++
	return true
}

// Clear forgets a key's window, re-enabling immediate allowance.
func (l *Limiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}
