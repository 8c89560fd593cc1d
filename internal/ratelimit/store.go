package ratelimit

import (
	"sync"
	"time"
)

// Store keeps per-key fixed windows. Implementations must be safe for
// concurrent use. The in-memory store is process-local only; a
// horizontally scaled deployment can swap in a shared store without
// touching callers.
type Store interface {
	// Hit records one request against the key's current window and
	// returns the resulting state.
	Hit(key string, maxRequests int, window time.Duration, now time.Time) Result
	// Sweep drops windows that expired before now and returns how many
	// were removed.
	Sweep(now time.Time) int
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow
}

func newMemoryStore() *memoryStore {
	return &memoryStore{windows: make(map[string]*fixedWindow)}
}

func (s *memoryStore) Hit(key string, maxRequests int, window time.Duration, now time.Time) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &fixedWindow{count: 1, resetAt: now.Add(window)}
		s.windows[key] = w
		return Result{Allowed: true, Remaining: maxRequests - 1, ResetAt: w.resetAt}
	}

	if w.count >= maxRequests {
		// Over the limit: the window is left untouched.
		return Result{Allowed: false, Remaining: 0, ResetAt: w.resetAt}
	}

	w.count++
	return Result{Allowed: true, Remaining: maxRequests - w.count, ResetAt: w.resetAt}
}

func (s *memoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}
