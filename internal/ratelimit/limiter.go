// Package ratelimit provides a fixed-window request limiter keyed by
// caller identity. State is process-local; there is no cross-process
// consistency guarantee.
package ratelimit

import (
	"fmt"
	"strings"
	"time"
)

// Result reports the outcome of a single rate check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter checks requests against a fixed-window policy.
type Limiter struct {
	store Store
	now   func() time.Time
}

// New creates a limiter backed by the in-process store.
func New() *Limiter {
	return NewWithStore(newMemoryStore())
}

// NewWithStore creates a limiter over a custom store.
func NewWithStore(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Check counts one request for key under the given policy. Being over
// the limit is a regular Allowed=false result, not an error; only an
// invalid policy is an error.
func (l *Limiter) Check(key string, maxRequests int, window time.Duration) (Result, error) {
	if maxRequests <= 0 {
		return Result{}, fmt.Errorf("max requests must be positive, got %d", maxRequests)
	}
	if window <= 0 {
		return Result{}, fmt.Errorf("window must be positive, got %s", window)
	}
	return l.store.Hit(key, maxRequests, window, l.now()), nil
}

// Sweep purges expired windows and returns how many were removed.
func (l *Limiter) Sweep() int {
	return l.store.Sweep(l.now())
}

// ClientKey derives the rate-limit key for a network caller. The
// trusted reverse-proxy header wins because callers cannot forge it;
// the forwarded-for header is client-suppliable and is consulted only
// as a fallback, taking its first comma-separated entry.
func ClientKey(realIP, forwardedFor string) string {
	if realIP != "" {
		return realIP
	}
	if forwardedFor != "" {
		first := forwardedFor
		if i := strings.Index(forwardedFor, ","); i >= 0 {
			first = forwardedFor[:i]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return "unknown"
}
