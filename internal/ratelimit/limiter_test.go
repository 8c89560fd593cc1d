package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(now time.Time) (*Limiter, *time.Time) {
	current := now
	l := New()
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLimiter_FixedWindowSequence(t *testing.T) {
	start := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	l, _ := newTestLimiter(start)

	expected := []struct {
		allowed   bool
		remaining int
	}{
		{true, 2},
		{true, 1},
		{true, 0},
		{false, 0},
	}

	for i, want := range expected {
		res, err := l.Check("10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want.allowed, res.Allowed, "call %d", i+1)
		assert.Equal(t, want.remaining, res.Remaining, "call %d", i+1)
		assert.Equal(t, start.Add(time.Minute), res.ResetAt, "call %d", i+1)
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	for i := 0; i < 3; i++ {
		res, err := l.Check("10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.Check("10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// A different key under the same policy is unaffected.
	res, err = l.Check("10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestLimiter_WindowResets(t *testing.T) {
	start := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	l, current := newTestLimiter(start)

	for i := 0; i < 4; i++ {
		_, err := l.Check("10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
	}

	*current = start.Add(time.Minute + time.Second)

	res, err := l.Check("10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, current.Add(time.Minute), res.ResetAt)
}

func TestLimiter_InvalidPolicy(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	_, err := l.Check("key", 0, time.Minute)
	assert.Error(t, err)

	_, err = l.Check("key", -1, time.Minute)
	assert.Error(t, err)

	_, err = l.Check("key", 3, 0)
	assert.Error(t, err)
}

func TestLimiter_Sweep(t *testing.T) {
	start := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	l, current := newTestLimiter(start)

	_, err := l.Check("expired", 3, time.Minute)
	require.NoError(t, err)

	*current = start.Add(30 * time.Second)
	_, err = l.Check("fresh", 3, 5*time.Minute)
	require.NoError(t, err)

	*current = start.Add(2 * time.Minute)
	assert.Equal(t, 1, l.Sweep())

	// The fresh key's window survived the sweep.
	res, err := l.Check("fresh", 3, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)
}

func TestLimiter_ConcurrentChecks(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	const (
		goroutines = 20
		perG       = 10
		limit      = 50
	)

	var allowed int64
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				res, err := l.Check("shared", limit, time.Minute)
				assert.NoError(t, err)
				if res.Allowed {
					atomic.AddInt64(&allowed, 1)
				}
			}
		}()
	}
	wg.Wait()

	// Exactly limit requests got through; none were lost or double counted.
	assert.Equal(t, int64(limit), allowed)
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name         string
		realIP       string
		forwardedFor string
		expected     string
	}{
		{
			name:     "trusted proxy header wins",
			realIP:   "203.0.113.7",
			expected: "203.0.113.7",
		},
		{
			name:         "trusted header beats forwarded-for",
			realIP:       "203.0.113.7",
			forwardedFor: "198.51.100.1, 203.0.113.9",
			expected:     "203.0.113.7",
		},
		{
			name:         "forwarded-for first entry as fallback",
			forwardedFor: "198.51.100.1, 203.0.113.9",
			expected:     "198.51.100.1",
		},
		{
			name:         "forwarded-for entry is trimmed",
			forwardedFor: "  198.51.100.1 , 203.0.113.9",
			expected:     "198.51.100.1",
		},
		{
			name:     "no headers at all",
			expected: "unknown",
		},
		{
			name:         "forwarded-for with only separators",
			forwardedFor: " , ",
			expected:     "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClientKey(tt.realIP, tt.forwardedFor))
		})
	}
}

func TestLimiter_ManyKeys(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	for i := 0; i < 100; i++ {
		res, err := l.Check(fmt.Sprintf("key-%d", i), 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}
