package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{
			name:     "same day",
			from:     time.Date(2024, 5, 15, 1, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 5, 15, 23, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "adjacent days regardless of time of day",
			from:     time.Date(2024, 5, 15, 23, 59, 0, 0, time.UTC),
			to:       time.Date(2024, 5, 16, 0, 1, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "across month boundary",
			from:     time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "across year boundary",
			from:     time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "non-UTC input compared by UTC date",
			from:     time.Date(2024, 5, 15, 22, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			to:       time.Date(2024, 5, 15, 21, 0, 0, 0, time.UTC),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestSameMonth(t *testing.T) {
	tests := []struct {
		name     string
		a        time.Time
		b        time.Time
		expected bool
	}{
		{
			name:     "same month",
			a:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			b:        time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "next month",
			a:        time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
			b:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "same month different year",
			a:        time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
			b:        time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SameMonth(tt.a, tt.b))
		})
	}
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		current    int
		lastActive *time.Time
		premium    bool
		expected   int
	}{
		{
			name:     "first ever activity",
			current:  0,
			expected: 1,
		},
		{
			name:       "already active today",
			current:    5,
			lastActive: datePtr(now.Add(-2 * time.Hour)),
			expected:   5,
		},
		{
			name:       "active yesterday",
			current:    5,
			lastActive: datePtr(now.AddDate(0, 0, -1)),
			expected:   6,
		},
		{
			name:       "two days ago with premium grace",
			current:    5,
			lastActive: datePtr(now.AddDate(0, 0, -2)),
			premium:    true,
			expected:   6,
		},
		{
			name:       "two days ago without premium",
			current:    5,
			lastActive: datePtr(now.AddDate(0, 0, -2)),
			expected:   1,
		},
		{
			name:       "three days ago with premium",
			current:    5,
			lastActive: datePtr(now.AddDate(0, 0, -3)),
			premium:    true,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextStreak(tt.current, tt.lastActive, tt.premium, now))
		})
	}
}

func TestEffectiveStreak(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		current    int
		lastActive *time.Time
		premium    bool
		expected   int
	}{
		{
			name:     "no activity yet",
			current:  0,
			expected: 0,
		},
		{
			name:       "zero streak with activity date",
			current:    0,
			lastActive: datePtr(now),
			expected:   0,
		},
		{
			name:       "active today",
			current:    7,
			lastActive: datePtr(now),
			expected:   7,
		},
		{
			name:       "active yesterday, still extendable",
			current:    7,
			lastActive: datePtr(now.AddDate(0, 0, -1)),
			expected:   7,
		},
		{
			name:       "two days ago with premium grace",
			current:    7,
			lastActive: datePtr(now.AddDate(0, 0, -2)),
			premium:    true,
			expected:   7,
		},
		{
			name:       "stale streak decays immediately for display",
			current:    7,
			lastActive: datePtr(now.AddDate(0, 0, -2)),
			expected:   0,
		},
		{
			name:       "long stale even with premium",
			current:    7,
			lastActive: datePtr(now.AddDate(0, 0, -10)),
			premium:    true,
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveStreak(tt.current, tt.lastActive, tt.premium, now))
		})
	}
}
