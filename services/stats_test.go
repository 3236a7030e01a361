package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(now time.Time, daysAgo int) time.Time {
	return now.AddDate(0, 0, -daysAgo)
}

func TestComputeStudyStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lessons  []time.Time
		expected int
	}{
		{
			name:     "no lessons",
			lessons:  nil,
			expected: 0,
		},
		{
			name:     "single lesson today",
			lessons:  []time.Time{day(now, 0)},
			expected: 1,
		},
		{
			name:     "three consecutive days ending today",
			lessons:  []time.Time{day(now, 0), day(now, 1), day(now, 2)},
			expected: 3,
		},
		{
			name: "no lesson today yields zero even with a past run",
			// Historical behavior: the streak must include today.
			lessons:  []time.Time{day(now, 1), day(now, 2), day(now, 3)},
			expected: 0,
		},
		{
			name:     "gap breaks the streak",
			lessons:  []time.Time{day(now, 0), day(now, 1), day(now, 3), day(now, 4)},
			expected: 2,
		},
		{
			name: "second lesson on the same day stops the walk",
			// Two lessons today: the second has day-gap 0, the walk expects 1.
			lessons:  []time.Time{day(now, 0), day(now, 0), day(now, 1)},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeStudyStreak(now, tt.lessons))
		})
	}
}

func TestComputeStudyStreakTimezoneNormalized(t *testing.T) {
	// A late-evening lesson in a non-UTC zone counts against its UTC day.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	lesson := time.Date(2026, 8, 31, 4, 0, 0, 0, loc) // 09:00 UTC same day

	assert.Equal(t, 1, ComputeStudyStreak(now, []time.Time{lesson}))
}

func TestStatsCacheKey(t *testing.T) {
	assert.Equal(t, "user_stats:u-123", statsCacheKey("u-123"))
}
