package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.Local)
	today := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"today", today},
		{"Today", today},
		{"yesterday", today.AddDate(0, 0, -1)},
		{"3 days ago", today.AddDate(0, 0, -3)},
		{"1 day ago", today.AddDate(0, 0, -1)},
		{"2 weeks ago", today.AddDate(0, 0, -14)},
		{"2026-08-01", time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)},
		{"  2026-08-01  ", time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	now := time.Now()

	for _, input := range []string{"", "someday", "08/20/2026", "3 months ago", "2026-13-40"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input, now)
			assert.Error(t, err)
		})
	}
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	end := EndOfDay(day)

	assert.Equal(t, 20, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(day.AddDate(0, 0, 1)))
}

func TestEndOfDayAcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// Spring forward (23-hour day) and fall back (25-hour day) in 2026
	for _, day := range []time.Time{
		time.Date(2026, 3, 8, 0, 0, 0, 0, loc),
		time.Date(2026, 11, 1, 0, 0, 0, 0, loc),
	} {
		end := EndOfDay(day)
		assert.Equal(t, day.Day(), end.Day(), "end of %v landed on %v", day, end)
		assert.Equal(t, 23, end.Hour())
		assert.Equal(t, 59, end.Minute())
	}
}
