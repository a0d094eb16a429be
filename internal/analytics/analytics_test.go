package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/models"
)

func session(task string, start time.Time, seconds float64) models.Session {
	return models.Session{
		TaskName:        task,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(seconds) * time.Second),
		DurationSeconds: seconds,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Now())

	assert.Zero(t, s.TotalSessions)
	assert.Zero(t, s.TotalSeconds)
	assert.False(t, s.HasMostProductive)
	assert.Empty(t, s.Tasks)
}

func TestSummarizeTotals(t *testing.T) {
	now := time.Date(2026, 8, 20, 18, 0, 0, 0, time.Local)
	today := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	sessions := []models.Session{
		session("Writing", today, 3600),
		session("Writing", today.AddDate(0, 0, -3).Add(5*time.Hour), 1800), // 3 days ago, 14:00
		session("Admin", today.AddDate(0, 0, -20), 600),                    // 20 days ago
	}

	s := Summarize(sessions, now)

	assert.Equal(t, 3, s.TotalSessions)
	assert.Equal(t, 2, s.UniqueTasks)
	assert.InDelta(t, 6000, s.TotalSeconds, 1e-9)
	assert.InDelta(t, 2000, s.AverageSeconds, 1e-9)

	assert.InDelta(t, 3600, s.TodaySeconds, 1e-9)
	assert.Equal(t, 1, s.TodaySessions)
	assert.InDelta(t, 5400, s.WeekSeconds, 1e-9)
	assert.Equal(t, 2, s.WeekSessions)
	assert.InDelta(t, 6000, s.MonthSeconds, 1e-9)
}

func TestSummarizeTaskBreakdown(t *testing.T) {
	now := time.Date(2026, 8, 20, 18, 0, 0, 0, time.Local)
	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	sessions := []models.Session{
		session("Writing", day, 600),
		session("Writing", day.Add(2*time.Hour), 1200),
		session("Writing", day.AddDate(0, 0, -1), 600),
		session("Admin", day, 3000),
	}

	s := Summarize(sessions, now)
	require.Len(t, s.Tasks, 2)

	// Sorted by total, descending
	assert.Equal(t, "Admin", s.Tasks[0].TaskName)
	assert.InDelta(t, 3000, s.Tasks[0].TotalSeconds, 1e-9)
	assert.Equal(t, 1, s.Tasks[0].Days)

	writing := s.Tasks[1]
	assert.Equal(t, "Writing", writing.TaskName)
	assert.InDelta(t, 2400, writing.TotalSeconds, 1e-9)
	assert.Equal(t, 3, writing.Sessions)
	assert.InDelta(t, 800, writing.AverageSeconds, 1e-9)
	assert.Equal(t, 2, writing.Days)
}

func TestSummarizeMostProductive(t *testing.T) {
	now := time.Date(2026, 8, 20, 18, 0, 0, 0, time.Local)
	// A Tuesday morning and a Thursday afternoon; Thursday is busier
	tuesday := time.Date(2026, 8, 18, 9, 0, 0, 0, time.Local)
	thursday := time.Date(2026, 8, 20, 14, 0, 0, 0, time.Local)

	sessions := []models.Session{
		session("Writing", tuesday, 600),
		session("Writing", thursday, 3600),
	}

	s := Summarize(sessions, now)
	require.True(t, s.HasMostProductive)
	assert.Equal(t, time.Thursday, s.MostProductiveDay)
	assert.Equal(t, 14, s.MostProductiveHour)
}

func TestDailyTotals(t *testing.T) {
	now := time.Date(2026, 8, 20, 18, 0, 0, 0, time.Local)
	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	sessions := []models.Session{
		session("Writing", day, 600),
		session("Writing", day.Add(time.Hour), 300),
		session("Writing", day.AddDate(0, 0, -2), 900),
	}

	totals := DailyTotals(sessions, 3, now)
	require.Len(t, totals, 3)

	// Oldest first, zero days included
	assert.InDelta(t, 900, totals[0].Seconds, 1e-9)
	assert.Zero(t, totals[1].Seconds)
	assert.InDelta(t, 900, totals[2].Seconds, 1e-9)
	assert.Equal(t, 18, totals[0].Date.Day())
}
