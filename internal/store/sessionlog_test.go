package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/models"
)

func newTestSessionLog(t *testing.T) (*SessionLog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.csv")
	l, err := OpenSessionLog(path)
	require.NoError(t, err)
	return l, path
}

func sealedSession(task string, start time.Time, seconds float64) models.Session {
	return models.Session{
		TaskName:        task,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(seconds) * time.Second),
		DurationSeconds: seconds,
	}
}

func TestAppendAndQuery(t *testing.T) {
	l, _ := newTestSessionLog(t)
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	require.NoError(t, l.Append(sealedSession("Writing", start, 1500)))
	require.NoError(t, l.Append(sealedSession("Admin", start.Add(time.Hour), 300)))

	sessions, skipped, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Writing", sessions[0].TaskName)
	assert.InDelta(t, 1500, sessions[0].DurationSeconds, 1e-9)
	assert.True(t, sessions[0].StartTime.Equal(start))
}

func TestAppendRejectsUnsealedSession(t *testing.T) {
	l, _ := newTestSessionLog(t)

	err := l.Append(models.Session{
		TaskName:  "Writing",
		StartTime: time.Now(),
	})
	assert.ErrorIs(t, err, ErrSessionNotSealed)
}

func TestQueryByTask(t *testing.T) {
	l, _ := newTestSessionLog(t)
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	require.NoError(t, l.Append(sealedSession("Writing", start, 600)))
	require.NoError(t, l.Append(sealedSession("Admin", start, 300)))
	require.NoError(t, l.Append(sealedSession("Writing", start.Add(time.Hour), 900)))

	sessions, _, err := l.Query(QueryOptions{TaskName: "Writing"})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		assert.Equal(t, "Writing", s.TaskName)
	}
}

func TestQueryByDateRange(t *testing.T) {
	l, _ := newTestSessionLog(t)
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)

	require.NoError(t, l.Append(sealedSession("Writing", day.AddDate(0, 0, -2), 600)))
	require.NoError(t, l.Append(sealedSession("Writing", day.Add(10*time.Hour), 900)))
	require.NoError(t, l.Append(sealedSession("Writing", day.AddDate(0, 0, 2), 300)))

	sessions, _, err := l.Query(QueryOptions{
		From: day,
		To:   day.Add(24*time.Hour - time.Nanosecond),
	})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.InDelta(t, 900, sessions[0].DurationSeconds, 1e-9)
}

func TestQueryIsRestartable(t *testing.T) {
	l, _ := newTestSessionLog(t)
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	require.NoError(t, l.Append(sealedSession("Writing", start, 600)))

	first, _, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// An append between queries is visible on the next query
	require.NoError(t, l.Append(sealedSession("Writing", start.Add(time.Hour), 300)))

	second, _, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestQuerySkipsCorruptRows(t *testing.T) {
	l, path := newTestSessionLog(t)
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	require.NoError(t, l.Append(sealedSession("Writing", start, 1500)))

	// Inject a row with a negative duration directly into the file
	corrupt := "Writing," + start.Format(time.RFC3339) + "," + start.Add(time.Minute).Format(time.RFC3339) + ",-60\n"
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(corrupt)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	sessions, skipped, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, skipped)
}

func TestQueryCountsAllCorruptionKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	rows := strings.Join([]string{
		"task_name,start_time,end_time,duration_seconds",
		"Writing," + now.Format(time.RFC3339) + "," + now.Add(time.Minute).Format(time.RFC3339) + ",60",
		"," + now.Format(time.RFC3339) + "," + now.Format(time.RFC3339) + ",10", // missing task reference
		"Writing,not-a-time," + now.Format(time.RFC3339) + ",10",                // malformed timestamp
		"Writing," + now.Format(time.RFC3339),                                   // short row
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(rows), 0644))

	l, err := OpenSessionLog(path)
	require.NoError(t, err)

	sessions, skipped, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 3, skipped)
}

func TestRemoveTask(t *testing.T) {
	l, _ := newTestSessionLog(t)
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	require.NoError(t, l.Append(sealedSession("Writing", start, 600)))
	require.NoError(t, l.Append(sealedSession("Admin", start, 300)))
	require.NoError(t, l.Append(sealedSession("Writing", start.Add(time.Hour), 900)))

	removed, err := l.RemoveTask("Writing")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	sessions, _, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Admin", sessions[0].TaskName)
}

func TestSessionRoundTrip(t *testing.T) {
	l, _ := newTestSessionLog(t)
	start := time.Date(2026, 8, 20, 9, 30, 15, 0, time.Local)
	original := sealedSession("Deep Work", start, 1234.5)

	require.NoError(t, l.Append(original))

	sessions, _, err := l.Query(QueryOptions{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	got := sessions[0]
	assert.Equal(t, original.TaskName, got.TaskName)
	assert.True(t, got.StartTime.Equal(original.StartTime))
	assert.True(t, got.EndTime.Equal(original.EndTime))
	assert.InDelta(t, original.DurationSeconds, got.DurationSeconds, 1e-9)
}
