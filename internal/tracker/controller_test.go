package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/store"
)

// fakeClock hands out a controllable time
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestController(t *testing.T) (*Controller, *fakeClock, *store.TaskStore, *store.SessionLog) {
	t.Helper()
	dir := t.TempDir()

	tasks, err := store.OpenTaskStore(filepath.Join(dir, "tasks.csv"))
	require.NoError(t, err)
	sessions, err := store.OpenSessionLog(filepath.Join(dir, "sessions.csv"))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)}
	ctrl := NewController(tasks, sessions)
	ctrl.Now = clock.Now
	return ctrl, clock, tasks, sessions
}

func TestStartStopSealsSession(t *testing.T) {
	ctrl, clock, tasks, _ := newTestController(t)

	require.NoError(t, ctrl.Start("Writing"))
	assert.Equal(t, StateTracking, ctrl.State())

	clock.Advance(1500 * time.Second)

	session, err := ctrl.Stop()
	require.NoError(t, err)
	assert.Equal(t, "Writing", session.TaskName)
	assert.InDelta(t, 1500, session.DurationSeconds, 1e-9)
	assert.True(t, session.Sealed())
	assert.Equal(t, StateIdle, ctrl.State())

	task, err := tasks.Get("Writing")
	require.NoError(t, err)
	assert.InDelta(t, 1500, task.TotalTrackedSeconds, 1e-9)
}

func TestStartWhileTrackingFails(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)

	require.NoError(t, ctrl.Start("Writing"))

	err := ctrl.Start("Admin")
	assert.ErrorIs(t, err, ErrAlreadyTracking)

	// State is unchanged: still tracking the original task
	taskName, _, ok := ctrl.Current()
	assert.True(t, ok)
	assert.Equal(t, "Writing", taskName)
}

func TestStopWhileIdleFails(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)

	_, err := ctrl.Stop()
	assert.ErrorIs(t, err, ErrNotTracking)
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestElapsed(t *testing.T) {
	ctrl, clock, _, _ := newTestController(t)

	assert.Zero(t, ctrl.Elapsed())

	require.NoError(t, ctrl.Start("Writing"))
	clock.Advance(90 * time.Second)

	assert.Equal(t, 90*time.Second, ctrl.Elapsed())

	// Elapsed is side-effect free
	assert.Equal(t, 90*time.Second, ctrl.Elapsed())
	assert.Equal(t, StateTracking, ctrl.State())
}

func TestNegativeElapsedClampedToZero(t *testing.T) {
	ctrl, clock, tasks, _ := newTestController(t)

	require.NoError(t, ctrl.Start("Writing"))
	clock.Advance(-time.Hour) // clock skew

	session, err := ctrl.Stop()
	require.NoError(t, err)
	assert.Zero(t, session.DurationSeconds)
	assert.True(t, session.Sealed())

	task, err := tasks.Get("Writing")
	require.NoError(t, err)
	assert.Zero(t, task.TotalTrackedSeconds)
}

func TestDurationsSumToTaskTotal(t *testing.T) {
	ctrl, clock, tasks, sessions := newTestController(t)

	durations := []time.Duration{
		90 * time.Second,
		45 * time.Minute,
		1*time.Hour + 30*time.Minute,
		500 * time.Millisecond,
	}
	for _, d := range durations {
		require.NoError(t, ctrl.Start("Writing"))
		clock.Advance(d)
		_, err := ctrl.Stop()
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	sealed, skipped, err := sessions.Query(store.QueryOptions{TaskName: "Writing"})
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, sealed, len(durations))

	sum := 0.0
	for _, s := range sealed {
		sum += s.DurationSeconds
	}
	task, err := tasks.Get("Writing")
	require.NoError(t, err)
	assert.InDelta(t, task.TotalTrackedSeconds, sum, 1e-6)
}

func TestStopRetryAfterPartialFailureDoesNotDoubleCommit(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	tasks, err := store.OpenTaskStore(filepath.Join(dir, "tasks.csv"))
	require.NoError(t, err)
	sessions, err := store.OpenSessionLog(filepath.Join(dir, "sessions.csv"))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)}
	ctrl, err := NewPersistentController(tasks, sessions, statePath)
	require.NoError(t, err)
	ctrl.Now = clock.Now

	require.NoError(t, ctrl.Start("Writing"))
	clock.Advance(1500 * time.Second)

	// Make clearing the state file fail mid-commit: replace it with a
	// non-empty directory so os.Remove errors
	require.NoError(t, os.Remove(statePath))
	require.NoError(t, os.MkdirAll(filepath.Join(statePath, "blocker"), 0755))

	_, err = ctrl.Stop()
	require.Error(t, err)

	// The session committed once; the controller is idle and a retry
	// must not append the interval again
	assert.Equal(t, StateIdle, ctrl.State())
	_, err = ctrl.Stop()
	assert.ErrorIs(t, err, ErrNotTracking)

	sealed, skipped, err := sessions.Query(store.QueryOptions{})
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, sealed, 1)
	assert.InDelta(t, 1500, sealed[0].DurationSeconds, 1e-9)

	task, err := tasks.Get("Writing")
	require.NoError(t, err)
	assert.InDelta(t, 1500, task.TotalTrackedSeconds, 1e-9)
}

func TestPersistentControllerSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	tasks, err := store.OpenTaskStore(filepath.Join(dir, "tasks.csv"))
	require.NoError(t, err)
	sessions, err := store.OpenSessionLog(filepath.Join(dir, "sessions.csv"))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)}

	ctrl, err := NewPersistentController(tasks, sessions, statePath)
	require.NoError(t, err)
	ctrl.Now = clock.Now
	require.NoError(t, ctrl.Start("Writing"))

	// A new controller over the same state file resumes the session
	clock.Advance(25 * time.Minute)
	resumed, err := NewPersistentController(tasks, sessions, statePath)
	require.NoError(t, err)
	resumed.Now = clock.Now

	taskName, _, ok := resumed.Current()
	require.True(t, ok)
	assert.Equal(t, "Writing", taskName)
	assert.Equal(t, 25*time.Minute, resumed.Elapsed())

	session, err := resumed.Stop()
	require.NoError(t, err)
	assert.InDelta(t, (25 * time.Minute).Seconds(), session.DurationSeconds, 1e-9)

	// The state file is gone, so the next controller starts idle
	idle, err := NewPersistentController(tasks, sessions, statePath)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, idle.State())
}
