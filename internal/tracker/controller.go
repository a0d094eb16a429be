package tracker

import (
	"errors"
	"fmt"
	"time"

	"tempo/internal/logging"
	"tempo/internal/models"
	"tempo/internal/store"
)

var (
	// ErrAlreadyTracking is returned by Start while a session is active
	ErrAlreadyTracking = errors.New("already tracking a task")

	// ErrNotTracking is returned by Stop while idle
	ErrNotTracking = errors.New("no active tracking session")
)

// State is the controller's tracking state
type State int

const (
	// StateIdle means no session is active
	StateIdle State = iota
	// StateTracking means one session is active
	StateTracking
)

// Controller is the tracking state machine. It owns the Idle/Tracking
// state explicitly rather than leaving it implicit in ambient globals,
// and commits completed sessions to the session log and task store.
type Controller struct {
	tasks    *store.TaskStore
	sessions *store.SessionLog

	// Now supplies the current time. Tests swap it for a fake clock.
	Now func() time.Time

	state     State
	taskName  string
	startTime time.Time

	// statePath, when set, persists the active session between
	// invocations. Empty keeps the controller purely in-memory.
	statePath string
}

// NewController builds an idle controller over the given stores
func NewController(tasks *store.TaskStore, sessions *store.SessionLog) *Controller {
	return &Controller{
		tasks:    tasks,
		sessions: sessions,
		Now:      time.Now,
		state:    StateIdle,
	}
}

// NewPersistentController builds a controller that restores and persists
// its tracking state at statePath, so start and stop can run in
// separate CLI invocations
func NewPersistentController(tasks *store.TaskStore, sessions *store.SessionLog, statePath string) (*Controller, error) {
	c := NewController(tasks, sessions)
	c.statePath = statePath

	st, err := LoadState(statePath)
	if err != nil {
		return nil, err
	}
	if st != nil {
		c.state = StateTracking
		c.taskName = st.TaskName
		c.startTime = st.StartTime
	}
	return c, nil
}

// Start begins tracking name, creating the task on first use. Switching
// tasks requires an explicit Stop first; there is no implicit switch.
func (c *Controller) Start(name string) error {
	if c.state == StateTracking {
		return fmt.Errorf("%w: %q (stop it first)", ErrAlreadyTracking, c.taskName)
	}

	task, err := c.tasks.Upsert(name)
	if err != nil {
		return err
	}

	start := c.Now()
	if c.statePath != "" {
		st := TrackingState{TaskName: task.Name, StartTime: start}
		if err := st.Save(c.statePath); err != nil {
			return err
		}
	}

	c.state = StateTracking
	c.taskName = task.Name
	c.startTime = start

	logging.Logger.Info("tracking started", "task", task.Name, "start", start)
	return nil
}

// Stop seals the active session, appends it to the session log, adds
// the duration to the task's total, and returns to idle. A negative
// elapsed time (clock skew) is clamped to zero rather than aborting.
func (c *Controller) Stop() (models.Session, error) {
	if c.state != StateTracking {
		return models.Session{}, ErrNotTracking
	}

	now := c.Now()
	elapsed := now.Sub(c.startTime)
	if elapsed < 0 {
		logging.Logger.Warn("negative elapsed time, clamping to zero",
			"task", c.taskName, "start", c.startTime, "now", now)
		elapsed = 0
	}

	session := models.Session{
		TaskName:        c.taskName,
		StartTime:       c.startTime,
		EndTime:         now,
		DurationSeconds: elapsed.Seconds(),
	}

	if err := c.sessions.Append(session); err != nil {
		return models.Session{}, err
	}

	// The session is committed once it hits the log. Go idle before the
	// remaining writes so a retried Stop after a partial failure gets
	// ErrNotTracking instead of appending the same interval twice.
	c.state = StateIdle
	c.taskName = ""
	c.startTime = time.Time{}

	if err := c.tasks.AddTime(session.TaskName, session.DurationSeconds); err != nil {
		return session, fmt.Errorf("session logged but task total not updated: %w", err)
	}
	if c.statePath != "" {
		if err := ClearState(c.statePath); err != nil {
			return session, fmt.Errorf("session logged but tracking state not cleared: %w", err)
		}
	}

	logging.Logger.Info("tracking stopped",
		"task", session.TaskName, "duration_seconds", session.DurationSeconds)
	return session, nil
}

// Elapsed returns the time tracked so far in the active session, or 0
// when idle. It has no side effects and is safe to poll for display.
func (c *Controller) Elapsed() time.Duration {
	if c.state != StateTracking {
		return 0
	}
	elapsed := c.Now().Sub(c.startTime)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// State returns the current tracking state
func (c *Controller) State() State {
	return c.state
}

// Current returns the active task name and start time; ok is false when idle
func (c *Controller) Current() (taskName string, startTime time.Time, ok bool) {
	if c.state != StateTracking {
		return "", time.Time{}, false
	}
	return c.taskName, c.startTime, true
}
