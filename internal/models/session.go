package models

import (
	"time"
)

// Session represents one contiguous start/stop interval of tracking
// attributed to a task. A session is sealed once its end time is set;
// sealed sessions are immutable.
type Session struct {
	TaskName        string    `json:"task_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Sealed reports whether the session has been finalized with an end time
func (s Session) Sealed() bool {
	return !s.EndTime.IsZero()
}

// Duration returns the sealed duration as a time.Duration
func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds * float64(time.Second))
}
