package models

import (
	"time"
)

// Task represents a named activity accumulating tracked time
type Task struct {
	Name                string    `json:"name"`
	TotalTrackedSeconds float64   `json:"total_tracked_seconds"`
	CreatedAt           time.Time `json:"created_at"`
}

// TotalTracked returns the accumulated time as a duration
func (t Task) TotalTracked() time.Duration {
	return time.Duration(t.TotalTrackedSeconds * float64(time.Second))
}
