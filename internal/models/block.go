package models

import (
	"time"
)

// Block is one planned interval on the daily schedule. A block is
// identified by its date, start time, and task name.
type Block struct {
	Date      time.Time `json:"date"` // local midnight of the planned day
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	TaskName  string    `json:"task_name"`
	BlockType string    `json:"block_type"`
	Notes     string    `json:"notes"`
	Completed bool      `json:"completed"`
}

// Overlaps reports whether the two blocks' intervals intersect
func (b Block) Overlaps(other Block) bool {
	return b.Start.Before(other.End) && b.End.After(other.Start)
}

// Duration returns the planned length of the block
func (b Block) Duration() time.Duration {
	return b.End.Sub(b.Start)
}
