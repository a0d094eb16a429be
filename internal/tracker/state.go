package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tempo/internal/store"
)

// TrackingState is the active session persisted between CLI invocations.
// Each command runs in a fresh process, so the state file is what makes
// "at most one active session" hold across start and stop.
type TrackingState struct {
	TaskName  string    `json:"task_name"`
	StartTime time.Time `json:"start_time"`
}

// LoadState reads the persisted tracking state from path. A missing
// file means idle and returns nil with no error.
func LoadState(path string) (*TrackingState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking state: %w", err)
	}

	var st TrackingState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("invalid tracking state file: %w", err)
	}
	if st.TaskName == "" || st.StartTime.IsZero() {
		return nil, fmt.Errorf("invalid tracking state file: missing task or start time")
	}
	return &st, nil
}

// Save persists the tracking state to path with an atomic replace
func (st *TrackingState) Save(path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracking state: %w", err)
	}
	return store.WriteFileAtomic(path, data)
}

// ClearState removes the tracking state file. Already absent is fine.
func ClearState(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear tracking state: %w", err)
	}
	return nil
}
