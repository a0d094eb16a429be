package store

import "errors"

var (
	// ErrTaskNotFound is returned when a task name is not in the store
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyTaskName is returned when a task name is empty or whitespace
	ErrEmptyTaskName = errors.New("task name cannot be empty")

	// ErrSessionNotSealed is returned when an unsealed session is appended
	// to the session log
	ErrSessionNotSealed = errors.New("session is not sealed")

	// ErrScheduleConflict is returned when a new schedule block overlaps
	// an existing one on the same day
	ErrScheduleConflict = errors.New("time conflict with an existing schedule block")

	// ErrBlockNotFound is returned when a schedule block lookup matches nothing
	ErrBlockNotFound = errors.New("schedule block not found")
)
