package store

import (
	"fmt"
	"strconv"
	"time"

	"tempo/internal/models"
)

// Timestamps in the task and session files use RFC 3339. Schedule
// blocks split the moment into a calendar day and a wall-clock time.
const (
	timeFormat  = time.RFC3339
	dayFormat   = "2006-01-02"
	clockFormat = "15:04"
)

// Column order of the store files. The headers are written on file
// creation and skipped on read.
var (
	taskHeader    = []string{"name", "total_tracked_seconds", "created_at"}
	sessionHeader = []string{"task_name", "start_time", "end_time", "duration_seconds"}
	blockHeader   = []string{"date", "start_time", "end_time", "task_name", "block_type", "notes", "completed"}
)

// encodeTask serializes a task as one CSV record:
// name, total_tracked_seconds, created_at
func encodeTask(t models.Task) []string {
	return []string{
		t.Name,
		strconv.FormatFloat(t.TotalTrackedSeconds, 'f', -1, 64),
		t.CreatedAt.Format(timeFormat),
	}
}

// decodeTask parses one task record, rejecting malformed rows
func decodeTask(record []string) (models.Task, error) {
	if len(record) != len(taskHeader) {
		return models.Task{}, fmt.Errorf("expected %d columns, got %d", len(taskHeader), len(record))
	}

	name := record[0]
	if name == "" {
		return models.Task{}, fmt.Errorf("missing task name")
	}

	total, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return models.Task{}, fmt.Errorf("invalid total_tracked_seconds %q: %w", record[1], err)
	}
	if total < 0 {
		return models.Task{}, fmt.Errorf("negative total_tracked_seconds %q", record[1])
	}

	createdAt, err := time.Parse(timeFormat, record[2])
	if err != nil {
		return models.Task{}, fmt.Errorf("invalid created_at %q: %w", record[2], err)
	}

	return models.Task{
		Name:                name,
		TotalTrackedSeconds: total,
		CreatedAt:           createdAt,
	}, nil
}

// encodeSession serializes a sealed session as one CSV record:
// task_name, start_time, end_time, duration_seconds
func encodeSession(s models.Session) []string {
	return []string{
		s.TaskName,
		s.StartTime.Format(timeFormat),
		s.EndTime.Format(timeFormat),
		strconv.FormatFloat(s.DurationSeconds, 'f', -1, 64),
	}
}

// decodeSession parses one session record, rejecting malformed rows
func decodeSession(record []string) (models.Session, error) {
	if len(record) != len(sessionHeader) {
		return models.Session{}, fmt.Errorf("expected %d columns, got %d", len(sessionHeader), len(record))
	}

	taskName := record[0]
	if taskName == "" {
		return models.Session{}, fmt.Errorf("missing task reference")
	}

	start, err := time.Parse(timeFormat, record[1])
	if err != nil {
		return models.Session{}, fmt.Errorf("invalid start_time %q: %w", record[1], err)
	}

	end, err := time.Parse(timeFormat, record[2])
	if err != nil {
		return models.Session{}, fmt.Errorf("invalid end_time %q: %w", record[2], err)
	}

	duration, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return models.Session{}, fmt.Errorf("invalid duration_seconds %q: %w", record[3], err)
	}
	if duration < 0 {
		return models.Session{}, fmt.Errorf("negative duration_seconds %q", record[3])
	}

	return models.Session{
		TaskName:        taskName,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: duration,
	}, nil
}

// encodeBlock serializes a schedule block as one CSV record:
// date, start_time, end_time, task_name, block_type, notes, completed
func encodeBlock(b models.Block) []string {
	return []string{
		b.Date.Format(dayFormat),
		b.Start.Format(clockFormat),
		b.End.Format(clockFormat),
		b.TaskName,
		b.BlockType,
		b.Notes,
		strconv.FormatBool(b.Completed),
	}
}

// decodeBlock parses one schedule block record, rejecting malformed rows
func decodeBlock(record []string) (models.Block, error) {
	if len(record) != len(blockHeader) {
		return models.Block{}, fmt.Errorf("expected %d columns, got %d", len(blockHeader), len(record))
	}

	day, err := time.ParseInLocation(dayFormat, record[0], time.Local)
	if err != nil {
		return models.Block{}, fmt.Errorf("invalid date %q: %w", record[0], err)
	}

	start, err := clockOn(day, record[1])
	if err != nil {
		return models.Block{}, fmt.Errorf("invalid start_time %q: %w", record[1], err)
	}
	end, err := clockOn(day, record[2])
	if err != nil {
		return models.Block{}, fmt.Errorf("invalid end_time %q: %w", record[2], err)
	}
	if !end.After(start) {
		return models.Block{}, fmt.Errorf("end_time %q is not after start_time %q", record[2], record[1])
	}

	taskName := record[3]
	if taskName == "" {
		return models.Block{}, fmt.Errorf("missing task reference")
	}

	completed, err := strconv.ParseBool(record[6])
	if err != nil {
		return models.Block{}, fmt.Errorf("invalid completed %q: %w", record[6], err)
	}

	return models.Block{
		Date:      day,
		Start:     start,
		End:       end,
		TaskName:  taskName,
		BlockType: record[4],
		Notes:     record[5],
		Completed: completed,
	}, nil
}

// clockOn anchors a wall-clock time like "14:30" on the given day
func clockOn(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(clockFormat, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}
