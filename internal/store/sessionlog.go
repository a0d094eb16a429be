package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"tempo/internal/logging"
	"tempo/internal/models"
)

// SessionLog is the append-only record of sealed tracking sessions
// backed by sessions.csv. It keeps no cursor or cache: every query
// re-reads the file.
type SessionLog struct {
	path string
}

// QueryOptions filters a session log query. Zero values mean no filter.
type QueryOptions struct {
	TaskName string
	From     time.Time // inclusive, on session start time
	To       time.Time // inclusive, on session start time
}

// OpenSessionLog opens the session log at path, creating an empty file
// with the header row if it doesn't exist yet
func OpenSessionLog(path string) (*SessionLog, error) {
	l := &SessionLog{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(sessionHeader); err != nil {
			return nil, fmt.Errorf("failed to encode session log header: %w", err)
		}
		w.Flush()
		if err := WriteFileAtomic(path, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to initialize session log: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat session log: %w", err)
	}

	return l, nil
}

// Append writes one sealed session to the end of the log and flushes.
// Unsealed sessions are rejected: the log never stores an open interval.
func (l *SessionLog) Append(s models.Session) error {
	if !s.Sealed() {
		return fmt.Errorf("session for task %q: %w", s.TaskName, ErrSessionNotSealed)
	}
	if s.DurationSeconds < 0 {
		return fmt.Errorf("session for task %q has negative duration", s.TaskName)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(encodeSession(s)); err != nil {
		return fmt.Errorf("failed to append session: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to append session: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to flush session log: %w", err)
	}
	return nil
}

// Query returns the sealed sessions matching opts in file order, along
// with the number of corrupt rows that were skipped. Corrupt historical
// rows never block new tracking, so they are counted rather than
// surfaced as an error.
func (l *SessionLog) Query(opts QueryOptions) ([]models.Session, int, error) {
	rows, err := l.readAll()
	if err != nil {
		return nil, 0, err
	}

	var sessions []models.Session
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		s, err := decodeSession(row)
		if err != nil {
			skipped++
			logging.Logger.Warn("skipping corrupt session row", "row", i+1, "error", err)
			continue
		}
		if opts.TaskName != "" && s.TaskName != opts.TaskName {
			continue
		}
		if !opts.From.IsZero() && s.StartTime.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && s.StartTime.After(opts.To) {
			continue
		}
		sessions = append(sessions, s)
	}

	return sessions, skipped, nil
}

// RemoveTask rewrites the log without any rows belonging to name,
// returning the number of sessions removed. Corrupt rows are dropped in
// the same pass. Used when a task is deleted.
func (l *SessionLog) RemoveTask(name string) (int, error) {
	rows, err := l.readAll()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(sessionHeader); err != nil {
		return 0, fmt.Errorf("failed to encode session log: %w", err)
	}

	removed := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		s, err := decodeSession(row)
		if err != nil {
			continue
		}
		if s.TaskName == name {
			removed++
			continue
		}
		if err := w.Write(encodeSession(s)); err != nil {
			return 0, fmt.Errorf("failed to encode session log: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to encode session log: %w", err)
	}

	if err := WriteFileAtomic(l.path, buf.Bytes()); err != nil {
		return 0, err
	}
	return removed, nil
}

func (l *SessionLog) readAll() ([][]string, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return [][]string{sessionHeader}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // row validation happens in decodeSession
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read session log: %w", err)
	}
	return rows, nil
}
