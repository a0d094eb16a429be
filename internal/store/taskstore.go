package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tempo/internal/logging"
	"tempo/internal/models"
)

// TaskStore holds every task in insertion order and persists the full
// collection to tasks.csv on each mutation. The file is small personal
// data, so a full atomic rewrite is cheaper than being clever.
type TaskStore struct {
	path    string
	tasks   []*models.Task
	index   map[string]*models.Task
	skipped int
	now     func() time.Time
}

// OpenTaskStore loads the task store from path, creating an empty file
// with the header row if it doesn't exist yet
func OpenTaskStore(path string) (*TaskStore, error) {
	s := &TaskStore{
		path:  path,
		index: make(map[string]*models.Task),
		now:   time.Now,
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("failed to initialize task store: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}
	defer f.Close()

	if err := s.load(f); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TaskStore) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row validation happens in decodeTask

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read task store: %w", err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		task, err := decodeTask(row)
		if err != nil {
			s.skipped++
			logging.Logger.Warn("skipping corrupt task row", "row", i+1, "error", err)
			continue
		}
		if _, exists := s.index[task.Name]; exists {
			s.skipped++
			logging.Logger.Warn("skipping duplicate task row", "row", i+1, "task", task.Name)
			continue
		}
		t := task
		s.tasks = append(s.tasks, &t)
		s.index[t.Name] = &t
	}
	return nil
}

// Upsert returns the task named name, creating it with a zero total if
// it doesn't exist yet. Creation persists immediately.
func (s *TaskStore) Upsert(name string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTaskName
	}

	if task, ok := s.index[name]; ok {
		return task, nil
	}

	task := &models.Task{
		Name: name,
		// Truncate so the timestamp survives the CSV round trip intact
		CreatedAt: s.now().Truncate(time.Second),
	}
	s.tasks = append(s.tasks, task)
	s.index[name] = task

	if err := s.save(); err != nil {
		// Roll back the in-memory insert so state matches the file
		s.tasks = s.tasks[:len(s.tasks)-1]
		delete(s.index, name)
		return nil, err
	}
	return task, nil
}

// AddTime increments the task's tracked total by seconds and persists
func (s *TaskStore) AddTime(name string, seconds float64) error {
	task, ok := s.index[name]
	if !ok {
		return fmt.Errorf("task %q: %w", name, ErrTaskNotFound)
	}

	task.TotalTrackedSeconds += seconds
	if err := s.save(); err != nil {
		task.TotalTrackedSeconds -= seconds
		return err
	}
	return nil
}

// Get returns the task named name, or ErrTaskNotFound
func (s *TaskStore) Get(name string) (*models.Task, error) {
	task, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", name, ErrTaskNotFound)
	}
	return task, nil
}

// List returns all tasks in insertion order
func (s *TaskStore) List() []models.Task {
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

// Remove deletes a task from the store and persists. The caller is
// responsible for removing the task's sessions from the session log.
func (s *TaskStore) Remove(name string) error {
	if _, ok := s.index[name]; !ok {
		return fmt.Errorf("task %q: %w", name, ErrTaskNotFound)
	}

	for i, t := range s.tasks {
		if t.Name == name {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	delete(s.index, name)

	return s.save()
}

// Skipped returns how many corrupt rows were dropped at load time
func (s *TaskStore) Skipped() int {
	return s.skipped
}

// save rewrites the whole file with an atomic replace
func (s *TaskStore) save() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(taskHeader); err != nil {
		return fmt.Errorf("failed to encode task store: %w", err)
	}
	for _, t := range s.tasks {
		if err := w.Write(encodeTask(*t)); err != nil {
			return fmt.Errorf("failed to encode task store: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode task store: %w", err)
	}

	return WriteFileAtomic(s.path, buf.Bytes())
}
