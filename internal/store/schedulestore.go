package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"tempo/internal/logging"
	"tempo/internal/models"
)

// ScheduleStore holds the planned schedule blocks and persists them to
// schedule_blocks.csv with a full atomic rewrite on each mutation, like
// the task store.
type ScheduleStore struct {
	path    string
	blocks  []models.Block
	skipped int
}

// OpenScheduleStore loads the schedule from path, creating an empty
// file with the header row if it doesn't exist yet
func OpenScheduleStore(path string) (*ScheduleStore, error) {
	s := &ScheduleStore{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("failed to initialize schedule store: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule store: %w", err)
	}
	defer f.Close()

	if err := s.load(f); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ScheduleStore) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row validation happens in decodeBlock
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read schedule store: %w", err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		block, err := decodeBlock(row)
		if err != nil {
			s.skipped++
			logging.Logger.Warn("skipping corrupt schedule row", "row", i+1, "error", err)
			continue
		}
		s.blocks = append(s.blocks, block)
	}
	return nil
}

// Add plans a block for taskName on day between the start and end
// clock times ("15:04"). A block overlapping an existing one on the
// same day is rejected with ErrScheduleConflict.
func (s *ScheduleStore) Add(day time.Time, start, end, taskName, blockType, notes string) (models.Block, error) {
	taskName = strings.TrimSpace(taskName)
	if taskName == "" {
		return models.Block{}, ErrEmptyTaskName
	}
	if blockType == "" {
		blockType = "work"
	}

	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	startAt, err := clockOn(date, start)
	if err != nil {
		return models.Block{}, fmt.Errorf("invalid start time %q: use HH:MM", start)
	}
	endAt, err := clockOn(date, end)
	if err != nil {
		return models.Block{}, fmt.Errorf("invalid end time %q: use HH:MM", end)
	}
	if !endAt.After(startAt) {
		return models.Block{}, fmt.Errorf("end time %s is not after start time %s", end, start)
	}

	block := models.Block{
		Date:      date,
		Start:     startAt,
		End:       endAt,
		TaskName:  taskName,
		BlockType: blockType,
		Notes:     strings.TrimSpace(notes),
	}
	for _, existing := range s.blocks {
		if sameDay(existing.Date, date) && block.Overlaps(existing) {
			return models.Block{}, fmt.Errorf("%w: %s %s-%s (%s)", ErrScheduleConflict,
				existing.Date.Format(dayFormat),
				existing.Start.Format(clockFormat),
				existing.End.Format(clockFormat),
				existing.TaskName)
		}
	}

	s.blocks = append(s.blocks, block)
	if err := s.save(); err != nil {
		s.blocks = s.blocks[:len(s.blocks)-1]
		return models.Block{}, err
	}

	logging.Logger.Info("schedule block added",
		"task", block.TaskName, "date", block.Date.Format(dayFormat), "start", start)
	return block, nil
}

// List returns blocks sorted by date and start time. A zero day
// returns every block; otherwise only that day's blocks.
func (s *ScheduleStore) List(day time.Time) []models.Block {
	var out []models.Block
	for _, b := range s.blocks {
		if day.IsZero() || sameDay(b.Date, day) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Complete marks the block identified by day, start clock time, and
// task name as completed and persists
func (s *ScheduleStore) Complete(day time.Time, start, taskName string) error {
	i, err := s.find(day, start, taskName)
	if err != nil {
		return err
	}

	was := s.blocks[i].Completed
	s.blocks[i].Completed = true
	if err := s.save(); err != nil {
		s.blocks[i].Completed = was
		return err
	}
	return nil
}

// Remove deletes the block identified by day, start clock time, and
// task name and persists
func (s *ScheduleStore) Remove(day time.Time, start, taskName string) error {
	i, err := s.find(day, start, taskName)
	if err != nil {
		return err
	}

	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	return s.save()
}

// Skipped returns how many corrupt rows were dropped at load time
func (s *ScheduleStore) Skipped() int {
	return s.skipped
}

func (s *ScheduleStore) find(day time.Time, start, taskName string) (int, error) {
	for i, b := range s.blocks {
		if sameDay(b.Date, day) && b.Start.Format(clockFormat) == start && b.TaskName == taskName {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s %s %q: %w", day.Format(dayFormat), start, taskName, ErrBlockNotFound)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// save rewrites the whole file with an atomic replace
func (s *ScheduleStore) save() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(blockHeader); err != nil {
		return fmt.Errorf("failed to encode schedule store: %w", err)
	}
	for _, b := range s.blocks {
		if err := w.Write(encodeBlock(b)); err != nil {
			return fmt.Errorf("failed to encode schedule store: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode schedule store: %w", err)
	}

	return WriteFileAtomic(s.path, buf.Bytes())
}
