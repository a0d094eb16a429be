package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tempo/internal/config"
	"tempo/internal/models"
	"tempo/internal/store"
)

// Archive is the single-file JSON export of all tempo data. Import
// reads it back after validation, so the whole dataset can move
// between machines in one file.
type Archive struct {
	ExportedAt time.Time        `json:"exported_at"`
	Version    string           `json:"version"`
	Tasks      []models.Task    `json:"tasks"`
	Sessions   []models.Session `json:"sessions"`
	Blocks     []models.Block   `json:"schedule_blocks"`
	Settings   config.Config    `json:"settings"`
}

// WriteArchive writes the archive to path as indented JSON with an
// atomic replace
func WriteArchive(path string, a Archive) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	return store.WriteFileAtomic(path, append(data, '\n'))
}

// ReadArchive reads an archive from path and validates every record,
// so a bad file is rejected before it touches the live stores
func ReadArchive(path string) (Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to read archive: %w", err)
	}

	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return Archive{}, fmt.Errorf("invalid archive: %w", err)
	}
	if err := a.validate(); err != nil {
		return Archive{}, fmt.Errorf("invalid archive: %w", err)
	}
	return a, nil
}

func (a Archive) validate() error {
	for i, t := range a.Tasks {
		if t.Name == "" {
			return fmt.Errorf("task %d: missing name", i)
		}
		if t.TotalTrackedSeconds < 0 {
			return fmt.Errorf("task %q: negative tracked total", t.Name)
		}
	}
	for i, s := range a.Sessions {
		if s.TaskName == "" {
			return fmt.Errorf("session %d: missing task reference", i)
		}
		if !s.Sealed() {
			return fmt.Errorf("session %d: not sealed", i)
		}
		if s.DurationSeconds < 0 {
			return fmt.Errorf("session %d: negative duration", i)
		}
	}
	for i, b := range a.Blocks {
		if b.TaskName == "" {
			return fmt.Errorf("schedule block %d: missing task reference", i)
		}
		if !b.End.After(b.Start) {
			return fmt.Errorf("schedule block %d: end is not after start", i)
		}
	}
	return a.Settings.Validate()
}

// exportFiles are the plain files copied by a CSV-format export
var exportFiles = []string{"tasks.csv", "sessions.csv", "schedule_blocks.csv", "settings.yaml"}

// WriteCSVDir copies the live data files byte for byte into dir,
// creating it if needed. Files that don't exist yet are skipped.
func WriteCSVDir(dir, dataDir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, name := range exportFiles {
		data, err := os.ReadFile(filepath.Join(dataDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
	}
	return nil
}
