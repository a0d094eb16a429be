package store

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"tempo/internal/models"
)

// Bulk rewrites replace a whole store file at once with an atomic
// replace. Data import uses them after validating an archive; reopen
// the stores afterward to pick up the new contents.

// SaveTasks rewrites the task store file at path
func SaveTasks(path string, tasks []models.Task) error {
	records := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, encodeTask(t))
	}
	return writeCSV(path, taskHeader, records)
}

// SaveSessions rewrites the session log file at path
func SaveSessions(path string, sessions []models.Session) error {
	records := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		records = append(records, encodeSession(s))
	}
	return writeCSV(path, sessionHeader, records)
}

// SaveBlocks rewrites the schedule block file at path
func SaveBlocks(path string, blocks []models.Block) error {
	records := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, encodeBlock(b))
	}
	return writeCSV(path, blockHeader, records)
}

func writeCSV(path string, header []string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return WriteFileAtomic(path, buf.Bytes())
}
