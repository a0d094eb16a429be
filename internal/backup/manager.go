package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tempo/internal/logging"
	"tempo/internal/store"
)

// ErrBackupNotFound is returned when restoring a backup id that doesn't exist
var ErrBackupNotFound = errors.New("backup not found")

// Backup directory names double as backup ids
const idFormat = "20060102_150405"

// lastBackupFile records when the last backup ran, as RFC 3339
const lastBackupFile = "last_backup"

// backupFiles are the store files included in every snapshot
var backupFiles = []string{"tasks.csv", "sessions.csv", "schedule_blocks.csv"}

// Manager snapshots the store files into timestamped directories
// under <dataDir>/backups and restores from them. It runs no timer of
// its own: MaybeBackup is called opportunistically from the command
// entry path.
type Manager struct {
	dataDir   string
	backupDir string
	frequency time.Duration
	retention int
}

// Info describes one existing backup
type Info struct {
	ID   string
	Time time.Time
}

// NewManager builds a manager over dataDir. Backups are due every
// frequency; at most retention backups are kept, oldest pruned first.
func NewManager(dataDir string, frequency time.Duration, retention int) *Manager {
	return &Manager{
		dataDir:   dataDir,
		backupDir: store.BackupsPath(dataDir),
		frequency: frequency,
		retention: retention,
	}
}

// MaybeBackup takes a backup if one is due at now, comparing against the
// persisted last-backup time. Returns whether a backup was taken.
func (m *Manager) MaybeBackup(now time.Time) (bool, error) {
	last, ok := m.lastBackup()
	if ok && now.Sub(last) < m.frequency {
		return false, nil
	}

	if _, err := m.Backup(now); err != nil {
		return false, err
	}
	return true, nil
}

// Backup copies the store files into a new timestamped directory,
// records the backup time, and prunes old backups. Returns the new
// backup id.
func (m *Manager) Backup(now time.Time) (string, error) {
	id := now.Format(idFormat)
	dir := filepath.Join(m.backupDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, name := range backupFiles {
		src := filepath.Join(m.dataDir, name)
		data, err := os.ReadFile(src)
		if os.IsNotExist(err) {
			continue // nothing tracked yet
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", name, err)
		}
	}

	stamp := []byte(now.Format(time.RFC3339))
	if err := store.WriteFileAtomic(filepath.Join(m.backupDir, lastBackupFile), stamp); err != nil {
		return "", err
	}

	if err := m.prune(); err != nil {
		// A failed prune shouldn't fail the backup that just succeeded
		logging.Logger.Warn("backup pruning failed", "error", err)
	}

	logging.Logger.Info("backup created", "id", id)
	return id, nil
}

// List returns existing backups, newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, err := time.ParseInLocation(idFormat, entry.Name(), time.Local)
		if err != nil {
			continue // not a backup directory
		}
		backups = append(backups, Info{ID: entry.Name(), Time: t})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Time.After(backups[j].Time)
	})
	return backups, nil
}

// Restore copies the files of backup id back over the live store files
// with atomic replaces. The caller must reload in-memory state
// afterward; the manager does not refresh other components.
func (m *Manager) Restore(id string) error {
	dir := filepath.Join(m.backupDir, id)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("backup %q: %w", id, ErrBackupNotFound)
	}

	for _, name := range backupFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue // file wasn't present when the backup was taken
		}
		if err != nil {
			return fmt.Errorf("failed to read backup of %s: %w", name, err)
		}
		if err := store.WriteFileAtomic(filepath.Join(m.dataDir, name), data); err != nil {
			return err
		}
	}

	logging.Logger.Info("backup restored", "id", id)
	return nil
}

// lastBackup reads the persisted last-backup time; ok is false when no
// backup has been taken yet or the stamp file is unreadable
func (m *Manager) lastBackup() (time.Time, bool) {
	data, err := os.ReadFile(filepath.Join(m.backupDir, lastBackupFile))
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// prune removes the oldest backups beyond the retention count
func (m *Manager) prune() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= m.retention {
		return nil
	}

	for _, b := range backups[m.retention:] {
		if err := os.RemoveAll(filepath.Join(m.backupDir, b.ID)); err != nil {
			return fmt.Errorf("failed to prune backup %s: %w", b.ID, err)
		}
		logging.Logger.Info("backup pruned", "id", b.ID)
	}
	return nil
}
