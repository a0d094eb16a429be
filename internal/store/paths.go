package store

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory holding all tempo data files.
// TEMPO_DIR overrides the default ~/.tempo location.
func DataDir() (string, error) {
	if dir := os.Getenv("TEMPO_DIR"); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tempo"), nil
}

// EnsureDataDir returns the data directory, creating it if needed
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// TasksPath returns the path of the task store file inside dir
func TasksPath(dir string) string {
	return filepath.Join(dir, "tasks.csv")
}

// SessionsPath returns the path of the session log file inside dir
func SessionsPath(dir string) string {
	return filepath.Join(dir, "sessions.csv")
}

// SchedulePath returns the path of the schedule block file inside dir
func SchedulePath(dir string) string {
	return filepath.Join(dir, "schedule_blocks.csv")
}

// SettingsPath returns the path of the settings file inside dir
func SettingsPath(dir string) string {
	return filepath.Join(dir, "settings.yaml")
}

// StatePath returns the path of the tracking state file inside dir
func StatePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// BackupsPath returns the backup directory inside dir
func BackupsPath(dir string) string {
	return filepath.Join(dir, "backups")
}
