package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Logger is the process-wide logger. It defaults to discarding output so
// packages can log before Initialize runs (and so tests stay quiet).
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize points the logger at a per-run log file under dataDir.
// When debug is false all output is discarded. TEMPO_DEBUG=1 forces
// debug on, matching the CLI flag.
func Initialize(debug bool, dataDir string, maxLogFiles int) error {
	if os.Getenv("TEMPO_DEBUG") == "1" {
		debug = true
	}
	if !debug {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if maxLogFiles > 0 {
		if err := rotateLogs(logDir, maxLogFiles); err != nil {
			// Rotation failure shouldn't prevent logging
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}

	logPath := filepath.Join(logDir, uuid.New().String()+".log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	Logger.Info("debug logging initialized", "log_file", logPath)
	return nil
}

// rotateLogs deletes the oldest log files so at most maxLogFiles remain
// after the new one is created
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{
			path:    filepath.Join(logDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(files) < maxLogFiles {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	numToDelete := len(files) - maxLogFiles + 1
	for i := 0; i < numToDelete && i < len(files); i++ {
		if err := os.Remove(files[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", files[i].path, err)
		}
	}
	return nil
}
