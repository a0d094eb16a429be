package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/backup"
	"tempo/internal/config"
	"tempo/internal/logging"
	"tempo/internal/store"
	"tempo/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "A personal task time tracker",
	Long: `tempo tracks the time you spend on named tasks.
Start and stop sessions, run a pomodoro timer, review your stats, and
keep your data in plain CSV files with automatic backups.`,
}

// App wires the stores, controller, settings, and backup manager for
// one command invocation
type App struct {
	DataDir  string
	Config   config.Config
	Tasks    *store.TaskStore
	Sessions *store.SessionLog
	Schedule *store.ScheduleStore
	Tracker  *tracker.Controller
	Backups  *backup.Manager
}

// openApp opens every component against the data directory and runs the
// opportunistic backup check. Each CLI invocation counts as one
// presentation-layer tick.
func openApp() (*App, error) {
	dataDir, err := store.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	if err := logging.Initialize(debugFlag, dataDir, 20); err != nil {
		return nil, err
	}

	cfg, err := config.Load(store.SettingsPath(dataDir))
	if err != nil {
		return nil, err
	}

	tasks, err := store.OpenTaskStore(store.TasksPath(dataDir))
	if err != nil {
		return nil, err
	}
	sessions, err := store.OpenSessionLog(store.SessionsPath(dataDir))
	if err != nil {
		return nil, err
	}
	schedule, err := store.OpenScheduleStore(store.SchedulePath(dataDir))
	if err != nil {
		return nil, err
	}
	ctrl, err := tracker.NewPersistentController(tasks, sessions, store.StatePath(dataDir))
	if err != nil {
		return nil, err
	}

	app := &App{
		DataDir:  dataDir,
		Config:   cfg,
		Tasks:    tasks,
		Sessions: sessions,
		Schedule: schedule,
		Tracker:  ctrl,
		Backups: backup.NewManager(dataDir,
			time.Duration(cfg.Backup.FrequencyHours)*time.Hour,
			cfg.Backup.Retention),
	}

	if cfg.Backup.Enabled {
		if _, err := app.Backups.MaybeBackup(time.Now()); err != nil {
			// A failed scheduled backup never blocks the user's command
			logging.Logger.Warn("scheduled backup failed", "error", err)
		}
	}

	return app, nil
}

// withApp wraps a command function so it runs against an opened App
func withApp(fn func(*App, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		app, err := openApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(app, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tempo %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to the data directory")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pomodoroCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
