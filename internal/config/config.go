package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"tempo/internal/store"
)

// Config holds all user settings, loaded from settings.yaml in the data
// directory. Unknown files start from Default(); a partial file is
// merged over the defaults.
type Config struct {
	Pomodoro      PomodoroConfig     `yaml:"pomodoro" json:"pomodoro"`
	Backup        BackupConfig       `yaml:"backup" json:"backup"`
	Notifications NotificationConfig `yaml:"notifications" json:"notifications"`
}

// PomodoroConfig controls the pomodoro timer phases
type PomodoroConfig struct {
	WorkMinutes             int  `yaml:"work_minutes" json:"work_minutes"`
	BreakMinutes            int  `yaml:"break_minutes" json:"break_minutes"`
	LongBreakMinutes        int  `yaml:"long_break_minutes" json:"long_break_minutes"`
	SessionsBeforeLongBreak int  `yaml:"sessions_before_long_break" json:"sessions_before_long_break"`
	AutoStartBreaks         bool `yaml:"auto_start_breaks" json:"auto_start_breaks"`
}

// BackupConfig controls the opportunistic backup schedule
type BackupConfig struct {
	Enabled        bool `yaml:"enabled" json:"enabled"`
	FrequencyHours int  `yaml:"frequency_hours" json:"frequency_hours"`
	Retention      int  `yaml:"retention" json:"retention"`
}

// NotificationConfig toggles user-facing notifications
type NotificationConfig struct {
	Sound   bool `yaml:"sound" json:"sound"`
	Desktop bool `yaml:"desktop" json:"desktop"`
}

// Default returns the settings used when no file exists
func Default() Config {
	return Config{
		Pomodoro: PomodoroConfig{
			WorkMinutes:             25,
			BreakMinutes:            5,
			LongBreakMinutes:        15,
			SessionsBeforeLongBreak: 4,
			AutoStartBreaks:         true,
		},
		Backup: BackupConfig{
			Enabled:        true,
			FrequencyHours: 24,
			Retention:      10,
		},
		Notifications: NotificationConfig{
			Sound:   true,
			Desktop: true,
		},
	}
}

// Load reads settings from path, merging the file over the defaults.
// A missing file is not an error and returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("invalid settings file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the settings to path with an atomic replace
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return store.WriteFileAtomic(path, data)
}

// Validate rejects settings that would break timers or backups
func (c Config) Validate() error {
	if c.Pomodoro.WorkMinutes <= 0 {
		return fmt.Errorf("pomodoro.work_minutes must be positive")
	}
	if c.Pomodoro.BreakMinutes <= 0 {
		return fmt.Errorf("pomodoro.break_minutes must be positive")
	}
	if c.Pomodoro.LongBreakMinutes <= 0 {
		return fmt.Errorf("pomodoro.long_break_minutes must be positive")
	}
	if c.Pomodoro.SessionsBeforeLongBreak < 1 {
		return fmt.Errorf("pomodoro.sessions_before_long_break must be at least 1")
	}
	if c.Backup.FrequencyHours < 1 {
		return fmt.Errorf("backup.frequency_hours must be at least 1")
	}
	if c.Backup.Retention < 1 {
		return fmt.Errorf("backup.retention must be at least 1")
	}
	return nil
}

// Set updates one setting by its dotted key, e.g. "pomodoro.work_minutes"
func (c *Config) Set(key, value string) error {
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("setting %s requires a number, got %q", key, value)
		}
		return n, nil
	}
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("setting %s requires true or false, got %q", key, value)
		}
		return b, nil
	}

	var err error
	switch key {
	case "pomodoro.work_minutes":
		c.Pomodoro.WorkMinutes, err = parseInt()
	case "pomodoro.break_minutes":
		c.Pomodoro.BreakMinutes, err = parseInt()
	case "pomodoro.long_break_minutes":
		c.Pomodoro.LongBreakMinutes, err = parseInt()
	case "pomodoro.sessions_before_long_break":
		c.Pomodoro.SessionsBeforeLongBreak, err = parseInt()
	case "pomodoro.auto_start_breaks":
		c.Pomodoro.AutoStartBreaks, err = parseBool()
	case "backup.enabled":
		c.Backup.Enabled, err = parseBool()
	case "backup.frequency_hours":
		c.Backup.FrequencyHours, err = parseInt()
	case "backup.retention":
		c.Backup.Retention, err = parseInt()
	case "notifications.sound":
		c.Notifications.Sound, err = parseBool()
	case "notifications.desktop":
		c.Notifications.Desktop, err = parseBool()
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return err
	}
	return c.Validate()
}
