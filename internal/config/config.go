// Package config loads tally's settings from the config file and the command
// line.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/tally/internal/timeutil"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Session       SessionConfig      `mapstructure:"session"`
		Validation    ValidationConfig   `mapstructure:"validation"`
		Store         StoreConfig        `mapstructure:"store"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// SessionConfig holds settings for running sessions.
	SessionConfig struct {
		User        string        `mapstructure:"user"`
		DefaultRate float64       `mapstructure:"default_rate"`
		Heartbeat   time.Duration `mapstructure:"heartbeat"`
		StaleAfter  time.Duration `mapstructure:"stale_after"`
	}

	// ValidationConfig holds the thresholds used when a session is saved.
	ValidationConfig struct {
		MaxDuration       time.Duration `mapstructure:"max_duration"`
		MaxHourlyRate     float64       `mapstructure:"max_hourly_rate"`
		FutureTolerance   time.Duration `mapstructure:"future_tolerance"`
		DurationTolerance time.Duration `mapstructure:"duration_tolerance"`
	}

	// StoreConfig selects the session store.
	StoreConfig struct {
		Driver     string `mapstructure:"driver"`
		SQLitePath string `mapstructure:"sqlite_path"`
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		Cmd            string `mapstructure:"cmd"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
		DarkTheme      bool   `mapstructure:"dark_theme"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// LogConfig holds logging settings.
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// CLIConfig holds the values supplied through command-line flags. Nil
	// pointers mean the flag was not set.
	CLIConfig struct {
		StartTime  time.Time
		EndTime    time.Time
		TaskID     *string
		HourlyRate *float64
		Duration   *int
		Notes      *string
		Period     timeutil.Period
		AssumeYes  bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}
