package config

import (
	"log/slog"
	"strings"
	"time"
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateThresholds(); err != nil {
		return err
	}

	if c.Store.Driver != DriverBolt && c.Store.Driver != DriverSQLite {
		return errUnknownDriver.Fmt(c.Store.Driver, DriverBolt, DriverSQLite)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateSession() error {
	if strings.TrimSpace(c.Session.User) == "" {
		return errEmptyUser
	}

	if c.Session.DefaultRate < 0 {
		return errNegativeRate.Fmt(c.Session.DefaultRate)
	}

	if c.Session.Heartbeat <= 0 {
		return errInvalidThreshold.Fmt(keyHeartbeat, c.Session.Heartbeat)
	}

	if c.Session.StaleAfter <= 0 {
		return errInvalidThreshold.Fmt(keyStaleAfter, c.Session.StaleAfter)
	}

	return nil
}

func (c *Config) validateThresholds() error {
	durations := []struct {
		key string
		val time.Duration
	}{
		{keyMaxDuration, c.Validation.MaxDuration},
		{keyFutureTolerance, c.Validation.FutureTolerance},
		{keyDurationTolerance, c.Validation.DurationTolerance},
	}

	for _, d := range durations {
		if d.val <= 0 {
			return errInvalidThreshold.Fmt(d.key, d.val)
		}
	}

	if c.Validation.MaxHourlyRate <= 0 {
		return errInvalidThreshold.Fmt(keyMaxHourlyRate, c.Validation.MaxHourlyRate)
	}

	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, errUnknownLogLevel.Fmt(c.Log.Level)
	}

	return level, nil
}
