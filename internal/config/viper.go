package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/tally/internal/osutil"
)

const (
	keyUser              = "session.user"
	keyDefaultRate       = "session.default_rate"
	keyHeartbeat         = "session.heartbeat"
	keyStaleAfter        = "session.stale_after"
	keyMaxDuration       = "validation.max_duration"
	keyMaxHourlyRate     = "validation.max_hourly_rate"
	keyFutureTolerance   = "validation.future_tolerance"
	keyDurationTolerance = "validation.duration_tolerance"
	keyStoreDriver       = "store.driver"
	keySQLitePath        = "store.sqlite_path"
	keySessionCmd        = "settings.cmd"
	keyTwentyFourHour    = "settings.24hr_clock"
	keyDarkTheme         = "settings.dark_theme"
	keyNotifications     = "notifications.enabled"
	keyLogLevel          = "log.level"
)

// WithViperConfig returns an Option that loads configuration from the file
// at configPath, writing one with the defaults if it does not exist yet.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setDefaults(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		err = os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission)
		if err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setDefaults registers the default of every key. Values already set on c,
// such as answers to the first-run prompt, take precedence.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(keyUser, "me")
	v.SetDefault(keyDefaultRate, 0.0)
	v.SetDefault(keyHeartbeat, "10s")
	v.SetDefault(keyStaleAfter, "24h")
	v.SetDefault(keyMaxDuration, "12h")
	v.SetDefault(keyMaxHourlyRate, 1000.0)
	v.SetDefault(keyFutureTolerance, "5m")
	v.SetDefault(keyDurationTolerance, "60s")
	v.SetDefault(keyStoreDriver, DriverBolt)
	v.SetDefault(keySQLitePath, "")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, false)
	v.SetDefault(keyNotifications, true)
	v.SetDefault(keyLogLevel, "info")

	if c.Session.DefaultRate > 0 {
		v.SetDefault(keyDefaultRate, c.Session.DefaultRate)
	}

	if c.Store.Driver != "" {
		v.SetDefault(keyStoreDriver, c.Store.Driver)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	cli := c.CLI

	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.CLI = cli

	return nil
}
