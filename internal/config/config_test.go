package config

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/testutil"
	"github.com/ayoisaiah/tally/internal/timeutil"
)

func defaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			User:       "me",
			Heartbeat:  10 * time.Second,
			StaleAfter: 24 * time.Hour,
		},
		Validation: ValidationConfig{
			MaxDuration:       12 * time.Hour,
			MaxHourlyRate:     1000,
			FutureTolerance:   5 * time.Minute,
			DurationTolerance: 60 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverBolt,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tally", "config.yml")

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)

	_, err = os.Stat(configPath)
	require.NoError(t, err)

	again, err := New(WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := testutil.CopyFile("testdata/modified_config.yml", configPath)
	require.NoError(t, err)

	want := defaultConfig()
	want.Session.User = "ayo"
	want.Session.DefaultRate = 45.5
	want.Session.Heartbeat = 30 * time.Second
	want.Validation.MaxDuration = 8 * time.Hour
	want.Store.Driver = DriverSQLite
	want.Store.SQLitePath = "/tmp/tally.sqlite"
	want.Settings.TwentyFourHour = true
	want.Settings.Cmd = "echo done"
	want.Settings.DarkTheme = true
	want.Log.Level = "debug"

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
}

func TestPromptAnswersBecomeDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(
		func(c *Config) error {
			return applyPromptOptions(c, PromptOptions{DefaultRate: "80", Driver: DriverSQLite})
		},
		WithViperConfig(configPath),
	)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, cfg.Session.DefaultRate, 0.001)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)

	cfg, err = New(WithViperConfig(configPath))
	require.NoError(t, err)
	assert.InDelta(t, 80.0, cfg.Session.DefaultRate, 0.001)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		Name   string
		Mutate func(c *Config)
		Err    error
	}{
		{
			Name:   "defaults are valid",
			Mutate: func(*Config) {},
		},
		{
			Name:   "unknown driver",
			Mutate: func(c *Config) { c.Store.Driver = "postgres" },
			Err:    errUnknownDriver,
		},
		{
			Name:   "zero heartbeat",
			Mutate: func(c *Config) { c.Session.Heartbeat = 0 },
			Err:    errInvalidThreshold,
		},
		{
			Name:   "negative max duration",
			Mutate: func(c *Config) { c.Validation.MaxDuration = -time.Hour },
			Err:    errInvalidThreshold,
		},
		{
			Name:   "zero max hourly rate",
			Mutate: func(c *Config) { c.Validation.MaxHourlyRate = 0 },
			Err:    errInvalidThreshold,
		},
		{
			Name:   "negative default rate",
			Mutate: func(c *Config) { c.Session.DefaultRate = -1 },
			Err:    errNegativeRate,
		},
		{
			Name:   "blank user",
			Mutate: func(c *Config) { c.Session.User = "  " },
			Err:    errEmptyUser,
		},
		{
			Name:   "bad log level",
			Mutate: func(c *Config) { c.Log.Level = "loud" },
			Err:    errUnknownLogLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c := defaultConfig()
			tc.Mutate(c)

			err := c.Validate()
			if tc.Err == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.Err)
		})
	}
}

func cliContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("test", flag.ContinueOnError)
	_ = f.String("start", "", "")
	_ = f.String("end", "", "")
	_ = f.String("duration", "", "")
	_ = f.String("task", "", "")
	_ = f.String("notes", "", "")
	_ = f.String("period", "", "")
	_ = f.String("driver", "", "")
	_ = f.Float64("rate", 0, "")
	_ = f.Bool("yes", false, "")

	for k, v := range flags {
		require.NoError(t, f.Set(k, v))
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestCLIConfig(t *testing.T) {
	now := testutil.Epoch

	testCases := []struct {
		Name  string
		Flags map[string]string
		Check func(t *testing.T, c *CLIConfig)
		Err   error
	}{
		{
			Name:  "nothing set",
			Flags: map[string]string{},
			Check: func(t *testing.T, c *CLIConfig) {
				assert.Nil(t, c.HourlyRate)
				assert.Nil(t, c.TaskID)
				assert.Nil(t, c.Notes)
				assert.True(t, c.StartTime.IsZero())
			},
		},
		{
			Name: "absolute times and explicit zero rate",
			Flags: map[string]string{
				"start": "2024-01-01T07:00:00Z",
				"end":   "2024-01-01T08:30:00Z",
				"rate":  "0",
				"task":  " task-3 ",
				"yes":   "true",
			},
			Check: func(t *testing.T, c *CLIConfig) {
				assert.True(t, c.StartTime.Equal(now.Add(-2*time.Hour)))
				assert.True(t, c.EndTime.Equal(now.Add(-30*time.Minute)))
				require.NotNil(t, c.HourlyRate)
				assert.Zero(t, *c.HourlyRate)
				assert.Equal(t, "task-3", *c.TaskID)
				assert.True(t, c.AssumeYes)
			},
		},
		{
			Name:  "relative start",
			Flags: map[string]string{"start": "2 hours ago"},
			Check: func(t *testing.T, c *CLIConfig) {
				assert.True(t, c.StartTime.Equal(now.Add(-2*time.Hour)))
			},
		},
		{
			Name:  "bare duration is minutes",
			Flags: map[string]string{"duration": "90"},
			Check: func(t *testing.T, c *CLIConfig) {
				assert.Equal(t, 5400, *c.Duration)
			},
		},
		{
			Name:  "period",
			Flags: map[string]string{"period": "7days"},
			Check: func(t *testing.T, c *CLIConfig) {
				assert.Equal(t, timeutil.Period7Days, c.Period)
			},
		},
		{
			Name:  "unknown period",
			Flags: map[string]string{"period": "fortnight"},
			Err:   errUnknownPeriod,
		},
		{
			Name:  "bad duration",
			Flags: map[string]string{"duration": "soon"},
			Err:   errInvalidCLIDuration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c := &Config{}

			err := WithCLIConfig(cliContext(t, tc.Flags), now)(c)
			if tc.Err != nil {
				assert.ErrorIs(t, err, tc.Err)
				return
			}

			require.NoError(t, err)
			tc.Check(t, &c.CLI)
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := defaultConfig()

	cfg.Log.Level = "debug"
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	cfg.Log.Level = "chatty"
	_, err = cfg.LogLevel()
	assert.True(t, errors.Is(err, errUnknownLogLevel))
}
