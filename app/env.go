package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/config"
	"github.com/ayoisaiah/tally/internal/logging"
	"github.com/ayoisaiah/tally/internal/pathutil"
	"github.com/ayoisaiah/tally/internal/static"
	"github.com/ayoisaiah/tally/internal/timeutil"
	"github.com/ayoisaiah/tally/internal/ui"
	"github.com/ayoisaiah/tally/report"
	"github.com/ayoisaiah/tally/store"
	"github.com/ayoisaiah/tally/store/sqlite"
	"github.com/ayoisaiah/tally/timer"
	"github.com/ayoisaiah/tally/tracker"
	"github.com/ayoisaiah/tally/validator"
)

// env holds everything an action needs. It is built once per command.
type env struct {
	cfg     *config.Config
	clock   timeutil.Clock
	bolt    *store.Client
	db      store.DB
	tr      *tracker.Tracker
	closers []io.Closer
	out     io.Writer
}

func loadConfig(ctx *cli.Context, clock timeutil.Clock) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	return config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx, clock.Now()),
	)
}

// openDB returns the session store selected by the config. The bbolt client
// is always opened because it holds the timer slot.
func openDB(cfg *config.Config, bolt *store.Client) (store.DB, error) {
	if cfg.Store.Driver != config.DriverSQLite {
		return bolt, nil
	}

	path := cfg.Store.SQLitePath
	if path == "" {
		path = pathutil.SQLiteFilePath()
	}

	return sqlite.New(path)
}

func newTracker(cfg *config.Config, bolt *store.Client, db store.DB, clock timeutil.Clock) *tracker.Tracker {
	return tracker.New(
		timer.NewManager(bolt.Slot()),
		db,
		clock,
		tracker.Options{
			UserID:      cfg.Session.User,
			DefaultRate: cfg.Session.DefaultRate,
			StaleAfter:  cfg.Session.StaleAfter,
			Validation: validator.Options{
				FutureTolerance:   cfg.Validation.FutureTolerance,
				MaxDuration:       cfg.Validation.MaxDuration,
				MaxHourlyRate:     cfg.Validation.MaxHourlyRate,
				DurationTolerance: cfg.Validation.DurationTolerance,
			},
		},
	)
}

func setup(ctx *cli.Context) (*env, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	e := &env{
		clock: timeutil.SystemClock{},
		out:   config.Stdout,
	}

	cfg, err := loadConfig(ctx, e.clock)
	if err != nil {
		return nil, err
	}

	e.cfg = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	logCloser, err := logging.Setup(pathutil.LogFilePath(), level)
	if err != nil {
		return nil, err
	}

	e.closers = append(e.closers, logCloser)

	if err := static.Install(); err != nil {
		slog.WarnContext(ctx.Context, "unable to install sample hooks", slog.Any("error", err))
	}

	e.bolt, err = store.NewClient(pathutil.DBFilePath())
	if err != nil {
		e.Close()
		return nil, err
	}

	e.closers = append(e.closers, e.bolt)

	e.db, err = openDB(cfg, e.bolt)
	if err != nil {
		e.Close()
		return nil, err
	}

	if e.db != store.DB(e.bolt) {
		e.closers = append(e.closers, e.db)
	}

	e.tr = newTracker(cfg, e.bolt, e.db, e.clock)

	report.TwentyFourHour = cfg.Settings.TwentyFourHour
	ui.DarkTheme = cfg.Settings.DarkTheme

	slog.DebugContext(ctx.Context, "environment ready",
		slog.String("command", ctx.Command.Name),
		slog.String("driver", cfg.Store.Driver),
	)

	return e, nil
}

// Close releases the stores and the log file in reverse order of opening.
func (e *env) Close() error {
	var errs []error

	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}

	return errors.Join(errs...)
}

// withEnv adapts an action that needs an env to a cli.ActionFunc.
func withEnv(fn func(ctx *cli.Context, e *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := setup(ctx)
		if err != nil {
			return err
		}

		defer e.Close()

		return fn(ctx, e)
	}
}
