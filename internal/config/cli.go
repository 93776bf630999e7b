package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Start     string
	End       string
	Duration  string
	Task      string
	Notes     string
	Period    string
	Driver    string
	Rate      float64
	RateSet   bool
	TaskSet   bool
	NotesSet  bool
	AssumeYes bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Relative times such as "2 hours ago" are resolved against now.
func WithCLIConfig(ctx *cli.Context, now time.Time) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Start:     ctx.String("start"),
			End:       ctx.String("end"),
			Duration:  ctx.String("duration"),
			Task:      ctx.String("task"),
			Notes:     ctx.String("notes"),
			Period:    ctx.String("period"),
			Driver:    ctx.String("driver"),
			Rate:      ctx.Float64("rate"),
			RateSet:   ctx.IsSet("rate"),
			TaskSet:   ctx.IsSet("task"),
			NotesSet:  ctx.IsSet("notes"),
			AssumeYes: ctx.Bool("yes"),
		}

		return applyCLIOptions(c, opts, now)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	var err error

	if opts.Start != "" {
		c.CLI.StartTime, err = timeutil.FromStr(opts.Start, now)
		if err != nil {
			return errInvalidCLITime.Fmt("start").Wrap(err)
		}
	}

	if opts.End != "" {
		c.CLI.EndTime, err = timeutil.FromStr(opts.End, now)
		if err != nil {
			return errInvalidCLITime.Fmt("end").Wrap(err)
		}
	}

	if opts.Duration != "" {
		d, err := parseDuration(opts.Duration)
		if err != nil {
			return err
		}

		secs := int(d / time.Second)
		c.CLI.Duration = &secs
	}

	if opts.RateSet {
		rate := opts.Rate
		c.CLI.HourlyRate = &rate
	}

	if opts.TaskSet {
		task := strings.TrimSpace(opts.Task)
		c.CLI.TaskID = &task
	}

	if opts.NotesSet {
		notes := opts.Notes
		c.CLI.Notes = &notes
	}

	if opts.Period != "" {
		p := timeutil.Period(opts.Period)
		if _, ok := timeutil.Range[p]; !ok {
			return errUnknownPeriod.Fmt(opts.Period)
		}

		c.CLI.Period = p
	}

	if opts.Driver != "" {
		c.Store.Driver = opts.Driver
	}

	c.CLI.AssumeYes = opts.AssumeYes

	return nil
}

// parseDuration accepts Go duration strings and treats a bare number as
// minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, errInvalidCLIDuration.Fmt(s)
	}

	return mins, nil
}
