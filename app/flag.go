package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/config"
)

var (
	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"since"},
		Usage:   "Start time as a timestamp or in natural language (e.g. '20 mins ago')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "End time as a timestamp or in natural language (e.g. '5 mins ago')",
	}

	durationFlag = &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "Billable duration (e.g. 1h30m, or 90 for minutes). Defaults to the time between start and end",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Link the session to a task. Pass an empty value to unlink it",
	}

	rateFlag = &cli.Float64Flag{
		Name:    "rate",
		Aliases: []string{"r"},
		Usage:   "Hourly rate for the session. Defaults to session.default_rate",
	}

	notesFlag = &cli.StringFlag{
		Name:    "notes",
		Aliases: []string{"n"},
		Usage:   "Free-text notes for the session",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: all-time, today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Accept warnings and confirmations without prompting",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	watchFlag = &cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Show the live timer after starting",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Session store to use: " + config.DriverBolt + " or " + config.DriverSQLite,
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)
