package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tally app instance.
func Get() *cli.App {
	tallyApp := &cli.App{
		Name: "tally",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		tally tracks focused work sessions and the revenue they earn. A running
		session survives restarts, and every session is checked for overlaps,
		forgotten stops and odd rates before it is saved.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:     "start",
				Category: categoryTimer,
				Usage:    "Start a new session",
				Flags:    []cli.Flag{startFlag, taskFlag, rateFlag, notesFlag, watchFlag, yesFlag},
				Action:   withEnv(startAction),
			},
			{
				Name:     "pause",
				Category: categoryTimer,
				Usage:    "Pause the running session",
				Action:   withEnv(pauseAction),
			},
			{
				Name:     "resume",
				Category: categoryTimer,
				Usage:    "Resume a paused session",
				Action:   withEnv(resumeAction),
			},
			{
				Name:     "stop",
				Category: categoryTimer,
				Usage:    "Stop the running session and save it",
				Flags:    []cli.Flag{yesFlag},
				Action:   withEnv(stopAction),
			},
			{
				Name:     "status",
				Category: categoryTimer,
				Usage:    "Print the status of the running session",
				Flags:    []cli.Flag{jsonFlag},
				Action:   withEnv(statusAction),
			},
			{
				Name:      "notes",
				Category:  categoryTimer,
				Usage:     "Replace the notes of the running session",
				ArgsUsage: "<text>",
				Action:    withEnv(notesAction),
			},
			{
				Name:     "discard",
				Category: categoryTimer,
				Usage:    "Throw the running session away without saving it",
				Flags:    []cli.Flag{yesFlag},
				Action:   withEnv(discardAction),
			},
			{
				Name:     "watch",
				Category: categoryTimer,
				Usage:    "Show a live timer for the running session",
				Flags:    []cli.Flag{yesFlag},
				Action:   withEnv(watchAction),
			},
			{
				Name:     "add",
				Category: categorySessions,
				Usage:    "Record a session that was not timed with tally",
				Flags: []cli.Flag{
					startFlag,
					endFlag,
					durationFlag,
					taskFlag,
					rateFlag,
					notesFlag,
					yesFlag,
				},
				Action: withEnv(addAction),
			},
			{
				Name:      "edit",
				Category:  categorySessions,
				Usage:     "Correct a saved session",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					startFlag,
					endFlag,
					durationFlag,
					taskFlag,
					rateFlag,
					notesFlag,
					yesFlag,
				},
				Action: withEnv(editAction),
			},
			{
				Name:     "list",
				Category: categorySessions,
				Usage:    "List the sessions in a time period. Defaults to 7 days",
				Flags:    []cli.Flag{periodFlag, jsonFlag},
				Action:   withEnv(listAction),
			},
			{
				Name:      "delete",
				Category:  categorySessions,
				Usage:     "Delete saved sessions",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{yesFlag},
				Action:    withEnv(deleteAction),
			},
			{
				Name:     "report",
				Category: categorySessions,
				Usage:    "Summarise time and revenue by task and by day. Defaults to 7 days",
				Flags:    []cli.Flag{periodFlag, jsonFlag},
				Action:   withEnv(reportAction),
			},
			{
				Name:     "edit-config",
				Category: categoryConfig,
				Usage:    "Edit the configuration file",
				Action:   editConfigAction,
			},
		},
		Flags: []cli.Flag{
			driverFlag,
			noColorFlag,
		},
		Before: beforeAction,
	}

	return tallyApp
}
