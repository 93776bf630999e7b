package app

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

const (
	categoryTimer    = "Running session"
	categorySessions = "Saved sessions"
	categoryConfig   = "Configuration"
)

func section(title, body string) string {
	return fmt.Sprintf("%s\n%s\n\n", pterm.Yellow(title), body)
}

// helpText is the root help template. Commands are listed per category so
// the timer commands read separately from the ones that edit history.
func helpText() string {
	commands := fmt.Sprintf(
		"{{range .VisibleCategories}}{{if .Name}}\t%s\n{{end}}"+
			"{{range .VisibleCommands}}\t   %s{{ `\t` }}{{.Usage}}\n{{end}}\n{{end}}",
		pterm.Cyan("{{.Name}}"),
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"{{range .VisibleFlags}}\t\t%s\n\t\t\t\t{{.Usage}}\n{{end}}",
		pterm.Green("--{{.Name}}"),
	)

	var b strings.Builder

	b.WriteString(section("NAME", "\t\t{{.Name}} {{if .Version}}{{.Version}}{{end}}"))
	b.WriteString(section("DESCRIPTION", "\t\t{{.Usage}}"))
	b.WriteString(section("USAGE", "\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}"))
	b.WriteString(section("COMMANDS", commands))
	b.WriteString(section("GLOBAL OPTIONS", options))
	b.WriteString(section("EXAMPLES", examplesHelp()))
	b.WriteString(section("ENVIRONMENTAL VARIABLES", envHelp()))

	return b.String()
}

func examplesHelp() string {
	return `		tally start --task invoice-42 --rate 80 --watch
		tally stop
		tally add --start "yesterday 14:00" --duration 90 --notes "client call"
		tally edit 3f2a91c0 --notes "reviewed the draft"
		tally report --period 30days`
}

func envHelp() string {
	return `		TALLY_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.
		TALLY_ENV: keep a separate config, database and log file for the named environment (e.g. dev).`
}
