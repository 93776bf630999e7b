// Package ui holds the terminal palette and table rendering shared by the
// command output.
package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// DarkTheme switches to the light variants of each colour.
var DarkTheme bool

type palette struct {
	light, dark func(a ...any) string
}

func (p palette) paint(a any) string {
	if DarkTheme {
		return p.dark(a)
	}

	return p.light(a)
}

var (
	positive  = palette{pterm.Green, pterm.LightGreen}
	paused    = palette{pterm.Magenta, pterm.LightMagenta}
	heading   = palette{pterm.Blue, pterm.LightBlue}
	alert     = palette{pterm.Red, pterm.LightRed}
	emphasis  = palette{pterm.Black, pterm.LightWhite}
	secondary = palette{pterm.Cyan, pterm.LightCyan}
)

// Positive marks running sessions, time logged and money earned.
func Positive(a any) string { return positive.paint(a) }

// Paused marks a paused session.
func Paused(a any) string { return paused.paint(a) }

// Heading marks section titles.
func Heading(a any) string { return heading.paint(a) }

// Alert marks values that need attention.
func Alert(a any) string { return alert.paint(a) }

// Emphasis marks the live clock.
func Emphasis(a any) string { return emphasis.paint(a) }

// Secondary marks supporting details such as ids.
func Secondary(a any) string { return secondary.paint(a) }

// Table renders header and rows as a boxed table.
func Table(w io.Writer, header []string, rows [][]string) error {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err = fmt.Fprintln(w, str)

	return err
}
