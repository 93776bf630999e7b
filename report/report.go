// Package report renders sessions, proposals and statistics for the
// terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/ui"
	"github.com/ayoisaiah/tally/stats"
	"github.com/ayoisaiah/tally/tracker"
	"github.com/ayoisaiah/tally/validator"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
	untrackedTask = "(no task)"
)

// TwentyFourHour selects 24 hour timestamps.
var TwentyFourHour bool

func timeLayout() string {
	if TwentyFourHour {
		return "Jan 02, 2006 15:04"
	}

	return "Jan 02, 2006 03:04 PM"
}

// Duration formats a number of seconds for humans, e.g. "1 hour 30 minutes".
func Duration(secs int) string {
	if secs <= 0 {
		return "0 seconds"
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(time.Duration(secs) * time.Second).
		LimitToUnit("hours").
		LimitFirstN(2).
		String()
}

// Clock formats a number of seconds as HH:MM:SS.
func Clock(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func taskLabel(id *string) string {
	if id == nil || *id == "" {
		return untrackedTask
	}

	return *id
}

// Status prints the state of the running session.
func Status(w io.Writer, st *tracker.Status) {
	state := ui.Positive("running")
	if st.Paused {
		state = ui.Paused("paused")
	}

	fmt.Fprintf(w, "%s %s\n", ui.Emphasis(Clock(st.Elapsed)), state)
	fmt.Fprintf(w, "Task: %s\n", taskLabel(st.State.TaskID))
	fmt.Fprintf(w, "Started: %s\n", st.State.StartTime.Local().Format(timeLayout()))
	fmt.Fprintf(w, "Earned so far: %s\n", ui.Positive(money(st.Revenue)))

	if st.State.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", st.State.Notes)
	}

	if st.Stale {
		fmt.Fprintln(w, pterm.Warning.Sprintf(
			"This session has been running for %s. Did you forget to stop it?",
			Duration(st.Elapsed),
		))
	}
}

// Problems prints validation errors and warnings.
func Problems(w io.Writer, res *validator.Result) {
	for _, p := range res.Errors {
		fmt.Fprintln(w, pterm.Error.Sprint(p.Message))
	}

	for _, p := range res.Warnings {
		fmt.Fprintln(w, pterm.Warning.Sprint(p.Message))
	}
}

// Proposal prints a session that is about to be saved together with any
// problems found while validating it.
func Proposal(w io.Writer, p *tracker.Proposal) {
	f := p.Fields

	header := []string{"START", "END", "DURATION", "RATE", "REVENUE", "TASK"}
	rows := [][]string{
		{
			f.StartTime.Local().Format(timeLayout()),
			f.EndTime.Local().Format(timeLayout()),
			Duration(f.Duration),
			money(f.HourlyRate),
			money(f.Revenue),
			taskLabel(f.TaskID),
		},
	}

	table(w, header, rows)
	Problems(w, &p.Result)
}

// Saved confirms that a session was stored.
func Saved(w io.Writer, sess *models.Session) {
	fmt.Fprintln(w, pterm.Success.Sprintf(
		"Saved %s (%s earned)",
		Duration(sess.Duration),
		money(sess.Revenue),
	))
}

// Sessions prints a table of sessions.
func Sessions(w io.Writer, sessions []*models.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, pterm.Info.Sprint(noSessionsMsg))
		return
	}

	header := []string{"#", "ID", "START", "END", "DURATION", "REVENUE", "TASK"}
	body := make([][]string, 0, len(sessions))

	for i, sess := range sessions {
		end := ui.Alert("running")
		if sess.Completed() {
			end = sess.EndTime.Local().Format(timeLayout())
		}

		body = append(body, []string{
			fmt.Sprintf("%d", i+1),
			ui.Secondary(shortID(sess.ID)),
			sess.StartTime.Local().Format(timeLayout()),
			end,
			Duration(sess.Duration),
			money(sess.Revenue),
			taskLabel(sess.TaskID),
		})
	}

	table(w, header, body)
}

func table(w io.Writer, header []string, rows [][]string) {
	if err := ui.Table(w, header, rows); err != nil {
		fmt.Fprintln(w, pterm.Error.Sprint(err))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

// Stats prints a summary of a reporting period.
func Stats(w io.Writer, st *stats.Stats) {
	period := fmt.Sprintf(
		"Reporting period: %s - %s",
		st.Start.Format("January 02, 2006"),
		st.End.Format("January 02, 2006"),
	)

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", period)

	output := fmt.Sprint(
		header,
		summary(st),
		tasks(st),
		dailyChart(st),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}

func summary(st *stats.Stats) string {
	header := fmt.Sprintf("%s\n", ui.Heading("Summary"))

	return header +
		fmt.Sprintf("Time logged: %s\n", ui.Positive(Duration(st.Total.Seconds))) +
		fmt.Sprintln("Sessions:", ui.Positive(st.Total.Sessions)) +
		fmt.Sprintln("Revenue:", ui.Positive(money(st.Total.Revenue))) +
		fmt.Sprintf("Daily average: %s\n", ui.Positive(Duration(st.AvgSeconds)))
}

func tasks(st *stats.Stats) string {
	if len(st.Tasks) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n%s\n", ui.Heading("Tasks")))

	for _, row := range st.Tasks {
		id := row.TaskID
		if id == "" {
			id = untrackedTask
		}

		b.WriteString(fmt.Sprintf(
			"%s: %s, %s\n",
			id,
			ui.Positive(Duration(row.Seconds)),
			ui.Positive(money(row.Revenue)),
		))
	}

	return b.String()
}

func dailyChart(st *stats.Stats) string {
	if len(st.Days) == 0 {
		return ""
	}

	header := ui.Heading("\nDaily breakdown (minutes)")

	bars := make(pterm.Bars, 0, len(st.Days))

	for _, row := range st.Days {
		bars = append(bars, pterm.Bar{
			Value: row.Seconds / 60,
			Label: row.Day.Format("Jan 02, 2006"),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func Error(err error) {
	pterm.Error.Println(err)
}

// Fatal prints err and ends a bubbletea program.
func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}
