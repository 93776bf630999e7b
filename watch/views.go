package watch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/tally/report"
)

var (
	colorPrimary = lipgloss.Color("#B0DB43")
	colorPaused  = lipgloss.Color("#C492B1")
	colorMuted   = lipgloss.Color("#666666")
	colorWarning = lipgloss.Color("#F39C12")

	baseStyle = lipgloss.NewStyle().Padding(1, 2)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPaused)

	hintStyle = lipgloss.NewStyle().Foreground(colorMuted)

	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

func (m *Model) timeFormat() string {
	if m.twentyFour {
		return "15:04"
	}

	return "03:04 PM"
}

func (m *Model) helpView() string {
	return m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.stop,
		defaultKeymap.quit,
	})
}

func (m *Model) View() string {
	if m.status == nil {
		return ""
	}

	st := m.status

	var s strings.Builder

	clock := report.Clock(st.Elapsed)
	if st.Paused {
		s.WriteString(pausedStyle.Render(clock + "  [Paused]"))
	} else {
		s.WriteString(clockStyle.Render(clock))
	}

	task := "no task"
	if st.State.TaskID != nil && *st.State.TaskID != "" {
		task = *st.State.TaskID
	}

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render(fmt.Sprintf(
		"%s · since %s · %.2f earned",
		task,
		st.State.StartTime.Local().Format(m.timeFormat()),
		st.Revenue,
	)))

	if st.State.Notes != "" {
		s.WriteString("\n" + hintStyle.Render(st.State.Notes))
	}

	if st.Stale {
		s.WriteString("\n\n" + warningStyle.Render(
			"This session has been running for over a day",
		))
	}

	s.WriteString("\n\n" + m.helpView())

	return baseStyle.Render(s.String())
}
