// Package watch is the live terminal view of a running session.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/tally/tracker"
)

// Tracker is the part of tracker.Tracker the view drives.
type Tracker interface {
	Status(ctx context.Context) (*tracker.Status, error)
	Heartbeat(ctx context.Context) (*tracker.Status, error)
	Pause(ctx context.Context) (*tracker.Status, error)
	Resume(ctx context.Context) (*tracker.Status, error)
}

type tickMsg time.Time

// Model shows the elapsed clock of the running session and re-persists the
// session every heartbeat interval.
type Model struct {
	ctx        context.Context
	tr         Tracker
	status     *tracker.Status
	err        error
	help       help.Model
	lastBeat   time.Time
	heartbeat  time.Duration
	width      int
	stop       bool
	twentyFour bool
}

// New returns a Model for the running session.
func New(
	ctx context.Context,
	tr Tracker,
	heartbeat time.Duration,
	twentyFour bool,
) *Model {
	return &Model{
		ctx:        ctx,
		tr:         tr,
		heartbeat:  heartbeat,
		help:       help.New(),
		twentyFour: twentyFour,
	}
}

// StopRequested reports whether the user asked to stop the session. The
// caller is responsible for proposing and committing it.
func (m *Model) StopRequested() bool {
	return m.stop
}

// Err returns the error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	st, err := m.tr.Status(m.ctx)
	if err != nil {
		m.err = err
		return tea.Quit
	}

	m.status = st
	m.lastBeat = time.Now()

	return tickCmd()
}

// handleTick refreshes the status and persists a heartbeat when one is
// due.
func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	now := time.Time(msg)

	var (
		st  *tracker.Status
		err error
	)

	if m.heartbeat > 0 && now.Sub(m.lastBeat) >= m.heartbeat {
		st, err = m.tr.Heartbeat(m.ctx)
		m.lastBeat = now
	} else {
		st, err = m.tr.Status(m.ctx)
	}

	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.status = st

	return m, tickCmd()
}

func (m *Model) togglePause() (tea.Model, tea.Cmd) {
	var (
		st  *tracker.Status
		err error
	)

	if m.status != nil && m.status.Paused {
		st, err = m.tr.Resume(m.ctx)
	} else {
		st, err = m.tr.Pause(m.ctx)
	}

	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.status = st

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		slog.Debug(spew.Sdump(msg))

		switch {
		case key.Matches(msg, defaultKeymap.togglePlay):
			return m.togglePause()

		case key.Matches(msg, defaultKeymap.stop):
			m.stop = true

			return m, tea.Quit

		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return m, nil
	}

	return m, nil
}
