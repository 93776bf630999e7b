package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tally/internal/testutil"
	"github.com/ayoisaiah/tally/timer"
	"github.com/ayoisaiah/tally/tracker"
)

type fakeTracker struct {
	status     tracker.Status
	heartbeats int
	statusErr  error
}

func (f *fakeTracker) Status(context.Context) (*tracker.Status, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}

	st := f.status

	return &st, nil
}

func (f *fakeTracker) Heartbeat(ctx context.Context) (*tracker.Status, error) {
	f.heartbeats++
	return f.Status(ctx)
}

func (f *fakeTracker) Pause(ctx context.Context) (*tracker.Status, error) {
	f.status.Paused = true
	return f.Status(ctx)
}

func (f *fakeTracker) Resume(ctx context.Context) (*tracker.Status, error) {
	f.status.Paused = false
	return f.Status(ctx)
}

func newModel(t *testing.T) (*Model, *fakeTracker) {
	t.Helper()

	f := &fakeTracker{
		status: tracker.Status{
			State:   timer.State{StartTime: testutil.Epoch, TaskID: testutil.Ptr("task-4")},
			Elapsed: 3661,
		},
	}

	m := New(context.Background(), f, 10*time.Second, true)
	require.NotNil(t, m.Init())

	return m, f
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTogglePause(t *testing.T) {
	m, f := newModel(t)

	_, cmd := m.Update(keyPress("p"))
	assert.Nil(t, cmd)
	assert.True(t, f.status.Paused)
	assert.Contains(t, m.View(), "[Paused]")

	_, _ = m.Update(keyPress("p"))
	assert.False(t, f.status.Paused)
	assert.NotContains(t, m.View(), "[Paused]")
}

func TestStopAndDetach(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.False(t, m.StopRequested())

	_, cmd = m.Update(keyPress("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.StopRequested())
}

func TestHeartbeatInterval(t *testing.T) {
	m, f := newModel(t)

	start := m.lastBeat

	_, cmd := m.Update(tickMsg(start.Add(5 * time.Second)))
	require.NotNil(t, cmd)
	assert.Equal(t, 0, f.heartbeats)

	_, _ = m.Update(tickMsg(start.Add(10 * time.Second)))
	assert.Equal(t, 1, f.heartbeats)

	_, _ = m.Update(tickMsg(start.Add(15 * time.Second)))
	assert.Equal(t, 1, f.heartbeats)

	_, _ = m.Update(tickMsg(start.Add(21 * time.Second)))
	assert.Equal(t, 2, f.heartbeats)
}

func TestTickErrorEndsProgram(t *testing.T) {
	m, f := newModel(t)

	f.statusErr = errors.New("gone")

	_, cmd := m.Update(tickMsg(m.lastBeat.Add(time.Second)))
	require.NotNil(t, cmd)
	assert.EqualError(t, m.Err(), "gone")
}

func TestView(t *testing.T) {
	m, f := newModel(t)

	view := m.View()
	assert.Contains(t, view, "01:01:01")
	assert.Contains(t, view, "task-4")
	assert.NotContains(t, view, "over a day")

	f.status.Stale = true
	_, _ = m.Update(tickMsg(m.lastBeat.Add(time.Second)))
	assert.Contains(t, m.View(), "over a day")
}
