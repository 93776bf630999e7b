package timer

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Slot is a durable key-value slot addressed by a single well-known key.
// Get returns a nil slice when the slot is empty.
type Slot interface {
	Get() ([]byte, error)
	Set(value []byte) error
	Delete() error
}

// Manager owns the timer slot. Exactly one State may exist in a slot,
// so a client should create one Manager per slot.
type Manager struct {
	slot Slot
}

// NewManager returns a Manager that persists its state in slot.
func NewManager(slot Slot) *Manager {
	return &Manager{
		slot: slot,
	}
}

// Save overwrites the persisted state.
func (m *Manager) Save(state *State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return errSaveState.Wrap(err)
	}

	if err = m.slot.Set(b); err != nil {
		return errSaveState.Wrap(err)
	}

	return nil
}

// Load returns the persisted state or nil if there is none. A slot that
// cannot be read or holds corrupt data is treated as empty.
func (m *Manager) Load() *State {
	b, err := m.slot.Get()
	if err != nil {
		slog.Warn("unable to read timer state", slog.Any("error", err))
		return nil
	}

	if len(b) == 0 {
		return nil
	}

	var state State

	if err = json.Unmarshal(b, &state); err != nil {
		slog.Warn("discarding corrupt timer state", slog.Any("error", err))
		return nil
	}

	if state.StartTime.IsZero() || state.TotalPausedSeconds < 0 {
		slog.Warn(
			"discarding invalid timer state",
			slog.Time("start_time", state.StartTime),
			slog.Int("total_paused_seconds", state.TotalPausedSeconds),
		)

		return nil
	}

	return &state
}

// Clear removes the persisted state. Clearing an empty slot is a no-op.
func (m *Manager) Clear() error {
	if err := m.slot.Delete(); err != nil {
		return errClearState.Wrap(err)
	}

	return nil
}

// UpdateNotes replaces the notes of the active session. It does nothing when
// no session is active.
func (m *Manager) UpdateNotes(text string) error {
	state := m.Load()
	if state == nil {
		return nil
	}

	state.Notes = text

	return m.Save(state)
}

// UpdatePauseState enters or leaves a pause. A non-nil pausedAt marks the
// session as paused from that instant. A nil pausedAt resumes the session
// and adds addPausedSeconds, the length of the pause just ended as measured
// by the caller, to the accumulated total. It does nothing when no session
// is active.
func (m *Manager) UpdatePauseState(pausedAt *time.Time, addPausedSeconds int) error {
	state := m.Load()
	if state == nil {
		return nil
	}

	if pausedAt != nil {
		t := *pausedAt
		state.PausedAt = &t

		return m.Save(state)
	}

	if addPausedSeconds > 0 {
		state.TotalPausedSeconds += addPausedSeconds
	}

	state.PausedAt = nil

	return m.Save(state)
}
