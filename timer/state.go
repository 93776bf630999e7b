package timer

import (
	"time"
)

// DefaultStaleAfter is the elapsed time after which a restored session is
// considered abandoned rather than still running.
const DefaultStaleAfter = 24 * time.Hour

// State is the durable record of the one in-progress session. The json
// names match the layout of the local slot.
type State struct {
	StartTime          time.Time  `json:"startTime"`
	PausedAt           *time.Time `json:"pausedAt"`
	TaskID             *string    `json:"taskId"`
	SessionID          string     `json:"sessionId"`
	Notes              string     `json:"notes"`
	TotalPausedSeconds int        `json:"totalPausedSeconds"`
	HourlyRate         float64    `json:"hourlyRate"`
}

// Paused reports whether the session is currently paused.
func (s *State) Paused() bool {
	return s.PausedAt != nil
}

// ElapsedSeconds returns the number of whole seconds the session has been
// running at now, excluding completed pauses and the currently open pause.
// Every elapsed-time display must use this.
func ElapsedSeconds(s *State, now time.Time) int {
	elapsed := now.Sub(s.StartTime)
	elapsed -= time.Duration(s.TotalPausedSeconds) * time.Second

	if s.PausedAt != nil {
		elapsed -= now.Sub(*s.PausedAt)
	}

	if elapsed < 0 {
		return 0
	}

	return int(elapsed / time.Second)
}

// IsStale reports whether the session has been running for at least
// threshold. A zero threshold uses DefaultStaleAfter.
func IsStale(s *State, now time.Time, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = DefaultStaleAfter
	}

	return ElapsedSeconds(s, now) >= int(threshold/time.Second)
}

// Equal reports whether s and o describe the same session in the same
// pause and notes state.
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}

	return s.SessionID == o.SessionID &&
		s.StartTime.Equal(o.StartTime) &&
		equalTime(s.PausedAt, o.PausedAt) &&
		equalString(s.TaskID, o.TaskID) &&
		s.Notes == o.Notes &&
		s.TotalPausedSeconds == o.TotalPausedSeconds &&
		s.HourlyRate == o.HourlyRate
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
