// Package tracker runs focus sessions end to end. It keeps the in-progress
// session in a timer slot, validates a session before it is saved, and
// hands the final record to a session store. Saving is split in two: a
// Propose step (Stop, ProposeManual, ProposeEdit) that validates without
// side effects, and Commit, which persists once the caller has decided what
// to do about warnings.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/timeutil"
	"github.com/ayoisaiah/tally/timer"
	"github.com/ayoisaiah/tally/validator"
)

// Store is the external session store.
type Store interface {
	Create(ctx context.Context, sess *models.Session) (string, error)
	Update(ctx context.Context, id string, f models.Fields) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	Intervals(ctx context.Context, userID string) ([]models.Interval, error)
}

// Options configures a Tracker.
type Options struct {
	// UserID owns every session created by the tracker.
	UserID string
	// DefaultRate is used when a session is started without a rate.
	DefaultRate float64
	// StaleAfter is the elapsed time from which a restored session is
	// reported as stale.
	StaleAfter time.Duration
	// Validation holds the validator thresholds. Now and ExcludeID are set
	// per call.
	Validation validator.Options
}

// Tracker coordinates the timer slot, the validator and the session store.
type Tracker struct {
	timers *timer.Manager
	store  Store
	clock  timeutil.Clock
	opts   Options
}

// New returns a Tracker. The manager must be the only one for its slot.
func New(
	timers *timer.Manager,
	store Store,
	clock timeutil.Clock,
	opts Options,
) *Tracker {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}

	if opts.StaleAfter <= 0 {
		opts.StaleAfter = timer.DefaultStaleAfter
	}

	return &Tracker{
		timers: timers,
		store:  store,
		clock:  clock,
		opts:   opts,
	}
}

// StartRequest describes a new session.
type StartRequest struct {
	// At is the start time. The zero value means now.
	At time.Time
	// HourlyRate is nil to use the default rate.
	HourlyRate *float64
	TaskID     *string
	Notes      string
}

// Status describes the running session at a point in time.
type Status struct {
	State   timer.State `json:"state"`
	Now     time.Time   `json:"now"`
	Elapsed int         `json:"elapsed_seconds"`
	Revenue float64     `json:"revenue"`
	Paused  bool        `json:"paused"`
	Stale   bool        `json:"stale"`
}

func (t *Tracker) status(state *timer.State, now time.Time) *Status {
	elapsed := timer.ElapsedSeconds(state, now)

	return &Status{
		State:   *state,
		Now:     now,
		Elapsed: elapsed,
		Revenue: validator.CalculateRevenue(elapsed, state.HourlyRate),
		Paused:  state.Paused(),
		Stale:   timer.IsStale(state, now, t.opts.StaleAfter),
	}
}

func (t *Tracker) active() (*timer.State, error) {
	state := t.timers.Load()
	if state == nil {
		return nil, ErrNoActiveSession
	}

	return state, nil
}

// Start begins a new session. The record is created in the store first so
// that the timer state always refers to an existing session.
func (t *Tracker) Start(ctx context.Context, req StartRequest) (*Status, error) {
	if t.timers.Load() != nil {
		return nil, ErrSessionActive
	}

	now := t.clock.Now()

	at := req.At
	if at.IsZero() {
		at = now
	}

	rate := t.opts.DefaultRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	if rate < 0 {
		rate = 0
	}

	id, err := t.store.Create(ctx, &models.Session{
		UserID:     t.opts.UserID,
		StartTime:  at,
		HourlyRate: rate,
		TaskID:     req.TaskID,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}

	state := &timer.State{
		SessionID:  id,
		TaskID:     req.TaskID,
		StartTime:  at,
		Notes:      req.Notes,
		HourlyRate: rate,
	}

	if err = t.timers.Save(state); err != nil {
		_ = t.store.Delete(ctx, id)
		return nil, err
	}

	slog.InfoContext(ctx, "session started",
		slog.String("session_id", id),
		slog.Time("start_time", at),
		slog.Float64("hourly_rate", rate),
	)

	return t.status(state, now), nil
}

// Pause marks the running session as paused from now.
func (t *Tracker) Pause(ctx context.Context) (*Status, error) {
	state, err := t.active()
	if err != nil {
		return nil, err
	}

	if state.Paused() {
		return nil, ErrAlreadyPaused
	}

	now := t.clock.Now()

	if err = t.timers.UpdatePauseState(&now, 0); err != nil {
		return nil, err
	}

	state.PausedAt = &now

	slog.InfoContext(ctx, "session paused", slog.String("session_id", state.SessionID))

	return t.status(state, now), nil
}

// Resume ends the current pause. The pause length is measured here and
// handed to the timer manager, which only accumulates it.
func (t *Tracker) Resume(ctx context.Context) (*Status, error) {
	state, err := t.active()
	if err != nil {
		return nil, err
	}

	if !state.Paused() {
		return nil, ErrNotPaused
	}

	now := t.clock.Now()

	secs := int(now.Sub(*state.PausedAt) / time.Second)
	if secs < 0 {
		secs = 0
	}

	if err = t.timers.UpdatePauseState(nil, secs); err != nil {
		return nil, err
	}

	state.PausedAt = nil
	state.TotalPausedSeconds += secs

	slog.InfoContext(ctx, "session resumed",
		slog.String("session_id", state.SessionID),
		slog.Int("paused_seconds", secs),
	)

	return t.status(state, now), nil
}

// Heartbeat re-persists the running session so that a crash loses at most
// one heartbeat interval.
func (t *Tracker) Heartbeat(ctx context.Context) (*Status, error) {
	state, err := t.active()
	if err != nil {
		return nil, err
	}

	if err = t.timers.Save(state); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "heartbeat", slog.String("session_id", state.SessionID))

	return t.status(state, t.clock.Now()), nil
}

// UpdateNotes replaces the notes of the running session.
func (t *Tracker) UpdateNotes(_ context.Context, text string) error {
	if _, err := t.active(); err != nil {
		return err
	}

	return t.timers.UpdateNotes(text)
}

// Restore returns the status of a session left running by a previous
// process, or nil if there is none. Callers must ask the user what to do
// with a stale session before continuing it.
func (t *Tracker) Restore(ctx context.Context) *Status {
	state := t.timers.Load()
	if state == nil {
		return nil
	}

	st := t.status(state, t.clock.Now())

	if st.Stale {
		slog.WarnContext(ctx, "restored a stale session",
			slog.String("session_id", state.SessionID),
			slog.Int("elapsed_seconds", st.Elapsed),
		)
	}

	return st
}

// Status returns the status of the running session.
func (t *Tracker) Status(ctx context.Context) (*Status, error) {
	st := t.Restore(ctx)
	if st == nil {
		return nil, ErrNoActiveSession
	}

	return st, nil
}

// Discard throws the running session away, removing its record from the
// store.
func (t *Tracker) Discard(ctx context.Context) error {
	state, err := t.active()
	if err != nil {
		return err
	}

	if err = t.store.Delete(ctx, state.SessionID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "session discarded", slog.String("session_id", state.SessionID))

	return t.timers.Clear()
}
