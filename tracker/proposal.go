package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/timer"
	"github.com/ayoisaiah/tally/validator"
)

// ProposalKind says what Commit does with a proposal.
type ProposalKind string

const (
	// KindStop completes the running session.
	KindStop ProposalKind = "stop"
	// KindManual creates a new completed session.
	KindManual ProposalKind = "manual"
	// KindEdit rewrites an existing session.
	KindEdit ProposalKind = "edit"
)

// Proposal is a validated but unsaved session. It is a plain value: making
// one has no side effects and it may be discarded freely.
type Proposal struct {
	Kind ProposalKind `json:"kind"`
	// SessionID is the record the proposal applies to. It is empty for
	// manual entries.
	SessionID string           `json:"session_id,omitempty"`
	Fields    models.Fields    `json:"fields"`
	Result    validator.Result `json:"result"`
	// state is the running session a stop proposal was made from.
	state *timer.State
}

// ManualEntry describes a session that was not timed with the tracker.
type ManualEntry struct {
	StartTime time.Time
	EndTime   time.Time
	// Duration overrides the interval length when set.
	Duration   *int
	HourlyRate *float64
	TaskID     *string
	Notes      string
}

// EditEntry lists the fields to change on an existing session. Nil fields
// keep their stored value.
type EditEntry struct {
	StartTime  *time.Time
	EndTime    *time.Time
	Duration   *int
	HourlyRate *float64
	TaskID     *string
	Notes      *string
}

func (t *Tracker) validate(
	ctx context.Context,
	c *validator.Candidate,
	excludeID string,
) (validator.Result, error) {
	others, err := t.store.Intervals(ctx, t.opts.UserID)
	if err != nil {
		return validator.Result{}, err
	}

	opts := t.opts.Validation
	opts.Now = t.clock.Now()
	opts.ExcludeID = excludeID

	return validator.ValidateSession(c, others, opts), nil
}

func fieldsFrom(c *validator.Candidate, res *validator.Result) models.Fields {
	var rate float64
	if c.HourlyRate != nil {
		rate = *c.HourlyRate
	}

	return models.Fields{
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		Duration:   res.Duration,
		HourlyRate: rate,
		Revenue:    res.Revenue,
		Notes:      c.Notes,
		TaskID:     c.TaskID,
	}
}

// Stop proposes completing the running session at the current time. The
// timer keeps running until the proposal is committed.
//
// The validator judges the wall-clock interval, but the stored duration and
// revenue exclude paused time.
func (t *Tracker) Stop(ctx context.Context) (*Proposal, error) {
	state, err := t.active()
	if err != nil {
		return nil, err
	}

	now := t.clock.Now()
	rate := state.HourlyRate

	c := &validator.Candidate{
		StartTime:  state.StartTime,
		EndTime:    now,
		HourlyRate: &rate,
		TaskID:     state.TaskID,
		Notes:      state.Notes,
	}

	res, err := t.validate(ctx, c, state.SessionID)
	if err != nil {
		return nil, err
	}

	fields := fieldsFrom(c, &res)

	if !res.Blocked() {
		fields.Duration = timer.ElapsedSeconds(state, now)
		fields.Revenue = validator.CalculateRevenue(fields.Duration, rate)
	}

	return &Proposal{
		Kind:      KindStop,
		SessionID: state.SessionID,
		Fields:    fields,
		Result:    res,
		state:     state,
	}, nil
}

// ProposeManual validates a session entered after the fact.
func (t *Tracker) ProposeManual(ctx context.Context, e ManualEntry) (*Proposal, error) {
	rate := t.opts.DefaultRate
	if e.HourlyRate != nil {
		rate = *e.HourlyRate
	}

	c := &validator.Candidate{
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		HourlyRate: &rate,
		Duration:   e.Duration,
		TaskID:     e.TaskID,
		Notes:      e.Notes,
	}

	res, err := t.validate(ctx, c, "")
	if err != nil {
		return nil, err
	}

	return &Proposal{
		Kind:   KindManual,
		Fields: fieldsFrom(c, &res),
		Result: res,
	}, nil
}

// ProposeEdit validates changes to a stored session. The session itself is
// left out of the overlap check.
//
// Without an explicit duration, an edit that keeps the interval keeps the
// stored duration, so pause exclusion and manual durations survive. An edit
// that moves the start or end recomputes the duration from the new interval.
func (t *Tracker) ProposeEdit(
	ctx context.Context,
	id string,
	e EditEntry,
) (*Proposal, error) {
	sess, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c := &validator.Candidate{
		StartTime:  sess.StartTime,
		HourlyRate: &sess.HourlyRate,
		TaskID:     sess.TaskID,
		Notes:      sess.Notes,
	}

	if sess.EndTime != nil {
		c.EndTime = *sess.EndTime
	}

	if e.StartTime != nil {
		c.StartTime = *e.StartTime
	}

	if e.EndTime != nil {
		c.EndTime = *e.EndTime
	}

	if e.HourlyRate != nil {
		c.HourlyRate = e.HourlyRate
	}

	if e.TaskID != nil {
		c.TaskID = e.TaskID
		if *e.TaskID == "" {
			c.TaskID = nil
		}
	}

	if e.Notes != nil {
		c.Notes = *e.Notes
	}

	c.Duration = e.Duration

	res, err := t.validate(ctx, c, id)
	if err != nil {
		return nil, err
	}

	fields := fieldsFrom(c, &res)

	sameInterval := sess.EndTime != nil &&
		c.StartTime.Equal(sess.StartTime) &&
		c.EndTime.Equal(*sess.EndTime)

	if e.Duration == nil && sameInterval && !res.Blocked() {
		fields.Duration = sess.Duration
		fields.Revenue = validator.CalculateRevenue(sess.Duration, *c.HourlyRate)
	}

	return &Proposal{
		Kind:      KindEdit,
		SessionID: id,
		Fields:    fields,
		Result:    res,
	}, nil
}

// Commit persists a proposal. A proposal with errors is never saved, and one
// with warnings is saved only when confirmedWarnings is true. It returns the
// stored session.
func (t *Tracker) Commit(
	ctx context.Context,
	p *Proposal,
	confirmedWarnings bool,
) (*models.Session, error) {
	if p.Result.Blocked() {
		return nil, ErrBlocked
	}

	if p.Result.NeedsConfirmation() && !confirmedWarnings {
		return nil, ErrUnconfirmed
	}

	id := p.SessionID

	switch p.Kind {
	case KindStop:
		state := t.timers.Load()
		if state == nil || state.SessionID != p.SessionID ||
			(p.state != nil && !state.Equal(p.state)) {
			return nil, ErrStaleProposal
		}

		if err := t.store.Update(ctx, id, p.Fields); err != nil {
			return nil, err
		}

		if err := t.timers.Clear(); err != nil {
			return nil, err
		}
	case KindManual:
		sess := &models.Session{UserID: t.opts.UserID}
		sess.Apply(p.Fields)

		var err error

		id, err = t.store.Create(ctx, sess)
		if err != nil {
			return nil, err
		}
	case KindEdit:
		if err := t.store.Update(ctx, id, p.Fields); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown proposal kind: " + string(p.Kind))
	}

	slog.InfoContext(ctx, "session saved",
		slog.String("kind", string(p.Kind)),
		slog.String("session_id", id),
		slog.Int("duration", p.Fields.Duration),
		slog.Float64("revenue", p.Fields.Revenue),
		slog.Int("confirmed_warnings", len(p.Result.Warnings)),
	)

	return t.store.Get(ctx, id)
}

// Archive stops the running session and saves it regardless of warnings.
// It is the stop-and-archive answer to a stale session.
func (t *Tracker) Archive(ctx context.Context) (*models.Session, error) {
	p, err := t.Stop(ctx)
	if err != nil {
		return nil, err
	}

	return t.Commit(ctx, p, true)
}
