package app

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/tracker"
)

// addAction records a session that was not timed with tally.
func addAction(ctx *cli.Context, e *env) error {
	c := e.cfg.CLI

	if c.StartTime.IsZero() || (c.EndTime.IsZero() && c.Duration == nil) {
		return errMissingInterval
	}

	entry := tracker.ManualEntry{
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		Duration:   c.Duration,
		HourlyRate: c.HourlyRate,
		TaskID:     c.TaskID,
	}

	if entry.EndTime.IsZero() {
		entry.EndTime = entry.StartTime.Add(time.Duration(*c.Duration) * time.Second)
	}

	if entry.TaskID != nil && *entry.TaskID == "" {
		entry.TaskID = nil
	}

	if c.Notes != nil {
		entry.Notes = *c.Notes
	}

	p, err := e.tr.ProposeManual(ctx.Context, entry)
	if err != nil {
		return err
	}

	return e.commit(ctx, p)
}

// editAction corrects a saved session. Only the flags that were given are
// changed.
func editAction(ctx *cli.Context, e *env) error {
	sess, err := e.findSession(ctx, ctx.Args().First())
	if err != nil {
		return err
	}

	if !sess.Completed() {
		return errEditRunning.Fmt(sess.ID)
	}

	c := e.cfg.CLI

	entry := tracker.EditEntry{
		Duration:   c.Duration,
		HourlyRate: c.HourlyRate,
		TaskID:     c.TaskID,
		Notes:      c.Notes,
	}

	if !c.StartTime.IsZero() {
		entry.StartTime = &c.StartTime
	}

	if !c.EndTime.IsZero() {
		entry.EndTime = &c.EndTime
	}

	p, err := e.tr.ProposeEdit(ctx.Context, sess.ID, entry)
	if err != nil {
		return err
	}

	return e.commit(ctx, p)
}
