package app

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/timeutil"
	"github.com/ayoisaiah/tally/report"
	"github.com/ayoisaiah/tally/stats"
)

// period returns the bounds of the requested reporting period.
func (e *env) period(fallback timeutil.Period) (start, end time.Time, err error) {
	p := e.cfg.CLI.Period
	if p == "" {
		p = fallback
	}

	return timeutil.PeriodBounds(p, e.clock.Now())
}

func (e *env) sessions(ctx *cli.Context, fallback timeutil.Period) ([]*models.Session, time.Time, time.Time, error) {
	start, end, err := e.period(fallback)
	if err != nil {
		return nil, start, end, err
	}

	sessions, err := e.db.List(ctx.Context, e.cfg.Session.User, start, end)

	return sessions, start, end, err
}

// findSession resolves a full id or an unambiguous id prefix, as printed
// by the list command.
func (e *env) findSession(ctx *cli.Context, prefix string) (*models.Session, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errMissingID
	}

	if sess, err := e.db.Get(ctx.Context, prefix); err == nil {
		return sess, nil
	}

	all, _, _, err := e.sessions(ctx, timeutil.PeriodAllTime)
	if err != nil {
		return nil, err
	}

	var match *models.Session

	for _, sess := range all {
		if !strings.HasPrefix(sess.ID, prefix) {
			continue
		}

		if match != nil {
			return nil, errAmbiguousID.Fmt(prefix)
		}

		match = sess
	}

	if match == nil {
		return nil, errNoMatch.Fmt(prefix)
	}

	return match, nil
}

// listAction prints a table of the sessions started within a time period.
func listAction(ctx *cli.Context, e *env) error {
	sessions, _, _, err := e.sessions(ctx, timeutil.Period7Days)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		if sessions == nil {
			sessions = []*models.Session{}
		}

		return e.printJSON(sessions)
	}

	report.Sessions(e.out, sessions)

	return nil
}

// reportAction summarises a time period by task and by day.
func reportAction(ctx *cli.Context, e *env) error {
	sessions, start, end, err := e.sessions(ctx, timeutil.Period7Days)
	if err != nil {
		return err
	}

	st := stats.Compute(sessions, start, end)

	if ctx.Bool("json") {
		return e.printJSON(st)
	}

	report.Stats(e.out, st)

	return nil
}
