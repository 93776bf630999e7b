package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/report"
)

// deleteAction deletes one or more saved sessions. It requests confirmation
// before proceeding with the operation.
func deleteAction(ctx *cli.Context, e *env) error {
	if ctx.NArg() == 0 {
		return errMissingID
	}

	sessions := make([]*models.Session, 0, ctx.NArg())

	for _, arg := range ctx.Args().Slice() {
		sess, err := e.findSession(ctx, arg)
		if err != nil {
			return err
		}

		if !sess.Completed() {
			return errDeleteRunning.Fmt(sess.ID)
		}

		sessions = append(sessions, sess)
	}

	report.Sessions(e.out, sessions)

	if !e.cfg.CLI.AssumeYes {
		ok, err := confirm(
			"Delete these sessions?",
			"The sessions above will be deleted permanently",
		)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	for _, sess := range sessions {
		if err := e.db.Delete(ctx.Context, sess.ID); err != nil {
			return err
		}
	}

	pterm.Success.Printfln("Deleted %d session(s)", len(sessions))

	return nil
}
