package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/config"
	"github.com/ayoisaiah/tally/internal/pathutil"
	"github.com/ayoisaiah/tally/report"
	"github.com/ayoisaiah/tally/tracker"
	"github.com/ayoisaiah/tally/watch"
)

const (
	envNoColor      = "NO_COLOR"
	envTallyNoColor = "TALLY_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func (e *env) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(e.out, string(b))

	return nil
}

// commit shows a proposal, asks about its warnings and saves it. Declining
// leaves everything as it was.
func (e *env) commit(ctx *cli.Context, p *tracker.Proposal) error {
	report.Proposal(e.out, p)

	if p.Result.Blocked() {
		return tracker.ErrBlocked
	}

	confirmed := e.cfg.CLI.AssumeYes

	if p.Result.NeedsConfirmation() && !confirmed {
		var err error

		confirmed, err = confirm(
			"Save this session anyway?",
			fmt.Sprintf("%d warning(s) above", len(p.Result.Warnings)),
		)
		if err != nil {
			return err
		}

		if !confirmed {
			pterm.Info.Println("Nothing was saved")
			return nil
		}
	}

	sess, err := e.tr.Commit(ctx.Context, p, confirmed)
	if err != nil {
		return err
	}

	report.Saved(e.out, sess)
	e.afterCommit(ctx.Context, sess)

	return nil
}

// restore deals with a session left running by an earlier invocation. A
// stale session must be explicitly kept, saved or discarded. It reports
// whether a session is still running afterwards.
func (e *env) restore(ctx *cli.Context) (bool, error) {
	st := e.tr.Restore(ctx.Context)
	if st == nil {
		return false, nil
	}

	if !st.Stale {
		return true, nil
	}

	report.Status(e.out, st)

	if e.cfg.CLI.AssumeYes {
		return true, nil
	}

	choice, err := chooseStale(fmt.Sprintf(
		"It has been running for %s.", report.Duration(st.Elapsed),
	))
	if err != nil {
		return true, err
	}

	switch choice {
	case staleArchive:
		sess, err := e.tr.Archive(ctx.Context)
		if err != nil {
			return true, err
		}

		report.Saved(e.out, sess)
		e.afterCommit(ctx.Context, sess)

		return false, nil
	case staleDiscard:
		return false, e.tr.Discard(ctx.Context)
	case staleContinue:
	}

	return true, nil
}

// startAction starts a new session.
func startAction(ctx *cli.Context, e *env) error {
	running, err := e.restore(ctx)
	if err != nil {
		return err
	}

	if running {
		return tracker.ErrSessionActive
	}

	req := tracker.StartRequest{
		At:         e.cfg.CLI.StartTime,
		HourlyRate: e.cfg.CLI.HourlyRate,
		TaskID:     e.cfg.CLI.TaskID,
	}

	if req.TaskID != nil && *req.TaskID == "" {
		req.TaskID = nil
	}

	if e.cfg.CLI.Notes != nil {
		req.Notes = *e.cfg.CLI.Notes
	}

	st, err := e.tr.Start(ctx.Context, req)
	if err != nil {
		return err
	}

	if ctx.Bool("watch") {
		return watchSession(ctx, e)
	}

	report.Status(e.out, st)

	return nil
}

// pauseAction pauses the running session.
func pauseAction(ctx *cli.Context, e *env) error {
	st, err := e.tr.Pause(ctx.Context)
	if err != nil {
		return err
	}

	report.Status(e.out, st)

	return nil
}

// resumeAction resumes a paused session.
func resumeAction(ctx *cli.Context, e *env) error {
	st, err := e.tr.Resume(ctx.Context)
	if err != nil {
		return err
	}

	report.Status(e.out, st)

	return nil
}

// stopAction proposes the running session for saving.
func stopAction(ctx *cli.Context, e *env) error {
	p, err := e.tr.Stop(ctx.Context)
	if err != nil {
		return err
	}

	return e.commit(ctx, p)
}

// statusAction prints the status of the running session.
func statusAction(ctx *cli.Context, e *env) error {
	st, err := e.tr.Status(ctx.Context)
	if errors.Is(err, tracker.ErrNoActiveSession) && !ctx.Bool("json") {
		pterm.Info.Println(err)
		return nil
	}

	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return e.printJSON(st)
	}

	report.Status(e.out, st)

	return nil
}

// notesAction replaces the notes of the running session.
func notesAction(ctx *cli.Context, e *env) error {
	text := strings.Join(ctx.Args().Slice(), " ")

	if err := e.tr.UpdateNotes(ctx.Context, text); err != nil {
		return err
	}

	pterm.Success.Println("Notes updated")

	return nil
}

// discardAction throws the running session away.
func discardAction(ctx *cli.Context, e *env) error {
	st, err := e.tr.Status(ctx.Context)
	if err != nil {
		return err
	}

	report.Status(e.out, st)

	if !e.cfg.CLI.AssumeYes {
		ok, err := confirm("Discard this session?", "It will not be recorded")
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	if err := e.tr.Discard(ctx.Context); err != nil {
		return err
	}

	pterm.Success.Println("Session discarded")

	return nil
}

// watchSession shows the live timer until the user detaches or stops.
func watchSession(ctx *cli.Context, e *env) error {
	m := watch.New(
		ctx.Context,
		e.tr,
		e.cfg.Session.Heartbeat,
		e.cfg.Settings.TwentyFourHour,
	)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}

	if err := m.Err(); err != nil {
		return err
	}

	if !m.StopRequested() {
		return nil
	}

	return stopAction(ctx, e)
}

// watchAction attaches the live timer to the running session.
func watchAction(ctx *cli.Context, e *env) error {
	running, err := e.restore(ctx)
	if err != nil {
		return err
	}

	if !running {
		return tracker.ErrNoActiveSession
	}

	return watchSession(ctx, e)
}

// editConfigAction handles the edit-config command which opens the tally
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TALLY_NO_COLOR is set
	if _, exists := os.LookupEnv(envTallyNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
