package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/pathutil"
	"github.com/ayoisaiah/tally/report"
)

// notify is swapped out in tests.
var notify = func(title, msg string) error {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(filepath.Join(pathutil.Dir(), "icon.png"))

	return beeep.Notify(title, msg, pathToIcon)
}

// sessionCmd builds the command configured in settings.cmd. The saved
// session is described to it through TALLY_* environment variables.
func sessionCmd(ctx context.Context, line string, sess *models.Session) (*exec.Cmd, error) {
	cmdSlice, err := shellquote.Split(line)
	if err != nil {
		return nil, errSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	var task string
	if sess.TaskID != nil {
		task = *sess.TaskID
	}

	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(os.Environ(),
		"TALLY_SESSION_ID="+sess.ID,
		"TALLY_TASK_ID="+task,
		"TALLY_DURATION="+strconv.Itoa(sess.Duration),
		"TALLY_REVENUE="+strconv.FormatFloat(sess.Revenue, 'f', 2, 64),
	)

	return cmd, nil
}

// afterCommit runs the post-save hooks. Failures are reported but never
// undo the save.
func (e *env) afterCommit(ctx context.Context, sess *models.Session) {
	if e.cfg.Notifications.Enabled {
		err := notify(
			"Session saved",
			fmt.Sprintf("%s logged", report.Duration(sess.Duration)),
		)
		if err != nil {
			slog.WarnContext(ctx, "notification failed", slog.Any("error", err))
		}
	}

	if e.cfg.Settings.Cmd == "" {
		return
	}

	cmd, err := sessionCmd(ctx, e.cfg.Settings.Cmd, sess)
	if err != nil {
		report.Error(err)
		return
	}

	if cmd == nil {
		return
	}

	cmd.Stdout = e.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		report.Error(fmt.Errorf("settings.cmd failed: %w", err))
		slog.ErrorContext(ctx, "session command failed",
			slog.String("cmd", e.cfg.Settings.Cmd),
			slog.Any("error", err),
		)
	}
}
