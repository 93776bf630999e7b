package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tally/internal/config"
	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/testutil"
	"github.com/ayoisaiah/tally/internal/timeutil"
	"github.com/ayoisaiah/tally/store"
	"github.com/ayoisaiah/tally/tracker"
)

func testEnv(t *testing.T) (*env, *timeutil.FixedClock) {
	t.Helper()

	c, err := store.NewClient(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	cfg := &config.Config{}
	cfg.Session.User = "me"
	cfg.Session.DefaultRate = 60

	clock := testutil.Clock()

	return &env{
		cfg:   cfg,
		clock: clock,
		bolt:  c,
		db:    c,
		tr:    newTracker(cfg, c, c, clock),
		out:   &bytes.Buffer{},
	}, clock
}

func testContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse(args))

	return cli.NewContext(cli.NewApp(), set, nil)
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()

	var calls int

	orig := confirm
	confirm = func(_, _ string) (bool, error) {
		calls++
		return answer, nil
	}

	t.Cleanup(func() {
		confirm = orig
	})

	return &calls
}

func addSession(t *testing.T, e *env, start time.Time, d time.Duration) string {
	t.Helper()

	end := start.Add(d)

	id, err := e.db.Create(context.Background(), &models.Session{
		UserID:    "me",
		StartTime: start,
		EndTime:   &end,
		Duration:  int(d.Seconds()),
	})
	require.NoError(t, err)

	return id
}

func TestSessionCmd(t *testing.T) {
	end := testutil.Epoch.Add(time.Hour)

	sess := &models.Session{
		ID:        "abc",
		TaskID:    testutil.Ptr("task-1"),
		StartTime: testutil.Epoch,
		EndTime:   &end,
		Duration:  3600,
		Revenue:   42.5,
	}

	cases := []struct {
		name    string
		line    string
		args    []string
		wantErr error
	}{
		{
			name: "quoted argument",
			line: `notify-send "session saved"`,
			args: []string{"notify-send", "session saved"},
		},
		{
			name: "blank line",
			line: "   ",
		},
		{
			name:    "unbalanced quote",
			line:    `echo "oops`,
			wantErr: errSessionCmd,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := sessionCmd(context.Background(), tc.line, sess)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr))
				return
			}

			require.NoError(t, err)

			if tc.args == nil {
				assert.Nil(t, cmd)
				return
			}

			assert.Equal(t, tc.args, cmd.Args)
			assert.True(t, slices.Contains(cmd.Env, "TALLY_SESSION_ID=abc"))
			assert.True(t, slices.Contains(cmd.Env, "TALLY_TASK_ID=task-1"))
			assert.True(t, slices.Contains(cmd.Env, "TALLY_DURATION=3600"))
			assert.True(t, slices.Contains(cmd.Env, "TALLY_REVENUE=42.50"))
		})
	}
}

func TestFindSession(t *testing.T) {
	e, _ := testEnv(t)
	ctx := testContext(t)

	id := addSession(t, e, testutil.Epoch.Add(-3*time.Hour), time.Hour)

	sess, err := e.findSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)

	sess, err = e.findSession(ctx, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)

	_, err = e.findSession(ctx, "zzzz")
	assert.True(t, errors.Is(err, errNoMatch))

	_, err = e.findSession(ctx, " ")
	assert.True(t, errors.Is(err, errMissingID))
}

func TestCommitDeclinedLeavesStoreUntouched(t *testing.T) {
	e, _ := testEnv(t)
	ctx := testContext(t)
	calls := stubConfirm(t, false)

	addSession(t, e, testutil.Epoch.Add(-3*time.Hour), 2*time.Hour)

	p, err := e.tr.ProposeManual(ctx.Context, tracker.ManualEntry{
		StartTime: testutil.Epoch.Add(-2 * time.Hour),
		EndTime:   testutil.Epoch.Add(-90 * time.Minute),
	})
	require.NoError(t, err)
	require.True(t, p.Result.NeedsConfirmation())

	require.NoError(t, e.commit(ctx, p))
	assert.Equal(t, 1, *calls)

	intervals, err := e.db.Intervals(ctx.Context, "me")
	require.NoError(t, err)
	assert.Len(t, intervals, 1)
}

func TestCommitBlocked(t *testing.T) {
	e, _ := testEnv(t)
	ctx := testContext(t)
	calls := stubConfirm(t, true)

	p, err := e.tr.ProposeManual(ctx.Context, tracker.ManualEntry{
		StartTime: testutil.Epoch.Add(-time.Hour),
		EndTime:   testutil.Epoch.Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	err = e.commit(ctx, p)
	assert.True(t, errors.Is(err, tracker.ErrBlocked))
	assert.Equal(t, 0, *calls)
}

func TestAddActionWithDuration(t *testing.T) {
	e, _ := testEnv(t)
	ctx := testContext(t)
	calls := stubConfirm(t, false)

	e.cfg.CLI.StartTime = testutil.Epoch.Add(-2 * time.Hour)
	e.cfg.CLI.Duration = testutil.Ptr(1800)
	e.cfg.CLI.AssumeYes = true

	require.NoError(t, addAction(ctx, e))
	assert.Equal(t, 0, *calls)

	sessions, err := e.db.List(
		ctx.Context,
		"me",
		time.Time{},
		testutil.Epoch,
	)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	got := sessions[0]
	assert.Equal(t, 1800, got.Duration)
	assert.InDelta(t, 30.0, got.Revenue, 0.001)
	assert.True(t, got.EndTime.Equal(testutil.Epoch.Add(-90*time.Minute)))
}

func TestAddActionMissingInterval(t *testing.T) {
	e, _ := testEnv(t)

	e.cfg.CLI.StartTime = testutil.Epoch

	err := addAction(testContext(t), e)
	assert.True(t, errors.Is(err, errMissingInterval))
}

func TestDeleteAction(t *testing.T) {
	e, _ := testEnv(t)
	stubConfirm(t, true)

	id := addSession(t, e, testutil.Epoch.Add(-3*time.Hour), time.Hour)

	require.NoError(t, deleteAction(testContext(t, id[:8]), e))

	_, err := e.db.Get(context.Background(), id)
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))
}

func TestDeleteActionRefusesRunningSession(t *testing.T) {
	e, _ := testEnv(t)
	ctx := testContext(t)

	st, err := e.tr.Start(ctx.Context, tracker.StartRequest{})
	require.NoError(t, err)

	err = deleteAction(testContext(t, st.State.SessionID), e)
	assert.True(t, errors.Is(err, errDeleteRunning))
}

func TestRestoreStale(t *testing.T) {
	cases := []struct {
		name        string
		choice      staleChoice
		wantRunning bool
		wantSaved   int
	}{
		{name: "archive", choice: staleArchive, wantSaved: 1},
		{name: "continue", choice: staleContinue, wantRunning: true},
		{name: "discard", choice: staleDiscard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, clock := testEnv(t)
			ctx := testContext(t)

			orig := chooseStale
			chooseStale = func(string) (staleChoice, error) {
				return tc.choice, nil
			}

			t.Cleanup(func() {
				chooseStale = orig
			})

			_, err := e.tr.Start(ctx.Context, tracker.StartRequest{})
			require.NoError(t, err)

			clock.Advance(25 * time.Hour)

			running, err := e.restore(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRunning, running)

			sessions, err := e.db.List(ctx.Context, "me", time.Time{}, clock.Now())
			require.NoError(t, err)

			var saved int

			for _, sess := range sessions {
				if sess.Completed() {
					saved++
				}
			}

			assert.Equal(t, tc.wantSaved, saved)
		})
	}
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "b", firstNonEmptyString("", "b", "c"))
	assert.Equal(t, "", firstNonEmptyString("", ""))
}

func TestHelpTextListsTallyCommands(t *testing.T) {
	help := helpText()

	assert.Contains(t, help, "EXAMPLES")
	assert.Contains(t, help, "VisibleCategories")
	assert.Contains(t, help, "tally start --task")
	assert.Contains(t, help, "TALLY_ENV")

	categories := map[string]int{}
	for _, cmd := range Get().Commands {
		categories[cmd.Category]++
	}

	assert.Equal(t, 8, categories[categoryTimer])
	assert.Equal(t, 5, categories[categorySessions])
	assert.Equal(t, 1, categories[categoryConfig])
}
