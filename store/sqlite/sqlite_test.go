package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/testutil"
	"github.com/ayoisaiah/tally/store"
	"github.com/ayoisaiah/tally/store/sqlite"
)

var _ store.DB = (*sqlite.Store)(nil)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewMemory()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestRoundTripWireFields(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id, err := s.Create(ctx, &models.Session{
		UserID:     "me",
		StartTime:  testutil.Epoch,
		HourlyRate: 50,
		Notes:      "kickoff",
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Completed())
	assert.Nil(t, got.TaskID)

	fields := models.Fields{
		StartTime:  testutil.Epoch,
		EndTime:    testutil.Epoch.Add(90 * time.Minute),
		Duration:   5400,
		HourlyRate: 50,
		Revenue:    75,
		Notes:      "kickoff done",
		TaskID:     testutil.Ptr("task-7"),
	}

	require.NoError(t, s.Update(ctx, id, fields))

	got, err = s.Get(ctx, id)
	require.NoError(t, err)

	want := &models.Session{ID: id, UserID: "me"}
	want.Apply(fields)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingSession(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Get(ctx, "nope")
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))

	err = s.Update(ctx, "nope", models.Fields{StartTime: testutil.Epoch, EndTime: testutil.Epoch})
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))

	assert.NoError(t, s.Delete(ctx, "nope"))
}

func TestListOrdersByStart(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	base := testutil.Epoch
	starts := []time.Time{
		base.Add(2 * time.Hour),
		base.Add(500 * time.Millisecond),
		base,
		base.AddDate(0, 0, -2),
	}

	for _, st := range starts {
		end := st.Add(30 * time.Minute)
		_, err := s.Create(ctx, &models.Session{UserID: "me", StartTime: st, EndTime: &end})
		require.NoError(t, err)
	}

	_, err := s.Create(ctx, &models.Session{UserID: "me", StartTime: base.Add(3 * time.Hour)})
	require.NoError(t, err)

	list, err := s.List(ctx, "me", base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.True(t, list[0].StartTime.Equal(base))
	assert.True(t, list[1].StartTime.Equal(base.Add(500*time.Millisecond)))
	assert.True(t, list[2].StartTime.Equal(base.Add(2*time.Hour)))

	intervals, err := s.Intervals(ctx, "me")
	require.NoError(t, err)
	assert.Len(t, intervals, 4)

	others, err := s.Intervals(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "sessions.db")

	s, err := sqlite.New(dbPath)
	require.NoError(t, err)

	id, err := s.Create(ctx, &models.Session{UserID: "me", StartTime: testutil.Epoch})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.New(dbPath)
	require.NoError(t, err)

	defer s.Close()

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.StartTime.Equal(testutil.Epoch))
}
