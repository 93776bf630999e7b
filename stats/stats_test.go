package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/testutil"
	"github.com/ayoisaiah/tally/internal/timeutil"
	"github.com/ayoisaiah/tally/stats"
)

func session(start time.Time, secs int, revenue float64, task *string) *models.Session {
	end := start.Add(time.Duration(secs) * time.Second)

	return &models.Session{
		StartTime: start,
		EndTime:   &end,
		Duration:  secs,
		Revenue:   revenue,
		TaskID:    task,
	}
}

func TestCompute(t *testing.T) {
	day := testutil.Epoch
	start, end, err := timeutil.PeriodBounds(timeutil.Period7Days, day)
	require.NoError(t, err)

	sessions := []*models.Session{
		session(day, 3600, 50, testutil.Ptr("task-10")),
		session(day.Add(2*time.Hour), 1800, 25, testutil.Ptr("task-2")),
		session(day.AddDate(0, 0, -1), 600, 0, nil),
		session(day.AddDate(0, 0, -2), 1200, 10, testutil.Ptr("task-2")),
		// outside the period
		session(day.AddDate(0, 0, -30), 3600, 100, testutil.Ptr("task-1")),
		// still running
		{StartTime: day.Add(4 * time.Hour)},
	}

	st := stats.Compute(sessions, start, end)

	assert.Equal(t, stats.Totals{Sessions: 4, Seconds: 7200, Revenue: 85}, st.Total)

	require.Len(t, st.Tasks, 3)
	assert.Equal(t, "task-2", st.Tasks[0].TaskID)
	assert.Equal(t, 3000, st.Tasks[0].Seconds)
	assert.Equal(t, "task-10", st.Tasks[1].TaskID)
	assert.Equal(t, "", st.Tasks[2].TaskID)

	require.Len(t, st.Days, 7)
	assert.True(t, st.Days[6].Day.Equal(timeutil.RoundToStart(day)))
	assert.Equal(t, 5400, st.Days[6].Seconds)
	assert.Equal(t, 600, st.Days[5].Seconds)
	assert.Equal(t, 0, st.Days[0].Sessions)
	assert.Equal(t, 7200/7, st.AvgSeconds)
}

func TestComputeAllTime(t *testing.T) {
	day := testutil.Epoch
	_, end, err := timeutil.PeriodBounds(timeutil.PeriodAllTime, day)
	require.NoError(t, err)

	st := stats.Compute([]*models.Session{
		session(day.AddDate(0, 0, -2), 60, 1, nil),
		session(day, 60, 1, nil),
	}, time.Time{}, end)

	assert.True(t, st.Start.Equal(timeutil.RoundToStart(day.AddDate(0, 0, -2))))
	assert.Len(t, st.Days, 3)
}

func TestComputeEmpty(t *testing.T) {
	st := stats.Compute(nil, time.Time{}, testutil.Epoch)

	assert.Empty(t, st.Tasks)
	assert.Empty(t, st.Days)
	assert.Zero(t, st.AvgSeconds)
}

func TestTotalsMatchInputs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")

		var (
			sessions []*models.Session
			secs     int
		)

		for i := 0; i < n; i++ {
			offset := rapid.IntRange(0, 6*24*60).Draw(t, "offset")
			d := rapid.IntRange(1, 7200).Draw(t, "duration")
			task := rapid.SampledFrom([]string{"", "a", "b2", "b10"}).Draw(t, "task")

			var taskID *string
			if task != "" {
				taskID = &task
			}

			start := testutil.Epoch.Add(-time.Duration(offset) * time.Minute)
			sessions = append(sessions, session(start, d, 0, taskID))
			secs += d
		}

		st := stats.Compute(sessions, testutil.Epoch.AddDate(0, 0, -7), testutil.Epoch)

		if st.Total.Seconds != secs || st.Total.Sessions != n {
			t.Fatalf("totals %+v, want %d sessions and %d seconds", st.Total, n, secs)
		}

		var taskSecs, daySecs int
		for _, row := range st.Tasks {
			taskSecs += row.Seconds
		}

		for _, row := range st.Days {
			daySecs += row.Seconds
		}

		if taskSecs != secs || daySecs != secs {
			t.Fatalf("task sum %d, day sum %d, want %d", taskSecs, daySecs, secs)
		}
	})
}
