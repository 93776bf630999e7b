// Package stats summarises saved sessions by task and by day
package stats

import (
	"sort"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/timeutil"
)

// Totals is an aggregate over a group of sessions.
type Totals struct {
	Sessions int     `json:"sessions"`
	Seconds  int     `json:"seconds"`
	Revenue  float64 `json:"revenue"`
}

func (t *Totals) add(sess *models.Session) {
	t.Sessions++
	t.Seconds += sess.Duration
	t.Revenue += sess.Revenue
}

// TaskRow holds the totals of one task. An empty TaskID groups sessions
// that were not linked to a task.
type TaskRow struct {
	TaskID string `json:"task_id"`
	Totals
}

// DayRow holds the totals of one calendar day.
type DayRow struct {
	Day time.Time `json:"day"`
	Totals
}

// Stats is the summary of a reporting period.
type Stats struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Total Totals    `json:"total"`
	// AvgSeconds is the mean time logged per day of the period.
	AvgSeconds int       `json:"avg_seconds_per_day"`
	Tasks      []TaskRow `json:"tasks"`
	Days       []DayRow  `json:"days"`
}

// Compute summarises the completed sessions that started within
// [start, end]. Days are calendar days in end's location. A zero start
// means the period begins on the day of the earliest session.
func Compute(sessions []*models.Session, start, end time.Time) *Stats {
	loc := end.Location()

	filtered := filterSessions(sessions, start, end)

	if start.IsZero() && len(filtered) > 0 {
		start = filtered[0].StartTime

		for _, sess := range filtered[1:] {
			if sess.StartTime.Before(start) {
				start = sess.StartTime
			}
		}

		start = timeutil.RoundToStart(start.In(loc))
	}

	st := &Stats{
		Start: start,
		End:   end,
		Tasks: []TaskRow{},
		Days:  []DayRow{},
	}

	tasks := make(map[string]*Totals)
	days := populateDays(start, end)

	for _, sess := range filtered {
		st.Total.add(sess)

		var taskID string
		if sess.TaskID != nil {
			taskID = *sess.TaskID
		}

		if tasks[taskID] == nil {
			tasks[taskID] = &Totals{}
		}

		tasks[taskID].add(sess)

		day := timeutil.RoundToStart(sess.StartTime.In(loc))
		if days[day] == nil {
			days[day] = &Totals{}
		}

		days[day].add(sess)
	}

	for id, t := range tasks {
		st.Tasks = append(st.Tasks, TaskRow{TaskID: id, Totals: *t})
	}

	sort.Slice(st.Tasks, func(i, j int) bool {
		a, b := st.Tasks[i].TaskID, st.Tasks[j].TaskID
		if a == "" || b == "" {
			return b == "" && a != ""
		}

		return natural.Less(a, b)
	})

	for day, t := range days {
		st.Days = append(st.Days, DayRow{Day: day, Totals: *t})
	}

	sort.Slice(st.Days, func(i, j int) bool {
		return st.Days[i].Day.Before(st.Days[j].Day)
	})

	if len(st.Days) > 0 {
		st.AvgSeconds = st.Total.Seconds / len(st.Days)
	}

	return st
}

// populateDays returns an empty entry for each day of the period so that
// days without sessions still show up.
func populateDays(start, end time.Time) map[time.Time]*Totals {
	m := make(map[time.Time]*Totals)

	if start.IsZero() || end.Before(start) {
		return m
	}

	loc := end.Location()

	for d := timeutil.RoundToStart(start.In(loc)); !d.After(end); d = d.AddDate(0, 0, 1) {
		m[d] = &Totals{}
	}

	return m
}

// filterSessions drops running sessions and those outside the period.
func filterSessions(sessions []*models.Session, start, end time.Time) []*models.Session {
	filtered := make([]*models.Session, 0, len(sessions))

	for _, sess := range sessions {
		if !sess.Completed() || sess.EndTime.Before(sess.StartTime) {
			continue
		}

		if sess.StartTime.Before(start) || sess.StartTime.After(end) {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}
