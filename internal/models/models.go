package models

import (
	"time"
)

// Session is a focus session record as held by a session store. The json
// names are the wire contract with the store and must not change.
type Session struct {
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	TaskID     *string    `json:"task_id"`
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Notes      string     `json:"notes"`
	Duration   int        `json:"duration"`
	HourlyRate float64    `json:"hourly_rate"`
	Revenue    float64    `json:"revenue"`
}

// Completed reports whether the session has an end time.
func (s *Session) Completed() bool {
	return s.EndTime != nil
}

// Interval returns the time span of a completed session.
func (s *Session) Interval() Interval {
	iv := Interval{
		ID:        s.ID,
		StartTime: s.StartTime,
	}

	if s.EndTime != nil {
		iv.EndTime = *s.EndTime
	}

	return iv
}

// Apply copies the fields of f onto the session.
func (s *Session) Apply(f Fields) {
	s.StartTime = f.StartTime
	s.EndTime = &f.EndTime
	s.Duration = f.Duration
	s.HourlyRate = f.HourlyRate
	s.Revenue = f.Revenue
	s.Notes = f.Notes
	s.TaskID = f.TaskID
}

// Fields is the set of fields the core writes when it finalises a session.
type Fields struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TaskID     *string   `json:"task_id"`
	Notes      string    `json:"notes"`
	Duration   int       `json:"duration"`
	HourlyRate float64   `json:"hourly_rate"`
	Revenue    float64   `json:"revenue"`
}

// Interval is the span of another completed session, used for overlap checks.
type Interval struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ID        string    `json:"id"`
}

// Overlaps reports whether the half-open intervals [a.Start, a.End) and
// [b.Start, b.End) intersect.
func (a Interval) Overlaps(b Interval) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}
