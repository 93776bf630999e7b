// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const (
	SecondsInAnHour = 3600
	SecondsInADay   = 86400
)

var errUnknownPeriod = errors.New("unknown period")

// Clock supplies the current wall-clock time. Everything that needs "now"
// takes a Clock so that tests can pin it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns T. Advance moves it forward.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// PeriodBounds returns the start and end of a named period relative to now.
// The all-time period starts at the zero time.
func PeriodBounds(p Period, now time.Time) (start, end time.Time, err error) {
	days, ok := Range[p]
	if !ok {
		return start, end, fmt.Errorf("%w: %s", errUnknownPeriod, p)
	}

	end = RoundToEnd(now)

	if p == PeriodAllTime {
		return time.Time{}, end, nil
	}

	start = RoundToStart(now.AddDate(0, 0, days))

	if p == PeriodYesterday {
		end = RoundToEnd(start)
	}

	return start, end, nil
}

// FromStr parses an absolute timestamp or a natural language expression
// such as "20 mins ago" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %q: %w", s, err)
	}

	return dt.Time, nil
}

// ParseISO parses an RFC 3339 timestamp.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// FormatISO formats t as an RFC 3339 timestamp in UTC.
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SecsToHMS splits a number of seconds into hours, minutes and seconds.
func SecsToHMS(secs int) (hrs, mins, s int) {
	hrs = secs / SecondsInAnHour
	mins = (secs % SecondsInAnHour) / 60
	s = secs % 60

	return
}
