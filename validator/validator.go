// Package validator decides whether a proposed focus session may be saved.
// It computes the derived duration and revenue of a session and classifies
// every problem it finds as a blocking error or a warning that needs
// confirmation.
package validator

import (
	"fmt"
	"math"
	"time"

	"github.com/hako/durafmt"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/timeutil"
)

// Kind classifies a validation problem.
type Kind string

const (
	KindTemporalOrder     Kind = "temporal_order"
	KindFutureStart       Kind = "future_start"
	KindOverlap           Kind = "overlap"
	KindExcessiveDuration Kind = "excessive_duration"
	KindSuspiciousRate    Kind = "suspicious_rate"
	KindDurationMismatch  Kind = "duration_mismatch"
)

const (
	DefaultFutureTolerance   = 5 * time.Minute
	DefaultMaxDuration       = 12 * time.Hour
	DefaultMaxHourlyRate     = 1000.0
	DefaultDurationTolerance = 60 * time.Second
)

// Problem is a single validation finding.
type Problem struct {
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// Result is the outcome of ValidateSession. Errors block the save; warnings
// require explicit confirmation.
type Result struct {
	Errors   []Problem `json:"errors"`
	Warnings []Problem `json:"warnings"`
	Duration int       `json:"duration"`
	Revenue  float64   `json:"revenue"`
}

// Blocked reports whether the session must not be saved.
func (r *Result) Blocked() bool {
	return len(r.Errors) > 0
}

// NeedsConfirmation reports whether the session may only be saved after the
// user has confirmed the warnings.
func (r *Result) NeedsConfirmation() bool {
	return len(r.Warnings) > 0
}

// HasKind reports whether any error or warning is of kind k.
func (r *Result) HasKind(k Kind) bool {
	for _, p := range r.Errors {
		if p.Kind == k {
			return true
		}
	}

	for _, p := range r.Warnings {
		if p.Kind == k {
			return true
		}
	}

	return false
}

// Candidate is a proposed session.
type Candidate struct {
	StartTime time.Time
	EndTime   time.Time
	// HourlyRate is nil when no rate was given.
	HourlyRate *float64
	// Duration is a manually entered duration in seconds. Nil means the
	// duration is derived from the interval.
	Duration *int
	TaskID   *string
	Notes    string
}

// Options tunes ValidateSession. Zero thresholds take the package defaults.
type Options struct {
	Now               time.Time
	ExcludeID         string
	FutureTolerance   time.Duration
	MaxDuration       time.Duration
	MaxHourlyRate     float64
	DurationTolerance time.Duration
}

func (o *Options) setDefaults() {
	if o.FutureTolerance <= 0 {
		o.FutureTolerance = DefaultFutureTolerance
	}

	if o.MaxDuration <= 0 {
		o.MaxDuration = DefaultMaxDuration
	}

	if o.MaxHourlyRate <= 0 {
		o.MaxHourlyRate = DefaultMaxHourlyRate
	}

	if o.DurationTolerance <= 0 {
		o.DurationTolerance = DefaultDurationTolerance
	}
}

// CalculateDuration returns the whole number of seconds between start and
// end.
func CalculateDuration(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, ErrInvalidInterval.Wrap(
			fmt.Errorf("start %s, end %s", timeutil.FormatISO(start), timeutil.FormatISO(end)),
		)
	}

	return timeutil.Round(end.Sub(start).Seconds()), nil
}

// CalculateRevenue returns the revenue earned for a duration at an hourly
// rate, rounded to cents. A non-positive rate earns nothing.
func CalculateRevenue(durationSeconds int, hourlyRate float64) float64 {
	if hourlyRate <= 0 || durationSeconds <= 0 {
		return 0
	}

	revenue := float64(durationSeconds) / timeutil.SecondsInAnHour * hourlyRate

	return math.Round(revenue*100) / 100
}

// ValidateSession runs every check against c and reports all problems at
// once. others holds the user's other completed sessions; the entry whose id
// equals opts.ExcludeID is ignored.
func ValidateSession(
	c *Candidate,
	others []models.Interval,
	opts Options,
) Result {
	opts.setDefaults()

	res := Result{
		Errors:   []Problem{},
		Warnings: []Problem{},
	}

	computed, err := CalculateDuration(c.StartTime, c.EndTime)
	validInterval := err == nil

	if !validInterval {
		res.Errors = append(res.Errors, Problem{
			Kind: KindTemporalOrder,
			Message: fmt.Sprintf(
				msgTemporalOrder,
				timeutil.FormatISO(c.EndTime),
				timeutil.FormatISO(c.StartTime),
			),
		})
	}

	if c.StartTime.After(opts.Now.Add(opts.FutureTolerance)) {
		res.Errors = append(res.Errors, Problem{
			Kind:    KindFutureStart,
			Message: fmt.Sprintf(msgFutureStart, timeutil.FormatISO(c.StartTime)),
		})
	}

	if validInterval {
		res.Warnings = append(res.Warnings, overlaps(c, others, opts.ExcludeID)...)
	}

	duration := computed
	if c.Duration != nil {
		duration = *c.Duration
	}

	if validInterval && time.Duration(duration)*time.Second > opts.MaxDuration {
		res.Warnings = append(res.Warnings, Problem{
			Kind: KindExcessiveDuration,
			Message: fmt.Sprintf(
				msgExcessiveDuration,
				durafmt.Parse(time.Duration(duration)*time.Second).LimitFirstN(2),
				durafmt.Parse(opts.MaxDuration).LimitFirstN(2),
			),
		})
	}

	if c.HourlyRate != nil &&
		(*c.HourlyRate < 0 || *c.HourlyRate > opts.MaxHourlyRate) {
		res.Warnings = append(res.Warnings, Problem{
			Kind:    KindSuspiciousRate,
			Message: fmt.Sprintf(msgSuspiciousRate, *c.HourlyRate, opts.MaxHourlyRate),
		})
	}

	if validInterval && c.Duration != nil {
		diff := *c.Duration - computed
		if diff < 0 {
			diff = -diff
		}

		if time.Duration(diff)*time.Second > opts.DurationTolerance {
			res.Warnings = append(res.Warnings, Problem{
				Kind:    KindDurationMismatch,
				Message: fmt.Sprintf(msgDurationMismatch, *c.Duration, computed, diff),
			})
		}
	}

	if validInterval {
		res.Duration = duration

		var rate float64
		if c.HourlyRate != nil {
			rate = *c.HourlyRate
		}

		res.Revenue = CalculateRevenue(duration, rate)
	}

	return res
}

// overlaps returns one warning per interval in others that intersects c.
func overlaps(c *Candidate, others []models.Interval, excludeID string) []Problem {
	var problems []Problem

	cand := models.Interval{StartTime: c.StartTime, EndTime: c.EndTime}

	for _, o := range others {
		if excludeID != "" && o.ID == excludeID {
			continue
		}

		if !cand.Overlaps(o) {
			continue
		}

		problems = append(problems, Problem{
			Kind:      KindOverlap,
			SessionID: o.ID,
			Message: fmt.Sprintf(
				msgOverlap,
				o.ID,
				timeutil.FormatISO(o.StartTime),
				timeutil.FormatISO(o.EndTime),
			),
		})
	}

	return problems
}
