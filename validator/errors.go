package validator

import "github.com/ayoisaiah/tally/internal/apperr"

// ErrInvalidInterval is returned when a session does not end after it starts.
var ErrInvalidInterval = &apperr.Error{
	Message: "invalid interval: end time must be after start time",
}

const (
	msgTemporalOrder     = "end time (%s) must be after start time (%s)"
	msgFutureStart       = "start time (%s) is in the future"
	msgOverlap           = "overlaps with session %s (%s - %s)"
	msgExcessiveDuration = "duration of %s exceeds %s: did you forget to stop the timer?"
	msgSuspiciousRate    = "hourly rate of %.2f is outside the expected range (0 - %.2f)"
	msgDurationMismatch  = "entered duration (%ds) differs from the interval (%ds) by %ds"
)
