package store

import "github.com/ayoisaiah/tally/internal/apperr"

var errTallyRunning = &apperr.Error{
	Message: "is tally already running? Only one instance can be active at a time",
}
