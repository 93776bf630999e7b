package models

import "github.com/ayoisaiah/tally/internal/apperr"

// ErrSessionNotFound is returned by session stores when no record has the
// requested id.
var ErrSessionNotFound = &apperr.Error{
	Message: "session not found",
}
