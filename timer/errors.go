package timer

import "github.com/ayoisaiah/tally/internal/apperr"

var (
	errSaveState = &apperr.Error{
		Message: "unable to save timer state",
	}

	errClearState = &apperr.Error{
		Message: "unable to clear timer state",
	}
)
