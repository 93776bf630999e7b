package app

import "github.com/ayoisaiah/tally/internal/apperr"

var (
	errMissingInterval = &apperr.Error{
		Message: "a manual session needs --start and either --end or --duration",
	}

	errMissingID = &apperr.Error{
		Message: "provide the id of a session (see 'tally list')",
	}

	errNoMatch = &apperr.Error{
		Message: "no session matches %q",
	}

	errAmbiguousID = &apperr.Error{
		Message: "%q matches more than one session, use more characters",
	}

	errDeleteRunning = &apperr.Error{
		Message: "session %s is still running: use 'tally discard' instead",
	}

	errEditRunning = &apperr.Error{
		Message: "session %s is still running: stop it before editing",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to parse settings.cmd",
	}
)
