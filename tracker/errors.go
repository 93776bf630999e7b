package tracker

import "github.com/ayoisaiah/tally/internal/apperr"

var (
	ErrSessionActive = &apperr.Error{
		Message: "a session is already running: stop or discard it first",
	}

	ErrNoActiveSession = &apperr.Error{
		Message: "no session is running",
	}

	ErrAlreadyPaused = &apperr.Error{
		Message: "the session is already paused",
	}

	ErrNotPaused = &apperr.Error{
		Message: "the session is not paused",
	}

	ErrBlocked = &apperr.Error{
		Message: "the session cannot be saved until its errors are fixed",
	}

	ErrUnconfirmed = &apperr.Error{
		Message: "the session has warnings that must be confirmed before saving",
	}

	ErrStaleProposal = &apperr.Error{
		Message: "the running session changed since the proposal was made",
	}
)
