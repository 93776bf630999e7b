package config

import "github.com/ayoisaiah/tally/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidThreshold = &apperr.Error{
		Message: "%s must be greater than zero, got %v",
	}

	errNegativeRate = &apperr.Error{
		Message: "the default hourly rate cannot be negative, got %v",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown store driver %q (expected %q or %q)",
	}

	errUnknownLogLevel = &apperr.Error{
		Message: "unknown log level %q",
	}

	errEmptyUser = &apperr.Error{
		Message: "session.user cannot be empty",
	}

	errInvalidCLITime = &apperr.Error{
		Message: "invalid %s time",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid duration %q",
	}

	errUnknownPeriod = &apperr.Error{
		Message: "unknown period %q",
	}
)
