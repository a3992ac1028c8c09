package config

import "github.com/burhanahmeed/tempo/internal/apperr"

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

	errInvalidMinutes = &apperr.Error{
		Message: "%s length must be between %d and %d minutes",
	}

	errInvalidVolume = &apperr.Error{
		Message: "music volume must be between 0.0 and 1.0, got %v",
	}
)
