package playback

import "github.com/burhanahmeed/tempo/internal/apperr"

var (
	errUnsupportedURL = &apperr.Error{
		Message: "unsupported track URL: %s",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}
)
