package playback

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/burhanahmeed/tempo/internal/models"
)

// placeholderTitle is assigned to new tracks until metadata is filled in
// by the user.
const placeholderTitle = "Untitled track"

// videoIDPatterns are the three accepted URL shapes for externally hosted
// tracks. Anything else is rejected.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://youtu\.be/([\w-]+)`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/watch\?(?:[\w-]+=[^&\s]*&)*v=([\w-]+)`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/embed/([\w-]+)`),
}

// ParseVideoID extracts the external video identifier from a track URL.
func ParseVideoID(rawURL string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}

	return "", errUnsupportedURL.Fmt(rawURL)
}

func newTrack(rawURL, videoID string) models.Track {
	return models.Track{
		ID:        uuid.New().String(),
		Title:     placeholderTitle,
		VideoID:   videoID,
		SourceURL: rawURL,
	}
}
