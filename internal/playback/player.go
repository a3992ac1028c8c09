package playback

// EventKind identifies player events.
type EventKind int

const (
	// EventReady is emitted exactly once, when the player has finished
	// its asynchronous initialisation.
	EventReady EventKind = iota
	// EventTrackEnded is emitted when the loaded track plays to its end.
	EventTrackEnded
)

// Event is a player state event.
type Event struct {
	Kind EventKind
}

// Player is the external playback capability. Implementations initialise
// asynchronously; callers must treat the player as unavailable until the
// ready event arrives and all operations before then are skipped, not
// queued.
type Player interface {
	// Load prepares the track with the given external video ID. Loading
	// leaves the player paused.
	Load(videoID string)
	Play()
	Pause()
	// SetVolume accepts a percentage in 0..100.
	SetVolume(percent int)
	// Events delivers the one-shot ready event followed by end-of-track
	// events.
	Events() <-chan Event
	Close() error
}
