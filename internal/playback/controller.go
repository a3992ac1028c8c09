// Package playback maintains the music playlist and translates session
// state into play/pause calls on an external player.
package playback

import (
	"time"

	"github.com/burhanahmeed/tempo/internal/models"
)

// resumeDelay gives the player a moment to finish loading a track before
// playback is resumed after a manual advance or retreat.
const resumeDelay = 500 * time.Millisecond

// Controller owns the ordered playlist and the autoplay policy. All
// methods must be called from a single goroutine; the player itself is
// the only collaborator touched from timers.
type Controller struct {
	player  Player
	sink    func(models.Playlist)
	delay   func(time.Duration, func())
	tracks  []models.Track
	current int
	playing bool
	ready   bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSink sets the write-through persistence hook, invoked with a
// playlist snapshot after every playlist mutation.
func WithSink(sink func(models.Playlist)) ControllerOption {
	return func(c *Controller) { c.sink = sink }
}

// WithDelayFunc replaces the deferred-resume scheduler. Tests use this to
// run the resume callback synchronously.
func WithDelayFunc(delay func(time.Duration, func())) ControllerOption {
	return func(c *Controller) { c.delay = delay }
}

// NewController creates a controller over the given player. The player
// may still be initialising; the controller stays inert until it observes
// the ready event via HandleEvent.
func NewController(player Player, opts ...ControllerOption) *Controller {
	c := &Controller{
		player: player,
		delay: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Restore replaces the playlist with persisted state, clamping the cursor
// into range. It does not trigger the write-through sink.
func (c *Controller) Restore(m models.Playlist) {
	c.tracks = m.Tracks
	c.current = m.CurrentIndex

	if c.current < 0 || c.current >= len(c.tracks) {
		c.current = 0
	}
}

// AddTrack parses the URL and appends a track with a placeholder title.
// Unparseable URLs are rejected and the playlist is unchanged.
func (c *Controller) AddTrack(rawURL string) (models.Track, error) {
	videoID, err := ParseVideoID(rawURL)
	if err != nil {
		return models.Track{}, err
	}

	t := newTrack(rawURL, videoID)
	c.tracks = append(c.tracks, t)
	c.persist()

	return t, nil
}

// RemoveTrack deletes the track with the given ID. Removing at or before
// the cursor shifts it so the current track is preserved where possible;
// the cursor resets to zero when it falls out of range or the playlist
// empties.
func (c *Controller) RemoveTrack(id string) bool {
	idx := -1

	for i, t := range c.tracks {
		if t.ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return false
	}

	c.tracks = append(c.tracks[:idx], c.tracks[idx+1:]...)

	if idx < c.current {
		c.current--
	}

	if c.current >= len(c.tracks) {
		c.current = 0
	}

	c.persist()

	return true
}

// Tracks returns the playlist in order.
func (c *Controller) Tracks() []models.Track {
	out := make([]models.Track, len(c.tracks))
	copy(out, c.tracks)

	return out
}

// Current returns the track under the cursor.
func (c *Controller) Current() (models.Track, bool) {
	if len(c.tracks) == 0 {
		return models.Track{}, false
	}

	return c.tracks[c.current], true
}

// CurrentIndex returns the cursor position.
func (c *Controller) CurrentIndex() int {
	return c.current
}

// IsPlaying reports whether the controller believes playback is active.
func (c *Controller) IsPlaying() bool {
	return c.playing
}

// Advance moves the cursor to the next track, wrapping around, and loads
// it. If playback was active it resumes after a short delay so the player
// can finish loading.
func (c *Controller) Advance() {
	c.step(1)
}

// Retreat moves the cursor to the previous track, wrapping around.
func (c *Controller) Retreat() {
	c.step(-1)
}

func (c *Controller) step(dir int) {
	n := len(c.tracks)
	if n == 0 {
		return
	}

	c.current = (c.current + dir + n) % n
	c.persist()

	if !c.ready {
		return
	}

	c.player.Load(c.tracks[c.current].VideoID)

	if c.playing {
		p := c.player
		c.delay(resumeDelay, p.Play)
	}
}

// SetVolume passes the volume through to the player when present. The
// input is the settings-level fraction in [0, 1].
func (c *Controller) SetVolume(fraction float64) {
	if !c.ready {
		return
	}

	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	c.player.SetVolume(int(fraction * 100))
}

// Recompute applies the level-triggered autoplay policy: playback runs
// exactly while music is enabled, the session is running, the session is
// a focus session, and the playlist is non-empty. It is safe to call on
// every state change.
func (c *Controller) Recompute(musicOn, sessionRunning, focus bool) {
	want := musicOn && sessionRunning && focus && len(c.tracks) > 0

	if !c.ready {
		c.playing = false
		return
	}

	if want && !c.playing {
		c.player.Play()
		c.playing = true
	} else if !want && c.playing {
		c.player.Pause()
		c.playing = false
	}
}

// HandleEvent consumes a player event. The ready event attaches the
// player and loads the current track; an end-of-track event advances the
// playlist.
func (c *Controller) HandleEvent(ev Event) {
	switch ev.Kind {
	case EventReady:
		c.ready = true

		if t, ok := c.Current(); ok {
			c.player.Load(t.VideoID)
		}
	case EventTrackEnded:
		c.Advance()
	}
}

func (c *Controller) persist() {
	if c.sink != nil {
		c.sink(models.Playlist{
			Tracks:       c.Tracks(),
			CurrentIndex: c.current,
		})
	}
}
