package playback

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/maruel/natural"

	"github.com/burhanahmeed/tempo/internal/pathutil"
)

// playbackSampleRate is the fixed speaker sample rate; decoded streams
// are resampled to it.
const playbackSampleRate = beep.SampleRate(44100)

const resampleQuality = 4

var trackExtensions = []string{".ogg", ".mp3", ".flac", ".wav"}

// SpeakerPlayer plays cached audio files for playlist tracks through the
// system speaker. Initialisation is asynchronous; the ready event is
// delivered exactly once on the events channel.
type SpeakerPlayer struct {
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	stream    beep.StreamSeekCloser
	events    chan Event
	tracksDir string
	gen       int
}

// NewSpeakerPlayer starts speaker initialisation and returns immediately.
func NewSpeakerPlayer(tracksDir string) *SpeakerPlayer {
	p := &SpeakerPlayer{
		tracksDir: tracksDir,
		events:    make(chan Event, 8),
	}

	go func() {
		bufferSize := 10

		err := speaker.Init(
			playbackSampleRate,
			playbackSampleRate.N(time.Duration(int(time.Second)/bufferSize)),
		)
		if err != nil {
			slog.Error("speaker init failed", "error", err)
			close(p.events)

			return
		}

		p.events <- Event{Kind: EventReady}
	}()

	return p
}

// Load decodes the cached audio file for the video ID and queues it on
// the speaker, paused. A missing or undecodable file is a guarded skip.
func (p *SpeakerPlayer) Load(videoID string) {
	path, ok := p.findTrackFile(videoID)
	if !ok {
		slog.Warn("no cached audio for track", "video_id", videoID)
		p.clear()

		return
	}

	stream, format, err := decodeSoundFile(path)
	if err != nil {
		slog.Error("unable to decode track", "path", path, "error", err)
		p.clear()

		return
	}

	resampled := beep.Resample(
		resampleQuality,
		format.SampleRate,
		playbackSampleRate,
		stream,
	)

	speaker.Clear()

	speaker.Lock()
	if p.stream != nil {
		// Clear never runs the end callback, so the replaced stream
		// must be closed here
		_ = p.stream.Close()
	}

	p.stream = stream
	p.gen++
	gen := p.gen
	prevVolume := 0.0

	if p.volume != nil {
		prevVolume = p.volume.Volume
	}

	p.ctrl = &beep.Ctrl{Streamer: resampled, Paused: true}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   prevVolume,
	}
	speaker.Unlock()

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// the callback runs on the speaker goroutine with its lock
		// held; finish on another goroutine
		go p.finishTrack(gen)
	})))
}

// finishTrack handles a stream draining on the speaker. Only a stream
// that ran to its natural end still owns the current generation; a Clear
// from a later Load or clear has already closed it and moved on.
func (p *SpeakerPlayer) finishTrack(gen int) {
	speaker.Lock()
	ended := gen == p.gen

	if ended && p.stream != nil {
		_ = p.stream.Close()
		p.stream = nil
	}
	speaker.Unlock()

	if ended {
		p.events <- Event{Kind: EventTrackEnded}
	}
}

func (p *SpeakerPlayer) Play() {
	speaker.Lock()
	if p.ctrl != nil {
		p.ctrl.Paused = false
	}
	speaker.Unlock()
}

func (p *SpeakerPlayer) Pause() {
	speaker.Lock()
	if p.ctrl != nil {
		p.ctrl.Paused = true
	}
	speaker.Unlock()
}

// SetVolume maps a 0..100 percentage onto the logarithmic volume effect.
func (p *SpeakerPlayer) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	speaker.Lock()
	defer speaker.Unlock()

	if p.volume == nil {
		return
	}

	if percent == 0 {
		p.volume.Silent = true
		return
	}

	p.volume.Silent = false
	p.volume.Volume = math.Log2(float64(percent) / 100)
}

func (p *SpeakerPlayer) Events() <-chan Event {
	return p.events
}

func (p *SpeakerPlayer) Close() error {
	p.clear()
	speaker.Close()

	return nil
}

func (p *SpeakerPlayer) clear() {
	speaker.Clear()

	speaker.Lock()
	if p.stream != nil {
		_ = p.stream.Close()
		p.stream = nil
	}

	p.gen++
	p.ctrl = nil
	p.volume = nil
	speaker.Unlock()
}

// findTrackFile resolves a video ID to a cached audio file.
func (p *SpeakerPlayer) findTrackFile(videoID string) (string, bool) {
	for _, ext := range trackExtensions {
		path := filepath.Join(p.tracksDir, videoID+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return "", false
}

// decodeSoundFile opens and decodes an audio file based on its extension.
func decodeSoundFile(
	path string,
) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, format, err
	}

	switch filepath.Ext(path) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, format, errInvalidSoundFormat.Fmt(path)
	}

	if err != nil {
		_ = f.Close()
		return nil, format, err
	}

	return stream, format, nil
}

// CachedTracks lists the video IDs with audio files in the tracks cache,
// in natural order.
func CachedTracks(tracksDir string) []string {
	entries, err := os.ReadDir(tracksDir)
	if err != nil {
		return nil
	}

	var ids []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)

		for _, valid := range trackExtensions {
			if ext == valid {
				ids = append(ids, pathutil.StripExtension(name))
				break
			}
		}
	}

	sort.Sort(natural.StringSlice(ids))

	return ids
}
