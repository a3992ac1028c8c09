package playback

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAVFile writes a minimal PCM wave file that the decoder accepts.
func writeWAVFile(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer

	le := func(v any) {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}

	samples := make([]byte, 8)

	buf.WriteString("RIFF")
	le(uint32(36 + len(samples)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	le(uint32(16))
	le(uint16(1)) // PCM
	le(uint16(1)) // mono
	le(uint32(44100))
	le(uint32(44100 * 2))
	le(uint16(2))
	le(uint16(16))
	buf.WriteString("data")
	le(uint32(len(samples)))
	buf.Write(samples)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func newSpeakerPlayer(t *testing.T, videoIDs ...string) *SpeakerPlayer {
	t.Helper()

	dir := t.TempDir()

	for _, id := range videoIDs {
		writeWAVFile(t, filepath.Join(dir, id+".wav"))
	}

	return &SpeakerPlayer{
		tracksDir: dir,
		events:    make(chan Event, 8),
	}
}

func TestLoadClosesReplacedStream(t *testing.T) {
	p := newSpeakerPlayer(t, "abc123", "def456")

	p.Load("abc123")
	first := p.stream
	require.NotNil(t, first)

	p.Load("def456")
	require.NotNil(t, p.stream)
	assert.NotSame(t, first, p.stream)

	assert.Error(t, first.Close(), "the replaced stream should already be closed")
}

func TestLoadMissingTrackClearsStream(t *testing.T) {
	p := newSpeakerPlayer(t, "abc123")

	p.Load("abc123")
	first := p.stream
	require.NotNil(t, first)

	p.Load("does-not-exist")
	assert.Nil(t, p.stream)
	assert.Error(t, first.Close())
}

func TestCloseReleasesStream(t *testing.T) {
	p := newSpeakerPlayer(t, "abc123")

	p.Load("abc123")
	first := p.stream
	require.NotNil(t, first)

	require.NoError(t, p.Close())
	assert.Nil(t, p.stream)
	assert.Error(t, first.Close())
}