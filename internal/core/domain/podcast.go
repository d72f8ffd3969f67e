package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/lueurxax/glint/internal/core/errors"
)

// AudioFormat is a codec supported by the speech provider.
type AudioFormat string

// Supported audio formats.
const (
	AudioFormatMP3  AudioFormat = "mp3"
	AudioFormatOpus AudioFormat = "opus"
	AudioFormatAAC  AudioFormat = "aac"
	AudioFormatFLAC AudioFormat = "flac"
)

// Valid reports whether f is a supported format.
func (f AudioFormat) Valid() bool {
	switch f {
	case AudioFormatMP3, AudioFormatOpus, AudioFormatAAC, AudioFormatFLAC:
		return true
	default:
		return false
	}
}

// Extension returns the file extension for f including the leading dot.
func (f AudioFormat) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type used when serving f.
func (f AudioFormat) ContentType() string {
	return "audio/" + string(f)
}

// ParseAudioFormat normalizes s and validates it. Empty input yields mp3.
func ParseAudioFormat(s string) (AudioFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AudioFormatMP3, nil
	}

	f := AudioFormat(s)
	if !f.Valid() {
		return "", errors.Validationf("unsupported audio format %q", s)
	}

	return f, nil
}

// FormatFromPath infers the audio format from a file extension.
// The second return is false when the extension is unknown.
func FormatFromPath(path string) (AudioFormat, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f := AudioFormat(ext)

	return f, f.Valid()
}

// AudioArtifact is a synthesized audio payload. Exactly one of Path and Data is set.
type AudioArtifact struct {
	Path   string
	Data   []byte
	Format AudioFormat
}

// PodcastEpisode is the value produced by a successful pipeline run.
type PodcastEpisode struct {
	AudioPath      string
	Script         string
	Classification ClassificationResult
	Analysis       AnalysisResult
	Articles       int
	GeneratedAt    time.Time
}
