// Package speech converts podcast scripts to audio through the OpenAI
// text-to-speech endpoint.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/lueurxax/glint/internal/core/domain"
	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/platform/observability"
)

const (
	MinSpeed     = 0.25
	MaxSpeed     = 4.0
	DefaultSpeed = 1.0
	DefaultVoice = "nova"
	DefaultModel = "tts-1"

	defaultTimeout = 120 * time.Second
	tempPattern    = "glint-speech-*"
	dirPerm        = 0o755
	filePerm       = 0o644

	statusSuccess = "success"
	statusError   = "error"
)

var (
	voices = map[string]struct{}{
		"alloy": {}, "echo": {}, "fable": {}, "onyx": {}, "nova": {}, "shimmer": {},
	}

	models = map[string]struct{}{
		"tts-1": {}, "tts-1-hd": {},
	}
)

// Request describes one synthesis call. Zero values take the configured
// defaults; a nil Speed does too, while an explicit Speed is always validated.
type Request struct {
	Text       string
	Voice      string
	Model      string
	Format     string
	Speed      *float64
	OutputPath string // empty returns the audio bytes instead of writing a file
	APIKey     string // overrides the configured key
}

// Speed returns a pointer to v for Request.Speed.
func Speed(v float64) *float64 {
	return &v
}

// ValidateSpeed rejects an explicit speed outside [MinSpeed, MaxSpeed].
// Nil means the default and is accepted.
func ValidateSpeed(speed *float64) error {
	if speed == nil {
		return nil
	}

	if *speed < MinSpeed || *speed > MaxSpeed {
		return apperrors.Validationf("Speed must be between %.2f and %.1f", MinSpeed, MaxSpeed)
	}

	return nil
}

// Synthesizer performs text-to-speech calls. Each call builds its own client.
type Synthesizer struct {
	cfg        config.SpeechConfig
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(cfg config.SpeechConfig, logger *zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		cfg:    cfg,
		logger: logger,
	}
}

// WithHTTPClient replaces the HTTP client used by the provider SDK.
func (s *Synthesizer) WithHTTPClient(c *http.Client) *Synthesizer {
	s.httpClient = c

	return s
}

type resolvedRequest struct {
	text   string
	voice  string
	model  string
	format domain.AudioFormat
	speed  float64
	apiKey string
}

// resolve applies defaults and validates every parameter before any network call.
func (s *Synthesizer) resolve(req Request) (resolvedRequest, error) {
	r := resolvedRequest{
		text:   req.Text,
		voice:  firstNonEmpty(req.Voice, s.cfg.Voice, DefaultVoice),
		model:  firstNonEmpty(req.Model, s.cfg.Model, DefaultModel),
		speed:  firstNonZero(s.cfg.Speed, DefaultSpeed),
		apiKey: firstNonEmpty(req.APIKey, s.cfg.APIKey),
	}

	if strings.TrimSpace(r.text) == "" {
		return r, apperrors.Validationf("Text is required")
	}

	if req.Speed != nil {
		r.speed = *req.Speed
	}

	if err := ValidateSpeed(&r.speed); err != nil {
		return r, err
	}

	format, err := domain.ParseAudioFormat(firstNonEmpty(req.Format, s.cfg.Format))
	if err != nil {
		return r, err
	}

	r.format = format

	if _, ok := voices[r.voice]; !ok {
		return r, apperrors.Validationf("unsupported voice %q", r.voice)
	}

	if _, ok := models[r.model]; !ok {
		return r, apperrors.Validationf("unsupported speech model %q", r.model)
	}

	if r.apiKey == "" {
		return r, apperrors.Validationf("no API key configured for text-to-speech")
	}

	return r, nil
}

// Synthesize converts req.Text to audio. With OutputPath set the file is
// written (extension corrected to the format) and Path is returned;
// otherwise Data holds the audio bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (domain.AudioArtifact, error) {
	r, err := s.resolve(req)
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	data, err := s.fetchAudio(ctx, r)
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	if req.OutputPath == "" {
		return domain.AudioArtifact{Data: data, Format: r.format}, nil
	}

	path := correctExtension(req.OutputPath, r.format)

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return domain.AudioArtifact{}, fmt.Errorf("creating audio directory: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return domain.AudioArtifact{}, fmt.Errorf("writing audio file: %w", err)
	}

	s.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("audio written")

	return domain.AudioArtifact{Path: path, Format: r.format}, nil
}

// SynthesizeToTemp writes the audio to a new temporary file and returns its
// path. The caller owns the file.
func (s *Synthesizer) SynthesizeToTemp(ctx context.Context, req Request) (domain.AudioArtifact, error) {
	r, err := s.resolve(req)
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	tmp, err := os.CreateTemp("", tempPattern+r.format.Extension())
	if err != nil {
		return domain.AudioArtifact{}, fmt.Errorf("creating temp audio file: %w", err)
	}

	name := tmp.Name()
	_ = tmp.Close()

	req.OutputPath = name

	artifact, err := s.Synthesize(ctx, req)
	if err != nil {
		_ = os.Remove(name)

		return domain.AudioArtifact{}, err
	}

	return artifact, nil
}

func (s *Synthesizer) fetchAudio(ctx context.Context, r resolvedRequest) ([]byte, error) {
	cfg := openai.DefaultConfig(r.apiKey)
	if s.cfg.BaseURL != "" {
		cfg.BaseURL = s.cfg.BaseURL
	}

	if s.httpClient != nil {
		cfg.HTTPClient = s.httpClient
	}

	client := openai.NewClientWithConfig(cfg)

	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	resp, err := client.CreateSpeech(callCtx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(r.model),
		Input:          r.text,
		Voice:          openai.SpeechVoice(r.voice),
		ResponseFormat: openai.SpeechResponseFormat(r.format),
		Speed:          r.speed,
	})
	if err != nil {
		observability.SpeechRequests.WithLabelValues(r.model, string(r.format), statusError).Inc()

		return nil, fmt.Errorf("creating speech: %w", classifyError(err))
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		observability.SpeechRequests.WithLabelValues(r.model, string(r.format), statusError).Inc()

		return nil, fmt.Errorf("reading speech audio: %w: %w", apperrors.ErrTransport, err)
	}

	if len(data) == 0 {
		observability.SpeechRequests.WithLabelValues(r.model, string(r.format), statusError).Inc()

		return nil, fmt.Errorf("creating speech: %w", apperrors.ErrEmptyResponse)
	}

	observability.SpeechRequests.WithLabelValues(r.model, string(r.format), statusSuccess).Inc()
	observability.SpeechBytes.Add(float64(len(data)))

	s.logger.Info().
		Str("model", r.model).
		Str("voice", r.voice).
		Str("format", string(r.format)).
		Int("chars", len(r.text)).
		Dur("duration", time.Since(start)).
		Msg("speech synthesized")

	return data, nil
}

// correctExtension replaces path's extension when it does not match format.
func correctExtension(path string, format domain.AudioFormat) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, format.Extension()) {
		return path
	}

	return strings.TrimSuffix(path, ext) + format.Extension()
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if apperrors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	var reqErr *openai.RequestError
	if apperrors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	return fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}

	return 0
}
