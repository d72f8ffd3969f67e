// Package api serves the JSON HTTP surface of the podcast service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/glint/internal/core/domain"
	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/speech"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/platform/observability"
	"github.com/lueurxax/glint/internal/process/podcast"
)

const (
	routeGeneratePodcast = "/api/generate-podcast"
	routeAnalyzeText     = "/api/analyze-text"
	routeSummarizeText   = "/api/summarize-text"
	routeClassifyNews    = "/api/classify-news"
	routeTextToSpeech    = "/api/text-to-speech"
	routePreferences     = "/api/preferences"
	routeMedia           = "/media/"

	contentTypeHeader = "Content-Type"
	contentTypeHTML   = "text/html; charset=utf-8"
	contentTypeJSON   = "application/json; charset=utf-8"
	requestIDHeader   = "X-Request-ID"

	maxBodyBytes = 4 << 20

	defaultLimiterIdleTTL = 10 * time.Minute

	errMsgInvalidJSON     = "Invalid JSON"
	errMsgMethodNotAllow  = "Only POST requests are allowed"
	errMsgNotFound        = "Not found"
	errMsgTooManyRequests = "Too many requests"

	logFieldRoute     = "route"
	logFieldRequestID = "request_id"
)

// PodcastGenerator runs the full pipeline.
type PodcastGenerator interface {
	Generate(ctx context.Context, req podcast.Request) domain.Result[domain.PodcastEpisode]
}

// SpeechSynthesizer converts text to a temporary audio file.
type SpeechSynthesizer interface {
	SynthesizeToTemp(ctx context.Context, req speech.Request) (domain.AudioArtifact, error)
}

// Handler routes API requests.
type Handler struct {
	cfg      *config.Config
	invoker  llm.Invoker
	podcast  PodcastGenerator
	speech   SpeechSynthesizer
	renderer *Renderer
	media    http.Handler
	logger   *zerolog.Logger

	limiters   map[string]*clientLimiter
	limitersMu sync.Mutex
	lastSweep  time.Time
	now        func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.Config, invoker llm.Invoker, generator PodcastGenerator, synth SpeechSynthesizer, logger *zerolog.Logger) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		cfg:      cfg,
		invoker:  invoker,
		podcast:  generator,
		speech:   synth,
		renderer: renderer,
		media:    http.StripPrefix(routeMedia, http.FileServer(http.Dir(cfg.Podcast.AudioDir))),
		logger:   logger,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}, nil
}

// ServeHTTP applies rate limiting and panic recovery, then dispatches.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := routeName(r.URL.Path)

	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	w.Header().Set(requestIDHeader, requestID)

	logger := h.logger.With().Str(logFieldRoute, route).Str(logFieldRequestID, requestID).Logger()
	r = r.WithContext(logger.WithContext(r.Context()))

	status := http.StatusInternalServerError

	defer func() {
		if rec := recover(); rec != nil {
			observability.HTTPPanics.WithLabelValues(route).Inc()
			logger.Error().Interface("panic", rec).Msg("handler panic recovered")

			status = h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprint(rec)})
		}

		observability.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}()

	if !h.allowRequest(h.clientIP(r)) {
		observability.HTTPRateLimited.WithLabelValues(route).Inc()

		status = h.writeError(w, http.StatusTooManyRequests, errMsgTooManyRequests)

		return
	}

	status = h.dispatch(w, r)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) int {
	if strings.HasPrefix(r.URL.Path, routeMedia) {
		return h.handleMedia(w, r)
	}

	switch strings.TrimSuffix(r.URL.Path, "/") {
	case routeGeneratePodcast:
		return h.handleGeneratePodcast(w, r)
	case routeAnalyzeText:
		return h.handleAnalyzeText(w, r)
	case routeSummarizeText:
		return h.handleSummarizeText(w, r)
	case routeClassifyNews:
		return h.handleClassifyNews(w, r)
	case routeTextToSpeech:
		return h.handleTextToSpeech(w, r)
	case routePreferences:
		return h.handlePreferences(w, r)
	default:
		return h.writeError(w, http.StatusNotFound, errMsgNotFound)
	}
}

func (h *Handler) handleMedia(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return h.writeError(w, http.StatusMethodNotAllowed, "Only GET requests are allowed")
	}

	name := strings.TrimPrefix(r.URL.Path, routeMedia)
	if _, ok := domain.FormatFromPath(name); !ok || strings.Contains(name, "/") {
		return h.writeError(w, http.StatusNotFound, errMsgNotFound)
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.media.ServeHTTP(rec, r)

	return rec.status
}

// decodePOST enforces the POST method and decodes the JSON body into dst.
// It writes the error response itself and returns its status, or 0 on success.
func (h *Handler) decodePOST(w http.ResponseWriter, r *http.Request, dst any) int {
	if r.Method != http.MethodPost {
		return h.writeError(w, http.StatusMethodNotAllowed, errMsgMethodNotAllow)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return h.writeError(w, http.StatusBadRequest, errMsgInvalidJSON)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return 0
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return h.writeError(w, http.StatusBadRequest, errMsgInvalidJSON)
	}

	return 0
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) int {
	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("write json failed")
	}

	return status
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) int {
	return h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) allowRequest(ip string) bool {
	if h.cfg.API.RateLimitRPS <= 0 {
		return true
	}

	now := h.now()

	h.limitersMu.Lock()

	h.sweepLimiters(now)

	entry, ok := h.limiters[ip]
	if !ok {
		burst := h.cfg.API.RateLimitBurst
		if burst < 1 {
			burst = 1
		}

		entry = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(h.cfg.API.RateLimitRPS), burst)}
		h.limiters[ip] = entry
	}

	entry.lastSeen = now

	h.limitersMu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// sweepLimiters drops limiters idle longer than the TTL. It runs at most once
// per TTL; callers hold limitersMu.
func (h *Handler) sweepLimiters(now time.Time) {
	ttl := h.cfg.API.RateLimitIdleTTL
	if ttl <= 0 {
		ttl = defaultLimiterIdleTTL
	}

	if now.Sub(h.lastSweep) < ttl {
		return
	}

	h.lastSweep = now

	for ip, entry := range h.limiters {
		if now.Sub(entry.lastSeen) > ttl {
			delete(h.limiters, ip)
		}
	}
}

// clientIP returns the peer address, or the first forwarded address when
// proxy headers are trusted.
func (h *Handler) clientIP(r *http.Request) string {
	if h.cfg.API.TrustProxyHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
				return first
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}

func wantsHTML(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		return true
	}

	return strings.ToLower(r.URL.Query().Get("format")) == "html"
}

// routeName maps a path to a bounded metrics label.
func routeName(path string) string {
	if strings.HasPrefix(path, routeMedia) {
		return "media"
	}

	switch strings.TrimSuffix(path, "/") {
	case routeGeneratePodcast:
		return "generate_podcast"
	case routeAnalyzeText:
		return "analyze_text"
	case routeSummarizeText:
		return "summarize_text"
	case routeClassifyNews:
		return "classify_news"
	case routeTextToSpeech:
		return "text_to_speech"
	case routePreferences:
		return "preferences"
	default:
		return "not_found"
	}
}

func audioURL(path string) string {
	if path == "" {
		return ""
	}

	return routeMedia + filepath.Base(path)
}

// statusRecorder captures the status written by a wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggerFrom returns the request-scoped logger.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// statusFor maps caller-caused errors to 400 and everything else to fallback.
func statusFor(err error, fallback int) int {
	if apperrors.IsClientError(err) {
		return http.StatusBadRequest
	}

	return fallback
}
