package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glint_llm_request_duration_seconds",
		Help:    "Duration of LLM requests by provider and task",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider", "task"})

	LLMTokensPrompt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_llm_tokens_prompt_total",
		Help: "Total prompt tokens sent to LLM providers",
	}, []string{"provider", "model", "task"})

	LLMTokensCompletion = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_llm_tokens_completion_total",
		Help: "Total completion tokens received from LLM providers",
	}, []string{"provider", "model", "task"})

	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_llm_requests_total",
		Help: "Total number of LLM requests",
	}, []string{"provider", "model", "task", "status"})

	// LLM estimated costs (in millicents to avoid floating point issues)
	LLMEstimatedCost = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_llm_estimated_cost_millicents_total",
		Help: "Estimated LLM cost in millicents (0.001 cents)",
	}, []string{"provider", "model", "task"})

	NewsFetchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_news_fetch_requests_total",
		Help: "Total number of headline fetches by category and status",
	}, []string{"category", "status"})

	NewsFetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glint_news_fetch_attempts_total",
		Help: "Total number of HTTP attempts made against the news provider",
	})

	NewsArticlesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_news_articles_fetched_total",
		Help: "Total number of articles returned by the news provider",
	}, []string{"category"})

	SpeechRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_speech_requests_total",
		Help: "Total number of text-to-speech requests",
	}, []string{"model", "format", "status"})

	SpeechBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glint_speech_audio_bytes_total",
		Help: "Total audio bytes produced by the speech provider",
	})

	PodcastRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_podcast_runs_total",
		Help: "Podcast pipeline runs by outcome and failing stage",
	}, []string{"status", "stage"})

	PodcastStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glint_podcast_stage_duration_seconds",
		Help:    "Duration of each podcast pipeline stage",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
	}, []string{"stage"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_http_requests_total",
		Help: "Total number of API requests by endpoint and status code",
	}, []string{"endpoint", "code"})

	HTTPRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_http_rate_limited_total",
		Help: "Total number of API requests rejected by the rate limiter",
	}, []string{"endpoint"})

	HTTPPanics = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glint_http_panics_total",
		Help: "Total number of recovered handler panics",
	}, []string{"endpoint"})
)
