package config

import "time"

// LLMConfig holds model provider credentials and defaults.
type LLMConfig struct {
	Provider          string        `env:"LLM_PROVIDER" envDefault:"openai"`
	Model             string        `env:"LLM_MODEL" envDefault:"gpt-4o"`
	Timeout           time.Duration `env:"LLM_TIMEOUT" envDefault:"90s"`
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL"`
	AnthropicAPIKey   string        `env:"ANTHROPIC_API_KEY"`
	GoogleAPIKey      string        `env:"GOOGLE_API_KEY"`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// NewsConfig holds headline API settings.
type NewsConfig struct {
	APIKey       string        `env:"NEWS_API_KEY"`
	BaseURL      string        `env:"NEWS_API_BASE_URL" envDefault:"https://newsapi.org"`
	Country      string        `env:"NEWS_COUNTRY" envDefault:"us"`
	FetchRetries int           `env:"NEWS_FETCH_RETRIES" envDefault:"3"`
	FetchTimeout time.Duration `env:"NEWS_FETCH_TIMEOUT" envDefault:"10s"`
}

// SpeechConfig holds text-to-speech settings.
// APIKey and BaseURL fall back to the OpenAI values when unset.
type SpeechConfig struct {
	APIKey  string        `env:"TTS_API_KEY"`
	BaseURL string        `env:"TTS_BASE_URL"`
	Model   string        `env:"TTS_MODEL" envDefault:"tts-1"`
	Voice   string        `env:"TTS_VOICE" envDefault:"nova"`
	Format  string        `env:"TTS_FORMAT" envDefault:"mp3"`
	Speed   float64       `env:"TTS_SPEED" envDefault:"1.0"`
	Timeout time.Duration `env:"TTS_TIMEOUT" envDefault:"120s"`
}

// PodcastConfig holds pipeline settings.
type PodcastConfig struct {
	PageSize      int    `env:"PODCAST_PAGE_SIZE" envDefault:"5"`
	AudioDir      string `env:"AUDIO_DIR" envDefault:"./media/podcasts"`
	LengthMinutes int    `env:"PODCAST_LENGTH_MINUTES" envDefault:"10"`
}

// APIConfig holds HTTP API protection settings.
// Forwarding headers are only used for the client address when
// TrustProxyHeaders is set, i.e. behind a reverse proxy that overwrites them.
type APIConfig struct {
	RateLimitRPS      float64       `env:"API_RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst    int           `env:"API_RATE_LIMIT_BURST" envDefault:"5"`
	RateLimitIdleTTL  time.Duration `env:"API_RATE_LIMIT_IDLE_TTL" envDefault:"10m"`
	TrustProxyHeaders bool          `env:"API_TRUST_PROXY_HEADERS" envDefault:"false"`
}
