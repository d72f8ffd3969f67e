package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	minSpeechSpeed = 0.25
	maxSpeechSpeed = 4.0
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8000"`

	LLM     LLMConfig
	News    NewsConfig
	Speech  SpeechConfig
	Podcast PodcastConfig
	API     APIConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyKeyAliases(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}

	if c.Speech.Speed < minSpeechSpeed || c.Speech.Speed > maxSpeechSpeed {
		return fmt.Errorf("TTS_SPEED %.2f out of range [%.2f, %.2f]", c.Speech.Speed, minSpeechSpeed, maxSpeechSpeed)
	}

	if c.News.FetchRetries < 1 {
		return fmt.Errorf("NEWS_FETCH_RETRIES must be at least 1, got %d", c.News.FetchRetries)
	}

	if c.Podcast.PageSize < 1 {
		return fmt.Errorf("PODCAST_PAGE_SIZE must be at least 1, got %d", c.Podcast.PageSize)
	}

	return nil
}

// IsLocal reports whether the process runs in a developer environment.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}

func applyKeyAliases(cfg *Config) {
	if cfg.LLM.OpenAIAPIKey == "" {
		setStringFromEnv("LLM_API_KEY", &cfg.LLM.OpenAIAPIKey)
	}

	if cfg.Speech.APIKey == "" {
		cfg.Speech.APIKey = cfg.LLM.OpenAIAPIKey
	}

	if cfg.Speech.BaseURL == "" {
		cfg.Speech.BaseURL = cfg.LLM.OpenAIBaseURL
	}
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}
