package config

import (
	"os"
	"testing"
	"time"
)

// Test environment variable keys.
const (
	testEnvOpenAIKey   = "OPENAI_API_KEY"
	testEnvLLMAPIKey   = "LLM_API_KEY"
	testEnvTTSAPIKey   = "TTS_API_KEY"
	testEnvTTSSpeed    = "TTS_SPEED"
	testEnvHTTPPort    = "HTTP_PORT"
	testEnvPageSize    = "PODCAST_PAGE_SIZE"
	testEnvLLMTimeout  = "LLM_TIMEOUT"
	testEnvNewsRetries = "NEWS_FETCH_RETRIES"
)

// Test values.
const (
	testOpenAIKey     = "sk-openai"
	testAliasKey      = "sk-alias"
	testTTSKey        = "sk-tts"
	testErrLoad       = "Load() error = %v"
	testDefaultEnv    = "local"
	testDefaultModel  = "gpt-4o"
	testDefaultVoice  = "nova"
	testDefaultFormat = "mp3"
)

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "APP_ENV", "LLM_MODEL", "LLM_PROVIDER", testEnvHTTPPort, testEnvPageSize,
		"TTS_MODEL", "TTS_VOICE", "TTS_FORMAT", testEnvTTSSpeed, testEnvLLMTimeout, testEnvNewsRetries)

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.AppEnv != testDefaultEnv {
		t.Errorf("AppEnv default = %q, want %q", cfg.AppEnv, testDefaultEnv)
	}

	if !cfg.IsLocal() {
		t.Error("IsLocal() should be true for default env")
	}

	if cfg.LLM.Model != testDefaultModel {
		t.Errorf("LLM.Model default = %q, want %q", cfg.LLM.Model, testDefaultModel)
	}

	if cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider default = %q, want %q", cfg.LLM.Provider, "openai")
	}

	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("LLM.Timeout default = %v, want %v", cfg.LLM.Timeout, 90*time.Second)
	}

	if cfg.HTTPPort != 8000 {
		t.Errorf("HTTPPort default = %d, want %d", cfg.HTTPPort, 8000)
	}

	if cfg.Podcast.PageSize != 5 {
		t.Errorf("Podcast.PageSize default = %d, want %d", cfg.Podcast.PageSize, 5)
	}

	if cfg.Speech.Voice != testDefaultVoice {
		t.Errorf("Speech.Voice default = %q, want %q", cfg.Speech.Voice, testDefaultVoice)
	}

	if cfg.Speech.Format != testDefaultFormat {
		t.Errorf("Speech.Format default = %q, want %q", cfg.Speech.Format, testDefaultFormat)
	}

	if cfg.Speech.Speed != 1.0 {
		t.Errorf("Speech.Speed default = %v, want %v", cfg.Speech.Speed, 1.0)
	}

	if cfg.News.FetchRetries != 3 {
		t.Errorf("News.FetchRetries default = %d, want %d", cfg.News.FetchRetries, 3)
	}
}

func TestLoad_LLMAPIKeyAlias(t *testing.T) {
	clearEnv(t, testEnvOpenAIKey, testEnvTTSAPIKey)
	t.Setenv(testEnvLLMAPIKey, testAliasKey)

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.LLM.OpenAIAPIKey != testAliasKey {
		t.Errorf("OpenAIAPIKey = %q, want %q", cfg.LLM.OpenAIAPIKey, testAliasKey)
	}

	if cfg.Speech.APIKey != testAliasKey {
		t.Errorf("Speech.APIKey = %q, want fallback %q", cfg.Speech.APIKey, testAliasKey)
	}
}

func TestLoad_ExplicitKeysWin(t *testing.T) {
	t.Setenv(testEnvOpenAIKey, testOpenAIKey)
	t.Setenv(testEnvLLMAPIKey, testAliasKey)
	t.Setenv(testEnvTTSAPIKey, testTTSKey)

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.LLM.OpenAIAPIKey != testOpenAIKey {
		t.Errorf("OpenAIAPIKey = %q, want %q", cfg.LLM.OpenAIAPIKey, testOpenAIKey)
	}

	if cfg.Speech.APIKey != testTTSKey {
		t.Errorf("Speech.APIKey = %q, want %q", cfg.Speech.APIKey, testTTSKey)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric port", key: testEnvHTTPPort, value: "not-a-number"},
		{name: "zero port", key: testEnvHTTPPort, value: "0"},
		{name: "speed too high", key: testEnvTTSSpeed, value: "4.5"},
		{name: "speed too low", key: testEnvTTSSpeed, value: "0.1"},
		{name: "zero page size", key: testEnvPageSize, value: "0"},
		{name: "zero retries", key: testEnvNewsRetries, value: "0"},
		{name: "bad duration", key: testEnvLLMTimeout, value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{env: "local", want: true},
		{env: "production", want: false},
		{env: "", want: false},
	}

	for _, tt := range tests {
		cfg := &Config{AppEnv: tt.env}
		if got := cfg.IsLocal(); got != tt.want {
			t.Errorf("IsLocal() for %q = %v, want %v", tt.env, got, tt.want)
		}
	}
}
