package llm

import (
	"context"
	"strings"
)

// ProviderName identifies an LLM provider.
type ProviderName string

// Provider name constants. Mock is selectable through configuration only and
// is not part of the public provider set.
const (
	ProviderOpenAI ProviderName = "openai"
	ProviderGemini ProviderName = "gemini"
	ProviderClaude ProviderName = "claude"
	ProviderMeta   ProviderName = "meta"
	ProviderMock   ProviderName = "mock"
)

// ParseProviderName normalizes a user-supplied provider name.
func ParseProviderName(s string) ProviderName {
	return ProviderName(strings.ToLower(strings.TrimSpace(s)))
}

// CompletionRequest is a single prompt sent to a provider.
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int // 0 leaves the provider default
}

// Completion is a provider reply with token accounting.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	Truncated        bool
}

// Provider performs exactly one round trip to a hosted model.
type Provider interface {
	// Name returns the provider identifier.
	Name() ProviderName

	// Complete sends the prompt and returns the raw reply text.
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// ProviderFactory constructs a provider for a single call using apiKey.
type ProviderFactory func(ctx context.Context, name ProviderName, apiKey string) (Provider, error)
