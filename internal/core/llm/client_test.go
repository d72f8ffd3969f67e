package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/platform/config"
)

const (
	testOpenAIKey  = "sk-test"
	testClaudeKey  = "sk-ant-test"
	testOverride   = "sk-override"
	testSummaryKey = "summary"
)

// fakeProvider records the last request and returns a canned reply.
type fakeProvider struct {
	name  ProviderName
	reply string
	err   error
	last  CompletionRequest
	calls *atomic.Int32
}

func (f *fakeProvider) Name() ProviderName { return f.name }

func (f *fakeProvider) Complete(_ context.Context, req CompletionRequest) (Completion, error) {
	f.calls.Add(1)
	f.last = req

	if f.err != nil {
		return Completion{}, f.err
	}

	return Completion{Text: f.reply, PromptTokens: 10, CompletionTokens: 5}, nil
}

type factoryCall struct {
	name   ProviderName
	apiKey string
}

func newTestClient(t *testing.T, provider *fakeProvider, calls *[]factoryCall, cfgMods ...func(*config.LLMConfig)) *Client {
	t.Helper()

	logger := zerolog.Nop()
	cfg := config.LLMConfig{
		Provider:        "openai",
		Model:           "gpt-4o",
		Timeout:         time.Second,
		OpenAIAPIKey:    testOpenAIKey,
		AnthropicAPIKey: testClaudeKey,
	}

	for _, mod := range cfgMods {
		mod(&cfg)
	}

	factory := func(_ context.Context, name ProviderName, apiKey string) (Provider, error) {
		*calls = append(*calls, factoryCall{name: name, apiKey: apiKey})
		provider.name = name

		return provider, nil
	}

	return NewClient(cfg, &logger, WithProviderFactory(factory), WithUsageRecorder(NoopUsageRecorder()))
}

func TestClientInvokeRejectsBeforeConstruction(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr error
	}{
		{name: "unknown provider", target: Target{Provider: "mistral", Model: "gpt-4o"}, wantErr: apperrors.ErrUnsupportedProvider},
		{name: "model not in allow-list", target: Target{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"}, wantErr: apperrors.ErrUnsupportedModel},
		{name: "model from other provider", target: Target{Provider: ProviderClaude, Model: "gpt-4o"}, wantErr: apperrors.ErrUnsupportedModel},
		{name: "mock is not public", target: Target{Provider: ProviderMock, Model: "gpt-4o"}, wantErr: apperrors.ErrUnsupportedProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []factoryCall

			provider := &fakeProvider{reply: "x", calls: &atomic.Int32{}}
			client := newTestClient(t, provider, &calls)

			_, err := client.Invoke(context.Background(), tt.target, "hi", TextSignature("t", testSummaryKey, "").Schema)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, calls)
			assert.Equal(t, int32(0), provider.calls.Load())
		})
	}
}

func TestClientInvokeUsesCatalogParams(t *testing.T) {
	var calls []factoryCall

	provider := &fakeProvider{reply: `{"summary":"done"}`, calls: &atomic.Int32{}}
	client := newTestClient(t, provider, &calls)

	sig := TextSignature("summarize", testSummaryKey, "")

	got, err := Run(context.Background(), client, Target{Model: "o1-mini"}, sig, "Summarize this")
	require.NoError(t, err)

	assert.Equal(t, "done", got)
	require.Len(t, calls, 1)
	assert.Equal(t, factoryCall{name: ProviderOpenAI, apiKey: testOpenAIKey}, calls[0])
	assert.Equal(t, "o1-mini", provider.last.Model)
	assert.Equal(t, 10000, provider.last.MaxTokens)
	assert.InDelta(t, 1.0, provider.last.Temperature, 0.0001)
	assert.Contains(t, provider.last.Prompt, "Summarize this")
	assert.Contains(t, provider.last.Prompt, "- summary: string")
	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestClientResolve(t *testing.T) {
	var calls []factoryCall

	client := newTestClient(t, &fakeProvider{calls: &atomic.Int32{}}, &calls)

	tests := []struct {
		name string
		in   Target
		want Target
	}{
		{
			name: "defaults",
			in:   Target{},
			want: Target{Provider: ProviderOpenAI, Model: "gpt-4o", APIKey: testOpenAIKey},
		},
		{
			name: "provider inferred from model",
			in:   Target{Model: "claude-3-5-haiku-latest"},
			want: Target{Provider: ProviderClaude, Model: "claude-3-5-haiku-latest", APIKey: testClaudeKey},
		},
		{
			name: "override key kept",
			in:   Target{Model: "gpt-4o-mini", APIKey: testOverride},
			want: Target{Provider: ProviderOpenAI, Model: "gpt-4o-mini", APIKey: testOverride},
		},
		{
			name: "unknown model falls back to configured provider",
			in:   Target{Model: "unknown"},
			want: Target{Provider: ProviderOpenAI, Model: "unknown", APIKey: testOpenAIKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.Resolve(tt.in))
		})
	}
}

func TestClientInvokeMissingKey(t *testing.T) {
	var calls []factoryCall

	provider := &fakeProvider{calls: &atomic.Int32{}}
	client := newTestClient(t, provider, &calls, func(c *config.LLMConfig) { c.GoogleAPIKey = "" })

	_, err := client.Invoke(context.Background(), Target{Model: "gemini-1.5-flash"}, "hi", TextSignature("t", "x", "").Schema)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, calls)
}

func TestClientInvokeProviderError(t *testing.T) {
	var calls []factoryCall

	providerErr := errors.New("connection reset")
	provider := &fakeProvider{err: providerErr, calls: &atomic.Int32{}}
	client := newTestClient(t, provider, &calls)

	_, err := client.Invoke(context.Background(), Target{}, "hi", TextSignature("summarize", "x", "").Schema)

	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "openai summarize")
	assert.Equal(t, int32(1), provider.calls.Load(), "no retry")
}

func TestClientMockMode(t *testing.T) {
	logger := zerolog.Nop()
	client := NewClient(config.LLMConfig{Provider: "mock", Model: "gpt-4o"}, &logger, WithUsageRecorder(NoopUsageRecorder()))

	schema := Schema{Task: "classify", Fields: []Field{
		{Name: "important_news", Kind: KindText},
		{Name: "mention_news", Kind: KindText},
		{Name: "bullets", Kind: KindList},
	}}

	out, err := client.Invoke(context.Background(), Target{}, "classify", schema)
	require.NoError(t, err)

	assert.Equal(t, "This is a mock important_news.", out.Text("important_news"))
	assert.Equal(t, "This is a mock mention_news.", out.Text("mention_news"))
	assert.Len(t, out.List("bullets"), mockBulletCount)

	_, err = client.Invoke(context.Background(), Target{Model: "gpt-2"}, "x", schema)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedModel, "mock mode still validates the catalog")
}

func TestClientMockModeRejectsUnknownModels(t *testing.T) {
	logger := zerolog.Nop()
	client := NewClient(config.LLMConfig{Provider: "mock", Model: "gpt-4o"}, &logger, WithUsageRecorder(NoopUsageRecorder()))

	resolved := client.Resolve(Target{Model: "not-a-model"})
	assert.Equal(t, ProviderOpenAI, resolved.Provider)

	schema := Schema{Task: "summarize", Fields: []Field{{Name: "summary", Kind: KindText}}}

	tests := []struct {
		name   string
		target Target
	}{
		{name: "unknown model", target: Target{Model: "not-a-model"}},
		{name: "unknown model for named provider", target: Target{Provider: ProviderClaude, Model: "gpt-4o-mini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Invoke(context.Background(), tt.target, "text", schema)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUnsupportedModel)
			assert.NotErrorIs(t, err, apperrors.ErrUnsupportedProvider)
		})
	}
}

func TestCatalogHelpers(t *testing.T) {
	assert.Equal(t, []ProviderName{ProviderClaude, ProviderGemini, ProviderMeta, ProviderOpenAI}, Providers())
	assert.Contains(t, Models(ProviderOpenAI), "o3-mini")

	p, ok := ProviderForModel("meta-llama/llama-3.3-70b-instruct")
	assert.True(t, ok)
	assert.Equal(t, ProviderMeta, p)

	params, err := Lookup(ProviderOpenAI, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, ModelParams{Temperature: 1.0}, params)
}

func TestEstimateCost(t *testing.T) {
	cost := estimateCost(ProviderOpenAI, "gpt-4o", 1_000_000, 1_000_000)
	assert.InDelta(t, costGPT4OPromptPer1M+costGPT4OCompletionPer1M, cost, 0.0001)

	assert.Zero(t, estimateCost(ProviderMock, "gpt-4o", 100, 100))

	prompt, _ := getCostRates(ProviderMeta, "meta-llama/llama-3.1-70b-instruct")
	assert.InDelta(t, costLlamaLargePrompt, prompt, 0.0001)
}
