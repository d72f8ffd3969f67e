// Package llm is the model client: it validates provider and model against a
// static catalog, constructs a provider per call, sends one instruction with a
// JSON output contract and parses the named fields out of the reply.
package llm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/platform/config"
)

// Client implements Invoker. It holds only read-only configuration; providers
// are constructed fresh for every call.
type Client struct {
	cfg      config.LLMConfig
	factory  ProviderFactory
	recorder UsageRecorder
	logger   *zerolog.Logger
	mock     bool
}

// Option configures a Client.
type Option func(*Client)

// WithProviderFactory replaces how providers are constructed.
func WithProviderFactory(f ProviderFactory) Option {
	return func(c *Client) {
		c.factory = f
	}
}

// WithUsageRecorder replaces the metrics recorder.
func WithUsageRecorder(r UsageRecorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient creates a model client. LLM_PROVIDER=mock routes every validated
// call to the offline mock provider.
func NewClient(cfg config.LLMConfig, logger *zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:      cfg,
		recorder: NewUsageRecorder(logger),
		logger:   logger,
	}

	c.factory = c.newProvider

	if ParseProviderName(cfg.Provider) == ProviderMock {
		c.mock = true
		c.factory = func(context.Context, ProviderName, string) (Provider, error) {
			return NewMockProvider(), nil
		}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Resolve fills empty target fields from configuration. A target naming only a
// model is routed to the provider whose allow-list contains it.
func (c *Client) Resolve(t Target) Target {
	if t.Model == "" {
		t.Model = c.cfg.Model
	}

	if t.Provider == "" {
		if p, ok := ProviderForModel(t.Model); ok {
			t.Provider = p
		} else {
			t.Provider = c.defaultProvider()
		}
	}

	if t.APIKey == "" {
		t.APIKey = c.keyFor(t.Provider)
	}

	return t
}

// defaultProvider is the configured provider. Mock mode has no catalog entry of
// its own, so it validates models against the OpenAI allow-list.
func (c *Client) defaultProvider() ProviderName {
	p := ParseProviderName(c.cfg.Provider)
	if p == ProviderMock {
		return ProviderOpenAI
	}

	return p
}

// Invoke implements Invoker. Unsupported provider and model errors are
// returned before any provider is constructed.
func (c *Client) Invoke(ctx context.Context, target Target, instruction string, schema Schema) (Output, error) {
	target = c.Resolve(target)

	params, err := Lookup(target.Provider, target.Model)
	if err != nil {
		return nil, err
	}

	if target.APIKey == "" && !c.mock {
		return nil, apperrors.Validationf("no API key configured for provider %s", target.Provider)
	}

	provider, err := c.factory(ctx, target.Provider, target.APIKey)
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", target.Provider, err)
	}

	if closer, ok := provider.(io.Closer); ok {
		defer c.closeProvider(closer)
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	completion, err := provider.Complete(callCtx, CompletionRequest{
		Model:       target.Model,
		Prompt:      schema.Instruct(instruction),
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})

	elapsed := time.Since(start)
	c.recorder.RecordTokenUsage(provider.Name(), target.Model, schema.Task, completion.PromptTokens, completion.CompletionTokens, elapsed, err == nil)

	if err != nil {
		c.logger.Warn().Err(err).
			Str(logKeyProvider, string(provider.Name())).
			Str(logKeyModel, target.Model).
			Str(logKeyTask, schema.Task).
			Dur(logKeyDuration, elapsed).
			Msg(logMsgInvokeError)

		return nil, fmt.Errorf("%s %s: %w", target.Provider, schema.Task, err)
	}

	if completion.Truncated {
		c.logger.Warn().
			Str(logKeyModel, target.Model).
			Str(logKeyTask, schema.Task).
			Int(logKeyMaxTokens, params.MaxTokens).
			Int(logKeyOutputTokens, completion.CompletionTokens).
			Msg(logMsgTruncated)
	}

	c.logger.Debug().
		Str(logKeyProvider, string(provider.Name())).
		Str(logKeyModel, target.Model).
		Str(logKeyTask, schema.Task).
		Dur(logKeyDuration, elapsed).
		Msg(logMsgInvoked)

	return schema.Parse(completion.Text)
}

func (c *Client) keyFor(p ProviderName) string {
	switch p {
	case ProviderOpenAI:
		return c.cfg.OpenAIAPIKey
	case ProviderClaude:
		return c.cfg.AnthropicAPIKey
	case ProviderGemini:
		return c.cfg.GoogleAPIKey
	case ProviderMeta:
		return c.cfg.OpenRouterAPIKey
	default:
		return ""
	}
}

func (c *Client) newProvider(ctx context.Context, name ProviderName, apiKey string) (Provider, error) {
	switch name {
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, c.cfg.OpenAIBaseURL, nil, c.logger), nil
	case ProviderClaude:
		return NewAnthropicProvider(apiKey, "", nil, c.logger), nil
	case ProviderGemini:
		return NewGoogleProvider(ctx, apiKey, c.logger)
	case ProviderMeta:
		return NewOpenRouterProvider(apiKey, c.cfg.OpenRouterBaseURL, nil, c.logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedProvider, name)
	}
}

func (c *Client) closeProvider(closer io.Closer) {
	if err := closer.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("closing LLM provider")
	}
}

// Ensure Client implements Invoker interface.
var _ Invoker = (*Client)(nil)
