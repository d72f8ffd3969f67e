package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
)

// Anthropic requires max_tokens on every request.
const anthropicMaxTokensDefault = 4096

const anthropicStopMaxTokens = "max_tokens"

// anthropicProvider implements Provider for Anthropic Claude.
type anthropicProvider struct {
	client anthropic.Client
	logger *zerolog.Logger
}

// NewAnthropicProvider creates a Claude provider. SDK retries are disabled so
// each Complete is exactly one round trip.
func NewAnthropicProvider(apiKey, baseURL string, httpClient *http.Client, logger *zerolog.Logger) *anthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &anthropicProvider{
		client: anthropic.NewClient(opts...),
		logger: logger,
	}
}

// Name returns the provider identifier.
func (p *anthropicProvider) Name() ProviderName {
	return ProviderClaude
}

// Complete implements Provider.
func (p *anthropicProvider) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokensDefault
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return Completion{}, fmt.Errorf(errAnthropicMessages, classifyAnthropicError(err))
	}

	return Completion{
		Text:             strings.TrimSpace(extractTextFromResponse(resp)),
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
		Truncated:        string(resp.StopReason) == anthropicStopMaxTokens,
	}, nil
}

// extractTextFromResponse extracts text content from Anthropic response.
func extractTextFromResponse(resp *anthropic.Message) string {
	var result strings.Builder

	for _, block := range resp.Content {
		if block.Type == contentTypeText {
			result.WriteString(block.Text)
		}
	}

	return result.String()
}

func classifyAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	return fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
}

// Ensure anthropicProvider implements Provider interface.
var _ Provider = (*anthropicProvider)(nil)
