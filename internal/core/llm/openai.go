package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
)

var reasoningPrefixes = []string{"o1", "o3", "o4"}

// openaiProvider implements Provider for OpenAI chat completions.
type openaiProvider struct {
	client *openai.Client
	logger *zerolog.Logger
}

// NewOpenAIProvider creates an OpenAI provider. Empty baseURL keeps the SDK default.
func NewOpenAIProvider(apiKey, baseURL string, httpClient *http.Client, logger *zerolog.Logger) *openaiProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &openaiProvider{
		client: openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

// Name returns the provider identifier.
func (p *openaiProvider) Name() ProviderName {
	return ProviderOpenAI
}

// Complete implements Provider.
func (p *openaiProvider) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: float32(req.Temperature),
	}

	// Reasoning models reject max_tokens.
	if req.MaxTokens > 0 {
		if isReasoningModel(req.Model) {
			chatReq.MaxCompletionTokens = req.MaxTokens
		} else {
			chatReq.MaxTokens = req.MaxTokens
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Completion{}, fmt.Errorf(errOpenAIChatCompletion, classifyOpenAIError(err))
	}

	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf(errOpenAIChatCompletion, apperrors.ErrEmptyResponse)
	}

	choice := resp.Choices[0]

	return Completion{
		Text:             choice.Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		Truncated:        choice.FinishReason == openai.FinishReasonLength,
	}, nil
}

func isReasoningModel(model string) bool {
	for _, prefix := range reasoningPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}

	return false
}

// classifyOpenAIError tags API-level failures as upstream and everything else as transport.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	return fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
}

// Ensure openaiProvider implements Provider interface.
var _ Provider = (*openaiProvider)(nil)
