package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
)

// OpenRouter API constants.
const (
	OpenRouterBaseURL      = "https://openrouter.ai/api/v1"
	openRouterChatPath     = "/chat/completions"
	openRouterFinishLength = "length"
	openRouterReferer      = "https://github.com/lueurxax/glint"
	openRouterTitle        = "glint"
)

// openRouterProvider serves Meta Llama models through OpenRouter's
// OpenAI-compatible chat endpoint.
type openRouterProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// openRouterChatRequest represents the OpenRouter Chat API request (OpenAI-compatible).
type openRouterChatRequest struct {
	Model       string                  `json:"model"`
	Messages    []openRouterChatMessage `json:"messages"`
	MaxTokens   int                     `json:"max_tokens,omitempty"`
	Temperature float64                 `json:"temperature"`
}

// openRouterChatMessage represents a message in the OpenRouter Chat API.
type openRouterChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openRouterChatResponse represents the OpenRouter Chat API response (OpenAI-compatible).
type openRouterChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"` //nolint:tagliatelle // OpenAI-compatible wire format
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`     //nolint:tagliatelle // OpenAI-compatible wire format
		CompletionTokens int `json:"completion_tokens"` //nolint:tagliatelle // OpenAI-compatible wire format
		TotalTokens      int `json:"total_tokens"`      //nolint:tagliatelle // OpenAI-compatible wire format
	} `json:"usage"`
}

// openRouterErrorResponse represents the OpenRouter API error response.
type openRouterErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// NewOpenRouterProvider creates the Meta provider. Empty baseURL uses OpenRouterBaseURL.
func NewOpenRouterProvider(apiKey, baseURL string, httpClient *http.Client, logger *zerolog.Logger) *openRouterProvider {
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &openRouterProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Name returns the provider identifier.
func (p *openRouterProvider) Name() ProviderName {
	return ProviderMeta
}

// Complete implements Provider.
func (p *openRouterProvider) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	reqBody := openRouterChatRequest{
		Model: req.Model,
		Messages: []openRouterChatMessage{
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return Completion{}, fmt.Errorf(errFmtMarshalRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+openRouterChatPath, &buf)
	if err != nil {
		return Completion{}, fmt.Errorf(errFmtCreateRequest, err)
	}

	httpReq.Header.Set(headerAuthorization, "Bearer "+p.apiKey)
	httpReq.Header.Set(headerContentType, contentTypeJSON)
	httpReq.Header.Set("Referer", openRouterReferer)
	httpReq.Header.Set("X-Title", openRouterTitle)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf(errOpenRouterRequest, fmt.Errorf("%w: %w", apperrors.ErrTransport, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf(errFmtReadResponse, fmt.Errorf("%w: %w", apperrors.ErrTransport, err))
	}

	if resp.StatusCode != http.StatusOK {
		return Completion{}, parseOpenRouterError(body, resp.StatusCode)
	}

	return extractOpenRouterCompletion(body)
}

// parseOpenRouterError extracts error details from the API response.
func parseOpenRouterError(body []byte, statusCode int) error {
	var errResp openRouterErrorResponse
	if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error.Message != "" {
		return fmt.Errorf(errFmtAPIWithMessage, apperrors.ErrUpstream, statusCode, errResp.Error.Message)
	}

	return fmt.Errorf(errFmtAPIStatusOnly, apperrors.ErrUpstream, statusCode)
}

// extractOpenRouterCompletion extracts the text content from OpenRouter response.
func extractOpenRouterCompletion(body []byte) (Completion, error) {
	var resp openRouterChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Completion{}, fmt.Errorf(errFmtDecodeResponse, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err))
	}

	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("openrouter: %w", apperrors.ErrEmptyResponse)
	}

	return Completion{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		Truncated:        resp.Choices[0].FinishReason == openRouterFinishLength,
	}, nil
}

// Ensure openRouterProvider implements Provider interface.
var _ Provider = (*openRouterProvider)(nil)
