package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
)

// sanitizeUTF8 removes or replaces invalid UTF-8 sequences from a string.
// Google's protobuf API requires valid UTF-8, and article text may contain invalid bytes.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			builder.WriteRune(utf8.RuneError)

			i++
		} else {
			builder.WriteRune(r)

			i += size
		}
	}

	return builder.String()
}

// googleProvider implements Provider for Google Gemini.
type googleProvider struct {
	client *genai.Client
	logger *zerolog.Logger
}

// NewGoogleProvider creates a Gemini provider. Callers must Close it.
func NewGoogleProvider(ctx context.Context, apiKey string, logger *zerolog.Logger, opts ...option.ClientOption) (*googleProvider, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("creating google genai client: %w", err)
	}

	return &googleProvider{
		client: client,
		logger: logger,
	}, nil
}

// Close closes the Google client.
func (p *googleProvider) Close() error {
	if p.client != nil {
		if err := p.client.Close(); err != nil {
			return fmt.Errorf("closing google genai client: %w", err)
		}
	}

	return nil
}

// Name returns the provider identifier.
func (p *googleProvider) Name() ProviderName {
	return ProviderGemini
}

// Complete implements Provider.
func (p *googleProvider) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	genModel := p.client.GenerativeModel(req.Model)
	genModel.SetTemperature(float32(req.Temperature))

	if req.MaxTokens > 0 {
		genModel.SetMaxOutputTokens(int32(req.MaxTokens)) //nolint:gosec // catalog values fit in int32
	}

	resp, err := genModel.GenerateContent(ctx, genai.Text(sanitizeUTF8(req.Prompt)))
	if err != nil {
		return Completion{}, fmt.Errorf(errGoogleGenAICompletion, classifyGoogleError(err))
	}

	text := extractGoogleResponseText(resp)
	if text == "" {
		return Completion{}, fmt.Errorf(errGoogleGenAICompletion, apperrors.ErrEmptyResponse)
	}

	completion := Completion{Text: text}

	if resp.UsageMetadata != nil {
		completion.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		completion.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	for _, candidate := range resp.Candidates {
		if candidate.FinishReason == genai.FinishReasonMaxTokens {
			completion.Truncated = true
		}
	}

	return completion, nil
}

// extractGoogleResponseText extracts text content from Google Gemini response.
func extractGoogleResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var result strings.Builder

	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					result.WriteString(string(text))
				}
			}
		}
	}

	return result.String()
}

// classifyGoogleError treats blocked prompts and responses as upstream failures.
func classifyGoogleError(err error) error {
	var blockedPrompt *genai.BlockedError
	if errors.As(err, &blockedPrompt) {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	return fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
}

// Ensure googleProvider implements Provider interface.
var _ Provider = (*googleProvider)(nil)
