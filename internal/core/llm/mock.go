package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
)

const (
	mockBulletCount = 3
	mockPromptChars = 4
)

var mockFieldLine = regexp.MustCompile(`(?m)^- ([a-z_]+): (string|array of strings)`)

// mockProvider is a deterministic offline provider. It reads the output
// contract from the prompt and fills every field with canned text.
type mockProvider struct{}

// NewMockProvider creates a new mock LLM provider.
func NewMockProvider() *mockProvider {
	return &mockProvider{}
}

// Name returns the provider identifier.
func (p *mockProvider) Name() ProviderName {
	return ProviderMock
}

// Complete implements Provider.
func (p *mockProvider) Complete(_ context.Context, req CompletionRequest) (Completion, error) {
	reply := make(map[string]any)

	for _, m := range mockFieldLine.FindAllStringSubmatch(req.Prompt, -1) {
		name, kind := m[1], m[2]

		if kind == "string" {
			reply[name] = fmt.Sprintf("This is a mock %s.", name)
			continue
		}

		items := make([]string, mockBulletCount)
		for i := range items {
			items[i] = fmt.Sprintf("Mock %s item %d", name, i+1)
		}

		reply[name] = items
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return Completion{}, fmt.Errorf(errFmtMarshalRequest, err)
	}

	return Completion{
		Text:             string(data),
		PromptTokens:     len(req.Prompt) / mockPromptChars,
		CompletionTokens: len(data) / mockPromptChars,
	}, nil
}

// Ensure mockProvider implements Provider interface.
var _ Provider = (*mockProvider)(nil)
