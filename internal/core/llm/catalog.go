package llm

import (
	"fmt"
	"sort"

	"github.com/lueurxax/glint/internal/core/errors"
)

// ModelParams are the fixed generation parameters for a provider+model pair.
type ModelParams struct {
	Temperature float64
	MaxTokens   int // 0 means the provider default
}

// ProviderModel specifies a provider and model combination.
type ProviderModel struct {
	Provider ProviderName
	Model    string
}

const (
	reasoningMaxTokens = 10000
	claudeMaxTokens    = 4096
	geminiMaxTokens    = 8192
	llamaMaxTokens     = 4096

	defaultTemperature = 1.0
	claudeTemperature  = 0.7
	geminiTemperature  = 0.7
	llamaTemperature   = 0.7
)

// catalog is the static allow-list. Adding a model is a data change.
var catalog = map[ProviderName]map[string]ModelParams{
	ProviderOpenAI: {
		"gpt-4o-mini": {Temperature: defaultTemperature},
		"gpt-4o":      {Temperature: defaultTemperature},
		"o3-mini":     {Temperature: defaultTemperature, MaxTokens: reasoningMaxTokens},
		"o1-mini":     {Temperature: defaultTemperature, MaxTokens: reasoningMaxTokens},
		"o1":          {Temperature: defaultTemperature, MaxTokens: reasoningMaxTokens},
		"o1-preview":  {Temperature: defaultTemperature, MaxTokens: reasoningMaxTokens},
	},
	ProviderGemini: {
		"gemini-1.5-flash":      {Temperature: geminiTemperature, MaxTokens: geminiMaxTokens},
		"gemini-1.5-pro":        {Temperature: geminiTemperature, MaxTokens: geminiMaxTokens},
		"gemini-2.0-flash":      {Temperature: geminiTemperature, MaxTokens: geminiMaxTokens},
		"gemini-2.0-flash-lite": {Temperature: geminiTemperature, MaxTokens: geminiMaxTokens},
	},
	ProviderClaude: {
		"claude-3-5-haiku-latest":  {Temperature: claudeTemperature, MaxTokens: claudeMaxTokens},
		"claude-3-5-sonnet-latest": {Temperature: claudeTemperature, MaxTokens: claudeMaxTokens},
		"claude-haiku-4-5":         {Temperature: claudeTemperature, MaxTokens: claudeMaxTokens},
		"claude-sonnet-4-5":        {Temperature: claudeTemperature, MaxTokens: claudeMaxTokens},
	},
	ProviderMeta: {
		"meta-llama/llama-3.1-8b-instruct":  {Temperature: llamaTemperature, MaxTokens: llamaMaxTokens},
		"meta-llama/llama-3.1-70b-instruct": {Temperature: llamaTemperature, MaxTokens: llamaMaxTokens},
		"meta-llama/llama-3.3-70b-instruct": {Temperature: llamaTemperature, MaxTokens: llamaMaxTokens},
	},
}

// Lookup returns the parameters for provider+model or an unsupported error.
func Lookup(provider ProviderName, model string) (ModelParams, error) {
	models, ok := catalog[provider]
	if !ok {
		return ModelParams{}, fmt.Errorf("%w: %q", errors.ErrUnsupportedProvider, provider)
	}

	params, ok := models[model]
	if !ok {
		return ModelParams{}, fmt.Errorf("%w: %q for provider %q", errors.ErrUnsupportedModel, model, provider)
	}

	return params, nil
}

// ProviderForModel returns the provider whose allow-list contains model.
func ProviderForModel(model string) (ProviderName, bool) {
	for provider, models := range catalog {
		if _, ok := models[model]; ok {
			return provider, true
		}
	}

	return "", false
}

// Providers returns the public provider set in sorted order.
func Providers() []ProviderName {
	out := make([]ProviderName, 0, len(catalog))
	for p := range catalog {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Models returns the allow-listed models for provider in sorted order.
func Models(provider ProviderName) []string {
	models := catalog[provider]

	out := make([]string, 0, len(models))
	for m := range models {
		out = append(out, m)
	}

	sort.Strings(out)

	return out
}
