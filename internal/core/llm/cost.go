package llm

import "strings"

// Cost per 1M tokens (in USD) for various providers and models.
// These are approximate costs and should be updated as pricing changes.
const (
	// OpenAI
	costGPT4OPromptPer1M     = 2.50
	costGPT4OCompletionPer1M = 10.00
	costGPT4OMiniPrompt      = 0.15
	costGPT4OMiniComplete    = 0.60
	costO1Prompt             = 15.00
	costO1Complete           = 60.00
	costOMiniPrompt          = 1.10
	costOMiniComplete        = 4.40

	// Anthropic Claude
	costClaudeHaikuPrompt    = 1.00
	costClaudeHaikuComplete  = 5.00
	costClaudeSonnetPrompt   = 3.00
	costClaudeSonnetComplete = 15.00

	// Google Gemini
	costGeminiFlashPrompt   = 0.10
	costGeminiFlashComplete = 0.40
	costGeminiProPrompt     = 3.50
	costGeminiProComplete   = 10.50

	// Meta Llama via OpenRouter
	costLlamaSmallPrompt   = 0.05
	costLlamaSmallComplete = 0.08
	costLlamaLargePrompt   = 0.40
	costLlamaLargeComplete = 0.40

	// Conversion factor
	tokensPerMillion = 1000000.0
)

// estimateCost calculates an estimated cost for a request based on provider, model, and token counts.
// Returns cost in USD.
func estimateCost(provider ProviderName, model string, promptTokens, completionTokens int) float64 {
	promptCost, completionCost := getCostRates(provider, model)

	promptUSD := float64(promptTokens) * promptCost / tokensPerMillion
	completionUSD := float64(completionTokens) * completionCost / tokensPerMillion

	return promptUSD + completionUSD
}

// getCostRates returns the cost per 1M tokens for prompt and completion based on provider and model.
func getCostRates(provider ProviderName, model string) (promptRate, completionRate float64) {
	modelLower := strings.ToLower(model)

	switch provider {
	case ProviderOpenAI:
		return getOpenAICostRates(modelLower)
	case ProviderClaude:
		return getClaudeCostRates(modelLower)
	case ProviderGemini:
		return getGeminiCostRates(modelLower)
	case ProviderMeta:
		return getLlamaCostRates(modelLower)
	case ProviderMock:
		return 0, 0
	default:
		// Conservative estimate for anything unknown
		return costGPT4OMiniPrompt, costGPT4OMiniComplete
	}
}

func getOpenAICostRates(model string) (float64, float64) {
	switch {
	case strings.Contains(model, "gpt-4o-mini"):
		return costGPT4OMiniPrompt, costGPT4OMiniComplete
	case strings.Contains(model, "gpt-4o"):
		return costGPT4OPromptPer1M, costGPT4OCompletionPer1M
	case strings.HasSuffix(model, "-mini"):
		return costOMiniPrompt, costOMiniComplete
	case strings.HasPrefix(model, "o1"):
		return costO1Prompt, costO1Complete
	default:
		return costGPT4OMiniPrompt, costGPT4OMiniComplete
	}
}

func getClaudeCostRates(model string) (float64, float64) {
	switch {
	case strings.Contains(model, "haiku"):
		return costClaudeHaikuPrompt, costClaudeHaikuComplete
	case strings.Contains(model, "sonnet"), strings.Contains(model, "opus"):
		return costClaudeSonnetPrompt, costClaudeSonnetComplete
	default:
		return costClaudeHaikuPrompt, costClaudeHaikuComplete
	}
}

func getGeminiCostRates(model string) (float64, float64) {
	switch {
	case strings.Contains(model, "pro"):
		return costGeminiProPrompt, costGeminiProComplete
	default:
		return costGeminiFlashPrompt, costGeminiFlashComplete
	}
}

func getLlamaCostRates(model string) (float64, float64) {
	if strings.Contains(model, "70b") {
		return costLlamaLargePrompt, costLlamaLargeComplete
	}

	return costLlamaSmallPrompt, costLlamaSmallComplete
}
