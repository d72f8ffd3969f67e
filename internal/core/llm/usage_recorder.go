package llm

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/glint/internal/platform/observability"
)

// UsageRecorder records token usage metrics for LLM requests.
// This interface allows for dependency injection and easier testing.
type UsageRecorder interface {
	RecordTokenUsage(provider ProviderName, model, task string, promptTokens, completionTokens int, elapsed time.Duration, success bool)
}

// usageRecorder implements UsageRecorder with Prometheus metrics.
type usageRecorder struct {
	logger *zerolog.Logger
}

// NewUsageRecorder creates a new UsageRecorder.
func NewUsageRecorder(logger *zerolog.Logger) UsageRecorder {
	return &usageRecorder{logger: logger}
}

// RecordTokenUsage records token usage metrics for an LLM request.
func (r *usageRecorder) RecordTokenUsage(provider ProviderName, model, task string, promptTokens, completionTokens int, elapsed time.Duration, success bool) {
	r.recordTokenMetrics(string(provider), model, task, promptTokens, completionTokens, elapsed, success)

	cost := estimateCost(provider, model, promptTokens, completionTokens)
	r.recordCostMetric(string(provider), model, task, cost, success)
}

// recordTokenMetrics records Prometheus metrics for token usage.
func (r *usageRecorder) recordTokenMetrics(provider, model, task string, promptTokens, completionTokens int, elapsed time.Duration, success bool) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}

	observability.LLMRequests.WithLabelValues(provider, model, task, status).Inc()
	observability.LLMRequestDuration.WithLabelValues(provider, task).Observe(elapsed.Seconds())

	if promptTokens > 0 {
		observability.LLMTokensPrompt.WithLabelValues(provider, model, task).Add(float64(promptTokens))
	}

	if completionTokens > 0 {
		observability.LLMTokensCompletion.WithLabelValues(provider, model, task).Add(float64(completionTokens))
	}
}

// recordCostMetric records the estimated cost metric in millicents.
func (r *usageRecorder) recordCostMetric(provider, model, task string, cost float64, success bool) {
	if cost > 0 && success {
		costMillicents := cost * usdToMillicents
		observability.LLMEstimatedCost.WithLabelValues(provider, model, task).Add(costMillicents)
	}
}

// noopUsageRecorder is a no-op implementation for testing or when usage tracking is disabled.
type noopUsageRecorder struct{}

// NoopUsageRecorder returns a no-op implementation of UsageRecorder.
func NoopUsageRecorder() UsageRecorder {
	return &noopUsageRecorder{}
}

// RecordTokenUsage does nothing (no-op implementation).
func (r *noopUsageRecorder) RecordTokenUsage(_ ProviderName, _, _ string, _, _ int, _ time.Duration, _ bool) {
	// No-op
}
