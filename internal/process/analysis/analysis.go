// Package analysis generates impact, critical and background commentary for
// a news summary.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lueurxax/glint/internal/core/domain"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/prompts"
)

var (
	impactSig     = llm.TextSignature("impact_analysis", "impact_analysis", "analysis of impact and future implications")
	criticalSig   = llm.TextSignature("critical_analysis", "critical_analysis", "critical analysis of bias, objectivity and omissions")
	backgroundSig = llm.TextSignature("background_analysis", "background_analysis", "historical and contextual background")
)

// Service runs the three analysis calls against one target.
type Service struct {
	invoker llm.Invoker
	target  llm.Target
	logger  *zerolog.Logger
}

// New creates an analysis service bound to target.
func New(invoker llm.Invoker, target llm.Target, logger *zerolog.Logger) *Service {
	return &Service{
		invoker: invoker,
		target:  target,
		logger:  logger,
	}
}

// AnalyzeImpact describes the possible impact and future implications.
func (s *Service) AnalyzeImpact(ctx context.Context, summary string, p domain.Personalization) (string, error) {
	return s.run(ctx, impactSig, summary, prompts.ImpactAnalysis, p)
}

// AnalyzeCritical looks for bias, missing perspectives and omitted details.
func (s *Service) AnalyzeCritical(ctx context.Context, summary string, p domain.Personalization) (string, error) {
	return s.run(ctx, criticalSig, summary, prompts.CriticalAnalysis, p)
}

// AnalyzeBackground supplies historical and causal context.
func (s *Service) AnalyzeBackground(ctx context.Context, summary string, p domain.Personalization) (string, error) {
	return s.run(ctx, backgroundSig, summary, prompts.BackgroundAnalysis, p)
}

// AnalyzeAll runs the three analyses concurrently. The first failure cancels
// the others.
func (s *Service) AnalyzeAll(ctx context.Context, summary string, p domain.Personalization) (domain.AnalysisResult, error) {
	var result domain.AnalysisResult

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		result.ImpactAnalysis, err = s.AnalyzeImpact(gctx, summary, p)

		return err
	})

	g.Go(func() error {
		var err error
		result.CriticalAnalysis, err = s.AnalyzeCritical(gctx, summary, p)

		return err
	})

	g.Go(func() error {
		var err error
		result.BackgroundAnalysis, err = s.AnalyzeBackground(gctx, summary, p)

		return err
	})

	if err := g.Wait(); err != nil {
		return domain.AnalysisResult{}, err
	}

	return result, nil
}

func (s *Service) run(ctx context.Context, sig llm.Signature[string], summary string, prompt func(string, domain.Personalization) string, p domain.Personalization) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", nil
	}

	out, err := llm.Run(ctx, s.invoker, s.target, sig, prompt(summary, p))
	if err != nil {
		return "", fmt.Errorf("%s: %w", sig.Schema.Task, err)
	}

	s.logger.Debug().Str("task", sig.Schema.Task).Int("chars", len(out)).Msg("analysis generated")

	return out, nil
}
