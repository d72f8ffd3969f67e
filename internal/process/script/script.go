// Package script writes podcast scripts from news, weather and analysis.
package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/prompts"
)

var scriptSig = llm.TextSignature("podcast_script", "script",
	fmt.Sprintf("the full podcast script, at most %d characters", prompts.MaxScriptChars))

// Request is the material for one script.
type Request struct {
	NewsSummary   string
	Weather       string
	Reflection    string
	Style         string
	LengthMinutes int
}

// Generator produces podcast scripts.
type Generator struct {
	invoker llm.Invoker
	target  llm.Target
	logger  *zerolog.Logger
}

// New creates a generator bound to target.
func New(invoker llm.Invoker, target llm.Target, logger *zerolog.Logger) *Generator {
	return &Generator{
		invoker: invoker,
		target:  target,
		logger:  logger,
	}
}

// Generate writes a script. At least one of NewsSummary and Reflection must be non-blank.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.NewsSummary) == "" && strings.TrimSpace(req.Reflection) == "" {
		return "", apperrors.Validationf("Require at least news or analysis content")
	}

	prompt := prompts.PodcastScript(prompts.ScriptInput{
		NewsSummary:   req.NewsSummary,
		Weather:       req.Weather,
		Reflection:    req.Reflection,
		Style:         req.Style,
		LengthMinutes: req.LengthMinutes,
	})

	text, err := llm.Run(ctx, g.invoker, g.target, scriptSig, prompt)
	if err != nil {
		return "", fmt.Errorf("generating script: %w", err)
	}

	if len(text) > prompts.MaxScriptChars {
		g.logger.Warn().Int("chars", len(text)).Int("limit", prompts.MaxScriptChars).Msg("script exceeds requested length")
	}

	return text, nil
}
