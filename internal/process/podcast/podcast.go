// Package podcast orchestrates the news-to-audio pipeline:
// fetch → classify → analyze → script → speech.
package podcast

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/glint/internal/core/domain"
	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/news"
	"github.com/lueurxax/glint/internal/core/speech"
	"github.com/lueurxax/glint/internal/core/weather"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/platform/observability"
	"github.com/lueurxax/glint/internal/process/analysis"
	"github.com/lueurxax/glint/internal/process/script"
	"github.com/lueurxax/glint/internal/process/summary"
)

const (
	audioFilePrefix = "podcast-"
	firstPage       = 1

	runStatusSuccess = "success"
	runStatusError   = "error"

	logFieldRunID = "run_id"
	logFieldStage = "stage"
)

// HeadlineFetcher is the news source.
type HeadlineFetcher interface {
	TopHeadlines(ctx context.Context, apiKey string, filters news.Filters, pageSize, page, maxRetries int) ([]domain.NewsArticle, error)
}

// Classifier splits articles into important and worth-mentioning summaries.
type Classifier interface {
	ClassifyArticles(ctx context.Context, articles []domain.NewsArticle, p domain.Personalization) (domain.ClassificationResult, error)
}

// Analyzer produces the three commentary strings.
type Analyzer interface {
	AnalyzeAll(ctx context.Context, summary string, p domain.Personalization) (domain.AnalysisResult, error)
}

// ScriptWriter turns news and analysis into a script.
type ScriptWriter interface {
	Generate(ctx context.Context, req script.Request) (string, error)
}

// Synthesizer turns a script into audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, req speech.Request) (domain.AudioArtifact, error)
}

// ModelStages groups the stages that call the model for one target.
type ModelStages struct {
	Classifier Classifier
	Analyzer   Analyzer
	Script     ScriptWriter
}

// StageBuilder binds the model stages to a per-request target.
type StageBuilder func(target llm.Target) ModelStages

// DefaultStages builds the summary, analysis and script services on invoker.
func DefaultStages(invoker llm.Invoker, logger *zerolog.Logger) StageBuilder {
	return func(target llm.Target) ModelStages {
		return ModelStages{
			Classifier: summary.New(invoker, target, logger),
			Analyzer:   analysis.New(invoker, target, logger),
			Script:     script.New(invoker, target, logger),
		}
	}
}

// Request is one podcast generation request.
type Request struct {
	Categories    []string
	Style         string
	Career        string
	Voice         string
	Speed         *float64 // nil uses the configured speed
	Model         string
	Provider      string
	NewsAPIKey    string
	LLMAPIKey     string
	LengthMinutes int
}

// Orchestrator runs the pipeline. It holds no per-request state.
type Orchestrator struct {
	cfg     *config.Config
	fetcher HeadlineFetcher
	stages  StageBuilder
	weather weather.Source
	speech  Synthesizer
	logger  *zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// New creates an orchestrator.
func New(cfg *config.Config, fetcher HeadlineFetcher, stages StageBuilder, weatherSource weather.Source, synth Synthesizer, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		fetcher: fetcher,
		stages:  stages,
		weather: weatherSource,
		speech:  synth,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Generate runs every stage in order and stops at the first failure, which is
// reported with its stage tag.
func (o *Orchestrator) Generate(ctx context.Context, req Request) domain.Result[domain.PodcastEpisode] {
	runID := o.newID()
	logger := o.logger.With().Str(logFieldRunID, runID).Logger()

	episode, err := o.run(ctx, runID, req, &logger)
	if err != nil {
		result := domain.Fail[domain.PodcastEpisode](apperrors.StageFetch, err)

		observability.PodcastRuns.WithLabelValues(runStatusError, result.Stage()).Inc()
		logger.Error().Err(err).Str(logFieldStage, result.Stage()).Msg("podcast generation failed")

		return result
	}

	observability.PodcastRuns.WithLabelValues(runStatusSuccess, "").Inc()
	logger.Info().Str("audio_path", episode.AudioPath).Int("articles", episode.Articles).Msg("podcast generated")

	return domain.Ok(episode)
}

func (o *Orchestrator) run(ctx context.Context, runID string, req Request, logger *zerolog.Logger) (domain.PodcastEpisode, error) {
	if err := speech.ValidateSpeed(req.Speed); err != nil {
		return domain.PodcastEpisode{}, apperrors.NewStageError(apperrors.StageSpeech, err)
	}

	p := domain.Personalization{Interests: req.Categories, Career: req.Career}
	stages := o.stages(llm.Target{
		Provider: llm.ParseProviderName(req.Provider),
		Model:    strings.TrimSpace(req.Model),
		APIKey:   strings.TrimSpace(req.LLMAPIKey),
	})

	var articles []domain.NewsArticle

	err := o.stage(apperrors.StageFetch, func() error {
		var err error
		articles, err = o.fetchAll(ctx, req)

		return err
	})
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	logger.Debug().Int("articles", len(articles)).Msg("headlines fetched")

	var classification domain.ClassificationResult

	err = o.stage(apperrors.StageClassify, func() error {
		var err error
		classification, err = stages.Classifier.ClassifyArticles(ctx, articles, p)

		return err
	})
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	newsBlock := FormatClassification(classification)

	var analyses domain.AnalysisResult

	err = o.stage(apperrors.StageAnalyze, func() error {
		var err error
		analyses, err = stages.Analyzer.AnalyzeAll(ctx, newsBlock, p)

		return err
	})
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	var text string

	err = o.stage(apperrors.StageScript, func() error {
		report, err := o.weather.Report(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("weather unavailable")
		}

		text, err = stages.Script.Generate(ctx, script.Request{
			NewsSummary:   newsBlock,
			Weather:       report,
			Reflection:    FormatReflection(analyses),
			Style:         req.Style,
			LengthMinutes: o.lengthMinutes(req),
		})

		return err
	})
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	var artifact domain.AudioArtifact

	err = o.stage(apperrors.StageSpeech, func() error {
		format, err := domain.ParseAudioFormat(o.cfg.Speech.Format)
		if err != nil {
			return err
		}

		artifact, err = o.speech.Synthesize(ctx, speech.Request{
			Text:       text,
			Voice:      req.Voice,
			Model:      o.cfg.Speech.Model,
			Format:     string(format),
			Speed:      req.Speed,
			OutputPath: filepath.Join(o.cfg.Podcast.AudioDir, audioFilePrefix+runID+format.Extension()),
		})

		return err
	})
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	return domain.PodcastEpisode{
		AudioPath:      artifact.Path,
		Script:         text,
		Classification: classification,
		Analysis:       analyses,
		Articles:       len(articles),
		GeneratedAt:    o.now(),
	}, nil
}

// fetchAll fetches each category in order; the first failure aborts. No
// categories fetches the general headlines once.
func (o *Orchestrator) fetchAll(ctx context.Context, req Request) ([]domain.NewsArticle, error) {
	apiKey := strings.TrimSpace(req.NewsAPIKey)
	if apiKey == "" {
		apiKey = o.cfg.News.APIKey
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = []string{""}
	}

	var articles []domain.NewsArticle

	for _, category := range categories {
		filters := news.Filters{Country: o.cfg.News.Country, Category: strings.TrimSpace(category)}

		batch, err := o.fetcher.TopHeadlines(ctx, apiKey, filters, o.cfg.Podcast.PageSize, firstPage, o.cfg.News.FetchRetries)
		if err != nil {
			return nil, fmt.Errorf("fetching %q headlines: %w", category, err)
		}

		articles = append(articles, batch...)
	}

	return articles, nil
}

// stage runs fn, records its duration and tags any error with name.
func (o *Orchestrator) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()

	observability.PodcastStageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		return apperrors.NewStageError(name, err)
	}

	return nil
}

func (o *Orchestrator) lengthMinutes(req Request) int {
	if req.LengthMinutes > 0 {
		return req.LengthMinutes
	}

	return o.cfg.Podcast.LengthMinutes
}

// FormatClassification renders the labeled block fed to analysis and scripting.
func FormatClassification(c domain.ClassificationResult) string {
	return fmt.Sprintf("Important News:\n%s\n\nWorth Mentioning:\n%s", c.Important, c.Mention)
}

// FormatReflection joins the non-empty analyses into one reflection text.
func FormatReflection(a domain.AnalysisResult) string {
	parts := make([]string, 0, 3)

	for _, s := range []string{a.ImpactAnalysis, a.CriticalAnalysis, a.BackgroundAnalysis} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, "\n\n")
}
