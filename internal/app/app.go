// Package app wires the service dependencies and exposes the run modes:
//
//   - Serve mode: HTTP API plus health and metrics endpoints
//   - Generate mode: one pipeline run from the command line
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/glint/internal/api"
	"github.com/lueurxax/glint/internal/core/domain"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/news"
	"github.com/lueurxax/glint/internal/core/speech"
	"github.com/lueurxax/glint/internal/core/weather"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/platform/observability"
	"github.com/lueurxax/glint/internal/process/podcast"
)

const audioDirPerm = 0o755

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger

	invoker  *llm.Client
	speech   *speech.Synthesizer
	pipeline *podcast.Orchestrator
}

// New builds the dependency graph. No network calls are made.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	invoker := llm.NewClient(cfg.LLM, logger)
	synth := speech.NewSynthesizer(cfg.Speech, logger)
	fetcher := news.NewFetcher(cfg.News, logger)
	clock := weather.NewLocalTime(time.Now, time.Local)

	return &App{
		cfg:      cfg,
		logger:   logger,
		invoker:  invoker,
		speech:   synth,
		pipeline: podcast.New(cfg, fetcher, podcast.DefaultStages(invoker, logger), clock, synth, logger),
	}
}

// RunServe serves the HTTP API until ctx is cancelled.
func (a *App) RunServe(ctx context.Context) error {
	if err := os.MkdirAll(a.cfg.Podcast.AudioDir, audioDirPerm); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	handler, err := api.NewHandler(a.cfg, a.invoker, a.pipeline, a.speech, a.logger)
	if err != nil {
		return fmt.Errorf("api handler init: %w", err)
	}

	a.logger.Info().
		Str("provider", a.cfg.LLM.Provider).
		Str("model", a.cfg.LLM.Model).
		Str("audio_dir", a.cfg.Podcast.AudioDir).
		Msg("Podcast API enabled")

	srv := observability.NewServer(a.cfg.HTTPPort, a.readiness, handler, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	return nil
}

// RunGenerate runs the pipeline once and returns the episode.
func (a *App) RunGenerate(ctx context.Context, req podcast.Request) (domain.PodcastEpisode, error) {
	result := a.pipeline.Generate(ctx, req)
	if !result.OK {
		return domain.PodcastEpisode{}, result.Err
	}

	return result.Value, nil
}

// readiness requires the audio directory to exist.
func (a *App) readiness(context.Context) error {
	info, err := os.Stat(a.cfg.Podcast.AudioDir)
	if err != nil {
		return fmt.Errorf("audio dir: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("audio dir %s is not a directory", a.cfg.Podcast.AudioDir)
	}

	return nil
}
