package podcast

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/glint/internal/core/domain"
	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/news"
	"github.com/lueurxax/glint/internal/core/speech"
	"github.com/lueurxax/glint/internal/core/weather"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/process/script"
)

type fakeFetcher struct {
	calls   []news.Filters
	failOn  []string
	apiKeys []string
}

func (f *fakeFetcher) TopHeadlines(_ context.Context, apiKey string, filters news.Filters, pageSize, _, _ int) ([]domain.NewsArticle, error) {
	f.calls = append(f.calls, filters)
	f.apiKeys = append(f.apiKeys, apiKey)

	if slices.Contains(f.failOn, filters.Category) {
		return nil, apperrors.ErrTransport
	}

	out := make([]domain.NewsArticle, 0, pageSize)
	for i := 0; i < pageSize; i++ {
		out = append(out, domain.NewsArticle{Title: filters.Category + " story", Source: "Wire", Category: filters.Category})
	}

	return out, nil
}

type fakeStages struct {
	target         llm.Target
	classifyCalls  int
	classifyInput  []domain.NewsArticle
	classifyP      domain.Personalization
	analyzeCalls   int
	analyzeSummary string
	scriptCalls    int
	scriptReq      script.Request
	scriptErr      error
}

func (f *fakeStages) ClassifyArticles(_ context.Context, articles []domain.NewsArticle, p domain.Personalization) (domain.ClassificationResult, error) {
	f.classifyCalls++
	f.classifyInput = articles
	f.classifyP = p

	return domain.ClassificationResult{Important: "Big story", Mention: "Small story"}, nil
}

func (f *fakeStages) AnalyzeAll(_ context.Context, summary string, _ domain.Personalization) (domain.AnalysisResult, error) {
	f.analyzeCalls++
	f.analyzeSummary = summary

	return domain.AnalysisResult{ImpactAnalysis: "impact", CriticalAnalysis: "", BackgroundAnalysis: "background"}, nil
}

func (f *fakeStages) Generate(_ context.Context, req script.Request) (string, error) {
	f.scriptCalls++
	f.scriptReq = req

	if f.scriptErr != nil {
		return "", f.scriptErr
	}

	return "Good morning and welcome.", nil
}

func (f *fakeStages) builder() StageBuilder {
	return func(target llm.Target) ModelStages {
		f.target = target

		return ModelStages{Classifier: f, Analyzer: f, Script: f}
	}
}

type fakeSynth struct {
	calls int
	req   speech.Request
}

func (f *fakeSynth) Synthesize(_ context.Context, req speech.Request) (domain.AudioArtifact, error) {
	f.calls++
	f.req = req

	return domain.AudioArtifact{Path: req.OutputPath, Format: domain.AudioFormatMP3}, nil
}

type fixture struct {
	orch    *Orchestrator
	fetcher *fakeFetcher
	stages  *fakeStages
	synth   *fakeSynth
}

var fixedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		News:    config.NewsConfig{APIKey: "cfg-news-key", Country: "us", FetchRetries: 3},
		Speech:  config.SpeechConfig{Model: "tts-1", Format: "mp3"},
		Podcast: config.PodcastConfig{PageSize: 2, AudioDir: "/tmp/audio", LengthMinutes: 10},
	}

	f := &fixture{fetcher: &fakeFetcher{}, stages: &fakeStages{}, synth: &fakeSynth{}}
	logger := zerolog.Nop()

	clock := weather.NewLocalTime(func() time.Time { return fixedNow }, time.UTC)

	f.orch = New(cfg, f.fetcher, f.stages.builder(), clock, f.synth, &logger)
	f.orch.now = func() time.Time { return fixedNow }
	f.orch.newID = func() string { return "run-1" }

	return f
}

func TestGenerateSuccess(t *testing.T) {
	f := newFixture(t)

	res := f.orch.Generate(context.Background(), Request{
		Categories: []string{"business", "technology"},
		Style:      "relaxed",
		Career:     "engineer",
		Voice:      "nova",
		Speed:      speech.Speed(1.0),
		Model:      "gpt-4o-mini",
		Provider:   "OpenAI",
		LLMAPIKey:  "sk-user",
	})

	require.True(t, res.OK, res.Error())
	assert.Empty(t, res.Stage())

	ep := res.Value
	assert.Equal(t, filepath.Join("/tmp/audio", "podcast-run-1.mp3"), ep.AudioPath)
	assert.Equal(t, "Good morning and welcome.", ep.Script)
	assert.Equal(t, 4, ep.Articles)
	assert.Equal(t, fixedNow, ep.GeneratedAt)

	assert.Equal(t, []news.Filters{{Country: "us", Category: "business"}, {Country: "us", Category: "technology"}}, f.fetcher.calls)
	assert.Equal(t, []string{"cfg-news-key", "cfg-news-key"}, f.fetcher.apiKeys)

	assert.Equal(t, llm.Target{Provider: llm.ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "sk-user"}, f.stages.target)
	assert.Len(t, f.stages.classifyInput, 4)
	assert.Equal(t, domain.Personalization{Interests: []string{"business", "technology"}, Career: "engineer"}, f.stages.classifyP)

	assert.Equal(t, "Important News:\nBig story\n\nWorth Mentioning:\nSmall story", f.stages.analyzeSummary)

	assert.Equal(t, script.Request{
		NewsSummary:   "Important News:\nBig story\n\nWorth Mentioning:\nSmall story",
		Weather:       "Saturday, June 1, 2024 08:00 UTC",
		Reflection:    "impact\n\nbackground",
		Style:         "relaxed",
		LengthMinutes: 10,
	}, f.stages.scriptReq)

	assert.Equal(t, "Good morning and welcome.", f.synth.req.Text)
	assert.Equal(t, "nova", f.synth.req.Voice)
	assert.Equal(t, "tts-1", f.synth.req.Model)
	require.NotNil(t, f.synth.req.Speed)
	assert.InDelta(t, 1.0, *f.synth.req.Speed, 0.0001)
}

func TestGenerateFetchFailureStopsPipeline(t *testing.T) {
	f := newFixture(t)
	f.fetcher.failOn = []string{"business"}

	res := f.orch.Generate(context.Background(), Request{
		Categories: []string{"business", "technology"},
		NewsAPIKey: "user-news-key",
	})

	assert.False(t, res.OK)
	assert.Equal(t, apperrors.StageFetch, res.Stage())
	assert.ErrorIs(t, res.Err, apperrors.ErrTransport)
	assert.Contains(t, res.Error(), "fetch stage failed")

	assert.Len(t, f.fetcher.calls, 1)
	assert.Equal(t, []string{"user-news-key"}, f.fetcher.apiKeys)
	assert.Zero(t, f.stages.classifyCalls)
	assert.Zero(t, f.stages.analyzeCalls)
	assert.Zero(t, f.stages.scriptCalls)
	assert.Zero(t, f.synth.calls)
}

func TestGenerateScriptFailure(t *testing.T) {
	f := newFixture(t)
	f.stages.scriptErr = errors.New("model overloaded")

	res := f.orch.Generate(context.Background(), Request{Categories: []string{"science"}})

	assert.False(t, res.OK)
	assert.Equal(t, apperrors.StageScript, res.Stage())
	assert.Equal(t, 1, f.stages.analyzeCalls)
	assert.Zero(t, f.synth.calls)
}

func TestGenerateRejectsSpeedBeforeAnyCall(t *testing.T) {
	for _, speed := range []float64{5, 0, 0.2} {
		f := newFixture(t)

		res := f.orch.Generate(context.Background(), Request{Categories: []string{"science"}, Speed: speech.Speed(speed)})

		assert.False(t, res.OK, "speed %v", speed)
		assert.Equal(t, apperrors.StageSpeech, res.Stage())
		assert.ErrorIs(t, res.Err, apperrors.ErrValidation)
		assert.Empty(t, f.fetcher.calls)
		assert.Zero(t, f.synth.calls)
	}
}

func TestGenerateNilSpeedUsesDefault(t *testing.T) {
	f := newFixture(t)

	res := f.orch.Generate(context.Background(), Request{Categories: []string{"science"}})

	require.True(t, res.OK, res.Error())
	assert.Nil(t, f.synth.req.Speed)
	assert.Equal(t, 1, f.synth.calls)
}

func TestGenerateWithoutCategoriesFetchesGeneralHeadlines(t *testing.T) {
	f := newFixture(t)

	res := f.orch.Generate(context.Background(), Request{LengthMinutes: 3})

	require.True(t, res.OK, res.Error())
	assert.Equal(t, []news.Filters{{Country: "us"}}, f.fetcher.calls)
	assert.Len(t, f.stages.classifyInput, 2)
	assert.Equal(t, 3, f.stages.scriptReq.LengthMinutes)
}

func TestFormatReflection(t *testing.T) {
	assert.Empty(t, FormatReflection(domain.AnalysisResult{}))
	assert.Equal(t, "a\n\nc", FormatReflection(domain.AnalysisResult{ImpactAnalysis: "a", BackgroundAnalysis: " c "}))
}
