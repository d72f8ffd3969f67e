// Package summary implements text summarization and news classification on
// top of the model client.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lueurxax/glint/internal/core/domain"
	"github.com/lueurxax/glint/internal/core/llm"
	"github.com/lueurxax/glint/internal/core/prompts"
)

const (
	fieldSummary   = "summary"
	fieldKeyPoints = "key_points"
	fieldBullets   = "bullets"
	fieldImportant = "important_news"
	fieldMention   = "mention_news"

	taskSummarize = "summarize"
	taskKeyPoints = "key_points"
	taskBullets   = "bullet_summary"
	taskClassify  = "classify_news"
)

var (
	summarySig = llm.TextSignature(taskSummarize, fieldSummary, "the summary text")

	keyPointsSig = llm.ListSignature(taskKeyPoints, fieldKeyPoints, "the key points, one per item")

	bulletsSig = llm.ListSignature(taskBullets, fieldBullets, "the bullet points, one per item")

	classifySchema = llm.Schema{
		Task: taskClassify,
		Fields: []llm.Field{
			{Name: fieldImportant, Kind: llm.KindText, Description: "summary of the most important news for this reader"},
			{Name: fieldMention, Kind: llm.KindText, Description: "summary of other news worth mentioning"},
		},
	}

	classifySig = llm.Signature[domain.ClassificationResult]{
		Schema: classifySchema,
		Decode: func(o llm.Output) domain.ClassificationResult {
			return domain.ClassificationResult{
				Important: o.Text(fieldImportant),
				Mention:   o.Text(fieldMention),
			}
		},
	}
)

// Service runs summary and classification calls against one target.
type Service struct {
	invoker llm.Invoker
	target  llm.Target
	logger  *zerolog.Logger
}

// New creates a summary service bound to target.
func New(invoker llm.Invoker, target llm.Target, logger *zerolog.Logger) *Service {
	return &Service{
		invoker: invoker,
		target:  target,
		logger:  logger,
	}
}

// Summarize condenses text. Blank text yields an empty result without a
// model call. With withKeyPoints a second call extracts key points from the
// text and the fresh summary.
func (s *Service) Summarize(ctx context.Context, text string, maxLength int, withKeyPoints bool, contentType string, p domain.Personalization) (domain.SummaryResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.SummaryResult{}, nil
	}

	summary, err := llm.Run(ctx, s.invoker, s.target, summarySig, prompts.Summarize(text, maxLength, contentType, p))
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("summarizing text: %w", err)
	}

	result := domain.SummaryResult{Summary: summary}

	if !withKeyPoints {
		return result, nil
	}

	points, err := llm.Run(ctx, s.invoker, s.target, keyPointsSig, prompts.KeyPoints(text, summary, p))
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("extracting key points: %w", err)
	}

	result.KeyPoints = points

	return result, nil
}

// BulletSummary returns numPoints bullet points. Blank text yields an empty list.
func (s *Service) BulletSummary(ctx context.Context, text string, numPoints int, contentType string, p domain.Personalization) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	if numPoints <= 0 {
		numPoints = prompts.DefaultBulletCount
	}

	bullets, err := llm.Run(ctx, s.invoker, s.target, bulletsSig, prompts.BulletSummary(text, numPoints, contentType, p))
	if err != nil {
		return nil, fmt.Errorf("bullet summary: %w", err)
	}

	return bullets, nil
}

// ClassifyNews splits newsList into important and worth-mentioning summaries
// in one call. An empty list yields an empty result without a model call.
func (s *Service) ClassifyNews(ctx context.Context, newsList []string, p domain.Personalization) (domain.ClassificationResult, error) {
	items := make([]string, 0, len(newsList))

	for _, item := range newsList {
		if strings.TrimSpace(item) != "" {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return domain.ClassificationResult{}, nil
	}

	result, err := llm.Run(ctx, s.invoker, s.target, classifySig, prompts.ClassifyNews(prompts.JoinNews(items), p))
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("classifying news: %w", err)
	}

	s.logger.Debug().Int("items", len(items)).Bool("empty", result.IsEmpty()).Msg("news classified")

	return result, nil
}

// ClassifyArticles serializes articles and classifies them.
func (s *Service) ClassifyArticles(ctx context.Context, articles []domain.NewsArticle, p domain.Personalization) (domain.ClassificationResult, error) {
	return s.ClassifyNews(ctx, prompts.FormatArticles(articles), p)
}
