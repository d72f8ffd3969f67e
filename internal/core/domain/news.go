package domain

import (
	"strings"
	"time"
)

// NewsArticle is a normalized headline record from the news provider.
type NewsArticle struct {
	Title       string
	Source      string
	Description string
	URL         string
	Image       string
	PublishedAt string    // Raw provider timestamp
	Published   time.Time // Zero when PublishedAt could not be parsed
	Content     string
	Category    string // Category filter the article was fetched for
}

// Personalization carries user hints threaded through prompts.
type Personalization struct {
	Interests []string
	Career    string
}

// IsEmpty reports whether no personalization was supplied.
func (p Personalization) IsEmpty() bool {
	if strings.TrimSpace(p.Career) != "" {
		return false
	}

	for _, interest := range p.Interests {
		if strings.TrimSpace(interest) != "" {
			return false
		}
	}

	return true
}

// SummaryResult is the output of a summarization request.
// KeyPoints is nil unless key points were explicitly requested.
type SummaryResult struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// ClassificationResult holds two free-text summaries, one per bucket.
type ClassificationResult struct {
	Important string `json:"important"`
	Mention   string `json:"mention"`
}

// IsEmpty reports whether both buckets are blank.
func (c ClassificationResult) IsEmpty() bool {
	return strings.TrimSpace(c.Important) == "" && strings.TrimSpace(c.Mention) == ""
}

// AnalysisResult holds the three commentary strings generated over one summary.
type AnalysisResult struct {
	ImpactAnalysis     string `json:"impact_analysis"`
	CriticalAnalysis   string `json:"critical_analysis"`
	BackgroundAnalysis string `json:"background_analysis"`
}
