package api

import (
	"encoding/json"
	"strings"

	"github.com/lueurxax/glint/internal/core/domain"
	"github.com/lueurxax/glint/internal/core/llm"
)

// stringList accepts either a JSON array of strings or a single
// comma-separated string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items

		return nil
	}

	var single *string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	if single == nil {
		*l = nil

		return nil
	}

	parts := strings.Split(*single, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	*l = out

	return nil
}

// modelFields selects the model for the text endpoints.
type modelFields struct {
	Model    string `json:"model"`
	Provider string `json:"provider"`
	ModelAPI string `json:"modelapi"`
}

func (m modelFields) target() llm.Target {
	return llm.Target{
		Provider: llm.ParseProviderName(m.Provider),
		Model:    strings.TrimSpace(m.Model),
		APIKey:   strings.TrimSpace(m.ModelAPI),
	}
}

type personalizationFields struct {
	UserInterests stringList `json:"user_interests"`
	UserCareer    string     `json:"user_career"`
}

func (p personalizationFields) personalization() domain.Personalization {
	return domain.Personalization{
		Interests: p.UserInterests,
		Career:    strings.TrimSpace(p.UserCareer),
	}
}

type generatePodcastRequest struct {
	Category stringList `json:"category"`
	Style    string     `json:"style"`
	Career   string     `json:"career"`
	Voice    string     `json:"voice"`
	Speed    *float64   `json:"speed"`
	Model    string     `json:"model"`
	Provider string     `json:"provider"`
	NewsAPI  string     `json:"newsapi"`
	ModelAPI string     `json:"modelapi"`
}

type generatePodcastResponse struct {
	Result    bool   `json:"result"`
	AudioPath string `json:"audio_path"`
	AudioURL  string `json:"audio_url"`
	Script    string `json:"script"`
}

type pipelineErrorResponse struct {
	Result bool   `json:"result"`
	Error  string `json:"error"`
	Stage  string `json:"stage,omitempty"`
}

type analyzeTextRequest struct {
	modelFields
	personalizationFields
	Summary string `json:"summary"`
}

type summarizeTextRequest struct {
	modelFields
	personalizationFields
	Text          string `json:"text"`
	MaxLength     int    `json:"max_length"`
	WithKeyPoints bool   `json:"with_key_points"`
	BulletFormat  bool   `json:"bullet_format"`
	NumBullets    *int   `json:"num_bullets"`
	ContentType   string `json:"content_type"`
}

type bulletSummaryResponse struct {
	BulletSummary []string `json:"bullet_summary"`
}

type classifyNewsRequest struct {
	modelFields
	personalizationFields
	NewsList []string `json:"news_list"`
}

type textToSpeechRequest struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice"`
	Model  string  `json:"model"`
	Format string  `json:"format"`
	Speed  *float64 `json:"speed"`
}

type preferencesRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}

type preferencesResponse struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	Preferences json.RawMessage `json:"preferences"`
}
