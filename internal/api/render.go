package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"

	"github.com/lueurxax/glint/internal/core/domain"
)

const templatePodcast = "podcast.html"

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04 MST")
	},
	"markdown": renderMarkdown,
}

// Renderer renders the HTML views.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("glint").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render renders a named template.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	return nil
}

type podcastView struct {
	Episode  domain.PodcastEpisode
	AudioURL string
}

// RenderPodcast renders the episode page with an inline audio player.
func (r *Renderer) RenderPodcast(w io.Writer, episode domain.PodcastEpisode, audioURL string) error {
	return r.Render(w, templatePodcast, podcastView{Episode: episode, AudioURL: audioURL})
}

// renderMarkdown converts LLM output to HTML. goldmark drops raw HTML by
// default, so the result is safe to embed unescaped.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md)) //nolint:gosec // escaped above
	}

	return template.HTML(buf.String()) //nolint:gosec // goldmark omits raw HTML unless WithUnsafe is set
}
