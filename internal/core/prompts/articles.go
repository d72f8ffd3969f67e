package prompts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lueurxax/glint/internal/core/domain"
)

// FormatArticle serializes an article into the text form used in
// classification batches:
//
//	[Technology] Title (Source)
//	Description
func FormatArticle(a domain.NewsArticle) string {
	var sb strings.Builder

	if category := strings.TrimSpace(a.Category); category != "" {
		sb.WriteString("[")
		sb.WriteString(cases.Title(language.English).String(category))
		sb.WriteString("] ")
	}

	sb.WriteString(strings.TrimSpace(a.Title))

	if source := strings.TrimSpace(a.Source); source != "" {
		sb.WriteString(" (")
		sb.WriteString(source)
		sb.WriteString(")")
	}

	if desc := strings.TrimSpace(a.Description); desc != "" {
		sb.WriteString("\n")
		sb.WriteString(desc)
	}

	return sb.String()
}

// FormatArticles serializes each article with FormatArticle.
func FormatArticles(articles []domain.NewsArticle) []string {
	out := make([]string, 0, len(articles))

	for _, a := range articles {
		out = append(out, FormatArticle(a))
	}

	return out
}

// JoinNews joins items with NewsSeparator.
func JoinNews(items []string) string {
	return strings.Join(items, NewsSeparator)
}
