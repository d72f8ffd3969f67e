// Package prompts renders the instruction text sent to the language model.
//
// Every builder is a pure function: identical arguments produce byte-identical
// output. Sections are always emitted in the same order:
//
//	task header, instructions, content-type guidance, length constraint,
//	personalization block, subject text, output label.
//
// The personalization block is omitted entirely when no interests or career
// are supplied.
package prompts

import (
	"fmt"
	"strings"

	"github.com/lueurxax/glint/internal/core/domain"
)

// Content types recognized by the guidance tables.
const (
	ContentGeneral   = "general"
	ContentNews      = "news"
	ContentAcademic  = "academic"
	ContentTechnical = "technical"
)

// NewsSeparator delimits items in a classification batch.
const NewsSeparator = "\n\n---\n\n"

// DefaultBulletCount is used when a caller asks for a non-positive number of bullets.
const DefaultBulletCount = 5

const (
	guidanceNews = "Focus on key events, people involved, and significant outcomes."

	personalizationHeader = "## Personalization"
	personalizationFooter = "Emphasize what matters most to this reader without inventing facts."
)

var summaryGuidance = map[string]string{
	ContentGeneral:   "",
	ContentNews:      guidanceNews,
	ContentAcademic:  "Preserve key theoretical concepts and important findings.",
	ContentTechnical: "Maintain technical accuracy while making complex concepts accessible.",
}

var bulletGuidance = map[string]string{
	ContentGeneral:   "",
	ContentNews:      guidanceNews,
	ContentAcademic:  "Identify key theoretical concepts and important findings.",
	ContentTechnical: "Highlight the most important technical information.",
}

// Summarize renders the summarization prompt. maxLength <= 0 means no word limit.
// Unknown content types yield no guidance line.
func Summarize(text string, maxLength int, contentType string, p domain.Personalization) string {
	length := "Create a concise summary."
	if maxLength > 0 {
		length = fmt.Sprintf("Limit the summary to approximately %d words.", maxLength)
	}

	var b builder

	b.header("Text Summarization Task")
	b.instructions("Summarize the following text in a clear, concise manner that captures the essential information.")
	b.bullets(
		"Maintain objectivity and accuracy",
		"Preserve the original meaning and important context",
		"Prioritize key points over peripheral details",
		"Use clear, direct language",
	)
	b.blank()
	b.line(summaryGuidance[contentType])
	b.line(length)
	b.personalization(p)
	b.subject("Text to Summarize", text)
	b.output("Summary")

	return b.String()
}

// BulletSummary renders the prompt asking for exactly numPoints key points.
func BulletSummary(text string, numPoints int, contentType string, p domain.Personalization) string {
	if numPoints <= 0 {
		numPoints = DefaultBulletCount
	}

	var b builder

	b.header("Bullet-Point Summarization Task")
	b.instructions(fmt.Sprintf("Extract exactly %d key points from the following text.", numPoints))
	b.bullets(
		"Ensure each point captures an essential piece of information",
		"Make each point self-contained and understandable on its own",
		"Use concise, clear language",
		"Order points by importance",
	)
	b.blank()
	b.line(bulletGuidance[contentType])
	b.personalization(p)
	b.subject("Text to Summarize", text)
	b.output("Key Points")

	return b.String()
}

// KeyPoints renders the follow-up prompt that extracts key points in light of
// a summary produced for the same text.
func KeyPoints(text, summary string, p domain.Personalization) string {
	var b builder

	b.header("Key Points Extraction Task")
	b.instructions("Extract 3-5 essential key points from the text below. These points should:")
	b.bullets(
		"Represent the most important information",
		"Be presented in order of significance",
		"Be stated clearly and concisely",
		"Complement the summary that was already generated",
	)
	b.personalization(p)
	b.subject("Original Text", text)
	b.subject("Summary Already Generated", summary)
	b.output("Key Points")

	return b.String()
}

// ClassifyNews renders the two-bucket classification prompt over items that
// were already joined with NewsSeparator.
func ClassifyNews(joined string, p domain.Personalization) string {
	var b builder

	b.header("News Classification Task")
	b.instructions("Sort the news items below into two groups and write one summary per group.")
	b.bullets(
		"Important news: stories with broad, lasting or urgent significance",
		"Worth mentioning: secondary stories that deserve a brief note",
		"Write each group as a short flowing summary, not a list of headlines",
		"Leave a group empty if no item belongs to it",
	)
	b.line(fmt.Sprintf("Items are separated by a line containing only %q.", strings.TrimSpace(NewsSeparator)))
	b.personalization(p)
	b.subject("News Items", joined)
	b.output("Classification")

	return b.String()
}

// ImpactAnalysis renders the impact and future implications prompt.
func ImpactAnalysis(summary string, p domain.Personalization) string {
	return analysis("News Impact Analysis Task",
		"Analyze the following news summary and describe:",
		[]string{
			"The possible impact of the event described",
			"The potential future implications",
			"Any affected stakeholders or sectors",
		},
		summary, "Impact Analysis", p)
}

// CriticalAnalysis renders the bias and omissions prompt.
func CriticalAnalysis(summary string, p domain.Personalization) string {
	return analysis("News Critical Analysis Task",
		"Critically analyze the following news summary. Provide:",
		[]string{
			"Any potential biases or missing perspectives",
			"Whether the summary is objective and factual",
			"Any important details or viewpoints that might be omitted",
		},
		summary, "Critical Analysis", p)
}

// BackgroundAnalysis renders the historical context prompt.
func BackgroundAnalysis(summary string, p domain.Personalization) string {
	return analysis("News Background Context Task",
		"Based on the following news summary, provide relevant background information and context, such as:",
		[]string{
			"Related historical events",
			"Underlying causes or preceding incidents",
			"Broader socio-political or economic background",
		},
		summary, "Background Analysis", p)
}

func analysis(title, intro string, points []string, summary, label string, p domain.Personalization) string {
	var b builder

	b.header(title)
	b.instructions(intro)
	b.bullets(points...)
	b.personalization(p)
	b.subject("News Summary", summary)
	b.output(label)

	return b.String()
}

type builder struct {
	sb strings.Builder
}

func (b *builder) header(title string) {
	b.sb.WriteString("# ")
	b.sb.WriteString(title)
	b.sb.WriteString("\n\n")
}

func (b *builder) instructions(intro string) {
	b.sb.WriteString("## Instructions\n")
	b.line(intro)
}

// line writes s followed by a newline. Empty strings are skipped.
func (b *builder) line(s string) {
	if s == "" {
		return
	}

	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *builder) blank() {
	b.sb.WriteByte('\n')
}

func (b *builder) bullets(items ...string) {
	for _, item := range items {
		b.sb.WriteString("- ")
		b.sb.WriteString(item)
		b.sb.WriteByte('\n')
	}
}

func (b *builder) personalization(p domain.Personalization) {
	if p.IsEmpty() {
		return
	}

	b.blank()
	b.line(personalizationHeader)

	if interests := cleanInterests(p.Interests); len(interests) > 0 {
		b.line("Reader interests: " + strings.Join(interests, ", "))
	}

	if career := strings.TrimSpace(p.Career); career != "" {
		b.line("Reader career: " + career)
	}

	b.line(personalizationFooter)
}

func (b *builder) subject(label, text string) {
	b.blank()
	b.sb.WriteString("## ")
	b.sb.WriteString(label)
	b.sb.WriteString(":\n")
	b.sb.WriteString(text)
	b.sb.WriteByte('\n')
}

func (b *builder) output(label string) {
	b.blank()
	b.sb.WriteString("## ")
	b.sb.WriteString(label)
	b.sb.WriteString(":\n")
}

func (b *builder) String() string {
	return b.sb.String()
}

func cleanInterests(in []string) []string {
	out := make([]string, 0, len(in))

	for _, interest := range in {
		if s := strings.TrimSpace(interest); s != "" {
			out = append(out, s)
		}
	}

	return out
}
