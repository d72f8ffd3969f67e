package prompts

import (
	"fmt"
	"strings"
)

// DefaultLengthMinutes is the target episode length when none is given.
const DefaultLengthMinutes = 10

// MaxScriptChars is the soft cap the model is asked to respect.
const MaxScriptChars = 4096

const defaultStyle = "Standard engaging podcast format"

// Script cue markers the model is asked to place inline.
const (
	CueBackgroundMusic = "[BACKGROUND MUSIC]"
	CuePause           = "[PAUSE]"
)

// ScriptInput holds the material a podcast script is written from.
type ScriptInput struct {
	NewsSummary   string
	Weather       string
	Reflection    string
	Style         string
	LengthMinutes int
}

// PodcastScript renders the scriptwriting prompt.
func PodcastScript(in ScriptInput) string {
	minutes := in.LengthMinutes
	if minutes <= 0 {
		minutes = DefaultLengthMinutes
	}

	style := strings.TrimSpace(in.Style)
	tone := style

	if style == "" {
		style = defaultStyle
		tone = "a friendly, conversational"
	}

	var b builder

	b.header("Podcast Script Task")
	b.instructions(fmt.Sprintf("Create a %d-minute engaging podcast script combining the elements below.", minutes))
	b.subject("News Summary", in.NewsSummary)
	b.subject("Current Time and Weather", in.Weather)
	b.subject("Analytical Reflection", in.Reflection)
	b.subject("Style Requirements", style)
	b.blank()
	b.line("## Structure Guidance")
	b.line("1. Open with a weather and time related greeting; if there is no such context open with a general greeting")
	b.line("2. Introduce the news topics naturally")
	b.line("3. Blend the analysis with real-world connections")
	b.line(fmt.Sprintf("4. Maintain %s tone throughout", tone))
	b.line("5. Close with a memorable remark")
	b.line(fmt.Sprintf("6. The script must have at most %d characters", MaxScriptChars))
	b.blank()
	b.line(fmt.Sprintf("Include verbal cues like %s and %s where appropriate.", CueBackgroundMusic, CuePause))
	b.output("Script")

	return b.String()
}
