package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#F97316") // Orange
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Answer verdicts
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Prompt
var (
	Marker = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	MenuNumber = lipgloss.NewStyle().
			Foreground(Accent)
)

// PromptMarker is printed before the cursor of every answer line.
const PromptMarker = ">>> "

// Verdict renders text in the style of an answer outcome.
func Verdict(correct bool, text string) string {
	if correct {
		return Correct.Render(text)
	}
	return Incorrect.Render(text)
}
