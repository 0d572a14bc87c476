package session

import (
	"context"
	_ "embed"
	"strings"

	"github.com/abhisek/cogtests/internal/question"
)

//go:embed intro.txt
var introText string

const introFallback = "You should have gotten an intro just then, but something went wrong! " +
	"Sorry about that. Anyway, it's not that hard; you'll catch on."

// Intro shows the introduction a paragraph at a time, waiting for enter
// after each one.
func Intro(ctx context.Context, in question.Input, out question.Output) error {
	paragraphs := introParagraphs(introText)
	if len(paragraphs) == 0 {
		out.Paragraph(introFallback)
		return nil
	}
	for _, p := range paragraphs {
		out.Paragraph(p)
		if _, err := in.ReadLine(ctx, "(press enter to continue)"); err != nil {
			return err
		}
	}
	return nil
}

// introParagraphs splits text on blank lines.
func introParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
