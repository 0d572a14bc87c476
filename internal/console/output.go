// Package console provides the terminal input and output devices the
// question engine talks to.
package console

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mitchellh/go-wordwrap"

	"github.com/abhisek/cogtests/internal/ui/theme"
)

// DefaultWidth is the column paragraphs are wrapped at.
const DefaultWidth = 80

// Output writes styled text to a terminal. Colors are downsampled to what
// the writer supports, so plain files and buffers receive plain text.
type Output struct {
	w     io.Writer
	Width uint
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: w, Width: DefaultWidth}
}

func (o *Output) Println(text string) {
	lipgloss.Fprintln(o.w, text)
}

// Paragraph wraps text at Width. Existing line breaks are kept.
func (o *Output) Paragraph(text string) {
	lipgloss.Fprintln(o.w, wordwrap.WrapString(strings.TrimSpace(text), o.Width))
}

func (o *Output) Feedback(correct bool, text string) {
	lipgloss.Fprintln(o.w, theme.Verdict(correct, text))
}

// Warn writes an operator-facing warning line.
func (o *Output) Warn(text string) {
	lipgloss.Fprintln(o.w, theme.Warning.Render("warning: "+text))
}

// Number formats a menu option number.
func (o *Output) Number(i int) string {
	return theme.MenuNumber.Render(fmt.Sprintf("(%d)", i))
}
