package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogtests/internal/ui/theme"
)

// LineInput reads answers one line at a time from a plain reader. It works
// with pipes and dumb terminals.
type LineInput struct {
	r *bufio.Reader
	w io.Writer
}

func NewLineInput(r io.Reader, w io.Writer) *LineInput {
	return &LineInput{r: bufio.NewReader(r), w: w}
}

// ReadLine prints prompt followed by the answer marker and blocks for one
// line. The context is only checked before reading; a blocked read is not
// interrupted. A final unterminated line is returned before io.EOF.
func (l *LineInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lipgloss.Fprint(l.w, "\n"+prompt+"\n\n"+theme.Marker.Render(theme.PromptMarker))

	line, err := l.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return trimLine(line), nil
		}
		return "", err
	}
	return trimLine(line), nil
}

func trimLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}
