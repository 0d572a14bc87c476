package console

import (
	"context"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogtests/internal/ui/components"
)

// answerLimit bounds a single answer line.
const answerLimit = 256

// lineModel is a one-shot program: it shows the prompt and an answer field,
// and quits once the field is submitted or cancelled.
type lineModel struct {
	prompt string
	input  components.AnswerInput
}

func newLineModel(prompt string) lineModel {
	return lineModel{
		prompt: prompt,
		input:  components.NewAnswerInput("", answerLimit),
	}
}

func (m lineModel) Init() tea.Cmd {
	return m.input.Init()
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m lineModel) View() tea.View {
	v := tea.NewView("")
	v.SetContent(m.render())
	return v
}

func (m lineModel) render() string {
	return "\n" + m.prompt + "\n\n" + m.input.View() + "\n"
}

// TUIInput reads each answer through a small inline bubbletea program so the
// answer line can be edited on real terminals.
type TUIInput struct {
	in  io.Reader
	out io.Writer
}

// NewTUIInput creates a TUIInput. Nil in or out means the terminal.
func NewTUIInput(in io.Reader, out io.Writer) *TUIInput {
	return &TUIInput{in: in, out: out}
}

// ReadLine runs the prompt program until the answer is submitted. A
// cancelled prompt reports io.EOF, the same as a closed plain input.
func (t *TUIInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}
	if t.out != nil {
		opts = append(opts, tea.WithOutput(t.out))
	}

	final, err := tea.NewProgram(newLineModel(prompt), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(lineModel)
	if !ok || !m.input.Submitted() {
		return "", io.EOF
	}
	return m.input.Value(), nil
}
