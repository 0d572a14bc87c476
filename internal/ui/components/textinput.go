package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogtests/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput as a single answer line. Enter
// submits; ctrl+c, ctrl+d and esc cancel.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	cancelled bool
}

// NewAnswerInput creates a focused answer line. A charLimit of zero or
// less leaves the length unbounded.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = theme.Marker.Render(theme.PromptMarker)
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Once the line is finished further messages are
// ignored.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.Done() {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			a.submitted = true
			return a, nil
		case "ctrl+c", "ctrl+d", "esc":
			a.cancelled = true
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the answer line.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

func (a AnswerInput) Submitted() bool { return a.submitted }
func (a AnswerInput) Cancelled() bool { return a.cancelled }
func (a AnswerInput) Done() bool      { return a.submitted || a.cancelled }
