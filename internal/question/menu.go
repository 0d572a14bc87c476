package question

import (
	"fmt"
	"strconv"
	"strings"
)

// MenuMode selects how a Menu resolves.
type MenuMode int

const (
	// ModePick resolves on the first valid choice.
	ModePick MenuMode = iota
	// ModeToggle runs the chosen option's action and keeps asking until
	// the user quits.
	ModeToggle
)

// Option is one numbered entry of a Menu.
type Option struct {
	// Text is the label. When Display is set, Text is used as a format
	// string with the display value as its only argument.
	Text    string
	Display func() any
	// Value is what a pick resolves to.
	Value any
	// Action runs when the option is chosen in toggle mode.
	Action func()
	// Clarification is listed by the help request in pick mode.
	Clarification string
}

// Menu is the single choice-menu capability behind plain pickers, option
// toggles and the survey.
type Menu struct {
	Help    string
	Options []Option
	Mode    MenuMode
}

// NewPicker returns a pick-mode menu.
func NewPicker(help string, options ...Option) *Menu {
	return &Menu{Help: help, Options: options, Mode: ModePick}
}

// NewToggles returns a toggle-mode menu.
func NewToggles(help string, options ...Option) *Menu {
	return &Menu{Help: help, Options: options, Mode: ModeToggle}
}

func (m *Menu) Render() string { return m.RenderFor(nil) }

// RenderFor lists the options, numbering them with out when it is a
// Numberer.
func (m *Menu) RenderFor(out Output) string {
	number := func(i int) string { return fmt.Sprintf("(%d)", i) }
	if n, ok := out.(Numberer); ok {
		number = n.Number
	}
	var b strings.Builder
	for i, o := range m.Options {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(number(i))
		b.WriteString(" ")
		b.WriteString(o.label())
	}
	return b.String()
}

// Parse maps an option number to its index.
func (m *Menu) Parse(raw string) (any, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || idx < 0 || idx >= len(m.Options) {
		return nil, &ParseError{Reason: "range", Err: err}
	}
	return idx, nil
}

func (m *Menu) Check(answer any) bool {
	return m.Mode == ModePick
}

// Selected returns the option chosen in a resolved interaction.
func (m *Menu) Selected(in *Interaction) (Option, bool) {
	idx, ok := in.Answer().(int)
	if !ok || idx < 0 || idx >= len(m.Options) {
		return Option{}, false
	}
	return m.Options[idx], true
}

// AllowedAttempts keeps menus unbounded regardless of the engine budget.
func (m *Menu) AllowedAttempts() int { return 0 }

func (m *Menu) Accept(Output, any) {}

func (m *Menu) Reject(_ Output, answer any) {
	idx, ok := answer.(int)
	if !ok || idx < 0 || idx >= len(m.Options) {
		return
	}
	if act := m.Options[idx].Action; act != nil {
		act()
	}
}

func (m *Menu) GiveAway(Output) {}

func (m *Menu) Complain(out Output, _ error) {
	out.Println(fmt.Sprintf("You must enter an integer between 0 and %d.", len(m.Options)-1))
}

func (m *Menu) Clarify(out Output) {
	if m.Help != "" {
		out.Paragraph(m.Help)
	}
	if m.Mode != ModePick {
		return
	}
	for _, o := range m.Options {
		if o.Clarification != "" {
			out.Paragraph(o.Clarification)
		}
	}
}

func (o Option) label() string {
	if o.Display == nil {
		return o.Text
	}
	return fmt.Sprintf(o.Text, o.Display())
}
