package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cogtests/internal/question"
)

func TestOutputPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)

	out.Println("What is 7 * 8?")
	out.Feedback(true, "Correct!")
	out.Feedback(false, "Incorrect!")

	assert.Equal(t, "What is 7 * 8?\nCorrect!\nIncorrect!\n", buf.String())
}

func TestOutputParagraphWraps(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)
	out.Width = 20

	out.Paragraph("Rearrange the letters to make an English word or proper noun.")

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20, "line %q", line)
	}
	assert.Equal(t, "Rearrange the letters to make an English word or proper noun.",
		strings.Join(strings.Fields(buf.String()), " "))
}

func TestOutputWarn(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)

	question.Warn(out, "sync failed: no route to host")

	assert.Equal(t, "warning: sync failed: no route to host\n", buf.String())
}

func TestMenuNumbersStyledByOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)
	assert.Contains(t, out.Number(3), "(3)")

	menu := question.NewPicker("", question.Option{Text: "Arithmetic"}, question.Option{Text: "Options"})
	engine := question.NewEngine(NewLineInput(strings.NewReader("1\n"), &buf), out)

	in, err := engine.Ask(context.Background(), menu)
	require.NoError(t, err)
	assert.Equal(t, question.StatusCorrect, in.Status)
	// The buffer is not a terminal, so the styling is stripped on write.
	assert.Contains(t, buf.String(), "(0) Arithmetic\n(1) Options")
}

func TestLineInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unix lines", "56\npass\n", []string{"56", "pass"}},
		{"crlf", "give up\r\n", []string{"give up"}},
		{"unterminated last line", "a\nb", []string{"a", "b"}},
		{"empty line", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			in := NewLineInput(strings.NewReader(tt.input), &out)
			ctx := context.Background()

			for _, want := range tt.want {
				got, err := in.ReadLine(ctx, "What is 7 * 8?")
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			_, err := in.ReadLine(ctx, "What is 7 * 8?")
			assert.ErrorIs(t, err, io.EOF)
			assert.Contains(t, out.String(), "\nWhat is 7 * 8?\n\n>>> ")
		})
	}
}

func TestLineInputCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	in := NewLineInput(strings.NewReader("56\n"), &out)

	_, err := in.ReadLine(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return m
}

func TestLineModelSubmit(t *testing.T) {
	var m tea.Model = newLineModel("What is 7 * 8?")
	m = typeText(m, "56")

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	lm := m.(lineModel)
	assert.True(t, lm.input.Submitted())
	assert.Equal(t, "56", lm.input.Value())

	// Keys after submission are ignored.
	m = typeText(m, "7")
	assert.Equal(t, "56", m.(lineModel).input.Value())
}

func TestLineModelCancel(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
	}{
		{"esc", tea.KeyPressMsg{Code: tea.KeyEscape}},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}},
		{"ctrl+d", tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newLineModel("prompt")
			m = typeText(m, "ab")
			m, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)

			lm := m.(lineModel)
			assert.True(t, lm.input.Cancelled())
			assert.False(t, lm.input.Submitted())
		})
	}
}

func TestLineModelView(t *testing.T) {
	m := newLineModel("Anagram tsleni.")
	assert.Contains(t, m.render(), "Anagram tsleni.")
}

func TestTUIInputCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTUIInput(strings.NewReader(""), io.Discard).ReadLine(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
}
