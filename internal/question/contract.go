package question

import (
	"context"
	"fmt"
)

// Input is the blocking line source. The returned line has no trailing
// newline.
type Input interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Output renders prompts and feedback.
type Output interface {
	// Println writes a single line as-is.
	Println(text string)
	// Paragraph writes text wrapped to the terminal width.
	Paragraph(text string)
	// Feedback writes a verdict line styled by outcome.
	Feedback(correct bool, text string)
}

// Prompt is anything the Engine can ask: variant questions and menus.
type Prompt interface {
	Render() string
	// Parse validates raw input. Malformed input returns a *ParseError.
	Parse(raw string) (any, error)
	Check(answer any) bool
}

// Question is a posed question with value identity. Two questions with
// equal Kind and Key are the same question.
type Question interface {
	Prompt
	Kind() string
	// Key is a canonical encoding of the full parameter record.
	Key() string
	CorrectAnswer() any
}

// Optional feedback capabilities. The Engine falls back to the defaults
// below for any a prompt does not implement.
type (
	Clarifier  interface{ Clarify(out Output) }
	Revealer   interface{ GiveAway(out Output) }
	Accepter   interface{ Accept(out Output, answer any) }
	Rejecter   interface{ Reject(out Output, answer any) }
	Complainer interface{ Complain(out Output, err error) }
)

// Limited overrides the engine's attempt budget. Zero or less means
// unbounded.
type Limited interface{ AllowedAttempts() int }

// OutputRenderer is a prompt whose text depends on the output device, such
// as a menu styling its option numbers.
type OutputRenderer interface {
	RenderFor(out Output) string
}

// Optional output device capabilities.
type (
	// Warner writes operator-facing warnings.
	Warner interface{ Warn(text string) }
	// Numberer formats a menu option number.
	Numberer interface{ Number(i int) string }
)

// Warn writes text as a warning on out.
func Warn(out Output, text string) {
	if w, ok := out.(Warner); ok {
		w.Warn(text)
		return
	}
	out.Println("warning: " + text)
}

func render(p Prompt, out Output) string {
	if r, ok := p.(OutputRenderer); ok {
		return r.RenderFor(out)
	}
	return p.Render()
}

// Exact supplies CorrectAnswer and an equality Check. Variants embed it
// and override Check when correctness is not literal.
type Exact[T comparable] struct {
	Value T
	// Reduce normalizes both sides before comparison. Nil means identity.
	Reduce func(T) T
}

func (e Exact[T]) CorrectAnswer() any { return e.Value }

func (e Exact[T]) Check(answer any) bool {
	v, ok := answer.(T)
	if !ok {
		return false
	}
	if e.Reduce != nil {
		return e.Reduce(v) == e.Reduce(e.Value)
	}
	return v == e.Value
}

func clarify(p Prompt, out Output) {
	out.Println("")
	if c, ok := p.(Clarifier); ok {
		c.Clarify(out)
		return
	}
	out.Println("Sorry, no help available!")
}

func giveAway(p Prompt, out Output) {
	if r, ok := p.(Revealer); ok {
		r.GiveAway(out)
		return
	}
	if q, ok := p.(Question); ok {
		out.Println(fmt.Sprintf("The correct answer was %v", q.CorrectAnswer()))
	}
}

func accept(p Prompt, out Output, answer any) {
	if a, ok := p.(Accepter); ok {
		a.Accept(out, answer)
		return
	}
	out.Feedback(true, "Correct!")
}

func reject(p Prompt, out Output, answer any) {
	if r, ok := p.(Rejecter); ok {
		r.Reject(out, answer)
		return
	}
	out.Feedback(false, "Incorrect!")
}

func complain(p Prompt, out Output, err error) {
	if c, ok := p.(Complainer); ok {
		c.Complain(out, err)
		return
	}
	out.Println("That isn't a valid response!")
}
