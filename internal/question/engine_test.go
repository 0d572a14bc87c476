package question

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cogtests/internal/question/questiontest"
)

// numberQuestion accepts a single integer and counts its feedback hooks.
type numberQuestion struct {
	Exact[int]
	attempts   int
	giveAways  int
	clarified  int
	complaints int
}

func (q *numberQuestion) Kind() string   { return "number" }
func (q *numberQuestion) Key() string    { return strconv.Itoa(q.Value) }
func (q *numberQuestion) Render() string { return "Pick the number" }

func (q *numberQuestion) Parse(raw string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, &ParseError{Reason: "integer", Err: err}
	}
	return n, nil
}

func (q *numberQuestion) AllowedAttempts() int   { return q.attempts }
func (q *numberQuestion) GiveAway(Output)        { q.giveAways++ }
func (q *numberQuestion) Clarify(Output)         { q.clarified++ }
func (q *numberQuestion) Complain(Output, error) { q.complaints++ }

func newEngine(lines ...string) (*Engine, *questiontest.Recorder) {
	out := &questiontest.Recorder{}
	e := NewEngine(questiontest.NewScript(lines...), out)
	return e, out
}

func TestAsk_CorrectOnFirstAttempt(t *testing.T) {
	e, out := newEngine("42")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}, attempts: 3}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusCorrect, in.Status)
	assert.Len(t, in.Responses, 1)
	assert.Equal(t, 42, in.Answer())
	assert.Equal(t, 1, out.Count("Correct!"))
	assert.True(t, in.Resolved())
	assert.Same(t, q, in.Question)
}

func TestAsk_ExhaustsAttempts(t *testing.T) {
	e, out := newEngine("1", "2", "3", "42")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}, attempts: 3}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusIncorrect, in.Status)
	assert.Len(t, in.Responses, 3)
	assert.Equal(t, 1, q.giveAways, "give away fires exactly once")
	assert.Equal(t, 3, out.Count("Incorrect!"))
}

func TestAsk_QuitOnSecondAttempt(t *testing.T) {
	e, _ := newEngine("1", "quit", "42")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}, attempts: 3}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusQuit, in.Status)
	assert.Len(t, in.Responses, 1)
	assert.Zero(t, q.giveAways)
}

func TestAsk_GiveUpReveals(t *testing.T) {
	for _, word := range []string{"give up", "pass"} {
		t.Run(word, func(t *testing.T) {
			e, _ := newEngine(word)
			q := &numberQuestion{Exact: Exact[int]{Value: 42}}

			in, err := e.Ask(context.Background(), q)
			require.NoError(t, err)
			assert.Equal(t, StatusGiveUp, in.Status)
			assert.Empty(t, in.Responses)
			assert.Equal(t, 1, q.giveAways)
		})
	}
}

func TestAsk_RequestsAndParseErrorsDoNotConsumeAttempts(t *testing.T) {
	e, _ := newEngine("help", "explain", "abc", "7*8", "1", "42")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}, attempts: 2}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusCorrect, in.Status)
	assert.Len(t, in.Responses, 2)
	assert.Equal(t, 2, q.clarified)
	assert.Equal(t, 2, q.complaints)
}

func TestAsk_KeywordsAreCaseSensitive(t *testing.T) {
	e, _ := newEngine("QUIT", "exit")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusQuit, in.Status)
	assert.Equal(t, 1, q.complaints, "QUIT is not a keyword and fails to parse")
}

func TestAsk_UnboundedUsesEngineDefault(t *testing.T) {
	e, _ := newEngine("1", "2", "3", "4", "42")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusCorrect, in.Status)
	assert.Len(t, in.Responses, 5)
}

func TestAsk_InputFailureResolvesQuit(t *testing.T) {
	e, _ := newEngine("1")
	q := &numberQuestion{Exact: Exact[int]{Value: 42}}

	in, err := e.Ask(context.Background(), q)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, StatusQuit, in.Status)
	assert.True(t, in.Resolved())
}

func TestAsk_DefaultFeedback(t *testing.T) {
	e, out := newEngine("x", "help", "give up")
	e.Attempts = 5
	q := &plainQuestion{Exact: Exact[string]{Value: "yes"}}

	in, err := e.Ask(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, StatusGiveUp, in.Status)
	assert.Contains(t, out.Text(), "That isn't a valid response!")
	assert.Contains(t, out.Text(), "Sorry, no help available!")
	assert.Contains(t, out.Text(), "The correct answer was yes")
}

type plainQuestion struct{ Exact[string] }

func (q *plainQuestion) Kind() string   { return "plain" }
func (q *plainQuestion) Key() string    { return q.Value }
func (q *plainQuestion) Render() string { return "Say yes" }

func (q *plainQuestion) Parse(raw string) (any, error) {
	if raw == "x" {
		return nil, Malformed("x", "no x")
	}
	return raw, nil
}

func TestInteraction_ResolveOnce(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	in := NewInteraction(nil, start)
	assert.Zero(t, in.Duration())

	in.Resolve(StatusCorrect, start.Add(5*time.Second))
	in.Resolve(StatusQuit, start.Add(9*time.Second))

	assert.Equal(t, StatusCorrect, in.Status)
	assert.Equal(t, 5*time.Second, in.Duration())
}

func TestExact_Reduce(t *testing.T) {
	e := Exact[string]{Value: "Abc", Reduce: strings.ToLower}
	assert.True(t, e.Check("aBC"))
	assert.False(t, e.Check("abd"))
	assert.False(t, e.Check(3))
}

func TestStatus_RoundTrip(t *testing.T) {
	for _, s := range []Status{StatusIndeterminate, StatusCorrect, StatusGiveUp, StatusIncorrect, StatusQuit} {
		assert.Equal(t, s, ParseStatus(s.String()))
	}
}
