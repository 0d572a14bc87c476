package question

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Engine runs the ask/retry/resolve state machine against an input and
// output device.
type Engine struct {
	In  Input
	Out Output

	// Attempts is the default attempt budget for prompts that do not
	// implement Limited. Zero or less means unbounded.
	Attempts int

	// Now is the clock used for timestamps.
	Now func() time.Time
}

// NewEngine creates an Engine with unbounded attempts and the wall clock.
func NewEngine(in Input, out Output) *Engine {
	return &Engine{In: in, Out: out, Now: time.Now}
}

// Ask poses p until it resolves. The returned interaction is always
// resolved. An error is returned only when the input device fails, in which
// case the interaction is resolved as StatusQuit.
func (e *Engine) Ask(ctx context.Context, p Prompt) (*Interaction, error) {
	q, _ := p.(Question)
	in := NewInteraction(q, e.now())
	limit := e.allowed(p)

	for limit <= 0 || len(in.Responses) < limit {
		resp, req, err := e.askOnce(ctx, p)
		if err != nil {
			in.Resolve(StatusQuit, e.now())
			return in, err
		}

		if req != nil {
			switch req.Kind {
			case RequestClarification:
				clarify(p, e.Out)
				continue
			case RequestQuit:
				return in.Resolve(StatusQuit, e.now()), nil
			case RequestGiveUp:
				giveAway(p, e.Out)
				return in.Resolve(StatusGiveUp, e.now()), nil
			}
		}

		in.Responses = append(in.Responses, *resp)
		if p.Check(resp.Answer) {
			accept(p, e.Out, resp.Answer)
			return in.Resolve(StatusCorrect, e.now()), nil
		}
		reject(p, e.Out, resp.Answer)
	}

	giveAway(p, e.Out)
	return in.Resolve(StatusIncorrect, e.now()), nil
}

// askOnce reads lines until one is either a control request or parses.
func (e *Engine) askOnce(ctx context.Context, p Prompt) (*Response, *Request, error) {
	for {
		raw, err := e.In.ReadLine(ctx, render(p, e.Out))
		if err != nil {
			return nil, nil, fmt.Errorf("read response: %w", err)
		}
		if kind, ok := Keywords[raw]; ok {
			return nil, &Request{Kind: kind, Time: e.now()}, nil
		}

		answer, err := p.Parse(raw)
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				perr = &ParseError{Reason: "parse", Err: err}
			}
			complain(p, e.Out, perr)
			continue
		}
		return &Response{Raw: raw, Answer: answer, Time: e.now()}, nil, nil
	}
}

func (e *Engine) allowed(p Prompt) int {
	if l, ok := p.(Limited); ok {
		return l.AllowedAttempts()
	}
	return e.Attempts
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
