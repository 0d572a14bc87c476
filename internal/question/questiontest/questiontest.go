// Package questiontest provides scripted input and recording output devices
// for tests that drive the question engine.
package questiontest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Script is an Input that replays fixed lines and then reports io.EOF.
type Script struct {
	mu      sync.Mutex
	lines   []string
	Prompts []string
}

// NewScript returns an Input replaying lines in order.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

func (s *Script) ReadLine(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Prompts = append(s.Prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Remaining reports how many scripted lines were not consumed.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Recorder is an Output that keeps every line written to it.
type Recorder struct {
	mu    sync.Mutex
	Lines []string
}

func (r *Recorder) Println(text string) { r.add(text) }

func (r *Recorder) Paragraph(text string) { r.add(text) }

func (r *Recorder) Warn(text string) { r.add("warning: " + text) }

func (r *Recorder) Feedback(correct bool, text string) {
	mark := "-"
	if correct {
		mark = "+"
	}
	r.add(fmt.Sprintf("[%s] %s", mark, text))
}

// Count returns how many recorded lines contain substr.
func (r *Recorder) Count(substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.Lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

// Text returns everything recorded, newline separated.
func (r *Recorder) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.Lines, "\n")
}

func (r *Recorder) add(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, text)
}
