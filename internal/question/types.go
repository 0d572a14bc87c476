package question

import "time"

// Status is the terminal state of an Interaction.
type Status int

const (
	StatusIndeterminate Status = iota // Not yet resolved
	StatusCorrect                     // Accepted answer
	StatusGiveUp                      // User asked for the answer
	StatusIncorrect                   // Attempts exhausted
	StatusQuit                        // User left the question
)

func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusGiveUp:
		return "give_up"
	case StatusIncorrect:
		return "incorrect"
	case StatusQuit:
		return "quit"
	default:
		return "indeterminate"
	}
}

// ParseStatus is the inverse of Status.String. Unknown values map to
// StatusIndeterminate.
func ParseStatus(s string) Status {
	switch s {
	case "correct":
		return StatusCorrect
	case "give_up":
		return StatusGiveUp
	case "incorrect":
		return StatusIncorrect
	case "quit":
		return StatusQuit
	default:
		return StatusIndeterminate
	}
}

// Response is one counted attempt: the raw line and its parsed value.
type Response struct {
	Raw    string
	Answer any
	Time   time.Time
}

// RequestKind identifies a control directive typed instead of an answer.
type RequestKind int

const (
	RequestGiveUp RequestKind = iota
	RequestQuit
	RequestClarification
)

// Request is a control directive. Requests never count as attempts.
type Request struct {
	Kind RequestKind
	Time time.Time
}

// Keywords maps the exact (case-sensitive) control words to their requests.
var Keywords = map[string]RequestKind{
	"help":    RequestClarification,
	"explain": RequestClarification,
	"quit":    RequestQuit,
	"exit":    RequestQuit,
	"give up": RequestGiveUp,
	"pass":    RequestGiveUp,
}

// Interaction records one posed prompt from start to resolution.
type Interaction struct {
	// Question is nil for menu selections.
	Question  Question
	Responses []Response
	StartTime time.Time
	// EndTime stays zero until Resolve is called.
	EndTime time.Time
	Status  Status
}

// NewInteraction starts an interaction for q at the given time.
func NewInteraction(q Question, start time.Time) *Interaction {
	return &Interaction{Question: q, StartTime: start}
}

// Resolve sets the terminal status and end time. Only the first call has
// any effect.
func (i *Interaction) Resolve(status Status, at time.Time) *Interaction {
	if i.Resolved() {
		return i
	}
	i.Status = status
	i.EndTime = at
	return i
}

// Resolved reports whether the interaction has reached a terminal state.
func (i *Interaction) Resolved() bool {
	return !i.EndTime.IsZero()
}

// Duration is the time spent on the interaction, zero while unresolved.
func (i *Interaction) Duration() time.Duration {
	if !i.Resolved() {
		return 0
	}
	return i.EndTime.Sub(i.StartTime)
}

// Answer returns the parsed value of the last attempt, or nil.
func (i *Interaction) Answer() any {
	if len(i.Responses) == 0 {
		return nil
	}
	return i.Responses[len(i.Responses)-1].Answer
}
