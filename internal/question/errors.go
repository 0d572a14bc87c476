package question

import "fmt"

// ParseError reports malformed input. It never consumes an attempt.
type ParseError struct {
	// Reason is a short machine-readable code, e.g. "length" or "charset".
	Reason string
	// Message is shown to the user by complaint hooks that choose to.
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("invalid response (%s): %v", e.Reason, e.Err)
	default:
		return fmt.Sprintf("invalid response (%s)", e.Reason)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Malformed builds a ParseError with a formatted user-facing message.
func Malformed(reason, format string, args ...any) *ParseError {
	return &ParseError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}
