package plan

import (
	stderrors "errors"
	"fmt"
)

// ErrorKind classifies the terminal failure modes of plan generation and
// synthesis.
type ErrorKind int

const (
	// NoProviderDetected means no registered provider matched the source tree.
	NoProviderDetected ErrorKind = iota

	// InvalidProjectStructure means a provider detected partial or
	// contradictory project files; the message names what is missing.
	InvalidProjectStructure

	// NoStartCommand means the assembled plan's start phase has no runnable
	// entry point.
	NoStartCommand

	// SynthesisError is an internal invariant violation during Dockerfile
	// generation; always a programming defect.
	SynthesisError
)

func (k ErrorKind) String() string {
	switch k {
	case NoProviderDetected:
		return "no provider detected"
	case InvalidProjectStructure:
		return "invalid project structure"
	case NoStartCommand:
		return "no start command"
	case SynthesisError:
		return "synthesis error"
	}
	return "unknown"
}

// Error is the structured failure surfaced to callers: a kind plus a
// user-actionable message. Partial plans are never returned alongside one.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// IsKind reports whether err is (or wraps) a plan error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var planErr *Error
	return stderrors.As(err, &planErr) && planErr.Kind == kind
}
