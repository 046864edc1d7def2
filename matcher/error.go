package matcher

import (
	"fmt"
	"time"
)

// ErrorKind classifies matcher errors.
type ErrorKind uint8

const (
	// UnsupportedOption marks a pattern or option set the engine rejects at
	// compile time.
	UnsupportedOption ErrorKind = iota

	// InvalidPattern marks a pattern the parser rejects.
	InvalidPattern

	// Timeout marks a search aborted by the cooperative timeout.
	Timeout

	// SerializationFormat marks malformed serialized matcher text.
	SerializationFormat

	// ArgumentRange marks a search range outside the input.
	ArgumentRange
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedOption:
		return "UnsupportedOption"
	case InvalidPattern:
		return "InvalidPattern"
	case Timeout:
		return "Timeout"
	case SerializationFormat:
		return "SerializationFormat"
	case ArgumentRange:
		return "ArgumentRange"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Sentinel errors, one per kind. Every *Error matches the sentinel of its
// kind under errors.Is.
var (
	ErrUnsupportedOption   = &Error{Kind: UnsupportedOption, Message: "unsupported option"}
	ErrInvalidPattern      = &Error{Kind: InvalidPattern, Message: "invalid pattern"}
	ErrTimeout             = &Error{Kind: Timeout, Message: "match timeout"}
	ErrSerializationFormat = &Error{Kind: SerializationFormat, Message: "malformed serialized matcher"}
	ErrArgumentRange       = &Error{Kind: ArgumentRange, Message: "argument out of range"}
)

// Error is the error type of every failure reported by the engine.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error

	// Timeout is the configured bound of a Timeout error.
	Timeout time.Duration
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := "srm: " + e.Message
	if e.Kind == Timeout && e.Timeout > 0 {
		msg += " after " + e.Timeout.String()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errorf(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
