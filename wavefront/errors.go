package wavefront

import (
	"fmt"
	"strings"
)

// ErrorKind classifies the errors returned by the scanner and readers. Each
// kind is itself an error so callers can match with errors.Is.
type ErrorKind int

const (
	// A mandatory numeric component was missing or not a number.
	ErrUnreadableData ErrorKind = iota + 1

	// A scalar or string token did not match the expected token kind.
	ErrInvalidData

	// The input violates the semantics of the file format.
	ErrUnexpectedFileFormat

	// Read was invoked while another Read on the same reader was running.
	ErrConcurrentRead
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrUnreadableData:
		return "unreadable data"
	case ErrInvalidData:
		return "invalid data"
	case ErrUnexpectedFileFormat:
		return "unexpected file format"
	case ErrConcurrentRead:
		return "concurrent read on the same reader"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// ParseError describes the first error encountered while reading a source.
type ParseError struct {
	Kind ErrorKind

	// 1-based line of the source where the error was detected.
	Line int

	Msg string

	// Optional underlying cause (e.g. a loader or nested material error).
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "[line %d] ", e.Line)
	}
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
