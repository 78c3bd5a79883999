package tensorio

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when the input does not follow the format.
	ErrMalformed = errors.New("tensorio: malformed input")

	// ErrUnknownFormat is returned when a format or compression cannot be
	// determined from a name or option.
	ErrUnknownFormat = errors.New("tensorio: unknown format")
)

// ParseError describes a problem at a specific line of a COO file.
// It matches ErrMalformed and, if set, the underlying cause.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tensorio: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("tensorio: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformed}
	}
	return []error{ErrMalformed, e.Err}
}
