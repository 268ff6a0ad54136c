package routing

import (
	"errors"
	"fmt"
)

var (
	ErrIOFailure      = errors.New("io failure")
	ErrMalformedInput = errors.New("malformed input")
	ErrExpansionLimit = errors.New("path planning error: expansion limit reached")
)

// ParseError reports the input line that could not be parsed.
type ParseError struct {
	Source string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrMalformedInput }
