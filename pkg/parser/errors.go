package parser

import (
	"errors"
	"fmt"
)

// ErrReferenceCycle is returned when resolving a virtual path leads back to
// a document that is already being resolved.
var ErrReferenceCycle = errors.New("virtual path reference cycle")

// errNoSource is returned when a document must be read but no source is set.
var errNoSource = errors.New("no document source configured")

// ParseError is a failure located in a document. Line and Column locate
// the directive that failed, 1-based, or are zero when unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
