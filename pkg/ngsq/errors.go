package ngsq

import (
	"errors"
	"fmt"
)

var (
	// ErrBrokenLine indicates a run of OCR fragments that could not be reassembled
	ErrBrokenLine = errors.New("unrecoverable broken line")
	// ErrNoPerson indicates the input contained no person marker at all
	ErrNoPerson = errors.New("no person detected")
	// ErrResolved indicates Resolve was called on a tree that is already final
	ErrResolved = errors.New("tree already resolved")
)

// ParseError reports the fragment at which broken-line recovery gave up
type ParseError struct {
	Line   int    // Physical line number of the unmatched fragment
	Text   string // Text of the unmatched fragment
	Parent string // Most recent person-marker line, for operator context
}

func (e *ParseError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("line %d: cannot reassemble broken line %q", e.Line, e.Text)
	}
	return fmt.Sprintf("line %d: cannot reassemble broken line %q (last person line %q)", e.Line, e.Text, e.Parent)
}

func (e *ParseError) Unwrap() error {
	return ErrBrokenLine
}
