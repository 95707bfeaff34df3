package giv

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen is matched by every *OpenError.
	ErrOpen = errors.New("cannot open file")
	// ErrIndex is matched by every *IndexError.
	ErrIndex = errors.New("no such dataset")
	// ErrMalformedNumber marks a coordinate token that is not a decimal number.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrShortLine marks a directive with fewer tokens than it needs.
	ErrShortLine = errors.New("too few fields")
)

// OpenError reports a file that could not be opened for reading or writing.
type OpenError struct {
	Op   string // "read", "write" or "append"
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("giv: failed opening %s for %s: %v", e.Path, e.Op, e.Err)
}

func (e *OpenError) Unwrap() []error { return []error{ErrOpen, e.Err} }

// IndexError reports a dataset index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("giv: dataset %d out of range (have %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndex }

// LineError is a parse failure confined to one input line.
type LineError struct {
	Line int    // 1-based
	Text string // raw line
	Err  error  // ErrMalformedNumber or ErrShortLine
}

func (e *LineError) Error() string {
	return fmt.Sprintf("giv: line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }
