package sequence

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by matcher operations.
var (
	// ErrOutOfRange indicates an index or range outside the current sequence.
	ErrOutOfRange = errors.New("index out of range")

	// ErrPatternNotFound indicates a search exhausted its window without a full match.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrUnknownAnchor indicates an anchor that was never set or was dropped by an edit.
	ErrUnknownAnchor = errors.New("unknown anchor")

	// ErrInvalidEnum indicates a switch over an enumeration reached an unknown value.
	ErrInvalidEnum = errors.New("invalid enum value")

	// ErrEmptySequence indicates an element removal from an empty sequence.
	ErrEmptySequence = errors.New("sequence is empty")

	// ErrEmptyPattern indicates a search with no predicates.
	ErrEmptyPattern = errors.New("pattern has no elements")

	// ErrInvalidAnchor indicates an anchor key that is nil or not comparable.
	ErrInvalidAnchor = errors.New("anchor key must be a non-nil comparable value")

	// ErrInvalidCount indicates a negative element count.
	ErrInvalidCount = errors.New("count must not be negative")
)

// RangeError reports an operation addressing [Start, End) in a sequence of
// length Len. It unwraps to ErrOutOfRange.
type RangeError struct {
	Op    string
	Start int
	End   int
	Len   int
}

func (e *RangeError) Error() string {
	if e.End == e.Start+1 {
		return fmt.Sprintf("%s: index %d outside sequence of length %d", e.Op, e.Start, e.Len)
	}
	return fmt.Sprintf("%s: range [%d, %d) outside sequence of length %d", e.Op, e.Start, e.End, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// PatternNotFoundError carries the description of every predicate of a
// failed search, in pattern order. It unwraps to ErrPatternNotFound.
type PatternNotFoundError struct {
	Occurrence   Occurrence
	Bounds       RelativeBounds
	Descriptions []string
}

func (e *PatternNotFoundError) Error() string {
	quoted := make([]string, len(e.Descriptions))
	for i, d := range e.Descriptions {
		quoted[i] = fmt.Sprintf("%q", d)
	}
	return fmt.Sprintf("pattern not found (%s occurrence, %s): [%s]",
		e.Occurrence, e.Bounds, strings.Join(quoted, ", "))
}

func (e *PatternNotFoundError) Unwrap() error {
	return ErrPatternNotFound
}

// UnknownAnchorError names the anchor that could not be resolved.
// It unwraps to ErrUnknownAnchor.
type UnknownAnchorError struct {
	Kind   string // "pointer" or "block"
	Anchor any
}

func (e *UnknownAnchorError) Error() string {
	return fmt.Sprintf("unknown %s anchor %v", e.Kind, e.Anchor)
}

func (e *UnknownAnchorError) Unwrap() error {
	return ErrUnknownAnchor
}

func enumError(name string, v int) error {
	return fmt.Errorf("%w: %s(%d)", ErrInvalidEnum, name, v)
}
