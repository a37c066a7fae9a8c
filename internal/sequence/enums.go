package sequence

import "fmt"

// Occurrence selects which match a search returns.
type Occurrence int

const (
	// First selects the match with the lowest start index.
	First Occurrence = iota
	// Last selects the match with the highest start index.
	Last
)

// String returns the occurrence name.
func (o Occurrence) String() string {
	switch o {
	case First:
		return "first"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("Occurrence(%d)", int(o))
	}
}

// RelativeBounds scopes a search relative to the calling matcher's bounds.
type RelativeBounds int

const (
	// BoundsBefore searches [0, start).
	BoundsBefore RelativeBounds = iota
	// BoundsBeforeOrEnclosed searches [0, end).
	BoundsBeforeOrEnclosed
	// BoundsEnclosed searches [start, end).
	BoundsEnclosed
	// BoundsAfterOrEnclosed searches [start, len).
	BoundsAfterOrEnclosed
	// BoundsAfter searches [end, len).
	BoundsAfter
	// BoundsWholeSequence searches [0, len).
	BoundsWholeSequence
)

// String returns the bounds name.
func (b RelativeBounds) String() string {
	switch b {
	case BoundsBefore:
		return "before"
	case BoundsBeforeOrEnclosed:
		return "before_or_enclosed"
	case BoundsEnclosed:
		return "enclosed"
	case BoundsAfterOrEnclosed:
		return "after_or_enclosed"
	case BoundsAfter:
		return "after"
	case BoundsWholeSequence:
		return "whole_sequence"
	default:
		return fmt.Sprintf("RelativeBounds(%d)", int(b))
	}
}

// window returns the search window [lo, hi) for the span [start, end) in a
// sequence of length n.
func (b RelativeBounds) window(start, end, n int) (lo, hi int, err error) {
	switch b {
	case BoundsBefore:
		return 0, start, nil
	case BoundsBeforeOrEnclosed:
		return 0, end, nil
	case BoundsEnclosed:
		return start, end, nil
	case BoundsAfterOrEnclosed:
		return start, n, nil
	case BoundsAfter:
		return end, n, nil
	case BoundsWholeSequence:
		return 0, n, nil
	default:
		return 0, 0, enumError("RelativeBounds", int(b))
	}
}

// Direction is a side of the current bounds: where to insert, which way to
// move after a removal, or which way to grow a block.
type Direction int

const (
	// Before is the side toward index 0.
	Before Direction = iota
	// After is the side toward the end of the sequence.
	After
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// InsertionBounds selects the span of the block returned by an insertion.
type InsertionBounds int

const (
	// ExcludingInsertion keeps the original span, shifted if the insertion was before it.
	ExcludingInsertion InsertionBounds = iota
	// JustInsertion spans exactly the inserted elements.
	JustInsertion
	// IncludingInsertion spans the original elements and the inserted ones.
	IncludingInsertion
)

// String returns the insertion bounds name.
func (ib InsertionBounds) String() string {
	switch ib {
	case ExcludingInsertion:
		return "excluding_insertion"
	case JustInsertion:
		return "just_insertion"
	case IncludingInsertion:
		return "including_insertion"
	default:
		return fmt.Sprintf("InsertionBounds(%d)", int(ib))
	}
}

// ParseOccurrence parses the name returned by Occurrence.String.
func ParseOccurrence(s string) (Occurrence, error) {
	for _, o := range []Occurrence{First, Last} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: occurrence %q", ErrInvalidEnum, s)
}

// ParseRelativeBounds parses the name returned by RelativeBounds.String.
// "whole" is accepted as a short form of "whole_sequence".
func ParseRelativeBounds(s string) (RelativeBounds, error) {
	if s == "whole" {
		return BoundsWholeSequence, nil
	}
	for b := BoundsBefore; b <= BoundsWholeSequence; b++ {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: bounds %q", ErrInvalidEnum, s)
}

// ParseDirection parses the name returned by Direction.String.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{Before, After} {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidEnum, s)
}

// ParseInsertionBounds parses the name returned by InsertionBounds.String.
// The short forms "excluding", "just" and "including" are accepted too.
func ParseInsertionBounds(s string) (InsertionBounds, error) {
	for ib := ExcludingInsertion; ib <= IncludingInsertion; ib++ {
		name := ib.String()
		if name == s || name == s+"_insertion" {
			return ib, nil
		}
	}
	return 0, fmt.Errorf("%w: insertion bounds %q", ErrInvalidEnum, s)
}
