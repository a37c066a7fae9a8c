package sequence

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// BlockMatcher is an immutable cursor over the contiguous range
// [StartIndex, EndIndex) of a sequence.
type BlockMatcher[T any] struct {
	elements []T
	anchors  ledger
	start    int
	length   int
	opts     *options
}

// NewBlockMatcher creates a block spanning a copy of elements.
func NewBlockMatcher[T any](elements []T, opts ...Option) BlockMatcher[T] {
	return BlockMatcher[T]{
		elements: slices.Clone(elements),
		length:   len(elements),
		opts:     newOptions(opts),
	}
}

// StartIndex returns the index of the first element of the block.
func (b BlockMatcher[T]) StartIndex() int {
	return b.start
}

// Length returns the number of elements in the block.
func (b BlockMatcher[T]) Length() int {
	return b.length
}

// EndIndex returns the exclusive end index of the block.
func (b BlockMatcher[T]) EndIndex() int {
	return b.start + b.length
}

// Len returns the length of the whole sequence.
func (b BlockMatcher[T]) Len() int {
	return len(b.elements)
}

// Elements returns a copy of the elements inside the block.
func (b BlockMatcher[T]) Elements() []T {
	return slices.Clone(b.elements[b.start:b.EndIndex()])
}

// AllElements returns a copy of the whole sequence.
func (b BlockMatcher[T]) AllElements() []T {
	return slices.Clone(b.elements)
}

// String returns a string representation of the block bounds.
func (b BlockMatcher[T]) String() string {
	return fmt.Sprintf("Block(%d+%d of %d)", b.start, b.length, len(b.elements))
}

func (b BlockMatcher[T]) withBounds(start, length int) BlockMatcher[T] {
	b.start = start
	b.length = length
	return b
}

func (b BlockMatcher[T]) pointer(index int) PointerMatcher[T] {
	return PointerMatcher[T]{elements: b.elements, anchors: b.anchors, index: index, opts: b.opts}
}

// PointerAt returns a pointer at an absolute index of the sequence.
func (b BlockMatcher[T]) PointerAt(index int) (PointerMatcher[T], error) {
	if index < 0 || index >= len(b.elements) {
		return PointerMatcher[T]{}, &RangeError{Op: "pointer", Start: index, End: index + 1, Len: len(b.elements)}
	}
	return b.pointer(index), nil
}

// First returns a pointer at the first element of the block.
func (b BlockMatcher[T]) First() (PointerMatcher[T], error) {
	if b.length == 0 {
		return PointerMatcher[T]{}, &RangeError{Op: "first", Start: b.start, End: b.start + 1, Len: len(b.elements)}
	}
	return b.pointer(b.start), nil
}

// Last returns a pointer at the last element of the block.
func (b BlockMatcher[T]) Last() (PointerMatcher[T], error) {
	if b.length == 0 {
		return PointerMatcher[T]{}, &RangeError{Op: "last", Start: b.start, End: b.start + 1, Len: len(b.elements)}
	}
	return b.pointer(b.EndIndex() - 1), nil
}

// Slice returns a block over [start, start+length) of the same sequence.
func (b BlockMatcher[T]) Slice(start, length int) (BlockMatcher[T], error) {
	if start < 0 || length < 0 || start+length > len(b.elements) {
		return BlockMatcher[T]{}, &RangeError{Op: "slice", Start: start, End: start + length, Len: len(b.elements)}
	}
	return b.withBounds(start, length), nil
}

// splice replaces removed elements at at with inserted and rewrites the
// anchors accordingly. Bounds are carried over unchanged; callers set them.
func (b BlockMatcher[T]) splice(op string, at, removed int, inserted []T) BlockMatcher[T] {
	result, dropped := b.rewrite(op, at, removed, inserted)
	result.logDropped(op, dropped)
	return result
}

// rewrite is splice without the dropped-anchor log.
func (b BlockMatcher[T]) rewrite(op string, at, removed int, inserted []T) (BlockMatcher[T], []any) {
	elements := make([]T, 0, len(b.elements)-removed+len(inserted))
	elements = append(elements, b.elements[:at]...)
	elements = append(elements, inserted...)
	elements = append(elements, b.elements[at+removed:]...)

	anchors, dropped := b.anchors.apply(edit{at: at, removed: removed, inserted: len(inserted)})

	b.opts.logger().Trace().
		Str("op", op).
		Int("at", at).
		Int("removed", removed).
		Int("inserted", len(inserted)).
		Int("len", len(elements)).
		Msg("sequence edited")

	b.elements = elements
	b.anchors = anchors
	return b, dropped
}

func (b BlockMatcher[T]) logDropped(op string, dropped []any) {
	log := b.opts.logger()
	for _, anchor := range dropped {
		if _, private := anchor.(scopeAnchor); private {
			continue
		}
		log.Debug().Interface("anchor", anchor).Str("op", op).Msg("anchor dropped")
	}
}

// Replace splices elements in place of the block. The result spans the new
// elements. Anchors inside the old block are dropped.
func (b BlockMatcher[T]) Replace(elements ...T) BlockMatcher[T] {
	return b.splice("replace", b.start, b.length, elements).withBounds(b.start, len(elements))
}

// Remove deletes the block's elements. The result is a zero-length block at
// the old start, ready for insertion.
func (b BlockMatcher[T]) Remove() BlockMatcher[T] {
	return b.splice("remove", b.start, b.length, nil).withBounds(b.start, 0)
}

// Insert adds elements immediately before or after the block. bounds
// selects the span of the returned block.
func (b BlockMatcher[T]) Insert(position Direction, bounds InsertionBounds, elements ...T) (BlockMatcher[T], error) {
	var at int
	switch position {
	case Before:
		at = b.start
	case After:
		at = b.EndIndex()
	default:
		return BlockMatcher[T]{}, enumError("Direction", int(position))
	}

	k := len(elements)
	var start, length int
	switch bounds {
	case ExcludingInsertion:
		start, length = b.start, b.length
		if position == Before {
			start += k
		}
	case JustInsertion:
		start, length = at, k
	case IncludingInsertion:
		start, length = b.start, b.length+k
	default:
		return BlockMatcher[T]{}, enumError("InsertionBounds", int(bounds))
	}

	return b.splice("insert", at, 0, elements).withBounds(start, length), nil
}

// Encompass grows the block by n elements in direction.
func (b BlockMatcher[T]) Encompass(direction Direction, n int) (BlockMatcher[T], error) {
	if n < 0 {
		return BlockMatcher[T]{}, fmt.Errorf("encompass %d: %w", n, ErrInvalidCount)
	}

	switch direction {
	case Before:
		if b.start-n < 0 {
			return BlockMatcher[T]{}, &RangeError{Op: "encompass", Start: b.start - n, End: b.EndIndex(), Len: len(b.elements)}
		}
		return b.withBounds(b.start-n, b.length+n), nil
	case After:
		if b.EndIndex()+n > len(b.elements) {
			return BlockMatcher[T]{}, &RangeError{Op: "encompass", Start: b.start, End: b.EndIndex() + n, Len: len(b.elements)}
		}
		return b.withBounds(b.start, b.length+n), nil
	default:
		return BlockMatcher[T]{}, enumError("Direction", int(direction))
	}
}

// EncompassUntil grows the block up to and including the nearest match of
// pattern strictly before or strictly after it.
func (b BlockMatcher[T]) EncompassUntil(direction Direction, pattern ...ElementMatch[T]) (BlockMatcher[T], error) {
	switch direction {
	case Before:
		found, err := b.Find(Last, BoundsBefore, pattern...)
		if err != nil {
			return BlockMatcher[T]{}, err
		}
		return found.withBounds(found.start, b.EndIndex()-found.start), nil
	case After:
		found, err := b.Find(First, BoundsAfter, pattern...)
		if err != nil {
			return BlockMatcher[T]{}, err
		}
		return found.withBounds(b.start, found.EndIndex()-b.start), nil
	default:
		return BlockMatcher[T]{}, enumError("Direction", int(direction))
	}
}

// Find searches for pattern inside the window given by bounds and returns
// a block spanning the selected match. Found callbacks of the matched
// predicates run in pattern order before Find returns.
func (b BlockMatcher[T]) Find(occurrence Occurrence, bounds RelativeBounds, pattern ...ElementMatch[T]) (BlockMatcher[T], error) {
	lo, hi, err := bounds.window(b.start, b.EndIndex(), len(b.elements))
	if err != nil {
		return BlockMatcher[T]{}, err
	}
	return b.findIn(lo, hi, occurrence, bounds, pattern)
}

// FindPointer searches for a single predicate and returns a pointer at the
// selected match.
func (b BlockMatcher[T]) FindPointer(occurrence Occurrence, bounds RelativeBounds, match ElementMatch[T]) (PointerMatcher[T], error) {
	found, err := b.Find(occurrence, bounds, match)
	if err != nil {
		return PointerMatcher[T]{}, err
	}
	return found.pointer(found.start), nil
}

func (b BlockMatcher[T]) findIn(lo, hi int, occurrence Occurrence, bounds RelativeBounds, pattern []ElementMatch[T]) (BlockMatcher[T], error) {
	if len(pattern) == 0 {
		return BlockMatcher[T]{}, ErrEmptyPattern
	}

	idx, err := search(b.elements, lo, hi, occurrence, pattern)
	if err != nil {
		return BlockMatcher[T]{}, err
	}
	if idx < 0 {
		nf := &PatternNotFoundError{Occurrence: occurrence, Bounds: bounds, Descriptions: Describe(pattern)}
		b.opts.logger().Debug().
			Stringer("occurrence", occurrence).
			Stringer("bounds", bounds).
			Int("lo", lo).
			Int("hi", hi).
			Strs("pattern", nf.Descriptions).
			Msg("pattern not found")
		return BlockMatcher[T]{}, nf
	}

	matched := b.elements[idx : idx+len(pattern)]
	result := b.withBounds(idx, len(pattern))
	for i, m := range pattern {
		for _, fn := range m.found {
			result, err = fn(result, idx+i, matched[i])
			if err != nil {
				return BlockMatcher[T]{}, err
			}
		}
	}
	return result, nil
}

// scopeAnchor is the private key ForEach uses to track its enclosing block
// and the current match.
type scopeAnchor struct {
	id uuid.UUID
}

// ForEach hands every non-overlapping occurrence of pattern inside the block
// to fn, left to right. The search resumes after the block fn returns, and
// never before the end of the match as rewritten by fn's edits. Running out
// of matches ends the loop normally. The result spans the original block as
// rewritten by fn's edits.
func (b BlockMatcher[T]) ForEach(pattern []ElementMatch[T], fn func(BlockMatcher[T]) (BlockMatcher[T], error)) (BlockMatcher[T], error) {
	scope := scopeAnchor{id: NewAnchor()}
	match := scopeAnchor{id: NewAnchor()}
	cur := b.withAnchors(b.anchors.withBlock(scope, b.start, b.length))
	pos := b.start

	for {
		enclosing, err := cur.MoveToBlockAnchor(scope)
		if err != nil {
			// fn removed the whole enclosing block
			return cur.withBounds(min(pos, len(cur.elements)), 0), nil
		}

		found, err := enclosing.findIn(pos, enclosing.EndIndex(), First, BoundsEnclosed, pattern)
		if errors.Is(err, ErrPatternNotFound) {
			return enclosing.withAnchors(enclosing.anchors.withoutBlock(scope)), nil
		}
		if err != nil {
			return BlockMatcher[T]{}, err
		}

		next, err := fn(found.withAnchors(found.anchors.withBlock(match, found.start, found.length)))
		if err != nil {
			return BlockMatcher[T]{}, err
		}

		pos = next.EndIndex()
		if m, ok := next.anchors.block(match); ok {
			pos = max(pos, m.End())
		} else if pos <= found.start && len(next.elements) >= len(found.elements) {
			// match replaced without shrinking the sequence; step past it
			pos = found.EndIndex()
		}
		cur = next.withAnchors(next.anchors.withoutBlock(match))
	}
}

// Do runs fn on a private matcher holding only the block's elements, indexed
// from 0, together with the anchors lying wholly inside the block. The
// elements fn returns are spliced back in place of the block and its
// anchors are re-based onto the parent. The result spans the spliced
// elements.
func (b BlockMatcher[T]) Do(fn func(BlockMatcher[T]) (BlockMatcher[T], error)) (BlockMatcher[T], error) {
	inner := BlockMatcher[T]{
		elements: b.Elements(),
		anchors:  b.anchors.within(b.start, b.length),
		length:   b.length,
		opts:     b.opts,
	}

	out, err := fn(inner)
	if err != nil {
		return BlockMatcher[T]{}, err
	}

	result, dropped := b.rewrite("do", b.start, b.length, out.elements)
	result = result.withBounds(b.start, len(out.elements))
	result = result.withAnchors(result.anchors.merge(out.anchors, b.start))

	// anchors handed to fn were logged by fn's own edits if it dropped them
	var lost []any
	for _, anchor := range dropped {
		if !inner.anchors.has(anchor) && !result.anchors.has(anchor) {
			lost = append(lost, anchor)
		}
	}
	result.logDropped("do", lost)
	return result, nil
}

func (b BlockMatcher[T]) withAnchors(anchors ledger) BlockMatcher[T] {
	b.anchors = anchors
	return b
}

// Anchor Operations

// AnchorBlock records the block's range under anchor.
func (b BlockMatcher[T]) AnchorBlock(anchor any) (BlockMatcher[T], error) {
	if err := validateAnchor(anchor); err != nil {
		return BlockMatcher[T]{}, err
	}
	return b.withAnchors(b.anchors.withBlock(anchor, b.start, b.length)), nil
}

// AnchorPointerAt records an absolute index under anchor. The block's own
// bounds are unchanged.
func (b BlockMatcher[T]) AnchorPointerAt(anchor any, index int) (BlockMatcher[T], error) {
	if err := validateAnchor(anchor); err != nil {
		return BlockMatcher[T]{}, err
	}
	if index < 0 || index >= len(b.elements) {
		return BlockMatcher[T]{}, &RangeError{Op: "anchor", Start: index, End: index + 1, Len: len(b.elements)}
	}
	return b.withAnchors(b.anchors.withPointer(anchor, index)), nil
}

// MoveToBlockAnchor returns a block over the range recorded under anchor.
func (b BlockMatcher[T]) MoveToBlockAnchor(anchor any) (BlockMatcher[T], error) {
	if err := validateAnchor(anchor); err != nil {
		return BlockMatcher[T]{}, err
	}
	a, ok := b.anchors.block(anchor)
	if !ok {
		return BlockMatcher[T]{}, &UnknownAnchorError{Kind: "block", Anchor: anchor}
	}
	return b.withBounds(a.Start, a.Length), nil
}

// MoveToPointerAnchor returns a pointer at the index recorded under anchor.
func (b BlockMatcher[T]) MoveToPointerAnchor(anchor any) (PointerMatcher[T], error) {
	if err := validateAnchor(anchor); err != nil {
		return PointerMatcher[T]{}, err
	}
	index, ok := b.anchors.pointer(anchor)
	if !ok {
		return PointerMatcher[T]{}, &UnknownAnchorError{Kind: "pointer", Anchor: anchor}
	}
	return b.pointer(index), nil
}

// HasPointerAnchor reports whether anchor currently resolves to a position.
func (b BlockMatcher[T]) HasPointerAnchor(anchor any) bool {
	if validateAnchor(anchor) != nil {
		return false
	}
	_, ok := b.anchors.pointer(anchor)
	return ok
}

// HasBlockAnchor reports whether anchor currently resolves to a range.
func (b BlockMatcher[T]) HasBlockAnchor(anchor any) bool {
	if validateAnchor(anchor) != nil {
		return false
	}
	_, ok := b.anchors.block(anchor)
	return ok
}

// PointerAnchors returns a copy of the recorded pointer anchors in the order
// they were set.
func (b BlockMatcher[T]) PointerAnchors() []PointerAnchor {
	return slices.Clone(b.anchors.pointers)
}

// BlockAnchors returns a copy of the recorded block anchors in the order
// they were set.
func (b BlockMatcher[T]) BlockAnchors() []BlockAnchor {
	return slices.Clone(b.anchors.blocks)
}
