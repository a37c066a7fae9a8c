package sequence

import (
	"fmt"
	"slices"
)

// PointerMatcher is an immutable cursor at exactly one index of a sequence.
//
// Indices are validated eagerly: constructors and Advance reject indices
// outside [0, Len). The only exception is the pointer returned by Remove
// when it deletes the last remaining element; it sits at index 0 of an
// empty sequence and can only be used to insert.
type PointerMatcher[T any] struct {
	elements []T
	anchors  ledger
	index    int
	opts     *options
}

// NewPointerMatcher creates a pointer at index of a copy of elements.
func NewPointerMatcher[T any](elements []T, index int, opts ...Option) (PointerMatcher[T], error) {
	return NewBlockMatcher(elements, opts...).PointerAt(index)
}

// Index returns the position of the pointer.
func (p PointerMatcher[T]) Index() int {
	return p.index
}

// Len returns the length of the whole sequence.
func (p PointerMatcher[T]) Len() int {
	return len(p.elements)
}

// AllElements returns a copy of the whole sequence.
func (p PointerMatcher[T]) AllElements() []T {
	return slices.Clone(p.elements)
}

// String returns a string representation of the pointer position.
func (p PointerMatcher[T]) String() string {
	return fmt.Sprintf("Pointer(%d of %d)", p.index, len(p.elements))
}

func (p PointerMatcher[T]) valid() bool {
	return p.index >= 0 && p.index < len(p.elements)
}

func (p PointerMatcher[T]) rangeError(op string) error {
	return &RangeError{Op: op, Start: p.index, End: p.index + 1, Len: len(p.elements)}
}

// block returns the one-element block at the pointer, or the empty
// insertion point of an empty sequence.
func (p PointerMatcher[T]) block() BlockMatcher[T] {
	length := 1
	if !p.valid() {
		length = 0
	}
	return BlockMatcher[T]{elements: p.elements, anchors: p.anchors, start: p.index, length: length, opts: p.opts}
}

// Element returns the element at the pointer.
func (p PointerMatcher[T]) Element() (T, error) {
	if !p.valid() {
		var zero T
		return zero, p.rangeError("element")
	}
	return p.elements[p.index], nil
}

// Advance moves the pointer by offset elements; negative offsets move
// toward the start.
func (p PointerMatcher[T]) Advance(offset int) (PointerMatcher[T], error) {
	next := p.index + offset
	if next < 0 || next >= len(p.elements) {
		return PointerMatcher[T]{}, &RangeError{Op: "advance", Start: next, End: next + 1, Len: len(p.elements)}
	}
	p.index = next
	return p, nil
}

// Replace swaps the element at the pointer. Pointer anchors at this index
// are dropped; the pointer itself stays at the same index.
func (p PointerMatcher[T]) Replace(element T) (PointerMatcher[T], error) {
	if !p.valid() {
		return PointerMatcher[T]{}, p.rangeError("replace")
	}
	return p.block().Replace(element).pointer(p.index), nil
}

// Remove deletes the element at the pointer. With direction Before the
// result points at the previous element, with After at the element that
// followed the removed one; both are clamped to the remaining sequence.
func (p PointerMatcher[T]) Remove(direction Direction) (PointerMatcher[T], error) {
	if len(p.elements) == 0 {
		return PointerMatcher[T]{}, fmt.Errorf("remove: %w", ErrEmptySequence)
	}
	if !p.valid() {
		return PointerMatcher[T]{}, p.rangeError("remove")
	}

	index := p.index
	switch direction {
	case Before:
		index--
	case After:
	default:
		return PointerMatcher[T]{}, enumError("Direction", int(direction))
	}

	b := p.block().Remove()
	index = min(index, len(b.elements)-1)
	index = max(index, 0)
	return b.pointer(index), nil
}

// Insert adds elements immediately before or after the pointer and returns
// a block whose span is selected by bounds. On an empty sequence both
// positions insert at index 0.
func (p PointerMatcher[T]) Insert(position Direction, bounds InsertionBounds, elements ...T) (BlockMatcher[T], error) {
	return p.block().Insert(position, bounds, elements...)
}

// BlockMatcher returns the one-element block at the pointer. On an empty
// sequence the block is empty.
func (p PointerMatcher[T]) BlockMatcher() BlockMatcher[T] {
	return p.block()
}

// Find searches for pattern relative to the pointer; see BlockMatcher.Find.
func (p PointerMatcher[T]) Find(occurrence Occurrence, bounds RelativeBounds, pattern ...ElementMatch[T]) (BlockMatcher[T], error) {
	return p.block().Find(occurrence, bounds, pattern...)
}

// Anchor Operations

// AnchorPointer records the pointer's index under anchor.
func (p PointerMatcher[T]) AnchorPointer(anchor any) (PointerMatcher[T], error) {
	if !p.valid() {
		return PointerMatcher[T]{}, p.rangeError("anchor")
	}
	b, err := p.block().AnchorPointerAt(anchor, p.index)
	if err != nil {
		return PointerMatcher[T]{}, err
	}
	return b.pointer(p.index), nil
}

// AnchorBlock records the one-element range at the pointer under anchor.
func (p PointerMatcher[T]) AnchorBlock(anchor any) (PointerMatcher[T], error) {
	if !p.valid() {
		return PointerMatcher[T]{}, p.rangeError("anchor")
	}
	b, err := p.block().AnchorBlock(anchor)
	if err != nil {
		return PointerMatcher[T]{}, err
	}
	return b.pointer(p.index), nil
}

// MoveToPointerAnchor returns a pointer at the index recorded under anchor.
func (p PointerMatcher[T]) MoveToPointerAnchor(anchor any) (PointerMatcher[T], error) {
	return p.block().MoveToPointerAnchor(anchor)
}

// MoveToBlockAnchor returns a block over the range recorded under anchor.
func (p PointerMatcher[T]) MoveToBlockAnchor(anchor any) (BlockMatcher[T], error) {
	return p.block().MoveToBlockAnchor(anchor)
}

// HasPointerAnchor reports whether anchor currently resolves to a position.
func (p PointerMatcher[T]) HasPointerAnchor(anchor any) bool {
	return p.block().HasPointerAnchor(anchor)
}

// HasBlockAnchor reports whether anchor currently resolves to a range.
func (p PointerMatcher[T]) HasBlockAnchor(anchor any) bool {
	return p.block().HasBlockAnchor(anchor)
}
