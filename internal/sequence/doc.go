// Package sequence provides immutable cursors for locating, anchoring and
// rewriting runs of elements inside an ordered list.
//
// The sequence package handles:
//
//   - Single-position cursors with PointerMatcher
//   - Contiguous-range cursors with BlockMatcher
//   - Ordered multi-predicate search with ElementMatch patterns
//   - Anchors that keep saved positions and ranges valid across edits
//
// Matcher Model:
//
// Every matcher is a plain value holding a snapshot of the whole element
// list, the anchor ledger and its own bounds. Edits never modify a matcher
// in place; Replace, Remove and Insert return a new matcher computed from
// the old one plus a description of the edit. Older matcher values stay
// valid and unchanged after a derived one is produced.
//
// Bounds:
//
// A BlockMatcher covers [StartIndex, EndIndex). A zero-length block is a
// pure insertion point. A PointerMatcher always addresses an element in
// [0, Len) with one exception: removing the last remaining element leaves
// a pointer at index 0 of an empty sequence, usable only for insertion.
//
// Anchors:
//
// An anchor is a caller-chosen comparable key bound to a position or a
// range. Each edit rewrites stored anchors: anchors before the edit stay,
// anchors after it shift, ranges that contain the edit grow or shrink, and
// anchors whose content was removed or replaced are dropped. Resolving a
// dropped anchor fails with ErrUnknownAnchor.
//
// Basic usage:
//
//	b := sequence.NewBlockMatcher([]string{"a", "b", "c", "d"})
//
//	// Find "b" and remember where it was
//	b, err := b.Find(sequence.First, sequence.BoundsWholeSequence,
//	    eq("b").WithAutoAnchor("mark"))
//
//	// Insert after it; the anchor still resolves to "b"
//	b, err = b.Insert(sequence.After, sequence.JustInsertion, "x", "y")
//	p, err := b.MoveToPointerAnchor("mark")
//
// Thread Safety:
//
// Matchers are immutable values and safe for concurrent readers. Deriving
// matchers from the same parent on several goroutines yields independent
// histories; there is no merging of concurrent edits.
package sequence
