package sequence

import (
	"reflect"

	"github.com/google/uuid"
)

// NewAnchor returns a random anchor key for callers that do not need a
// meaningful name.
func NewAnchor() uuid.UUID {
	return uuid.New()
}

// PointerAnchor is a position recorded under an anchor key.
type PointerAnchor struct {
	Anchor any
	Index  int
}

// BlockAnchor is a range recorded under an anchor key.
type BlockAnchor struct {
	Anchor any
	Start  int
	Length int
}

// End returns the exclusive end index of the anchored range.
func (a BlockAnchor) End() int {
	return a.Start + a.Length
}

// edit describes one splice: removed elements starting at at were replaced
// by inserted elements. Insert has removed == 0, Remove has inserted == 0.
type edit struct {
	at       int
	removed  int
	inserted int
}

func (e edit) delta() int {
	return e.inserted - e.removed
}

// transformIndex updates a stored index after an edit.
// Reports false when the indexed element was removed or replaced.
func transformIndex(i int, e edit) (int, bool) {
	switch {
	case i < e.at:
		return i, true
	case i < e.at+e.removed:
		return 0, false
	default:
		return i + e.delta(), true
	}
}

// transformRange updates a stored range after an edit.
// Reports false when the whole range was removed or replaced.
//
// Transformation rules:
//   - Range ends at or before the edit: unchanged
//   - Range starts at or after the edited span: shifted by the delta
//   - Range inside the edited span: dropped
//   - Range contains the edited span: resized by the delta
//   - Partial overlap: shrunk by the overlap; a head overlap moves the
//     start to just past the inserted elements
func transformRange(start, length int, e edit) (int, int, bool) {
	end := start + length
	editEnd := e.at + e.removed

	switch {
	case end <= e.at:
		return start, length, true
	case start >= editEnd:
		return start + e.delta(), length, true
	case start >= e.at && end <= editEnd:
		return 0, 0, false
	case start <= e.at && end >= editEnd:
		return start, length + e.delta(), true
	case start > e.at:
		return e.at + e.inserted, end - editEnd, true
	default:
		return start, e.at - start, true
	}
}

// ledger holds the anchors attached to a sequence. It is never modified in
// place; every method returns a new ledger.
type ledger struct {
	pointers []PointerAnchor
	blocks   []BlockAnchor
}

func validateAnchor(anchor any) error {
	if anchor == nil || !reflect.TypeOf(anchor).Comparable() {
		return ErrInvalidAnchor
	}
	return nil
}

func (l ledger) pointer(anchor any) (int, bool) {
	for _, p := range l.pointers {
		if p.Anchor == anchor {
			return p.Index, true
		}
	}
	return 0, false
}

func (l ledger) block(anchor any) (BlockAnchor, bool) {
	for _, b := range l.blocks {
		if b.Anchor == anchor {
			return b, true
		}
	}
	return BlockAnchor{}, false
}

func (l ledger) has(anchor any) bool {
	_, isPointer := l.pointer(anchor)
	_, isBlock := l.block(anchor)
	return isPointer || isBlock
}

// withPointer records index under anchor, replacing any earlier entry.
func (l ledger) withPointer(anchor any, index int) ledger {
	pointers := make([]PointerAnchor, 0, len(l.pointers)+1)
	for _, p := range l.pointers {
		if p.Anchor != anchor {
			pointers = append(pointers, p)
		}
	}
	l.pointers = append(pointers, PointerAnchor{Anchor: anchor, Index: index})
	return l
}

// withBlock records [start, start+length) under anchor, replacing any earlier entry.
func (l ledger) withBlock(anchor any, start, length int) ledger {
	l.blocks = append(l.withoutBlock(anchor).blocks, BlockAnchor{Anchor: anchor, Start: start, Length: length})
	return l
}

func (l ledger) withoutBlock(anchor any) ledger {
	blocks := make([]BlockAnchor, 0, len(l.blocks)+1)
	for _, b := range l.blocks {
		if b.Anchor != anchor {
			blocks = append(blocks, b)
		}
	}
	l.blocks = blocks
	return l
}

// apply rewrites every anchor for an edit and returns the keys of the
// anchors it dropped.
func (l ledger) apply(e edit) (ledger, []any) {
	if e.removed == 0 && e.inserted == 0 {
		return l, nil
	}

	var dropped []any
	result := ledger{
		pointers: make([]PointerAnchor, 0, len(l.pointers)),
		blocks:   make([]BlockAnchor, 0, len(l.blocks)),
	}

	for _, p := range l.pointers {
		index, ok := transformIndex(p.Index, e)
		if !ok {
			dropped = append(dropped, p.Anchor)
			continue
		}
		result.pointers = append(result.pointers, PointerAnchor{Anchor: p.Anchor, Index: index})
	}

	for _, b := range l.blocks {
		start, length, ok := transformRange(b.Start, b.Length, e)
		if !ok {
			dropped = append(dropped, b.Anchor)
			continue
		}
		result.blocks = append(result.blocks, BlockAnchor{Anchor: b.Anchor, Start: start, Length: length})
	}

	return result, dropped
}

// within returns the anchors lying wholly inside [start, start+length),
// re-based so that start becomes index 0.
func (l ledger) within(start, length int) ledger {
	end := start + length
	var result ledger
	for _, p := range l.pointers {
		if p.Index >= start && p.Index < end {
			result.pointers = append(result.pointers, PointerAnchor{Anchor: p.Anchor, Index: p.Index - start})
		}
	}
	for _, b := range l.blocks {
		if b.Start >= start && b.End() <= end {
			result.blocks = append(result.blocks, BlockAnchor{Anchor: b.Anchor, Start: b.Start - start, Length: b.Length})
		}
	}
	return result
}

// merge adds every anchor of other shifted by offset. Anchors of other win
// over anchors of l with the same key.
func (l ledger) merge(other ledger, offset int) ledger {
	for _, p := range other.pointers {
		l = l.withPointer(p.Anchor, p.Index+offset)
	}
	for _, b := range other.blocks {
		l = l.withBlock(b.Anchor, b.Start+offset, b.Length)
	}
	return l
}
