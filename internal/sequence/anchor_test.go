package sequence

import (
	"errors"
	"testing"
)

// Transform Tests

func TestTransformIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
		edit  edit
		want  int
		ok    bool
	}{
		{"insert after index", 2, edit{at: 3, inserted: 2}, 2, true},
		{"insert at index", 3, edit{at: 3, inserted: 2}, 5, true},
		{"insert before index", 4, edit{at: 0, inserted: 1}, 5, true},
		{"remove before index", 4, edit{at: 2, removed: 2}, 2, true},
		{"remove index start", 2, edit{at: 2, removed: 2}, 0, false},
		{"remove index end", 3, edit{at: 2, removed: 2}, 0, false},
		{"remove after index", 1, edit{at: 2, removed: 2}, 1, true},
		{"replace index", 2, edit{at: 2, removed: 1, inserted: 1}, 0, false},
		{"replace grows before index", 3, edit{at: 2, removed: 1, inserted: 3}, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := transformIndex(tt.index, tt.edit)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTransformRange(t *testing.T) {
	tests := []struct {
		name          string
		start, length int
		edit          edit
		wantStart     int
		wantLength    int
		ok            bool
	}{
		{"insert at range end", 0, 5, edit{at: 5, inserted: 2}, 0, 5, true},
		{"insert at range start", 5, 3, edit{at: 5, inserted: 2}, 7, 3, true},
		{"insert inside range", 3, 4, edit{at: 5, inserted: 2}, 3, 6, true},
		{"insert at empty range", 2, 0, edit{at: 2, inserted: 1}, 2, 0, true},
		{"remove exactly range", 2, 3, edit{at: 2, removed: 3}, 0, 0, false},
		{"remove containing range", 3, 1, edit{at: 2, removed: 3}, 0, 0, false},
		{"remove empty range inside", 3, 0, edit{at: 2, removed: 3}, 0, 0, false},
		{"remove inside range", 1, 6, edit{at: 2, removed: 3}, 1, 3, true},
		{"remove range head", 4, 4, edit{at: 2, removed: 3}, 2, 3, true},
		{"remove range tail", 0, 3, edit{at: 2, removed: 3}, 0, 2, true},
		{"remove after range", 0, 2, edit{at: 2, removed: 3}, 0, 2, true},
		{"remove before range", 6, 2, edit{at: 2, removed: 3}, 3, 2, true},
		{"replace range head", 4, 4, edit{at: 2, removed: 3, inserted: 1}, 3, 3, true},
		{"replace inside range", 0, 8, edit{at: 2, removed: 3, inserted: 1}, 0, 6, true},
		{"replace last element of range", 0, 5, edit{at: 4, removed: 1, inserted: 1}, 0, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, length, ok := transformRange(tt.start, tt.length, tt.edit)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if start != tt.wantStart || length != tt.wantLength {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.wantStart, tt.wantLength, start, length)
			}
		})
	}
}

// Ledger Tests

func TestLedgerLastWriteWins(t *testing.T) {
	var l ledger
	l = l.withPointer("a", 1)
	l = l.withPointer("b", 2)
	l = l.withPointer("a", 3)

	if len(l.pointers) != 2 {
		t.Fatalf("expected 2 pointer anchors, got %d", len(l.pointers))
	}
	if idx, _ := l.pointer("a"); idx != 3 {
		t.Errorf("expected anchor a at 3, got %d", idx)
	}

	l = l.withBlock("a", 0, 2)
	l = l.withBlock("a", 1, 4)
	if len(l.blocks) != 1 {
		t.Fatalf("expected 1 block anchor, got %d", len(l.blocks))
	}
	if b, _ := l.block("a"); b.Start != 1 || b.Length != 4 {
		t.Errorf("expected block anchor (1, 4), got (%d, %d)", b.Start, b.Length)
	}
}

func TestLedgerApplyDoesNotModifyOriginal(t *testing.T) {
	l := ledger{}.withPointer("p", 4).withBlock("b", 2, 3)
	next, dropped := l.apply(edit{at: 0, inserted: 2})

	if len(dropped) != 0 {
		t.Errorf("expected no dropped anchors, got %v", dropped)
	}
	if idx, _ := l.pointer("p"); idx != 4 {
		t.Errorf("original pointer anchor changed to %d", idx)
	}
	if idx, _ := next.pointer("p"); idx != 6 {
		t.Errorf("expected shifted pointer anchor 6, got %d", idx)
	}
	if b, _ := next.block("b"); b.Start != 4 {
		t.Errorf("expected shifted block anchor start 4, got %d", b.Start)
	}
}

func TestLedgerApplyReportsDropped(t *testing.T) {
	l := ledger{}.withPointer("p", 2).withBlock("b", 1, 2).withBlock("keep", 0, 4)
	next, dropped := l.apply(edit{at: 1, removed: 2})

	if len(dropped) != 2 {
		t.Fatalf("expected 2 dropped anchors, got %v", dropped)
	}
	if _, ok := next.block("b"); ok {
		t.Error("block anchor b should be dropped")
	}
	if b, ok := next.block("keep"); !ok || b.Length != 2 {
		t.Errorf("expected block anchor keep shrunk to 2, got %+v", b)
	}
}

func TestLedgerWithinAndMerge(t *testing.T) {
	l := ledger{}.
		withPointer("before", 0).
		withPointer("inside", 3).
		withBlock("inner", 2, 2).
		withBlock("straddle", 1, 3)

	inner := l.within(2, 3)
	if _, ok := inner.pointer("before"); ok {
		t.Error("pointer outside the range should not be carried")
	}
	if idx, ok := inner.pointer("inside"); !ok || idx != 1 {
		t.Errorf("expected rebased pointer 1, got %d (ok=%v)", idx, ok)
	}
	if _, ok := inner.block("straddle"); ok {
		t.Error("block crossing the range edge should not be carried")
	}

	merged := ledger{}.withPointer("inside", 9).merge(inner, 10)
	if idx, _ := merged.pointer("inside"); idx != 11 {
		t.Errorf("expected merged pointer 11, got %d", idx)
	}
	if b, _ := merged.block("inner"); b.Start != 10 || b.Length != 2 {
		t.Errorf("expected merged block (10, 2), got (%d, %d)", b.Start, b.Length)
	}
}

// Anchor Key Tests

func TestValidateAnchor(t *testing.T) {
	if err := validateAnchor(nil); !errors.Is(err, ErrInvalidAnchor) {
		t.Errorf("expected ErrInvalidAnchor for nil, got %v", err)
	}
	if err := validateAnchor([]int{1}); !errors.Is(err, ErrInvalidAnchor) {
		t.Errorf("expected ErrInvalidAnchor for slice, got %v", err)
	}
	if err := validateAnchor("label"); err != nil {
		t.Errorf("expected string key to be valid, got %v", err)
	}
	if err := validateAnchor(NewAnchor()); err != nil {
		t.Errorf("expected uuid key to be valid, got %v", err)
	}
}

func TestNewAnchorUnique(t *testing.T) {
	if NewAnchor() == NewAnchor() {
		t.Error("expected distinct anchors")
	}
}

func TestInvalidAnchorRejected(t *testing.T) {
	b := NewBlockMatcher(letters("abc"))

	if _, err := b.AnchorBlock(map[string]int{}); !errors.Is(err, ErrInvalidAnchor) {
		t.Errorf("expected ErrInvalidAnchor, got %v", err)
	}
	if _, err := b.MoveToPointerAnchor([]string{"x"}); !errors.Is(err, ErrInvalidAnchor) {
		t.Errorf("expected ErrInvalidAnchor, got %v", err)
	}
	if b.HasBlockAnchor([]string{"x"}) {
		t.Error("non-comparable key should never resolve")
	}
}
