package sequence

import (
	"errors"
	"strings"
	"testing"
)

// ElementMatch Tests

func TestElementMatch(t *testing.T) {
	m := eq("a")
	if !m.Matches("a") || m.Matches("b") {
		t.Error("predicate not applied")
	}
	if m.Description() != `== "a"` {
		t.Errorf("unexpected description %q", m.Description())
	}

	var zero ElementMatch[string]
	if zero.Matches("") {
		t.Error("match without predicate should match nothing")
	}
}

func TestWithDelegateDoesNotAlias(t *testing.T) {
	var calls []string
	record := func(name string) FoundFunc[string] {
		return func(b BlockMatcher[string], _ int, _ string) (BlockMatcher[string], error) {
			calls = append(calls, name)
			return b, nil
		}
	}

	base := eq("a").WithDelegate(record("base"))
	x := base.WithDelegate(record("x"))
	y := base.WithDelegate(record("y"))

	b := NewBlockMatcher(letters("a"))
	must(b.Find(First, BoundsWholeSequence, x))
	must(b.Find(First, BoundsWholeSequence, y))
	must(b.Find(First, BoundsWholeSequence, base))

	want := "base,x,base,y,base"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("expected calls %s, got %s", want, got)
	}
}

func TestFoundCallbacksOrder(t *testing.T) {
	type call struct {
		name    string
		index   int
		element string
	}
	var calls []call
	record := func(name string) FoundFunc[string] {
		return func(b BlockMatcher[string], index int, element string) (BlockMatcher[string], error) {
			calls = append(calls, call{name, index, element})
			return b, nil
		}
	}

	b := NewBlockMatcher(letters("xabab"))
	pattern := []ElementMatch[string]{
		eq("a").WithDelegate(record("A1")).WithDelegate(record("A2")),
		eq("b").WithDelegate(record("B")),
	}

	must(b.Find(First, BoundsWholeSequence, pattern...))

	want := []call{{"A1", 1, "a"}, {"A2", 1, "a"}, {"B", 2, "b"}}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %+v, got %+v", i, want[i], calls[i])
		}
	}
}

func TestFoundCallbackNotRunOnFailedSearch(t *testing.T) {
	ran := false
	m := eq("a").WithDelegate(func(b BlockMatcher[string], _ int, _ string) (BlockMatcher[string], error) {
		ran = true
		return b, nil
	})

	_, err := NewBlockMatcher(letters("aaa")).Find(First, BoundsWholeSequence, m, eq("b"))
	if !errors.Is(err, ErrPatternNotFound) {
		t.Fatalf("expected ErrPatternNotFound, got %v", err)
	}
	if ran {
		t.Error("callback should only run after a full match")
	}
}

func TestFoundCallbackError(t *testing.T) {
	boom := errors.New("boom")
	m := eq("a").WithDelegate(func(b BlockMatcher[string], _ int, _ string) (BlockMatcher[string], error) {
		return b, boom
	})

	if _, err := NewBlockMatcher(letters("a")).Find(First, BoundsWholeSequence, m); !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestWithCapture(t *testing.T) {
	var got string
	b := NewBlockMatcher([]string{"mov", "jmp", "ret"})

	must(b.Find(Last, BoundsWholeSequence, lenIs(3).WithCapture(&got)))
	if got != "ret" {
		t.Errorf("expected captured ret, got %q", got)
	}
}

func TestWithAutoAnchor(t *testing.T) {
	b := NewBlockMatcher(letters("abcd"))

	r := must(b.Find(First, BoundsWholeSequence, eq("b"), eq("c").WithAutoAnchor("c")))
	expectBounds(t, r, 1, 2)

	p := must(r.MoveToPointerAnchor("c"))
	if p.Index() != 2 {
		t.Errorf("expected anchor at 2, got %d", p.Index())
	}
}

// Search Tests

func TestFindFirstLast(t *testing.T) {
	b := NewBlockMatcher(letters("ababa"))
	pattern := []ElementMatch[string]{eq("a"), eq("b")}

	first := must(b.Find(First, BoundsWholeSequence, pattern...))
	last := must(b.Find(Last, BoundsWholeSequence, pattern...))

	expectBounds(t, first, 0, 2)
	expectBounds(t, last, 2, 2)
	if first.StartIndex() > last.StartIndex() {
		t.Error("first occurrence must not come after last occurrence")
	}
}

func TestFindBounds(t *testing.T) {
	b := must(NewBlockMatcher(letters("aaaaa")).Slice(1, 2))

	tests := []struct {
		bounds RelativeBounds
		first  int
		last   int
	}{
		{BoundsBefore, 0, 0},
		{BoundsBeforeOrEnclosed, 0, 2},
		{BoundsEnclosed, 1, 2},
		{BoundsAfterOrEnclosed, 1, 4},
		{BoundsAfter, 3, 4},
		{BoundsWholeSequence, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.bounds.String(), func(t *testing.T) {
			first := must(b.Find(First, tt.bounds, eq("a")))
			if first.StartIndex() != tt.first {
				t.Errorf("first: expected %d, got %d", tt.first, first.StartIndex())
			}
			last := must(b.Find(Last, tt.bounds, eq("a")))
			if last.StartIndex() != tt.last {
				t.Errorf("last: expected %d, got %d", tt.last, last.StartIndex())
			}
		})
	}
}

func TestFindRespectsWindowEnd(t *testing.T) {
	b := must(NewBlockMatcher(letters("abcab")).Slice(0, 3))

	// "ca" straddles the end of the enclosed window
	if _, err := b.Find(First, BoundsEnclosed, eq("c"), eq("a")); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("expected ErrPatternNotFound, got %v", err)
	}
	r := must(b.Find(Last, BoundsWholeSequence, eq("c"), eq("a")))
	expectBounds(t, r, 2, 2)
}

func TestFindPatternLongerThanWindow(t *testing.T) {
	b := NewBlockMatcher(letters("ab"))
	_, err := b.Find(Last, BoundsWholeSequence, eq("a"), eq("b"), eq("c"))
	if !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("expected ErrPatternNotFound, got %v", err)
	}
}

func TestFindNotFoundError(t *testing.T) {
	b := NewBlockMatcher(letters("abcde"))
	_, err := b.Find(First, BoundsWholeSequence, lenIs(1), lenIs(2))

	var nf *PatternNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected PatternNotFoundError, got %v", err)
	}
	if len(nf.Descriptions) != 2 || nf.Descriptions[0] != "len == 1" || nf.Descriptions[1] != "len == 2" {
		t.Errorf("unexpected descriptions %q", nf.Descriptions)
	}
	msg := err.Error()
	if !strings.Contains(msg, `"len == 1", "len == 2"`) || !strings.Contains(msg, "first") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestFindEmptyPattern(t *testing.T) {
	if _, err := NewBlockMatcher(letters("a")).Find(First, BoundsWholeSequence); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("expected ErrEmptyPattern, got %v", err)
	}
}

func TestFindInvalidEnum(t *testing.T) {
	b := NewBlockMatcher(letters("a"))

	if _, err := b.Find(Occurrence(5), BoundsWholeSequence, eq("a")); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum, got %v", err)
	}
	if _, err := b.Find(First, RelativeBounds(42), eq("a")); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum, got %v", err)
	}
}

func TestFindPointer(t *testing.T) {
	b := NewBlockMatcher([]string{"push", "label:loop", "dec", "jnz loop"})

	label := NewMatch("label loop", func(s string) bool { return strings.HasPrefix(s, "label:") })
	p := must(b.FindPointer(First, BoundsWholeSequence, label))
	if p.Index() != 1 {
		t.Errorf("expected pointer at 1, got %d", p.Index())
	}
}

// Enum Tests

func TestParseEnums(t *testing.T) {
	if o, err := ParseOccurrence("last"); err != nil || o != Last {
		t.Errorf("expected Last, got %v (%v)", o, err)
	}
	if b, err := ParseRelativeBounds("after_or_enclosed"); err != nil || b != BoundsAfterOrEnclosed {
		t.Errorf("expected BoundsAfterOrEnclosed, got %v (%v)", b, err)
	}
	if b, err := ParseRelativeBounds("whole"); err != nil || b != BoundsWholeSequence {
		t.Errorf("expected BoundsWholeSequence, got %v (%v)", b, err)
	}
	if d, err := ParseDirection("before"); err != nil || d != Before {
		t.Errorf("expected Before, got %v (%v)", d, err)
	}
	if ib, err := ParseInsertionBounds("including"); err != nil || ib != IncludingInsertion {
		t.Errorf("expected IncludingInsertion, got %v (%v)", ib, err)
	}
	if ib, err := ParseInsertionBounds("just_insertion"); err != nil || ib != JustInsertion {
		t.Errorf("expected JustInsertion, got %v (%v)", ib, err)
	}

	if _, err := ParseOccurrence("middle"); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum, got %v", err)
	}
	if _, err := ParseDirection(""); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum, got %v", err)
	}
}

func TestEnumStringUnknown(t *testing.T) {
	if s := Direction(9).String(); s != "Direction(9)" {
		t.Errorf("unexpected string %q", s)
	}
}

func TestFoundCallbackIndexIsAbsolute(t *testing.T) {
	b := NewBlockMatcher(letters("abcd"))
	gotIndex := -1

	rebound := eq("b").WithDelegate(func(m BlockMatcher[string], index int, element string) (BlockMatcher[string], error) {
		return m.Slice(0, 0)
	})
	record := eq("c").WithDelegate(func(m BlockMatcher[string], index int, element string) (BlockMatcher[string], error) {
		gotIndex = index
		return m, nil
	}).WithAutoAnchor("c")

	r, err := b.Find(First, BoundsWholeSequence, rebound, record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotIndex != 2 {
		t.Errorf("expected index 2, got %d", gotIndex)
	}
	p, err := r.MoveToPointerAnchor("c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Index() != 2 {
		t.Errorf("expected anchor at 2, got %d", p.Index())
	}
}
