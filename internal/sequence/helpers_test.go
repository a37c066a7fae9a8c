package sequence

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"unicode"
)

func eq(v string) ElementMatch[string] {
	return NewMatch(fmt.Sprintf("== %q", v), func(s string) bool { return s == v })
}

func lenIs(n int) ElementMatch[string] {
	return NewMatch(fmt.Sprintf("len == %d", n), func(s string) bool { return len(s) == n })
}

func isUpper() ElementMatch[string] {
	return NewMatch("uppercase", func(s string) bool {
		return strings.IndexFunc(s, unicode.IsLetter) >= 0 && strings.ToUpper(s) == s
	})
}

func isLower() ElementMatch[string] {
	return NewMatch("lowercase", func(s string) bool {
		return strings.IndexFunc(s, unicode.IsLetter) >= 0 && strings.ToLower(s) == s
	})
}

func letters(s string) []string {
	return strings.Split(s, "")
}

// must unwraps a matcher result in test setup code; an error panics and
// fails the test with its stack.
func must[M any](m M, err error) M {
	if err != nil {
		panic(err)
	}
	return m
}

func expectElements(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("expected elements %q, got %q", want, got)
	}
}

func expectBounds[T any](t *testing.T, b BlockMatcher[T], start, length int) {
	t.Helper()
	if b.StartIndex() != start || b.Length() != length {
		t.Errorf("expected block (%d, %d), got (%d, %d)", start, length, b.StartIndex(), b.Length())
	}
	if b.EndIndex() != start+length {
		t.Errorf("expected end %d, got %d", start+length, b.EndIndex())
	}
}
