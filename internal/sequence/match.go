package sequence

// FoundFunc is invoked after a pattern containing its ElementMatch was
// matched. It receives the block returned by the previous callback (the
// matched block for the first one), the absolute index of its own matched
// element and the element itself, and returns the block the search should
// yield.
type FoundFunc[T any] func(b BlockMatcher[T], index int, element T) (BlockMatcher[T], error)

// ElementMatch is a described predicate over a single element, optionally
// carrying callbacks run when it takes part in a successful match.
// ElementMatch is an immutable value type.
type ElementMatch[T any] struct {
	description string
	predicate   func(T) bool
	found       []FoundFunc[T]
}

// NewMatch creates an ElementMatch. The description is only used in
// diagnostics such as PatternNotFoundError.
func NewMatch[T any](description string, predicate func(T) bool) ElementMatch[T] {
	return ElementMatch[T]{description: description, predicate: predicate}
}

// Description returns the human-readable description of the predicate.
func (m ElementMatch[T]) Description() string {
	return m.description
}

// String implements fmt.Stringer.
func (m ElementMatch[T]) String() string {
	return m.description
}

// Matches reports whether element satisfies the predicate.
// A match without a predicate matches nothing.
func (m ElementMatch[T]) Matches(element T) bool {
	if m.predicate == nil {
		return false
	}
	return m.predicate(element)
}

// WithDelegate returns a copy of m with fn appended to its found callbacks.
// Callbacks run in the order they were attached.
func (m ElementMatch[T]) WithDelegate(fn FoundFunc[T]) ElementMatch[T] {
	found := make([]FoundFunc[T], len(m.found), len(m.found)+1)
	copy(found, m.found)
	m.found = append(found, fn)
	return m
}

// WithAutoAnchor returns a copy of m that records a pointer anchor at the
// matched element.
func (m ElementMatch[T]) WithAutoAnchor(anchor any) ElementMatch[T] {
	return m.WithDelegate(func(b BlockMatcher[T], index int, _ T) (BlockMatcher[T], error) {
		return b.AnchorPointerAt(anchor, index)
	})
}

// WithCapture returns a copy of m that stores the matched element in out.
func (m ElementMatch[T]) WithCapture(out *T) ElementMatch[T] {
	return m.WithDelegate(func(b BlockMatcher[T], _ int, element T) (BlockMatcher[T], error) {
		*out = element
		return b, nil
	})
}

// Describe returns the descriptions of a pattern, in order.
func Describe[T any](pattern []ElementMatch[T]) []string {
	descriptions := make([]string, len(pattern))
	for i, m := range pattern {
		descriptions[i] = m.description
	}
	return descriptions
}

// matchAt tests pattern against elements[idx:] front to back.
func matchAt[T any](elements []T, idx int, pattern []ElementMatch[T]) bool {
	for i, m := range pattern {
		if !m.Matches(elements[idx+i]) {
			return false
		}
	}
	return true
}

// matchAtReverse tests pattern against elements[idx:] back to front.
func matchAtReverse[T any](elements []T, idx int, pattern []ElementMatch[T]) bool {
	for i := len(pattern) - 1; i >= 0; i-- {
		if !pattern[i].Matches(elements[idx+i]) {
			return false
		}
	}
	return true
}

// search returns the start index of the selected occurrence of pattern in
// the window [lo, hi), or -1 when there is none.
func search[T any](elements []T, lo, hi int, occurrence Occurrence, pattern []ElementMatch[T]) (int, error) {
	n := len(pattern)
	switch occurrence {
	case First:
		for idx := lo; idx+n <= hi; idx++ {
			if matchAt(elements, idx, pattern) {
				return idx, nil
			}
		}
	case Last:
		for idx := hi - n; idx >= lo; idx-- {
			if matchAtReverse(elements, idx, pattern) {
				return idx, nil
			}
		}
	default:
		return -1, enumError("Occurrence", int(occurrence))
	}
	return -1, nil
}
