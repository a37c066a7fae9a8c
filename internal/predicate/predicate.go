// Package predicate provides ElementMatch constructors over string
// elements, such as lines of a listing or records of a JSON Lines file.
package predicate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/tidwall/gjson"
	"github.com/tidwall/match"

	"github.com/dshills/seqmatch/internal/sequence"
)

// Match is the element predicate type produced by this package.
type Match = sequence.ElementMatch[string]

// Equals matches elements equal to v.
func Equals(v string) Match {
	return sequence.NewMatch(fmt.Sprintf("equals %q", v), func(s string) bool {
		return s == v
	})
}

// HasPrefix matches elements starting with prefix.
func HasPrefix(prefix string) Match {
	return sequence.NewMatch(fmt.Sprintf("has prefix %q", prefix), func(s string) bool {
		return strings.HasPrefix(s, prefix)
	})
}

// HasSuffix matches elements ending with suffix.
func HasSuffix(suffix string) Match {
	return sequence.NewMatch(fmt.Sprintf("has suffix %q", suffix), func(s string) bool {
		return strings.HasSuffix(s, suffix)
	})
}

// Contains matches elements containing substr.
func Contains(substr string) Match {
	return sequence.NewMatch(fmt.Sprintf("contains %q", substr), func(s string) bool {
		return strings.Contains(s, substr)
	})
}

// Glob matches elements against a wildcard pattern where '*' matches any
// run of characters and '?' matches exactly one.
func Glob(pattern string) Match {
	return sequence.NewMatch(fmt.Sprintf("matches glob %q", pattern), func(s string) bool {
		return match.Match(s, pattern)
	})
}

// Regexp matches elements containing a match of expr.
func Regexp(expr string) (Match, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Match{}, fmt.Errorf("compiling %q: %w", expr, err)
	}
	return sequence.NewMatch(fmt.Sprintf("matches regexp %q", expr), re.MatchString), nil
}

// Len matches elements of exactly n user-perceived characters, counted as
// Unicode grapheme clusters. "é" written with a combining accent has
// length 1.
func Len(n int) Match {
	return sequence.NewMatch(fmt.Sprintf("has length %d", n), func(s string) bool {
		return uniseg.GraphemeClusterCount(s) == n
	})
}

// Upper matches elements with at least one letter and no lower-case letters.
func Upper() Match {
	return sequence.NewMatch("is upper case", func(s string) bool {
		return hasLetter(s) && strings.ToUpper(s) == s
	})
}

// Lower matches elements with at least one letter and no upper-case letters.
func Lower() Match {
	return sequence.NewMatch("is lower case", func(s string) bool {
		return hasLetter(s) && strings.ToLower(s) == s
	})
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// Any matches every element.
func Any() Match {
	return sequence.NewMatch("any element", func(string) bool { return true })
}

// Not inverts m. Found callbacks of m are not carried over.
func Not(m Match) Match {
	return sequence.NewMatch("not "+m.Description(), func(s string) bool {
		return !m.Matches(s)
	})
}

// JSONField matches JSON elements whose value at path renders as value.
// Paths use gjson syntax, e.g. "op" or "args.0".
func JSONField(path, value string) Match {
	return sequence.NewMatch(fmt.Sprintf("json %s == %q", path, value), func(s string) bool {
		if !gjson.Valid(s) {
			return false
		}
		r := gjson.Get(s, path)
		return r.Exists() && r.String() == value
	})
}

// JSONExists matches JSON elements that have a value at path.
func JSONExists(path string) Match {
	return sequence.NewMatch(fmt.Sprintf("json %s exists", path), func(s string) bool {
		return gjson.Valid(s) && gjson.Get(s, path).Exists()
	})
}
