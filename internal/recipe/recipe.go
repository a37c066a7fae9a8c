package recipe

import (
	"fmt"

	"github.com/dshills/seqmatch/internal/predicate"
	"github.com/dshills/seqmatch/internal/sequence"
)

// Recipe is a named list of steps applied in order.
type Recipe struct {
	Name  string `toml:"name" yaml:"name"`
	Steps []Step `toml:"steps" yaml:"steps"`
}

// Step is one operation on the current block. Which fields are read
// depends on Op.
type Step struct {
	Op string `toml:"op" yaml:"op"`

	// Search
	Occurrence string        `toml:"occurrence" yaml:"occurrence"`
	Bounds     string        `toml:"bounds" yaml:"bounds"`
	Pattern    []PatternSpec `toml:"pattern" yaml:"pattern"`

	// Movement and insertion
	Direction string `toml:"direction" yaml:"direction"`
	Position  string `toml:"position" yaml:"position"`
	Result    string `toml:"result" yaml:"result"`
	Count     int    `toml:"count" yaml:"count"`

	Anchor   string   `toml:"anchor" yaml:"anchor"`
	Elements []string `toml:"elements" yaml:"elements"`

	// JSON rewriting
	Path  string `toml:"path" yaml:"path"`
	Value string `toml:"value" yaml:"value"`
	Raw   bool   `toml:"raw" yaml:"raw"`

	// Nested steps for for_each and do
	Steps []Step `toml:"steps" yaml:"steps"`
}

// PatternSpec describes one element predicate. Exactly one of the
// predicate fields must be set; Not and Anchor decorate it.
type PatternSpec struct {
	Equals    *string `toml:"equals" yaml:"equals"`
	Prefix    string  `toml:"prefix" yaml:"prefix"`
	Suffix    string  `toml:"suffix" yaml:"suffix"`
	Contains  string  `toml:"contains" yaml:"contains"`
	Glob      string  `toml:"glob" yaml:"glob"`
	Regexp    string  `toml:"regexp" yaml:"regexp"`
	Len       *int    `toml:"len" yaml:"len"`
	Upper     bool    `toml:"upper" yaml:"upper"`
	Lower     bool    `toml:"lower" yaml:"lower"`
	Any       bool    `toml:"any" yaml:"any"`
	JSONPath  string  `toml:"json_path" yaml:"json_path"`
	JSONValue *string `toml:"json_value" yaml:"json_value"`
	Lua       string  `toml:"lua" yaml:"lua"`

	Not    bool   `toml:"not" yaml:"not"`
	Anchor string `toml:"anchor" yaml:"anchor"`
}

// Build returns the predicate described by the spec. Lua expressions are
// compiled on script, which must be non-nil when Lua is set.
func (p PatternSpec) Build(script *predicate.Script) (predicate.Match, error) {
	var candidates []predicate.Match
	if p.Equals != nil {
		candidates = append(candidates, predicate.Equals(*p.Equals))
	}
	if p.Prefix != "" {
		candidates = append(candidates, predicate.HasPrefix(p.Prefix))
	}
	if p.Suffix != "" {
		candidates = append(candidates, predicate.HasSuffix(p.Suffix))
	}
	if p.Contains != "" {
		candidates = append(candidates, predicate.Contains(p.Contains))
	}
	if p.Glob != "" {
		candidates = append(candidates, predicate.Glob(p.Glob))
	}
	if p.Regexp != "" {
		m, err := predicate.Regexp(p.Regexp)
		if err != nil {
			return predicate.Match{}, err
		}
		candidates = append(candidates, m)
	}
	if p.Len != nil {
		candidates = append(candidates, predicate.Len(*p.Len))
	}
	if p.Upper {
		candidates = append(candidates, predicate.Upper())
	}
	if p.Lower {
		candidates = append(candidates, predicate.Lower())
	}
	if p.Any {
		candidates = append(candidates, predicate.Any())
	}
	if p.JSONPath != "" {
		if p.JSONValue != nil {
			candidates = append(candidates, predicate.JSONField(p.JSONPath, *p.JSONValue))
		} else {
			candidates = append(candidates, predicate.JSONExists(p.JSONPath))
		}
	}
	if p.Lua != "" {
		if script == nil {
			return predicate.Match{}, fmt.Errorf("%w: lua state", ErrMissingField)
		}
		m, err := script.Match(p.Lua)
		if err != nil {
			return predicate.Match{}, err
		}
		candidates = append(candidates, m)
	}

	if len(candidates) != 1 {
		return predicate.Match{}, fmt.Errorf("%w: got %d", ErrInvalidPattern, len(candidates))
	}

	m := candidates[0]
	if p.Not {
		m = predicate.Not(m)
	}
	if p.Anchor != "" {
		m = m.WithAutoAnchor(p.Anchor)
	}
	return m, nil
}

func (c *compiler) pattern(specs []PatternSpec) ([]sequence.ElementMatch[string], error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: pattern", ErrMissingField)
	}
	pattern := make([]sequence.ElementMatch[string], len(specs))
	for i, spec := range specs {
		var script *predicate.Script
		if spec.Lua != "" {
			script = c.script()
		}
		m, err := spec.Build(script)
		if err != nil {
			return nil, fmt.Errorf("pattern element %d: %w", i, err)
		}
		pattern[i] = m
	}
	return pattern, nil
}
