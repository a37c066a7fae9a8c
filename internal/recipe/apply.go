package recipe

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tidwall/sjson"

	"github.com/dshills/seqmatch/internal/predicate"
	"github.com/dshills/seqmatch/internal/sequence"
)

type block = sequence.BlockMatcher[string]

// action is a compiled step.
type action func(block) (block, error)

// compiler turns steps into actions. Lua patterns of one compilation share
// a single Lua state, created on first use and released by close once the
// actions are no longer needed.
type compiler struct {
	logger zerolog.Logger
	lua    *predicate.Script
}

func newCompiler(logger zerolog.Logger) *compiler {
	return &compiler{logger: logger}
}

func (c *compiler) script() *predicate.Script {
	if c.lua == nil {
		c.lua = predicate.NewScript()
	}
	return c.lua
}

func (c *compiler) close() {
	if c.lua != nil {
		c.lua.Close()
		c.lua = nil
	}
}

// Validate reports the first step that cannot be compiled.
func (r *Recipe) Validate() error {
	c := newCompiler(zerolog.Nop())
	defer c.close()

	_, err := c.steps(r.Steps)
	return err
}

// Apply runs the recipe on lines and returns the rewritten sequence.
// The recipe starts with a block spanning every line.
func Apply(r *Recipe, lines []string, logger zerolog.Logger) ([]string, error) {
	c := newCompiler(logger)
	defer c.close()

	run, err := c.steps(r.Steps)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("recipe", r.Name).Int("lines", len(lines)).Int("steps", len(r.Steps)).Msg("applying recipe")

	b, err := run(sequence.NewBlockMatcher(lines, sequence.WithLogger(logger)))
	if err != nil {
		return nil, err
	}
	return b.AllElements(), nil
}

func (c *compiler) steps(steps []Step) (action, error) {
	actions := make([]action, len(steps))
	for i, step := range steps {
		a, err := c.step(step)
		if err != nil {
			return nil, &StepError{Index: i, Op: step.Op, Err: err}
		}
		actions[i] = a
	}

	return func(b block) (block, error) {
		for i, a := range actions {
			c.logger.Debug().Int("step", i).Str("op", steps[i].Op).Stringer("block", b).Msg("step")
			next, err := a(b)
			if err != nil {
				return block{}, &StepError{Index: i, Op: steps[i].Op, Err: err}
			}
			b = next
		}
		return b, nil
	}, nil
}

func (c *compiler) step(s Step) (action, error) {
	switch s.Op {
	case "find":
		occurrence, bounds, err := searchOptions(s, sequence.BoundsWholeSequence)
		if err != nil {
			return nil, err
		}
		pattern, err := c.pattern(s.Pattern)
		if err != nil {
			return nil, err
		}
		return func(b block) (block, error) {
			return b.Find(occurrence, bounds, pattern...)
		}, nil

	case "encompass":
		direction, err := sequence.ParseDirection(s.Direction)
		if err != nil {
			return nil, err
		}
		return func(b block) (block, error) {
			return b.Encompass(direction, s.Count)
		}, nil

	case "encompass_until":
		direction, err := sequence.ParseDirection(s.Direction)
		if err != nil {
			return nil, err
		}
		pattern, err := c.pattern(s.Pattern)
		if err != nil {
			return nil, err
		}
		return func(b block) (block, error) {
			return b.EncompassUntil(direction, pattern...)
		}, nil

	case "insert":
		position, err := sequence.ParseDirection(withDefault(s.Position, "after"))
		if err != nil {
			return nil, err
		}
		result, err := sequence.ParseInsertionBounds(withDefault(s.Result, "just"))
		if err != nil {
			return nil, err
		}
		elements := s.Elements
		return func(b block) (block, error) {
			return b.Insert(position, result, elements...)
		}, nil

	case "replace":
		elements := s.Elements
		return func(b block) (block, error) {
			return b.Replace(elements...), nil
		}, nil

	case "remove":
		return func(b block) (block, error) {
			return b.Remove(), nil
		}, nil

	case "set":
		if s.Path == "" {
			return nil, fmt.Errorf("%w: path", ErrMissingField)
		}
		return func(b block) (block, error) {
			return setJSON(b, s.Path, s.Value, s.Raw)
		}, nil

	case "advance":
		return func(b block) (block, error) {
			p, err := b.First()
			if err != nil {
				return block{}, err
			}
			p, err = p.Advance(s.Count)
			if err != nil {
				return block{}, err
			}
			return p.BlockMatcher(), nil
		}, nil

	case "anchor", "anchor_pointer", "goto", "goto_pointer":
		if s.Anchor == "" {
			return nil, fmt.Errorf("%w: anchor", ErrMissingField)
		}
		return anchorAction(s.Op, s.Anchor), nil

	case "for_each":
		pattern, err := c.pattern(s.Pattern)
		if err != nil {
			return nil, err
		}
		body, err := c.steps(s.Steps)
		if err != nil {
			return nil, err
		}
		return func(b block) (block, error) {
			return b.ForEach(pattern, body)
		}, nil

	case "do":
		body, err := c.steps(s.Steps)
		if err != nil {
			return nil, err
		}
		return func(b block) (block, error) {
			return b.Do(body)
		}, nil

	case "select_all":
		return func(b block) (block, error) {
			return b.Slice(0, b.Len())
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
}

func anchorAction(op, anchor string) action {
	switch op {
	case "anchor":
		return func(b block) (block, error) {
			return b.AnchorBlock(anchor)
		}
	case "anchor_pointer":
		return func(b block) (block, error) {
			return b.AnchorPointerAt(anchor, b.StartIndex())
		}
	case "goto":
		return func(b block) (block, error) {
			return b.MoveToBlockAnchor(anchor)
		}
	default:
		return func(b block) (block, error) {
			p, err := b.MoveToPointerAnchor(anchor)
			if err != nil {
				return block{}, err
			}
			return p.BlockMatcher(), nil
		}
	}
}

func searchOptions(s Step, defaultBounds sequence.RelativeBounds) (sequence.Occurrence, sequence.RelativeBounds, error) {
	occurrence, err := sequence.ParseOccurrence(withDefault(s.Occurrence, "first"))
	if err != nil {
		return 0, 0, err
	}
	bounds := defaultBounds
	if s.Bounds != "" {
		bounds, err = sequence.ParseRelativeBounds(s.Bounds)
		if err != nil {
			return 0, 0, err
		}
	}
	return occurrence, bounds, nil
}

// setJSON rewrites path in every JSON element of the block.
func setJSON(b block, path, value string, raw bool) (block, error) {
	elements := b.Elements()
	for i, element := range elements {
		var (
			updated string
			err     error
		)
		if raw {
			updated, err = sjson.SetRaw(element, path, value)
		} else {
			updated, err = sjson.Set(element, path, value)
		}
		if err != nil {
			return block{}, fmt.Errorf("element %d: %w", b.StartIndex()+i, err)
		}
		elements[i] = updated
	}
	return b.Replace(elements...), nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
