// Package recipe applies declarative rewrite recipes to line-oriented
// sequences.
//
// A recipe is an ordered list of steps, each of which moves or edits the
// current block of a sequence.BlockMatcher. Recipes are written in TOML or
// YAML:
//
//	name = "drop debug calls"
//
//	[[steps]]
//	op = "for_each"
//	pattern = [{ prefix = "call debug_" }]
//
//	  [[steps.steps]]
//	  op = "remove"
//
// Supported ops:
//
//   - find, encompass, encompass_until: move or grow the current block
//   - insert, replace, remove, set: edit the sequence
//   - advance: move to the first element of the block and step from there
//   - anchor, anchor_pointer, goto, goto_pointer: save and restore positions
//   - for_each, do: run nested steps per match or on an isolated block
//   - select_all: span the whole sequence
//
// A pattern element selects one predicate: equals, prefix, suffix, contains,
// glob, regexp, len, upper, lower, any, json_path (with optional
// json_value) or lua. A lua predicate is an expression over the element e,
// such as `#e > 80`. All lua predicates of a recipe share one sandboxed
// state.
//
// Recipes are compiled before they run, so malformed steps are reported
// before any edit is made.
package recipe
