package recipe

import (
	"errors"
	"fmt"
)

// Errors returned while loading or compiling recipes.
var (
	// ErrUnknownOp indicates a step with an unsupported op.
	ErrUnknownOp = errors.New("unknown op")

	// ErrUnknownFormat indicates a recipe file with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown recipe format")

	// ErrInvalidPattern indicates a pattern element selecting no predicate or more than one.
	ErrInvalidPattern = errors.New("pattern element must select exactly one predicate")

	// ErrMissingField indicates a step without a field its op requires.
	ErrMissingField = errors.New("missing required field")
)

// ParseError represents an error decoding a recipe file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing recipe %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StepError locates a failure in a recipe. Nested steps produce nested
// StepErrors.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
