package sequence

import "github.com/rs/zerolog"

// Option configures matchers created by NewBlockMatcher and NewPointerMatcher.
// Derived matchers share the options of the matcher they were derived from.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

var (
	nopLogger      = zerolog.Nop()
	defaultOptions = &options{log: nopLogger}
)

// WithLogger sets the logger used to trace edits, dropped anchors and
// failed searches. Edits are logged at trace level, the rest at debug.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.log = logger
	}
}

func newOptions(opts []Option) *options {
	if len(opts) == 0 {
		return defaultOptions
	}
	o := &options{log: nopLogger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// logger tolerates the nil options of a zero-value matcher.
func (o *options) logger() *zerolog.Logger {
	if o == nil {
		return &nopLogger
	}
	return &o.log
}
