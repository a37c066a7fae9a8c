// Package logging builds the zerolog logger used by seqpatch.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// EnvLevel names the environment variable holding the default log level.
const EnvLevel = "SEQPATCH_LOG_LEVEL"

// ErrUnknownFormat indicates an unsupported log format.
var ErrUnknownFormat = errors.New("unknown log format")

// New returns a logger writing to w at level in the given format.
// An empty level means info and an empty format means console.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
		}
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	// The global level caps every logger.
	if lvl < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(lvl)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
