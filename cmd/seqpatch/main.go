// Package main is the entry point for seqpatch, which rewrites a
// line-oriented file by applying a recipe of sequence matcher steps.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dshills/seqmatch/internal/logging"
	"github.com/dshills/seqmatch/internal/recipe"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Options holds the parsed command line.
type Options struct {
	RecipePath  string
	InputPath   string
	OutputPath  string
	Watch       bool
	LogLevel    string
	LogFormat   string
	ShowVersion bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if opts.ShowVersion {
		fmt.Printf("seqpatch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	logger, err := logging.New(os.Stderr, opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if !opts.Watch {
		if err := process(opts, os.Stdin, os.Stdout, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = recipe.Watch(ctx, logger, recipe.DefaultDebounce, func() error {
		return process(opts, os.Stdin, os.Stdout, logger)
	}, opts.RecipePath, opts.InputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (Options, error) {
	var opts Options

	fs := flag.NewFlagSet("seqpatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.RecipePath, "recipe", "", "Path to recipe file (.toml, .yaml)")
	fs.StringVar(&opts.RecipePath, "r", "", "Path to recipe file (shorthand)")
	fs.StringVar(&opts.OutputPath, "output", "", "Output file (default stdout)")
	fs.StringVar(&opts.OutputPath, "o", "", "Output file (shorthand)")
	fs.BoolVar(&opts.Watch, "watch", false, "Re-apply when the recipe or input changes")
	fs.StringVar(&opts.LogLevel, "log-level", os.Getenv(logging.EnvLevel), "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&opts.LogFormat, "log-format", logging.FormatConsole, "Log format (console, json)")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.ShowVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "seqpatch - apply sequence matcher recipes to line-oriented files\n\n")
		fmt.Fprintf(stderr, "Usage: seqpatch -r recipe.toml [options] [input]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  seqpatch -r strip.toml prog.asm           Print the rewritten file\n")
		fmt.Fprintf(stderr, "  seqpatch -r strip.yaml -o out.asm -       Read stdin, write out.asm\n")
		fmt.Fprintf(stderr, "  seqpatch -r strip.toml -o out.asm -watch prog.asm\n")
	}

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	if opts.ShowVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 0:
		opts.InputPath = "-"
	case 1:
		opts.InputPath = fs.Arg(0)
	default:
		return Options{}, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	if opts.RecipePath == "" {
		return Options{}, errors.New("a recipe is required (-r)")
	}

	if opts.Watch {
		if opts.InputPath == "-" {
			return Options{}, errors.New("-watch needs an input file")
		}
		if opts.OutputPath != "" && filepath.Clean(opts.OutputPath) == filepath.Clean(opts.InputPath) {
			return Options{}, errors.New("-watch cannot write over its own input")
		}
	}

	return opts, nil
}

// process loads the recipe, applies it to the input, and writes the result.
func process(opts Options, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	r, err := recipe.Load(opts.RecipePath)
	if err != nil {
		return err
	}

	lines, err := readLines(opts.InputPath, stdin)
	if err != nil {
		return err
	}

	out, err := recipe.Apply(r, lines, logger)
	if err != nil {
		return err
	}

	if err := writeLines(opts.OutputPath, stdout, out); err != nil {
		return err
	}

	logger.Info().
		Str("recipe", opts.RecipePath).
		Int("in", len(lines)).
		Int("out", len(out)).
		Msg("recipe applied")
	return nil
}

func readLines(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func writeLines(path string, stdout io.Writer, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, b.String())
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
