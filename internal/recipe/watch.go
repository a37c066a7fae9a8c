package recipe

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period Watch waits for after a change
// before running again.
const DefaultDebounce = 100 * time.Millisecond

// Watch runs fn once, then again each time one of paths is written,
// created or renamed, until ctx is done. Bursts of events closer together
// than debounce trigger a single run. Errors from fn are logged and do not
// stop the watch.
func Watch(ctx context.Context, logger zerolog.Logger, debounce time.Duration, fn func() error, paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Watch directories so files replaced by editors are still seen.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		watched[p] = true
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	run := func() {
		if err := fn(); err != nil {
			logger.Error().Err(err).Msg("run failed")
			return
		}
		logger.Info().Msg("run complete")
	}
	run()

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("path", ev.Name).Stringer("op", ev.Op).Msg("change detected")
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			run()
		}
	}
}
