package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/hoshi/internal/engine"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

// watchFiles runs fn over all paths, then again over the changed subset
// each time files are written, until ctx is done. Check failures are
// reported and do not stop the loop.
func watchFiles(ctx context.Context, cmdCtx *CommandContext, paths []string, fn func(context.Context, []string) error) error {
	r := cmdCtx.Renderer

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directories: editors often replace a file on save,
	// which drops a watch on the file itself.
	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	// Timer callbacks may overlap; runs share the renderer.
	var (
		runMu   sync.Mutex
		stopped bool
	)
	runReport := func(targets []string) {
		runMu.Lock()
		defer runMu.Unlock()
		if stopped {
			return
		}
		if err := fn(ctx, targets); err != nil && !errors.Is(err, engine.ErrCheckFailed) && ctx.Err() == nil {
			r.Error(err.Error())
		}
	}
	// Wait for an in-flight run and drop any timer that fires afterwards,
	// so nothing writes to the renderer once watchFiles has returned.
	defer func() {
		runMu.Lock()
		stopped = true
		runMu.Unlock()
	}()

	runReport(paths)
	r.Muted(fmt.Sprintf("Watching %d file(s) for changes. Press Ctrl+C to stop.", len(paths)))

	var (
		mu            sync.Mutex
		pending       = make(map[string]bool)
		debounceTimer *time.Timer
	)
	flush := func() {
		mu.Lock()
		targets := make([]string, 0, len(pending))
		for p := range pending {
			targets = append(targets, p)
		}
		clear(pending)
		mu.Unlock()

		slices.Sort(targets)
		cmdCtx.Logger.Debug("change detected", "files", targets)
		runReport(targets)
	}

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only handle write/create events for watched files
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			original, ok := watched[abs]
			if !ok {
				continue
			}

			mu.Lock()
			pending[original] = true
			mu.Unlock()

			// Debounce recompiles
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, flush)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watcher error", "error", err)
		}
	}
}
