// SPDX-License-Identifier: MPL-2.0

// Package watch monitors a project's manifest and marker files.
//
// The session's modification-time checks are authoritative; the watcher
// only tells an interested caller *when* to refresh. Filesystem events
// are debounced so editor write-rename churn coalesces into a single
// callback carrying the full set of changed paths.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"stackhand/internal/project"
	"stackhand/pkg/cabal"
)

// defaultDebounce is the quiet period after the last event before the
// callback fires.
const defaultDebounce = 500 * time.Millisecond

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Debounce overrides the quiet period; zero or negative
		// falls back to defaultDebounce.
		Debounce time.Duration

		// OnChange receives the deduplicated list of changed
		// manifest/marker paths after the debounce window closes.
		// A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string)

		// Logger defaults to the package-level default logger.
		Logger *log.Logger
	}

	// Watcher monitors one project's manifest and marker files. Run
	// must be called exactly once.
	Watcher struct {
		cfg Config
		fsw *fsnotify.Watcher

		mu      sync.Mutex
		pending map[string]struct{}

		ran bool
	}
)

// New creates a watcher over the given project: the root directory plus
// every package directory is registered, non-recursively.
func New(cfg Config, proj *project.Project) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	dirs := map[string]struct{}{proj.Root: {}}
	for _, pkg := range proj.Packages {
		dirs[pkg.Dir] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		pending: make(map[string]struct{}),
	}, nil
}

// Run processes filesystem events until ctx is cancelled. It returns
// ctx.Err() on cancellation and the watcher error if the event stream
// breaks. Calling Run twice is an error.
func (w *Watcher) Run(ctx context.Context) error {
	if w.ran {
		return fmt.Errorf("watcher already ran")
	}
	w.ran = true
	defer w.fsw.Close()

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch event stream closed")
			}
			if !interesting(event.Name) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.mu.Unlock()
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch error stream closed")
			}
			w.cfg.Logger.Warn("watch error", "err", err)

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// flush delivers the coalesced pending set to the callback.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 || w.cfg.OnChange == nil {
		return
	}
	w.cfg.Logger.Debug("project files changed", "count", len(changed))
	w.cfg.OnChange(ctx, changed)
}

// interesting reports whether a path is a manifest or marker file.
func interesting(path string) bool {
	name := filepath.Base(path)
	return cabal.IsManifest(name) || project.IsMarkerName(name)
}
