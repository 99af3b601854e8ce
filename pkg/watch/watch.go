// Package watch re-runs a callback whenever a source file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay collapses the burst of events a single save produces.
const DefaultDelay = 100 * time.Millisecond

// Watcher observes one file through its parent directory, so editors that
// save by renaming a temporary file are still seen.
type Watcher struct {
	w      *fsnotify.Watcher
	path   string
	delay  time.Duration
	logger *slog.Logger
}

// New starts watching path.
func New(path string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{w: w, path: abs, delay: DefaultDelay, logger: logger}, nil
}

// SetDelay changes the quiet period that must pass before the callback runs.
func (w *Watcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Relevant reports whether ev modifies the watched file.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// Run calls onChange after each change to the file until ctx is done or the
// watcher is closed. Callbacks run sequentially on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(ev) {
				continue
			}
			w.logger.Debug("File changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.delay)
			pending = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		case <-pending:
			pending = nil
			onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
