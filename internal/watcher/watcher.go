// Package watcher watches a corpus directory and triggers rebuilds when
// its contents change.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/meridian-labs/leadscope/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change
// before firing. Editors and sync tools write files in bursts; one
// rebuild per burst is enough.
const DefaultDebounce = 2 * time.Second

// Watcher triggers a callback when the watched directory settles after
// a burst of filesystem changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(ctx context.Context)

	fsw *fsnotify.Watcher
}

// New creates a watcher over dir. onChange runs on the watcher's
// goroutine; it must return before the next change can fire.
func New(dir string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
	}, nil
}

// Run blocks, dispatching debounced change notifications until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	logger.Info("Watching %s (debounce %s)", w.dir, w.debounce)
	defer w.fsw.Close()
	return w.loop(ctx, w.fsw.Events, w.fsw.Errors)
}

// loop is the debounce core, separated from fsnotify setup so it can be
// driven directly in tests.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("Change detected: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-fire
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-fire:
			timer = nil
			fire = nil
			w.onChange(ctx)
		}
	}
}

// relevant filters out events that cannot change corpus content.
func relevant(event fsnotify.Event) bool {
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}
