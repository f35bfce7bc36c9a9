package board

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle before
// reloading the board file.
const DefaultDebounce = 100 * time.Millisecond

// ReloadHandler receives the freshly loaded definition, or the error that
// prevented loading it. It is called from the watcher goroutine.
type ReloadHandler func(def Definition, err error)

// Watcher reloads a board file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself, because many
// editors save by writing a temporary file and renaming it over the original,
// which would silently drop a watch on the old inode.
//
// Thread-safety: Start and Stop may be called from any goroutine. The handler
// is always called from a single goroutine.
type Watcher struct {
	path     string
	handler  ReloadHandler
	debounce time.Duration
	watcher  *fsnotify.Watcher

	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the board file at path.
// A debounce of zero selects DefaultDebounce.
func NewWatcher(path string, handler ReloadHandler, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch board: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch board: %w", err)
	}
	return &Watcher{
		path:     abs,
		handler:  handler,
		debounce: debounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the watch is registered; events are
// processed in a background goroutine until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch board: %w", err)
	}
	go w.loop(ctx)
	return nil
}

// Stop ends watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			def, err := Load(w.path)
			if err != nil {
				slog.Warn("board reload failed", "path", w.path, "error", err)
			} else {
				slog.Info("board reloaded", "path", w.path)
			}
			w.handler(def, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("board watcher error", "error", err)
		}
	}
}
