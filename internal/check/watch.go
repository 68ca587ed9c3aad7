package check

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed script files under a set of directories.
// Bursts of events are coalesced: OnChange runs once the tree has been
// quiet for Debounce.
type Watcher struct {
	Roots      []string
	Extensions []string
	Debounce   time.Duration
	Logger     *slog.Logger

	// OnChange receives the sorted set of files written or created since
	// the previous call. Calls never overlap, and none is in progress once
	// Run has returned.
	OnChange func(ctx context.Context, files []string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	stopped bool
	running sync.Mutex
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Logger == nil {
		w.Logger = slog.New(slog.DiscardHandler)
	}
	w.mu.Lock()
	w.stopped = false
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range w.Roots {
		if err := w.watchDir(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	w.watchLoop(ctx, watcher)

	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	// Wait out a flush whose timer already fired.
	w.running.Lock()
	w.running.Unlock() //nolint:staticcheck // empty critical section
	return nil
}

// watchDir recursively adds a directory to the watcher.
func (w *Watcher) watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Skip hidden directories
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		w.Logger.Debug("watching directory", "path", path)
		return watcher.Add(path)
	})
}

// watchLoop handles file system events.
func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only handle write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// New directories join the watch set
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watchDir(watcher, event.Name); err != nil {
						w.Logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			if !HasExtension(event.Name, w.Extensions) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.Logger.Warn("watcher error", "error", err)
		}
	}
}

// schedule records path and restarts the debounce timer.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		w.pending = make(map[string]struct{})
	}
	w.pending[filepath.Clean(path)] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		w.flush(ctx)
	})
}

// flush hands the pending set to OnChange.
func (w *Watcher) flush(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	w.running.Lock()
	defer w.running.Unlock()

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	files := make([]string, 0, len(w.pending))
	for p := range w.pending {
		files = append(files, p)
	}
	w.pending = nil
	w.mu.Unlock()

	if len(files) == 0 {
		return
	}
	slices.Sort(files)
	w.Logger.Debug("change detected", "files", len(files))
	if w.OnChange != nil {
		w.OnChange(ctx, files)
	}
}
