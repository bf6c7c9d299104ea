// Package watch reports batches of changed files under a directory tree.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdbadge "github.com/alnah/go-mdbadge"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned by Run after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher watches a directory tree and reports changed files in debounced batches.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	filter   func(path string) bool
	logger   mdbadge.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle delay. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter restricts reported files. Directories are always watched, and
// removed or renamed paths are reported even when the filter rejects them.
func WithFilter(fn func(path string) bool) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.filter = fn
		}
	}
}

// WithLogger attaches a logger for watcher errors.
func WithLogger(logger mdbadge.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New registers root and every non-hidden directory beneath it.
func New(root string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		fsw:      fsw,
		debounce: DefaultDebounce,
		filter:   func(string) bool { return true },
		logger:   mdbadge.NopLogger(),
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if _, err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers batches of changed paths to onChange until ctx is done or
// the watcher is closed. Paths in a batch are sorted and unique.
// onChange runs on the debounce timer goroutine, one batch at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			w.handle(event, onChange)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("mdbadge.watch.error", "error", err)

		case <-w.done:
			return ErrWatcherClosed

		case <-ctx.Done():
			w.stopTimer()
			return nil
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.stopTimer()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event, onChange func([]string)) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if isHidden(filepath.Base(event.Name)) {
		return
	}

	var changed []string
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create && isDir(event.Name):
		// A new or moved-in directory is registered and its files reported,
		// since no per-file events arrive for files it already holds.
		files, err := w.addTree(event.Name)
		if err != nil {
			w.logger.Warn("mdbadge.watch.add_failed", "path", event.Name, "error", err)
		}
		changed = files
	case w.filter(event.Name):
		changed = []string{event.Name}
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// The path is gone, so it cannot be told apart from a directory
		// that held matching files. Report it and let the receiver rescan.
		changed = []string{event.Name}
	}
	if len(changed) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range changed {
		w.pending[p] = struct{}{}
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if batch := w.drain(); len(batch) > 0 {
			onChange(batch)
		}
	})
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	clear(w.pending)
	sort.Strings(batch)
	return batch
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// addTree watches dir and every non-hidden directory beneath it.
// It returns the files under dir that pass the filter.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if w.filter(p) {
				files = append(files, p)
			}
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
	return files, err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
