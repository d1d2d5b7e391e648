// Package watch runs a debounced callback when files of interest change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoPaths indicates a watcher without anything to watch.
var ErrNoPaths = errors.New("watch: no paths")

// Options configures a Watcher.
type Options struct {
	// Paths are files or directories to watch. Directories are watched
	// without descending into subdirectories.
	Paths []string

	// Ignore lists directories whose events are dropped, such as the build
	// directory the callback writes into.
	Ignore []string

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// OnChange receives the sorted set of changed paths. Errors are logged
	// and watching continues.
	OnChange func(ctx context.Context, changed []string) error

	Logger *slog.Logger
}

// Watcher batches filesystem events and reports them after a quiet period.
type Watcher struct {
	opts Options

	// files restricts events inside a watched directory to these names
	// when the directory was added on behalf of a single file.
	files map[string]map[string]bool
	dirs  []string
}

// New validates opts and prepares a Watcher.
func New(opts Options) (*Watcher, error) {
	if len(opts.Paths) == 0 {
		return nil, ErrNoPaths
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w := &Watcher{opts: opts, files: make(map[string]map[string]bool)}
	wholeDirs := make(map[string]bool)
	for _, p := range opts.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch path %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			wholeDirs[abs] = true
			w.addDir(abs)
			continue
		}
		dir := filepath.Dir(abs)
		if w.files[dir] == nil {
			w.files[dir] = make(map[string]bool)
		}
		w.files[dir][filepath.Base(abs)] = true
		w.addDir(dir)
	}
	for dir := range wholeDirs {
		delete(w.files, dir)
	}
	return w, nil
}

func (w *Watcher) addDir(dir string) {
	if !slices.Contains(w.dirs, dir) {
		w.dirs = append(w.dirs, dir)
	}
}

// Dirs returns the directories handed to fsnotify.
func (w *Watcher) Dirs() []string {
	return slices.Clone(w.dirs)
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			// Missing layer directories are common; skip them.
			w.opts.Logger.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		w.opts.Logger.Debug("watching directory", "dir", dir)
	}

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.opts.Logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			timer.Reset(w.opts.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)

			if w.opts.OnChange == nil {
				continue
			}
			if err := w.opts.OnChange(ctx, changed); err != nil {
				w.opts.Logger.Error("change handler failed", "error", err, "changed", len(changed))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	for _, ignored := range w.opts.Ignore {
		if event.Name == ignored || strings.HasPrefix(event.Name, ignored+string(filepath.Separator)) {
			return false
		}
	}
	names, restricted := w.files[filepath.Dir(event.Name)]
	if !restricted {
		return true
	}
	return names[filepath.Base(event.Name)]
}
