package app

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// WatchOptions configures watch mode behavior.
type WatchOptions struct {
	ProjectDir string
	Debounce   time.Duration
	BuildFirst bool
}

// Watcher rebuilds the firmware whenever project inputs change. Events are
// debounced: editors fire several events per save, and a rebuild mid-save
// would race half-written files.
type Watcher struct {
	opts    WatchOptions
	log     ports.Logger
	buildFn func(ctx context.Context) error

	mu      sync.Mutex
	pending *time.Timer
}

// NewWatcher creates a Watcher invoking buildFn on relevant changes.
func NewWatcher(opts WatchOptions, log ports.Logger, buildFn func(ctx context.Context) error) *Watcher {
	if opts.Debounce == 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	return &Watcher{opts: opts, log: log, buildFn: buildFn}
}

// Start watches the project until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := []string{
		w.opts.ProjectDir,
		filepath.Join(w.opts.ProjectDir, "src"),
		filepath.Join(w.opts.ProjectDir, "app"),
	}
	for _, dir := range dirs {
		// Directories may not exist yet on a fresh project; watch what
		// is there and rely on the project dir watch for the rest.
		_ = watcher.Add(dir)
	}

	if w.opts.BuildFirst {
		if err := w.buildFn(ctx); err != nil {
			w.log.Error(ctx, "initial build failed", ports.F("error", err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug(ctx, "change detected", ports.F("path", event.Name))
			w.schedule(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "watch error", ports.F("error", err))
		}
	}
}

// relevant filters out events from build outputs and editor droppings.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp") {
		return false
	}
	rel, err := filepath.Rel(w.opts.ProjectDir, event.Name)
	if err != nil {
		return false
	}
	top := strings.Split(filepath.ToSlash(rel), "/")[0]
	switch top {
	case "build", "zephyr", "modules":
		return false
	}
	return true
}

// schedule arms (or re-arms) the debounced rebuild.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.opts.Debounce, func() {
		if err := w.buildFn(ctx); err != nil {
			w.log.Error(ctx, "rebuild failed", ports.F("error", err))
		}
	})
}
