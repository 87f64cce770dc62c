package watcher

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/mnemo-mcp/mnemo/internal/logger"
)

var log = logger.ForComponent("watcher")

// Watcher observes the memory log file and invokes onChange (debounced)
// whenever it is created or written. The watch is placed on the parent
// directory, not the file itself: the file may not exist yet, and
// editors replace files rather than writing them in place.
type Watcher struct {
	config    Config
	path      string
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	cancel    context.CancelFunc
}

func New(config Config, path string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		config:    config,
		path:      abs,
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(config.DebounceWindow, onChange),
	}, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	go w.loop(ctx)

	log.Info("watching memory file", "path", w.path)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				log.Debug("memory file changed", "op", event.Op.String())
				w.debouncer.Add()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	if w.ignored(path) {
		return false
	}

	return path == w.path
}

func (w *Watcher) ignored(path string) bool {
	for _, pattern := range w.config.IgnorePatterns {
		if matched, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.debouncer.Stop()
	w.fsWatcher.Close()
}
