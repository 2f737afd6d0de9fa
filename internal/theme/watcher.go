package theme

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jefe-cli/jefe/internal/logging"
)

var themeLog = logging.ForComponent(logging.CompTheme)

// Watcher watches JEFE_THEME_DIR for added or changed theme files and
// installs them into a Registry as they appear, generalizing the teacher's
// single-file fsnotify watch (internal/ui/storage_watcher.go's doc comment,
// internal/session/event_watcher.go's actual fsnotify usage) to a directory
// of theme files rather than one config file.
type Watcher struct {
	dir      string
	registry *Registry
	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching dir, loading any theme files already present
// and installing new ones as they're created or modified. Returns nil if
// the directory cannot be watched (e.g. it doesn't exist); the caller
// should carry on with only the built-in themes.
func NewWatcher(dir string, registry *Registry) *Watcher {
	if dir == "" {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		themeLog.Warn("theme_watcher_create_failed", slog.String("error", err.Error()))
		return nil
	}
	if err := fw.Add(dir); err != nil {
		themeLog.Warn("theme_watcher_add_failed", slog.String("dir", dir), slog.String("error", err.Error()))
		_ = fw.Close()
		return nil
	}

	w := &Watcher{dir: dir, registry: registry, watcher: fw, closeCh: make(chan struct{})}
	w.loadExisting()
	go w.loop()
	return w
}

func (w *Watcher) loadExisting() {
	matches, err := filepath.Glob(filepath.Join(w.dir, "*.json"))
	if err != nil {
		return
	}
	for _, path := range matches {
		w.load(path)
	}
}

func (w *Watcher) load(path string) {
	t, err := DecodeFile(path)
	if err != nil {
		themeLog.Warn("theme_file_invalid", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	w.registry.Add(t)
	themeLog.Info("theme_loaded", slog.String("path", path), slog.String("name", t.Name))
}

// loop debounces rapid successive fsnotify events for the same file the way
// the teacher's event_watcher.go does, then reloads each changed file.
func (w *Watcher) loop() {
	var debounce *time.Timer
	pending := map[string]bool{}
	var mu sync.Mutex

	flush := func() {
		mu.Lock()
		files := make([]string, 0, len(pending))
		for f := range pending {
			files = append(files, f)
		}
		pending = map[string]bool{}
		mu.Unlock()
		for _, f := range files {
			w.load(f)
		}
	}

	for {
		select {
		case <-w.closeCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".json" {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			mu.Lock()
			pending[ev.Name] = true
			mu.Unlock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, flush)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			themeLog.Warn("theme_watcher_error", slog.String("error", err.Error()))
		}
	}
}

// Close stops the watcher goroutine. Safe to call multiple times.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closeCh)
		_ = w.watcher.Close()
	})
}
