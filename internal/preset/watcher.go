package preset

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog when the presets file changes on disk.
// It watches the parent directory because editors replace files rather
// than writing in place.
type Watcher struct {
	catalog *Catalog

	mu        sync.Mutex
	callbacks []func(error)
	lastMod   time.Time

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewWatcher creates a watcher for the catalog's presets file.
func NewWatcher(catalog *Catalog) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(catalog.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	pw := &Watcher{
		catalog: catalog,
		watcher: w,
		stopCh:  make(chan struct{}),
	}
	if info, err := os.Stat(catalog.Path()); err == nil {
		pw.lastMod = info.ModTime()
	}
	return pw, nil
}

// OnReload registers a callback fired after each reload attempt. The
// error is nil when the file parsed cleanly.
func (w *Watcher) OnReload(cb func(error)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	// Also poll modtimes in case fsnotify misses events
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	target := filepath.Clean(w.catalog.Path())

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			w.modified(target) // refresh modtime so the ticker stays quiet
			w.reload()

		case <-ticker.C:
			if w.modified(target) {
				w.reload()
			}

		case <-w.watcher.Errors:
			// Continue on errors
		}
	}
}

func (w *Watcher) modified(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if info.ModTime().Equal(w.lastMod) {
		return false
	}
	w.lastMod = info.ModTime()
	return true
}

func (w *Watcher) reload() {
	err := w.catalog.Reload()

	w.mu.Lock()
	callbacks := make([]func(error), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(err)
	}
}
