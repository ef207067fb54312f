// Package watch keeps a catalog loaded from disk and rebuilds it when the file changes.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/simonhull/optable/internal/catalog"
	"github.com/simonhull/optable/internal/logger"
)

// Holder provides thread-safe access to a catalog with hot reload support.
type Holder struct {
	mu       sync.RWMutex
	catalog  *catalog.Catalog
	path     string
	opts     []catalog.LoadOption
	log      logger.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*catalog.Catalog)
	onFail   []func(error)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder resolves path, loads the initial catalog and returns a holder for it
func NewHolder(path string, log logger.Logger, opts ...catalog.LoadOption) (*Holder, error) {
	if log == nil {
		log = logger.NewSilentLogger()
	}

	absPath, err := filepath.Abs(catalog.Resolve(path, opts...))
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	cat, err := catalog.Load(absPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return &Holder{
		catalog: cat,
		path:    absPath,
		opts:    opts,
		log:     log.WithFields(logger.F("path", absPath)),
		stopCh:  make(chan struct{}),
	}, nil
}

// Path returns the absolute path of the watched catalog file
func (h *Holder) Path() string {
	return h.path
}

// Get returns the current catalog
func (h *Holder) Get() *catalog.Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalog
}

// Reload rebuilds the catalog from disk with a fresh loader.
// On failure the previous catalog stays current.
func (h *Holder) Reload() error {
	h.log.Info("reloading catalog")

	cat, err := catalog.Load(h.path, h.opts...)
	if err != nil {
		h.log.Error("catalog reload failed, keeping old catalog", logger.F("error", err.Error()))
		h.mu.RLock()
		listeners := make([]func(error), len(h.onFail))
		copy(listeners, h.onFail)
		h.mu.RUnlock()
		for _, fn := range listeners {
			fn(err)
		}
		return fmt.Errorf("reload catalog: %w", err)
	}

	h.mu.Lock()
	old := h.catalog
	h.catalog = cat
	listeners := make([]func(*catalog.Catalog), len(h.onChange))
	copy(listeners, h.onChange)
	h.mu.Unlock()

	if old.Len() != cat.Len() {
		h.log.Info("item count changed", logger.F("old", old.Len()), logger.F("new", cat.Len()))
	}

	for _, fn := range listeners {
		fn(cat)
	}

	h.log.Info("catalog reloaded", logger.F("items", cat.Len()))
	return nil
}

// OnChange registers a callback run after every successful reload
func (h *Holder) OnChange(fn func(*catalog.Catalog)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// OnFailure registers a callback run with the error of every failed reload
func (h *Holder) OnFailure(fn func(error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFail = append(h.onFail, fn)
}

// Watch starts watching the catalog file. Writes and atomic saves trigger Reload.
func (h *Holder) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory, editors that save atomically replace the file
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop(watcher)

	h.log.Info("watching catalog file for changes")
	return nil
}

// Stop stops watching for file changes. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop(watcher *fsnotify.Watcher) {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			h.log.Debug("catalog file changed", logger.F("event", event.Op.String()))
			// Reload logs its own failure
			_ = h.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.log.Error("file watcher error", logger.F("error", err.Error()))

		case <-h.stopCh:
			return
		}
	}
}
