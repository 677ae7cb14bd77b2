package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultReloadDelay is how long the Watcher waits after the last change
// before reloading. Many editors write a file more than once per save.
const DefaultReloadDelay = 100 * time.Millisecond

// ReloadFunc receives each successfully reloaded configuration.
type ReloadFunc func(cfg *Config)

// Watcher reloads the configuration file when it changes on disk.
//
// The parent directory is watched, which also catches saves that rename a
// temporary file over the original.
type Watcher struct {
	mu sync.Mutex

	loader   *Loader
	path     string
	onReload ReloadFunc
	log      *zap.SugaredLogger
	delay    time.Duration

	fsw     *fsnotify.Watcher
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadDelay sets the debounce delay.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// WithWatcherLogger sets the logger. A nil logger is ignored.
func WithWatcherLogger(logger *zap.SugaredLogger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.log = logger
		}
	}
}

// NewWatcher starts watching the loader's file. onReload is called from the
// watcher's goroutine.
func NewWatcher(loader *Loader, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	path, err := filepath.Abs(loader.Path())
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader:   loader,
		path:     path,
		onReload: onReload,
		log:      zap.NewNop().Sugar(),
		delay:    DefaultReloadDelay,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.log.Debugw("Watching config file for changes", "path", path)

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Close stops watching and waits for a reload already in progress to
// finish. It is safe to call more than once, but not from a ReloadFunc.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	w.log.Debug("Stopped watching config file")
	return w.fsw.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.log.Debugw("Config file modified", "event", ev)
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Config watcher error", "error", err)
		}
	}
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// fire runs a debounced reload. The reload joins the WaitGroup under the
// lock so that Close, once it has marked the watcher closed, waits for it.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	w.reload()
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		w.log.Warnw("Failed to reload config file", "error", err)
		return
	}

	w.log.Info("Reloaded config successfully")
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
