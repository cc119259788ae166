package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/tilegl/engine/core"
)

// FnOnReload is called with every configuration that loaded and validated
// after a change on disk.
type FnOnReload func(cfg *Config)

// Watcher reloads a configuration file when it changes. Only the log level
// is re-applied by the watcher itself; everything else is up to the
// callback.
type Watcher struct {
	path     string
	onReload FnOnReload

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup

	mutex    sync.Mutex
	current  *Config
	isClosed bool
}

// NewWatcher watches the file at path, starting from cfg.
func NewWatcher(path string, cfg *Config, onReload FnOnReload) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors replace files instead of writing them, so watch the directory.
	if err := fsWatch.Add(filepath.Dir(path)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		onReload: onReload,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		current:  cfg,
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Current returns the last configuration that loaded successfully.
func (w *Watcher) Current() *Config {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.current
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return errors.New("config watcher already closed")
	}
	w.isClosed = true
	w.mutex.Unlock()

	close(w.done)
	w.wg.Wait()
	return nil
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

func (w *Watcher) reload() {
	// A truncated file is usually still being written.
	if fi, err := os.Stat(w.path); err != nil || fi.Size() == 0 {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		// Keep running with the previous configuration.
		core.LogWarn("config reload: %s", err)
		return
	}

	w.mutex.Lock()
	w.current = cfg
	w.mutex.Unlock()

	core.SetLogLevel(cfg.Level())
	core.LogInfo("config reloaded from %s", w.path)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
