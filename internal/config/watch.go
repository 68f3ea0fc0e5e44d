package config

import (
	"path/filepath"
	"sync"
	"time"

	"reel/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and delivers
// the fresh configuration on Updates. Edits that fail to parse are
// logged and dropped; the running config stays intact.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	updates   chan *Config
	stopChan  chan struct{}

	mutex   sync.Mutex
	running bool
}

// NewWatcher creates a watcher for the given config file. The parent
// directory is watched so editor rename-and-replace saves are caught.
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return &Watcher{
		path:      path,
		fsWatcher: fsWatcher,
		updates:   make(chan *Config, 1),
		stopChan:  make(chan struct{}),
	}, nil
}

// Updates returns the channel on which reloaded configs are delivered.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
}

func (w *Watcher) loop() {
	// Editors fire several events per save; coalesce within a short window.
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(100*time.Millisecond, w.reload)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfigFile(w.path)
	if err != nil {
		log.Warn("ignoring config reload: %v", err)
		return
	}
	select {
	case w.updates <- cfg:
	default:
		// A pending update hasn't been consumed yet; replace it.
		select {
		case <-w.updates:
		default:
		}
		w.updates <- cfg
	}
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
	w.fsWatcher.Close()
}
