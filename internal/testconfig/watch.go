package testconfig

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"muster/pkg/logging"
)

// DebounceInterval is how long a Watcher waits after the last detected change
// before reloading, to collapse the burst of events a single save
// typically produces into one reload.
const DebounceInterval = 250 * time.Millisecond

// Watcher reloads a config file on change and hands the new Config to
// OnChange. A reload that fails validation is logged and discarded - the
// prior good Config keeps serving rather than the run being interrupted by
// a typo in an edited file. Grounded on the teacher's CertWatcher.
type Watcher struct {
	mu sync.Mutex

	path     string
	onChange func(Config)

	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
}

// NewWatcher creates a watcher for path. Callers must call Close when done.
func NewWatcher(path string, onChange func(Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		path:      path,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		stopCh:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var debounce *time.Timer

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceInterval, w.reload)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.Warn("testconfig", "watcher error: %s", err)

		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		logging.Warn("testconfig", "reload of %s rejected: %s", w.path, err)
		return
	}
	w.onChange(cfg)
}

// Close stops watching and releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	close(w.stopCh)
	return w.fsWatcher.Close()
}
