package viewer

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// FileWatcher watches one note file and its containing directory,
// debouncing bursts of changes (an editor's save is often several
// writes/renames in quick succession) into a single notification per
// quiet period. Adapted from jinterlante1206-AleutianLocal's
// FileWatcher: same debounce-timer/done-channel shape, narrowed from a
// recursive whole-tree walk to watching just path's parent directory,
// since spec.md §4.J only ever needs to react to one note changing.
type FileWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	handler  func()

	done     chan struct{}
	stopOnce sync.Once
}

// NewFileWatcher creates a FileWatcher for path. handler is called
// (from the watcher's own goroutine, never concurrently with itself)
// after a debounce window with no further changes to path; events for
// other entries of its directory are ignored.
func NewFileWatcher(path string, handler func()) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	return &FileWatcher{
		path:     path,
		debounce: defaultDebounce,
		watcher:  w,
		handler:  handler,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching in a new goroutine; it returns immediately.
func (w *FileWatcher) Start() {
	go w.loop()
}

// Stop closes the underlying watcher and stops the watch goroutine.
// Idempotent.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *FileWatcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Transient fsnotify errors don't stop watching; the next
			// real event still triggers a refresh.

		case <-timerC:
			timer = nil
			timerC = nil
			if w.handler != nil {
				w.handler()
			}
		}
	}
}
