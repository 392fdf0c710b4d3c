// Package watcher re-runs the document transform when a watched composite
// document changes. Rapid successive writes to the same file are debounced
// into a single transform.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is invoked with the path of a changed document after the
// debounce window closes.
type ChangeHandler func(path string)

// FileWatcher watches individual document files with debouncing.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	delay   time.Duration
	handler ChangeHandler

	mutex   sync.Mutex
	pending map[string]*time.Timer
}

// New creates a file watcher that calls handler for each changed path.
func New(delay time.Duration, handler ChangeHandler) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher: w,
		delay:   delay,
		handler: handler,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Add registers a document path for watching.
func (fw *FileWatcher) Add(path string) error {
	return fw.watcher.Add(path)
}

// Run processes events until the context is cancelled or the underlying
// watcher closes.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.schedule(event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// schedule arms (or re-arms) the debounce timer for one path. Each path
// debounces independently so two documents changing together both rebuild.
func (fw *FileWatcher) schedule(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	if timer, ok := fw.pending[path]; ok {
		timer.Reset(fw.delay)
		return
	}

	fw.pending[path] = time.AfterFunc(fw.delay, func() {
		fw.mutex.Lock()
		delete(fw.pending, path)
		fw.mutex.Unlock()

		fw.handler(path)
	})
}
