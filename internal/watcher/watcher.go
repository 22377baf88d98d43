// Package watcher reports changed files in a directory.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events for one file
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory and calls onChange once per settled file change
type Watcher struct {
	dir      string
	onChange func(path string)
	match    func(path string) bool
	debounce time.Duration
}

// New creates a watcher for dir
func New(dir string, onChange func(path string)) *Watcher {
	return &Watcher{
		dir:      dir,
		onChange: onChange,
		match:    func(string) bool { return true },
		debounce: DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithFilter restricts callbacks to paths for which match returns true
func (w *Watcher) WithFilter(match func(path string) bool) *Watcher {
	w.match = match
	return w
}

// Watch blocks until ctx is done or the watcher fails to start. Writes and
// creates are reported; editors that replace files show up as creates.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}
	log.Printf("Watching %s for changes", w.dir)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			path := filepath.Clean(event.Name)
			if !w.match(path) {
				continue
			}

			mu.Lock()
			if t, exists := timers[path]; exists {
				t.Stop()
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				log.Printf("File changed: %s", path)
				w.onChange(path)
			})
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
