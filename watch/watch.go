// Package watch reports changed files in a set of directories, debounced per
// file and filtered by name.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce drops repeated events for the same file inside this window.
const Debounce = 100 * time.Millisecond

// Filter decides whether a changed path is reported.
type Filter func(path string) bool

// Extensions matches files by case-insensitive extension, dot included.
func Extensions(exts ...string) Filter {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = struct{}{}
	}
	return func(path string) bool {
		_, ok := set[strings.ToLower(filepath.Ext(path))]
		return ok
	}
}

// File matches one file by path.
func File(path string) Filter {
	want := filepath.Clean(path)
	return func(p string) bool {
		return filepath.Clean(p) == want
	}
}

type Watcher struct {
	watcher *fsnotify.Watcher
	filter  Filter
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs. A nil filter reports every file.
func NewWatcher(filter Filter, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	if filter == nil {
		filter = func(string) bool { return true }
	}

	watcher := &Watcher{
		watcher: w,
		filter:  filter,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// ForFile watches the directory holding path and reports only path.
func ForFile(path string) (*Watcher, error) {
	return NewWatcher(File(path), filepath.Dir(path))
}

// Close stops the watcher; Events and Errors are closed once it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.filter(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
