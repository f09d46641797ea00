// Package watch reports changes inside week folders.
package watch

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/weektrack/internal/contract"
)

// Watcher monitors week folders and emits the folder whose content changed.
// Bursts of events for one folder are debounced into a single notification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	owners    map[string]string // watched directory -> week folder
	ignore    string            // base name never reported, e.g. the chart file
	debounce  time.Duration
	events    chan string
	stop      chan struct{}
	mu        sync.Mutex
	timers    map[string]*time.Timer
	stopped   bool
}

// NewWatcher watches every week folder and its visible subdirectories.
func NewWatcher(weekDirs []string, ignore string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		owners:    make(map[string]string),
		ignore:    ignore,
		debounce:  debounce,
		events:    make(chan string, len(weekDirs)+1),
		stop:      make(chan struct{}),
		timers:    make(map[string]*time.Timer),
	}
	for _, dir := range weekDirs {
		if err := w.addTree(dir, dir); err != nil {
			_ = fsWatcher.Close()
			return nil, err
		}
	}

	go w.run()

	return w, nil
}

// addTree watches root and every visible directory below it on behalf of week.
func (w *Watcher) addTree(root, week string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && contract.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return err
		}
		w.mu.Lock()
		w.owners[path] = week
		w.mu.Unlock()
		return nil
	})
}

// Events returns the channel that receives changed week folders.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Watched returns the number of watched directories.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.owners)
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	for _, timer := range w.timers {
		timer.Stop()
	}
	close(w.stop)
	_ = w.fsWatcher.Close()
}

// relevant filters out events that never change a week's progress.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	return name != w.ignore && !contract.IsHidden(name)
}

// run processes file system events.
func (w *Watcher) run() {
	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			w.mu.Lock()
			week, known := w.owners[filepath.Dir(event.Name)]
			w.mu.Unlock()
			if !known {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New subdirectories must be watched too; files are skipped by WalkDir
				_ = w.addTree(event.Name, week)
			}
			w.schedule(week)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			contract.LogWarn("watch error", err)
		}
	}
}

// schedule (re)starts the debounce timer of a week folder.
func (w *Watcher) schedule(week string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	if timer, ok := w.timers[week]; ok {
		timer.Stop()
	}
	w.timers[week] = time.AfterFunc(w.debounce, func() {
		select {
		case w.events <- week:
		case <-w.stop:
		}
	})
}
