// Package watcher re-runs analysis when watched source files change.
// It uses fsnotify for OS-native notifications, with a debounce so a
// burst of saves triggers a single re-run.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a file change event.
type Event struct {
	Path string
	Op   string // "create", "write", "remove", "rename"
}

// Watcher watches directories recursively for changes to files with
// matching extensions.
type Watcher struct {
	dirs       []string
	extensions []string // e.g., [".ts", ".tsx"]
	debounce   time.Duration
	onChange   func(events []Event)

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending []Event
	timer   *time.Timer

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a new file watcher.
func New(dirs []string, extensions []string, debounce time.Duration, onChange func(events []Event)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dirs:       dirs,
		extensions: extensions,
		debounce:   debounce,
		onChange:   onChange,
		fsw:        fsw,
		stopCh:     make(chan struct{}),
	}, nil
}

// Watch registers the directory trees and blocks dispatching change
// events until Stop is called.
func (w *Watcher) Watch() error {
	for _, dir := range w.dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-w.stopCh:
			return w.fsw.Close()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			// transient notification errors are not fatal to the
			// watch loop
		}
	}
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// addTree registers dir and all its subdirectories. fsnotify watches
// are not recursive, so new subdirectories are added as their create
// events arrive.
func (w *Watcher) addTree(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = w.addTree(ev.Name)
			return
		}
	}
	if !w.matchesExtension(ev.Name) {
		return
	}

	var op string
	switch {
	case ev.Op&fsnotify.Create != 0:
		op = "create"
	case ev.Op&fsnotify.Write != 0:
		op = "write"
	case ev.Op&fsnotify.Remove != 0:
		op = "remove"
	case ev.Op&fsnotify.Rename != 0:
		op = "rename"
	default:
		return // chmod-only events are noise
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, Event{Path: ev.Name, Op: op})
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		pending := w.pending
		w.pending = nil
		w.mu.Unlock()
		if len(pending) > 0 {
			w.onChange(pending)
		}
	})
}

func (w *Watcher) matchesExtension(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
