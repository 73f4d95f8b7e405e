// Package watch notices variant folders being added to or removed from the
// SCA library so a long-running session can rebuild its catalog.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/vcustomizer/internal/sca"
)

// DefaultDebounce groups bursts of filesystem events into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors the library root and its class folders. Only structural
// changes (create, remove, rename) trigger a reload; file edits do not
// change the catalog.
type Watcher struct {
	Root     string
	Debounce time.Duration
	Reloads  <-chan struct{} // Read-only external channel

	reloads chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for the library at root.
func New(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan struct{}, 1)
	return &Watcher{
		Root:     root,
		Debounce: DefaultDebounce,
		Reloads:  ch,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start registers the root and every class folder and begins watching.
// On error the watcher is released; Stop remains safe to call.
func (w *Watcher) Start() error {
	dirs := []string{w.Root}
	for _, c := range sca.Categories() {
		dirs = append(dirs, filepath.Join(w.Root, c.Dir()))
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.watcher.Close()
			close(w.done)
			return err
		}
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel. It must be called at
// most once, after Start.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	var last time.Time
	pending := false
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = true
				last = time.Now()
			}

		case <-ticker.C:
			if pending && time.Since(last) >= w.Debounce {
				pending = false
				w.signal()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// signal coalesces reloads: if one is already queued, another is redundant.
func (w *Watcher) signal() {
	select {
	case w.reloads <- struct{}{}:
	default:
	}
}
