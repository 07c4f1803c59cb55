package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that a watched catalog file was written, created, or
// removed.
type Change struct {
	File    string // absolute path
	Removed bool
}

// Watcher monitors catalog files for edits using fsnotify. It watches the
// parent directories rather than the files so that editors which replace a
// file by rename are still seen.
type Watcher struct {
	Changes <-chan Change // Read-only external channel

	files   map[string]bool
	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given files. Empty paths are ignored.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		files[abs] = true
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Changes: ch,
		files:   files,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. Call Stop afterwards even when Start fails.
func (w *Watcher) Start() error {
	go w.loop()

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// Stop closes the watcher and its channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: editors often write a file several times in a burst.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emit(file)
				}
				return
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next write retriggers.
		}
	}
}

func (w *Watcher) emit(file string) {
	_, err := os.Stat(file)
	w.changes <- Change{File: file, Removed: errors.Is(err, fs.ErrNotExist)}
}
