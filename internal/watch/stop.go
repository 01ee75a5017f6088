// Package watch cancels in-flight research when a stop file appears. A
// second terminal can end a long session with `touch .dowser/stop`; the
// engine notices at its next checkpoint, never mid-call.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// StopFileName is the file whose creation requests cancellation.
const StopFileName = "stop"

// StopWatcher watches a signal directory and cancels a context when the
// stop file appears.
type StopWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Start begins watching dir, creating it if needed. A stop file already
// present when watching begins also triggers cancellation.
func Start(dir string, cancel context.CancelFunc) (*StopWatcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create signal directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &StopWatcher{dir: dir, watcher: watcher, done: make(chan struct{})}

	stopPath := filepath.Join(dir, StopFileName)
	if _, err := os.Stat(stopPath); err == nil {
		cancel()
	}

	go w.run(stopPath, cancel)
	return w, nil
}

func (w *StopWatcher) run(stopPath string, cancel context.CancelFunc) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name == stopPath && event.Op.Has(fsnotify.Create|fsnotify.Write) {
				cancel()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops watching and removes a leftover stop file so the next session
// starts clean.
func (w *StopWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	os.Remove(filepath.Join(w.dir, StopFileName))
	return err
}
