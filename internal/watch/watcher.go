// Package watch keeps a project's rule files current by re-running the
// load operation whenever the global rules directory changes.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"rulesync/internal/log"

	"github.com/fsnotify/fsnotify"
)

// FileModification represents a file event detected by the watcher
type FileModification struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors directories for file changes using fsnotify
type Watcher struct {
	directories []string
	fileModChan chan FileModification
	stopChan    chan struct{}
	fsWatcher   *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a new directory watcher
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		directories: []string{},
		fileModChan: make(chan FileModification, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory adds a directory to watch
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existingDir := range w.directories {
		if existingDir == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// Directories returns the list of watched directories
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, len(w.directories))
	copy(dirs, w.directories)
	return dirs
}

// FileChannel returns the channel that delivers file modification events
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins the file watching process
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	go func() {
		log.Debug("Watcher event loop started")

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				mod := FileModification{
					Path:      event.Name,
					Timestamp: time.Now(),
					Op:        event.Op,
				}
				select {
				case w.fileModChan <- mod:
				default:
					// Drop when the consumer is behind; the next resync
					// picks up the full directory state anyway.
					log.Debug("Dropping file event for %s", event.Name)
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Error("Watcher error: %v", err)

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the watching process
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
}

// Close stops the watcher and releases its resources
func (w *Watcher) Close() error {
	w.Stop()
	return w.fsWatcher.Close()
}
