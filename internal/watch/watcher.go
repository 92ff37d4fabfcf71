// Package watch reports changes to individual files, such as a scene being
// edited while `textframe render --watch` is running.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zscript/textframe/internal/logging"
)

// FileWatcher calls onChanged when a watched file is written, created or
// replaced. A burst of events, such as a truncate followed by a write, is
// reported once, one debounce interval after its first event.
type FileWatcher struct {
	mu sync.Mutex

	watcher   *fsnotify.Watcher
	files     map[string]bool // cleaned absolute path -> watching
	dirs      map[string]bool // directories added to watcher
	onChanged func(path string)
	closeOnce sync.Once
	debounce  time.Duration
	pending   map[string]*time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(onChanged func(path string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:   watcher,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
		onChanged: onChanged,
		debounce:  200 * time.Millisecond,
		pending:   make(map[string]*time.Timer),
	}, nil
}

func normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Watch starts watching a file.
func (fw *FileWatcher) Watch(path string) error {
	path, err := normalize(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.files[path] {
		return nil
	}

	// Watch the directory, not the file. Editors save by writing a temp file
	// and renaming it into place; fsnotify watches inodes, so a watch
	// on the file itself is lost on the first save.
	dir := filepath.Dir(path)
	if !fw.dirs[dir] {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
		fw.dirs[dir] = true
	}
	fw.files[path] = true
	return nil
}

// Run processes file system events until the context is canceled or the watcher closes.
func (fw *FileWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			fw.schedule(filepath.Clean(event.Name))

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watch: %v", err)
		}
	}
}

// schedule arranges for onChanged to run one debounce interval from now.
// Events while a call is pending are absorbed.
func (fw *FileWatcher) schedule(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[path] {
		return
	}
	if _, ok := fw.pending[path]; ok {
		return
	}
	fw.pending[path] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		delete(fw.pending, path)
		fw.mu.Unlock()

		if fw.onChanged != nil {
			logging.Debug("watch: %s changed", path)
			fw.onChanged(path)
		}
	})
}

// Close stops the watcher and releases resources
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		fw.mu.Lock()
		for path, timer := range fw.pending {
			timer.Stop()
			delete(fw.pending, path)
		}
		fw.mu.Unlock()
		err = fw.watcher.Close()
	})
	return err
}
