package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/cydconf/internal/util"
)

// FileEvent is a change to one of the watched files
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher reports changes to a fixed set of files. It watches the
// parent directories so editors that save by rename are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	targets map[string]bool
	events  chan FileEvent
	done    chan struct{}
}

func NewFileWatcher(files []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		targets: make(map[string]bool),
		events:  make(chan FileEvent, 16),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	go fw.processEvents()
	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.done)
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.targets[filepath.Clean(event.Name)] || event.Op == fsnotify.Chmod {
				continue
			}
			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
				// A check is already pending; it will see this change too
				util.LogDebugf("Dropping coalesced event for %s", event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File watch error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
