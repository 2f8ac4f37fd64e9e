package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what a changed file holds.
type ChangeKind int

const (
	SpecChange ChangeKind = iota + 1
	LevelChange
)

func (k ChangeKind) String() string {
	switch k {
	case SpecChange:
		return "spec"
	case LevelChange:
		return "level"
	}
	return "unknown"
}

// Change is one debounced file event.
type Change struct {
	Path string
	Kind ChangeKind
	// Removed is set when the file is gone; readers fall back to the
	// embedded copy.
	Removed bool
}

// Name is the file's base name without its extension.
func (c Change) Name() string {
	base := filepath.Base(c.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ClassifyChange returns the kind of path, or false for files the game
// does not read.
func ClassifyChange(path string) (ChangeKind, bool) {
	switch {
	case IsSpecFile(path):
		return SpecChange, true
	case IsLevelFile(path):
		return LevelChange, true
	}
	return 0, false
}

// Watcher reports changed prefab and level files, debounced per file.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
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

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

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
			kind, ok := ClassifyChange(event.Name)
			if !ok {
				continue
			}
			removed := event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind, Removed: removed}:
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

func IsSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsLevelFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".txt"
}
