package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ChangeKind int

const (
	ChangePrefab ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "prefab"
}

// Change names an edited prefab or script relative to the watched directory,
// in the form Load and LoadScript accept.
type Change struct {
	Name string
	Kind ChangeKind
}

const defaultDebounce = 100 * time.Millisecond

// Watcher reports edits to on-disk prefabs and scripts. Bursts of events for
// the same file inside the debounce window collapse into one Change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	log      *zap.Logger

	changes chan Change
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dir and its scripts subdirectory when present.
func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{dir}
	if info, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(dir, "scripts"))
	}
	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher:  fw,
		root:     dir,
		debounce: defaultDebounce,
		log:      log,
		changes:  make(chan Change, 16),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes is closed once the watcher stops.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Pending returns the changes queued so far without blocking.
func (w *Watcher) Pending() []Change {
	var out []Change
	for {
		select {
		case c, ok := <-w.changes:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}

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
	defer close(w.done)
	defer close(w.changes)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := w.classify(event)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[change.Name]; seen && now.Sub(t) < w.debounce {
				continue
			}
			last[change.Name] = now
			select {
			case w.changes <- change:
			default:
				w.log.Warn("prefab change dropped, queue full", zap.String("name", change.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("prefab watcher", zap.Error(err))
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return Change{}, false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = filepath.Base(event.Name)
	}
	rel = filepath.ToSlash(rel)
	switch {
	case isSpecFile(rel):
		return Change{Name: rel, Kind: ChangePrefab}, true
	case isScriptFile(rel):
		return Change{Name: strings.TrimPrefix(rel, "scripts/"), Kind: ChangeScript}, true
	}
	return Change{}, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
