// Package watch triggers a callback when watched files change.
//
// Files are watched through their parent directories so that editors which
// save by writing a temporary file and renaming it over the original are
// still seen. Bursts of events are debounced into a single callback, and
// callbacks run on the event loop, one at a time.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for events to settle
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a set of files for writes
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   zerolog.Logger

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a Watcher. A non-positive debounce selects DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logging.GetLogger("watch"),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// Add starts watching file. Adding a file twice is a no-op.
func (w *Watcher) Add(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to add watch")
			return err
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	w.logger.Debug().Str("file", abs).Msg("Watching file")
	return nil
}

// Files returns the watched files, sorted
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks until ctx is done or the watcher is closed. After each burst of
// changes to watched files, onChange is called with the changed paths.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("Watcher error")

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.logger.Info().Strs("files", changed).Msg("Watched files changed")
			if onChange != nil {
				onChange(changed)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(event.Name)]
}
