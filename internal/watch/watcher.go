// Package watch re-runs work when changelog files change on disk.
//
// The parent directory of every file is watched rather than the file itself,
// so editors that save by writing a temporary file and renaming it over the
// original keep being observed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	xlog "github.com/ariel-frischer/changelint/internal/log"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports batches of changed files.
type Watcher struct {
	files    map[string]string // absolute path -> path as given
	debounce time.Duration
	watcher  *fsnotify.Watcher
	once     sync.Once
}

// New starts watching the given files. Events that arrive before Run is
// called are kept and delivered by Run.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]string, len(paths)),
		debounce: debounce,
		watcher:  fsw,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run calls onChange with the changed files, as originally given and
// sorted, once no further change has arrived for the debounce interval.
// It blocks until ctx is done or the watcher fails, and closes the watcher
// before returning. Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.Close()
	logger := xlog.WithComponent("watch")

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			given, watched := w.files[filepath.Clean(event.Name)]
			if !watched || !isContentChange(event) {
				continue
			}
			logger.Debug().Str("file", given).Str("op", event.Op.String()).Msg("change detected")
			pending[given] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

func isContentChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
