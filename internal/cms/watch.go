package cms

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher invalidates a Store's cache when markdown under its root changes.
// Edits arriving within the debounce window collapse into one invalidation.
type Watcher struct {
	store    *Store
	logger   *zap.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// invalidated is signalled after each invalidation; tests read it.
	invalidated chan struct{}

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher watches every directory below the store root.
func NewWatcher(store *Store, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(store.Dir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		store:       store,
		logger:      logger,
		debounce:    defaultDebounce,
		watcher:     fw,
		invalidated: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}, nil
}

// Start runs the event loop until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop closes the underlying watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		_ = w.watcher.Close()
		<-w.done
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 && isDir(ev.Name) {
				// new directories are not watched recursively by fsnotify
				if err := w.watcher.Add(ev.Name); err != nil {
					w.logger.Warn("content watch add", zap.String("path", ev.Name), zap.Error(err))
				}
				continue
			}
			if !strings.HasSuffix(ev.Name, ".md") || ev.Op == fsnotify.Chmod {
				continue
			}
			timer = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watch", zap.Error(err))
		case <-timer:
			timer = nil
			w.store.Invalidate()
			w.logger.Debug("content cache invalidated", zap.String("dir", w.store.Dir()))
			select {
			case w.invalidated <- struct{}{}:
			default:
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
