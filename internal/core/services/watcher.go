package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// DefaultWatchDebounce is how long the watcher waits after the last
// filesystem event before triggering a rebuild. Copying a file into the
// corpus produces a burst of writes; one rebuild covers them all.
const DefaultWatchDebounce = 2 * time.Second

// WatcherConfig holds the dependencies and tuning for the corpus watcher.
type WatcherConfig struct {
	// Dir is the corpus root to watch, including subdirectories.
	Dir string

	// Retrieval is rebuilt when the corpus changes.
	Retrieval driving.RetrievalService

	// Debounce overrides the default quiet period.
	Debounce time.Duration

	// Logger records watch events and rebuild outcomes.
	Logger *zap.Logger
}

// Watcher rebuilds the index when files under the corpus root change.
// Rebuilds are serialised by the retrieval service; the watcher only
// collapses event bursts into single triggers.
type Watcher struct {
	dir       string
	retrieval driving.RetrievalService
	debounce  time.Duration
	log       *zap.Logger
}

// NewWatcher creates a corpus watcher.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch dir: %w", domain.ErrInvalidInput)
	}
	if cfg.Retrieval == nil {
		return nil, fmt.Errorf("retrieval service: %w", domain.ErrInvalidInput)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultWatchDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Watcher{
		dir:       cfg.Dir,
		retrieval: cfg.Retrieval,
		debounce:  cfg.Debounce,
		log:       cfg.Logger,
	}, nil
}

// Run watches the corpus until the context is cancelled. It blocks;
// callers run it in a goroutine alongside whatever serves requests.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.dir); err != nil {
		return err
	}

	w.log.Info("watching corpus", zap.String("dir", w.dir))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if err := w.addRecursive(watcher, event.Name); err != nil {
					w.log.Debug("could not watch new path", zap.String("path", event.Name), zap.Error(err))
				}
			}
			w.log.Debug("corpus changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.log.Info("corpus changed, rebuilding index")
			if err := w.retrieval.Rebuild(ctx); err != nil {
				w.log.Error("auto rebuild failed", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// addRecursive registers path and every directory below it. Non-directory
// paths are ignored; fsnotify already reports file events through the
// parent directory's watch.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
