// Package watch reports changes to a single file using fsnotify.
package watch

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/logger"
)

// Watcher invokes a callback whenever a file is written or recreated.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temp file over the original still
// trigger the callback.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	log      *zap.Logger
}

// New creates a watcher for path. Call Close when done.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	return &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		log:      logger.Named("watch"),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange for every write or create event on the watched file
// until ctx is cancelled or the watcher is closed. It returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.log.Debug("file changed", zap.String("path", w.path), zap.Stringer("op", e.Op))
				onChange(w.path)
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("event queue overflow", zap.Error(err))
				continue
			}
			return err

		case <-ctx.Done():
			return nil
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsnotify.Close()
}
