package adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	m "github.com/mouse-blink/casegen/internal/model"
)

// DirWatcher reports batches of changed files in a single directory.
type DirWatcher interface {
	// Watch starts watching dir for changes to files ending in ext. Changes
	// are coalesced until debounce passes without a new event. The returned
	// channel is closed once ctx is done and the watcher has been released.
	Watch(ctx context.Context, dir m.Path, ext string, debounce time.Duration) (<-chan []m.Path, error)
}

// FSNotifyDirWatcher is a DirWatcher backed by fsnotify.
type FSNotifyDirWatcher struct {
	log *zap.Logger
}

// NewFSNotifyDirWatcher constructs an FSNotifyDirWatcher. A nil logger is
// replaced with a no-op one.
func NewFSNotifyDirWatcher(log *zap.Logger) *FSNotifyDirWatcher {
	if log == nil {
		log = zap.NewNop()
	}

	return &FSNotifyDirWatcher{log: log}
}

// Watch implements DirWatcher. Sub-directories are not watched.
func (w *FSNotifyDirWatcher) Watch(ctx context.Context, dir m.Path, ext string, debounce time.Duration) (<-chan []m.Path, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := fw.Add(string(dir)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	out := make(chan []m.Path)

	go w.loop(ctx, fw, ext, debounce, out)

	return out, nil
}

func (w *FSNotifyDirWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, ext string, debounce time.Duration, out chan<- []m.Path) {
	defer close(out)
	defer func() {
		if err := fw.Close(); err != nil {
			w.log.Warn("closing watcher", zap.Error(err))
		}
	}()

	pending := make(map[m.Path]struct{})

	var (
		timer *time.Timer
		fire  <-chan time.Time
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

		case event, ok := <-fw.Events:
			if !ok {
				return
			}

			if !relevant(event, ext) {
				continue
			}

			w.log.Debug("source changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			pending[m.Path(event.Name)] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case <-fire:
			fire = nil

			batch := make([]m.Path, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}

			sort.Slice(batch, func(i, j int) bool { return batch[i] < batch[j] })
			pending = make(map[m.Path]struct{})

			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}

			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func relevant(event fsnotify.Event, ext string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return filepath.Ext(event.Name) == ext
}
