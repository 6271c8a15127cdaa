package server

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher calls a trigger once changes under its directories settle.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	trigger  func()
	logger   interfaces.Logger
}

// NewWatcher validates the watched directories. Missing directories are
// skipped at run time.
func NewWatcher(dirs []string, debounce time.Duration, trigger func(), logger interfaces.Logger) (*Watcher, error) {
	if trigger == nil {
		return nil, errors.New("server: watch trigger is required")
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Watcher{dirs: dirs, debounce: debounce, trigger: trigger, logger: logger}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	watched := 0
	for _, root := range w.dirs {
		if _, err := os.Stat(root); err != nil {
			w.logger.Warn("server.watch.skip", "dir", root, "error", err)
			continue
		}
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				w.logger.Warn("server.watch.walk", "path", p, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := fsw.Add(p); err != nil {
					w.logger.Warn("server.watch.add", "path", p, "error", err)
					return nil
				}
				watched++
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	w.logger.Info("server.watch.start", "dirs", watched)

	deb := newDebouncer(w.debounce, w.trigger)
	defer deb.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("server.watch.event", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := fsw.Add(event.Name); err != nil {
					w.logger.Warn("server.watch.add", "path", event.Name, "error", err)
				}
			}
			deb.Trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("server.watch.error", "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// debouncer runs fn once no Trigger happened for the configured delay.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
