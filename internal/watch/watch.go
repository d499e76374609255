// Package watch reports changes to the document being previewed so it can be
// reloaded. Bursts of filesystem events collapse into one notification.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kk-code-lab/pdfview/internal/logging"
	"github.com/kk-code-lab/pdfview/internal/throttle"
)

const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watcher follows a single local file. The parent directory is watched, so
// editors that replace the file on save are seen too.
type Watcher struct {
	fsw     *fsnotify.Watcher
	limiter *throttle.Limiter
	logger  *slog.Logger

	mu     sync.Mutex
	target string
	dir    string
}

// New starts watching path. onChange runs on a timer goroutine once changes
// have been quiet for cooldown.
func New(path string, cooldown time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		limiter: throttle.New(onChange, cooldown, false),
		logger:  logger,
	}
	if err := w.Retarget(path); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Retarget switches the watched file. Pending notifications for the old file
// are dropped.
func (w *Watcher) Retarget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.limiter.Stop()
	if dir != w.dir {
		if w.dir != "" {
			_ = w.fsw.Remove(w.dir)
		}
		if err := w.fsw.Add(dir); err != nil {
			w.dir = ""
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dir = dir
	}
	w.target = abs
	w.logger.Debug("watching source", "path", abs)
	return nil
}

// Target returns the absolute path being watched.
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Run consumes filesystem events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&reloadOps == 0 {
				continue
			}
			if filepath.Clean(ev.Name) != w.Target() {
				continue
			}
			w.logger.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
			w.limiter.Call()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

// Close stops watching and drops any pending notification.
func (w *Watcher) Close() error {
	w.limiter.Stop()
	return w.fsw.Close()
}
