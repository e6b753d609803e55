// Package watch adds documents dropped into a directory to the library.
//
// A file is ingested once no create or write event has arrived for it for
// the debounce period, so files still being copied are not read half
// written. Ingestion is paced by a token bucket at one file per debounce
// period.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/juju/clock"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docsift/internal/adapters/driving/localfile"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/core/services"
	"github.com/custodia-labs/docsift/internal/logger"
)

// minTick bounds how often pending files are checked.
const minTick = 20 * time.Millisecond

// Watcher ingests new files from one directory.
type Watcher struct {
	dir      string
	upload   driving.UploadService
	debounce time.Duration
	limiter  *rate.Limiter
	clock    clock.Clock
	onResult func(domain.UploadProgress)

	// Only touched by the Run goroutine.
	pending map[string]time.Time
	added   map[string]time.Time
}

// New creates a watcher for dir. A zero debounce ingests on the next tick
// without pacing.
func New(dir string, upload driving.UploadService, debounce time.Duration) *Watcher {
	limit := rate.Inf
	if debounce > 0 {
		limit = rate.Every(debounce)
	}
	return &Watcher{
		dir:      dir,
		upload:   upload,
		debounce: debounce,
		limiter:  rate.NewLimiter(limit, 1),
		clock:    clock.WallClock,
		onResult: func(domain.UploadProgress) {},
		pending:  make(map[string]time.Time),
		added:    make(map[string]time.Time),
	}
}

// WithClock replaces the wall clock.
func (w *Watcher) WithClock(clk clock.Clock) *Watcher {
	w.clock = clk
	return w
}

// OnResult sets a callback receiving the final status of each ingested file.
func (w *Watcher) OnResult(fn func(domain.UploadProgress)) *Watcher {
	if fn != nil {
		w.onResult = fn
	}
	return w
}

// Pending returns the number of files waiting to settle.
func (w *Watcher) Pending() int {
	return len(w.pending)
}

// Run watches until ctx is cancelled. Files already in the directory are
// left alone.
func (w *Watcher) Run(ctx context.Context) error {
	if w.upload == nil {
		return ErrNoUploadService
	}
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Debug("Watching %s (debounce %s)", w.dir, w.debounce)

	tick := max(w.debounce/2, minTick)
	timer := w.clock.NewTimer(tick)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.track(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.dir, err)

		case <-timer.Chan():
			w.flush(ctx)
			timer.Reset(tick)
		}
	}
}

// track records a create or write of a supported file.
func (w *Watcher) track(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if !Watchable(event.Name) {
		return false
	}
	w.pending[event.Name] = w.clock.Now()
	return true
}

// flush ingests settled files in name order while the limiter allows.
// Files that are held back stay pending for the next tick.
func (w *Watcher) flush(ctx context.Context) int {
	now := w.clock.Now()

	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	ingested := 0
	for _, path := range ready {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			// Removed or renamed before it settled.
			delete(w.pending, path)
			continue
		}
		if mod, ok := w.added[path]; ok && mod.Equal(info.ModTime()) {
			delete(w.pending, path)
			continue
		}
		if !w.limiter.AllowN(now, 1) {
			break
		}
		delete(w.pending, path)

		statuses, err := w.upload.Process(ctx, []driving.UploadFile{localfile.FromPath(path)}, nil)
		if err != nil {
			logger.Debug("watch: %v", err)
		}
		for i := range statuses {
			if statuses[i].Status == domain.UploadStatusCompleted {
				w.added[path] = info.ModTime()
			}
			w.onResult(statuses[i])
		}
		ingested++
	}
	return ingested
}

// Watchable reports whether path names a file the watcher would ingest.
// Hidden files and office lock files are skipped.
func Watchable(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return services.MIMETypeForName(name) != ""
}
