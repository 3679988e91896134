// Package watch polls a source file and runs an action after it changes.
//
// Typical usage:
//
//	w := watch.New("content.md", watch.Options{Interval: 300*time.Millisecond, Debounce: 100*time.Millisecond})
//	go w.OnChange(ctx, func() error { return rebuild() })
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Version identifies one state of the watched file. Two different values
// mean the file changed.
type Version struct {
	ModTime int64 // UnixNano
	Size    int64
}

// Options tunes the watcher.
type Options struct {
	// Interval is the polling frequency. Default: 300ms.
	Interval time.Duration
	// Debounce is the quiet period after a change before the action fires.
	// Further changes during the window restart it. 0 fires immediately.
	Debounce time.Duration
	Logger   *slog.Logger
}

func (o *Options) defaults() {
	if o.Interval <= 0 {
		o.Interval = 300 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Stats are point-in-time counters.
type Stats struct {
	Checks          int64         `json:"checks"`
	ChangesDetected int64         `json:"changes_detected"`
	Errors          int64         `json:"errors"`
	Reloads         int64         `json:"reloads"`
	AvgReloadTime   time.Duration `json:"avg_reload_time"`
}

// Watcher polls one file. It is safe for concurrent use.
type Watcher struct {
	path string
	opts Options

	mu      sync.Mutex
	version Version

	checks   atomic.Int64
	changes  atomic.Int64
	errors   atomic.Int64
	reloads  atomic.Int64
	reloadNs atomic.Int64
}

// New creates a Watcher for path. Call OnChange to start polling.
func New(path string, opts Options) *Watcher {
	opts.defaults()
	return &Watcher{path: path, opts: opts}
}

// Stat returns the current Version of path.
func Stat(path string) (Version, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Version{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Version{ModTime: info.ModTime().UnixNano(), Size: info.Size()}, nil
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	s := Stats{
		Checks:          w.checks.Load(),
		ChangesDetected: w.changes.Load(),
		Errors:          w.errors.Load(),
		Reloads:         w.reloads.Load(),
	}
	if s.Reloads > 0 {
		s.AvgReloadTime = time.Duration(w.reloadNs.Load() / s.Reloads)
	}
	return s
}

// Version returns the last version for which the action succeeded.
func (w *Watcher) Version() Version {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.version
}

func (w *Watcher) setVersion(v Version) {
	w.mu.Lock()
	w.version = v
	w.mu.Unlock()
}

// OnChange blocks until ctx is cancelled. When the file's version changes
// and the debounce window passes without further changes, action is called.
// If action fails the version is not advanced, so the next poll retries.
// A file that is briefly missing (editors often replace on save) counts as
// an error and is polled again.
func (w *Watcher) OnChange(ctx context.Context, action func() error) {
	log := w.opts.Logger.With("path", w.path)

	if v, err := Stat(w.path); err != nil {
		log.Warn("watch: initial stat failed", "error", err)
	} else {
		w.setVersion(v)
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time
	var pending *Version

	log.Info("watch: started", "interval", w.opts.Interval, "debounce", w.opts.Debounce)

	for {
		select {
		case <-ctx.Done():
			log.Info("watch: stopped")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-ticker.C:
			w.checks.Add(1)
			cur, err := Stat(w.path)
			if err != nil {
				w.errors.Add(1)
				log.Debug("watch: stat failed", "error", err)
				continue
			}
			if cur == w.Version() || (pending != nil && cur == *pending) {
				continue
			}
			w.changes.Add(1)
			pending = &cur

			if w.opts.Debounce <= 0 {
				w.fire(log, action, cur)
				pending = nil
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.opts.Debounce)
			debounceCh = debounceTimer.C
			log.Debug("watch: change detected, debouncing")

		case <-debounceCh:
			debounceCh = nil
			if pending != nil {
				w.fire(log, action, *pending)
				pending = nil
			}
		}
	}
}

func (w *Watcher) fire(log *slog.Logger, action func() error, v Version) {
	log.Info("watch: change detected, running action")
	start := time.Now()
	if err := action(); err != nil {
		w.errors.Add(1)
		log.Error("watch: action failed", "error", err)
		return
	}
	elapsed := time.Since(start)
	w.reloads.Add(1)
	w.reloadNs.Add(int64(elapsed))
	w.setVersion(v)
	log.Info("watch: action complete", "duration", elapsed)
}
