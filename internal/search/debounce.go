package search

import (
	"sync"
	"time"
)

// Debouncer runs only the most recently scheduled function, after a quiet
// period. Scheduling again before the delay elapses drops the pending call.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the quiet period, replacing any
// pending call. The returned cancel func drops fn if it has not started.
func (d *Debouncer) Schedule(fn func()) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gen == gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.gen == gen && d.timer != nil {
			d.timer.Stop()
			d.timer = nil
			d.gen++
		}
	}
}

// Stop drops any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
