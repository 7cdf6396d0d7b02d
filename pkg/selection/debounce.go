package selection

import (
	"sync"
	"time"
)

// Debouncer delays work until a quiet period has passed without another
// trigger. Only the last function triggered within the period runs.
type Debouncer struct {
	mu      sync.Mutex
	period  time.Duration
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period.
// A period of zero or less runs triggered work immediately.
func NewDebouncer(period time.Duration) *Debouncer {
	return &Debouncer{period: period}
}

// Trigger schedules fn, replacing any work still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.period <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	d.timer = time.AfterFunc(d.period, fn)
	d.mu.Unlock()
}

// Cancel drops pending work without stopping the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop drops pending work and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Period returns the quiet period.
func (d *Debouncer) Period() time.Duration {
	return d.period
}
