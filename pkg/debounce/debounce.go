package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid repeated triggers into one invocation of fn after
// a quiet period of delay. A Trigger while a run is pending cancels and
// reschedules it.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn to run after the quiet period, resetting any pending
// run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Stop cancels a pending run. It reports whether a run was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Flush runs fn immediately if a run is pending, instead of waiting out the
// quiet period.
func (d *Debouncer) Flush() {
	if d.Stop() {
		d.fn()
	}
}
