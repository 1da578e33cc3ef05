package persist

import (
	"context"
	"sync"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
)

// Debouncer coalesces bursts of Trigger calls into a single write that runs
// once no trigger has arrived for the quiet period.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending bool
	stopped bool
	write   func(context.Context) error
	onError func(error)
}

// NewDebouncer creates a Debouncer. A non-positive delay uses the default
// save delay.
func NewDebouncer(delay time.Duration, write func(context.Context) error, onError func(error)) *Debouncer {
	if delay <= 0 {
		delay = constants.SaveDebounce
	}
	return &Debouncer{delay: delay, write: write, onError: onError}
}

// Trigger schedules a write after the quiet period, replacing any write that
// was already scheduled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	if err := d.Flush(context.Background()); err != nil && d.onError != nil {
		d.onError(err)
	}
}

// Flush runs the pending write now, if any.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	d.pending = false
	d.mu.Unlock()

	return d.write(ctx)
}

// Pending reports whether a write is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any scheduled write and ignores further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
