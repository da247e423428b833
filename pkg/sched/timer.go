package sched

import "github.com/robotalks/mcu.go/pkg/hal"

// Timer is a polled interval timer for code that runs outside the
// Scheduler, e.g. inside a single task.
type Timer struct {
	clock    hal.Clock
	interval uint32
	prev     uint32
}

// NewTimer creates a Timer armed from now.
func NewTimer(clock hal.Clock, intervalMs uint32) *Timer {
	return &Timer{clock: clock, interval: intervalMs, prev: clock.Millis()}
}

// SetInterval changes the interval without re-arming.
func (t *Timer) SetInterval(intervalMs uint32) {
	t.interval = intervalMs
}

// Ready returns true once the interval has elapsed and re-arms the timer.
func (t *Timer) Ready() bool {
	now := t.clock.Millis()
	if now-t.prev >= t.interval {
		t.prev = now
		return true
	}
	return false
}

// Reset re-arms the timer from now.
func (t *Timer) Reset() {
	t.prev = t.clock.Millis()
}
