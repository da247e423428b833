package hal

import "time"

// SystemClock implements Clock on the host monotonic clock. The origin is
// the moment the clock is created.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock creates a SystemClock starting at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Millis implements Clock.
func (c *SystemClock) Millis() uint32 {
	return uint32(time.Since(c.origin) / time.Millisecond)
}

// Micros implements Clock.
func (c *SystemClock) Micros() uint32 {
	return uint32(time.Since(c.origin) / time.Microsecond)
}

