// Package fake provides simulated hal primitives with fully controlled time.
package fake

import (
	"sync"

	"github.com/robotalks/mcu.go/pkg/hal"
)

// Clock is a manually advanced hal.Clock. It counts in microseconds and
// derives milliseconds from the same counter so both stay consistent.
type Clock struct {
	lock   sync.Mutex
	micros uint64
}

// NewClock creates a Clock starting at the given millisecond.
func NewClock(startMillis uint32) *Clock {
	return &Clock{micros: uint64(startMillis) * 1000}
}

// Millis implements hal.Clock.
func (c *Clock) Millis() uint32 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return uint32(c.micros / 1000)
}

// Micros implements hal.Clock.
func (c *Clock) Micros() uint32 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return uint32(c.micros)
}

// Advance moves time forward by the given microseconds.
func (c *Clock) Advance(us uint32) {
	c.lock.Lock()
	c.micros += uint64(us)
	c.lock.Unlock()
}

// AdvanceMillis moves time forward by the given milliseconds.
func (c *Clock) AdvanceMillis(ms uint32) {
	c.Advance(ms * 1000)
}

// Pin is a simulated digital line usable as both input and output.
// Writes are recorded so tests can assert waveforms.
type Pin struct {
	lock   sync.Mutex
	level  hal.Level
	writes []hal.Level
}

// Write implements hal.DigitalOutput.
func (p *Pin) Write(l hal.Level) {
	p.lock.Lock()
	p.level = l
	p.writes = append(p.writes, l)
	p.lock.Unlock()
}

// Read implements hal.DigitalInput.
func (p *Pin) Read() hal.Level {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.level
}

// Set changes the level without recording a write, modelling an external
// source driving the line.
func (p *Pin) Set(l hal.Level) {
	p.lock.Lock()
	p.level = l
	p.lock.Unlock()
}

// Writes returns the recorded writes and clears the record.
func (p *Pin) Writes() []hal.Level {
	p.lock.Lock()
	defer p.lock.Unlock()
	w := p.writes
	p.writes = nil
	return w
}

// PulseFunc is the func form of hal.PulseReader.
type PulseFunc func(level hal.Level, timeoutUs uint32) uint32

// PulseIn implements hal.PulseReader.
func (f PulseFunc) PulseIn(level hal.Level, timeoutUs uint32) uint32 {
	return f(level, timeoutUs)
}

// Echo is a scripted hal.PulseReader. Each PulseIn consumes the next
// scripted width; an empty script behaves as a timeout. Durations above
// the timeout are reported as a timeout. When Clock is set, PulseIn
// advances it by the time the call would have blocked.
type Echo struct {
	Clock *Clock

	lock   sync.Mutex
	widths []uint32
	calls  int
}

// Push appends widths (µs) to the script. 0 scripts a timeout.
func (e *Echo) Push(widths ...uint32) *Echo {
	e.lock.Lock()
	e.widths = append(e.widths, widths...)
	e.lock.Unlock()
	return e
}

// Calls returns the number of PulseIn invocations.
func (e *Echo) Calls() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.calls
}

// PulseIn implements hal.PulseReader.
func (e *Echo) PulseIn(level hal.Level, timeoutUs uint32) uint32 {
	e.lock.Lock()
	e.calls++
	var width uint32
	if len(e.widths) > 0 {
		width, e.widths = e.widths[0], e.widths[1:]
	}
	e.lock.Unlock()
	if width == 0 || width > timeoutUs {
		if e.Clock != nil {
			e.Clock.Advance(timeoutUs)
		}
		return 0
	}
	if e.Clock != nil {
		e.Clock.Advance(width)
	}
	return width
}

// Analog is a scripted hal.AnalogInput. It returns the scripted samples in
// order and then keeps returning the last one.
type Analog struct {
	lock    sync.Mutex
	samples []int
	last    int
	reads   int
}

// Push appends samples to the script.
func (a *Analog) Push(samples ...int) *Analog {
	a.lock.Lock()
	a.samples = append(a.samples, samples...)
	a.lock.Unlock()
	return a
}

// ReadAnalog implements hal.AnalogInput.
func (a *Analog) ReadAnalog() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.reads++
	if len(a.samples) > 0 {
		a.last, a.samples = a.samples[0], a.samples[1:]
	}
	return a.last
}

// Reads returns the number of ReadAnalog calls.
func (a *Analog) Reads() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.reads
}

// Motors records the last differential drive command.
type Motors struct {
	lock        sync.Mutex
	left, right int
	commands    int
}

// SetSpeed implements hal.Motors.
func (m *Motors) SetSpeed(left, right int) error {
	m.lock.Lock()
	m.left, m.right = left, right
	m.commands++
	m.lock.Unlock()
	return nil
}

// Speed returns the last command.
func (m *Motors) Speed() (left, right int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.left, m.right
}

// Commands returns how many commands were received.
func (m *Motors) Commands() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.commands
}
