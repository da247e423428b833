// Package sonar drives an HC-SR04 style ultrasonic range sensor as a
// polled state machine.
//
// The trigger pulse is generated without blocking: StartMeasure arms a
// cycle and repeated Update calls walk through the phases. The echo is
// then sampled with the bounded blocking PulseReader, so the Update call
// that reads the echo may stall for up to Timeout microseconds. Callers
// scheduling other time critical work in the same loop must budget for
// that latency spike.
package sonar

import (
	"fmt"

	"github.com/robotalks/mcu.go/pkg/hal"
)

// Phase is the state of a ranging cycle.
type Phase int

// Ranging phases.
const (
	Idle Phase = iota
	PulseLow
	PulseHigh
	AwaitingEcho
)

var phaseNames = [...]string{"Idle", "PulseLow", "PulseHigh", "AwaitingEcho"}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Timing of a ranging cycle.
const (
	// DefaultTimeoutUs bounds the echo wait, roughly 4 m of range.
	DefaultTimeoutUs uint32 = 24000
	// PulseLowUs is the minimum settle time before the trigger pulse.
	PulseLowUs uint32 = 2
	// PulseHighUs is the minimum trigger pulse width.
	PulseHighUs uint32 = 10
	// SoundSpeedCmPerUs is the speed of sound in cm/µs.
	SoundSpeedCmPerUs = 0.0343
)

// Sensor is a range sensor bound to a trigger output and an echo input.
type Sensor struct {
	// Timeout is the echo wait bound in microseconds.
	Timeout uint32

	clock    hal.Clock
	trig     hal.DigitalOutput
	echo     hal.PulseReader
	phase    Phase
	mark     uint32
	distance float32
}

// New creates a Sensor.
func New(clock hal.Clock, trig hal.DigitalOutput, echo hal.PulseReader) *Sensor {
	return &Sensor{
		Timeout: DefaultTimeoutUs,
		clock:   clock,
		trig:    trig,
		echo:    echo,
	}
}

// Begin drives the trigger low.
func (s *Sensor) Begin() {
	s.trig.Write(hal.Low)
}

// StartMeasure arms a new cycle. It has no effect while a cycle is in
// progress.
func (s *Sensor) StartMeasure() {
	if s.phase != Idle {
		return
	}
	s.phase = PulseLow
	s.mark = s.clock.Micros()
}

// Update advances the cycle by at most one phase.
func (s *Sensor) Update() {
	now := s.clock.Micros()
	switch s.phase {
	case PulseLow:
		s.trig.Write(hal.Low)
		if now-s.mark >= PulseLowUs {
			s.trig.Write(hal.High)
			s.mark = now
			s.phase = PulseHigh
		}
	case PulseHigh:
		if now-s.mark >= PulseHighUs {
			s.trig.Write(hal.Low)
			s.phase = AwaitingEcho
		}
	case AwaitingEcho:
		// 0 is a timeout: out of range or no echo, keep the last reading.
		if d := s.echo.PulseIn(hal.High, s.Timeout); d > 0 {
			s.distance = float32(float64(d) * SoundSpeedCmPerUs / 2)
		}
		s.phase = Idle
	}
}

// Phase returns the current phase.
func (s *Sensor) Phase() Phase {
	return s.phase
}

// Distance returns the last valid distance in cm, 0 before the first
// successful cycle.
func (s *Sensor) Distance() float32 {
	return s.distance
}
