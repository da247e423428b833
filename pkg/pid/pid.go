// Package pid implements a fixed sample time PID controller with
// integral anti-windup and derivative on measurement.
package pid

import (
	"golang.org/x/exp/constraints"

	"github.com/robotalks/mcu.go/pkg/hal"
)

// Defaults.
const (
	DefaultOutputMin    float32 = -255
	DefaultOutputMax    float32 = 255
	DefaultSampleTimeMs uint32  = 20
)

// Controller is a PID controller. Compute only recalculates once per
// sample time and returns the previous output in between.
type Controller struct {
	kp, ki, kd float32
	min, max   float32
	sampleTime uint32

	clock     hal.Clock
	lastTime  uint32
	lastInput float32
	output    float32
	integral  float32
}

// New creates a Controller. A sampleTimeMs of 0 uses DefaultSampleTimeMs.
// Negative gains are ignored and leave all gains at zero.
func New(clock hal.Clock, kp, ki, kd float32, sampleTimeMs uint32) *Controller {
	if sampleTimeMs == 0 {
		sampleTimeMs = DefaultSampleTimeMs
	}
	c := &Controller{
		min:        DefaultOutputMin,
		max:        DefaultOutputMax,
		sampleTime: sampleTimeMs,
		clock:      clock,
	}
	c.SetTunings(kp, ki, kd)
	// the first Compute always calculates.
	c.lastTime = clock.Millis() - sampleTimeMs
	return c
}

// Compute returns the control output for the setpoint and measured input.
func (c *Controller) Compute(setpoint, input float32) float32 {
	now := c.clock.Millis()
	if now-c.lastTime < c.sampleTime {
		return c.output
	}
	e := setpoint - input
	c.integral = clamp(c.integral+c.ki*e, c.min, c.max)
	output := c.kp*e + c.integral - c.kd*(input-c.lastInput)
	c.output = clamp(output, c.min, c.max)
	c.lastInput = input
	c.lastTime = now
	return c.output
}

// SetOutputLimits sets the output range and clamps the integral into it.
// It's ignored unless min < max.
func (c *Controller) SetOutputLimits(min, max float32) {
	if min >= max {
		return
	}
	c.min, c.max = min, max
	c.integral = clamp(c.integral, min, max)
}

// SetTunings replaces the gains. It's ignored if any gain is negative.
func (c *Controller) SetTunings(kp, ki, kd float32) {
	if kp < 0 || ki < 0 || kd < 0 {
		return
	}
	c.kp, c.ki, c.kd = kp, ki, kd
}

// Reset clears the integral, previous input and previous output.
func (c *Controller) Reset() {
	c.integral, c.lastInput, c.output = 0, 0, 0
}

// Output returns the last computed output.
func (c *Controller) Output() float32 { return c.output }

// Integral returns the integral accumulator.
func (c *Controller) Integral() float32 { return c.integral }

// Tunings returns the current gains.
func (c *Controller) Tunings() (kp, ki, kd float32) { return c.kp, c.ki, c.kd }

// OutputLimits returns the current output range.
func (c *Controller) OutputLimits() (min, max float32) { return c.min, c.max }

func clamp[T constraints.Float](v, min, max T) T {
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}
