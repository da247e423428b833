// Package drive mixes arcade style turn/throttle commands into left and
// right differential motor outputs.
package drive

import "golang.org/x/exp/constraints"

// DefaultMaxOutput matches an 8-bit PWM range.
const DefaultMaxOutput = 255

// FullScale is the magnitude of a full turn or throttle command.
const FullScale = 100

// Mixer converts turn/throttle in [-FullScale, FullScale] into motor
// outputs in [-MaxOutput, MaxOutput].
type Mixer struct {
	maxOutput   int
	deadband    int
	left, right int
}

// NewMixer creates a Mixer. A maxOutput <= 0 uses DefaultMaxOutput.
func NewMixer(maxOutput int) *Mixer {
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	return &Mixer{maxOutput: maxOutput}
}

// SetDeadband sets the magnitude below which each axis is treated as 0.
func (m *Mixer) SetDeadband(limit int) {
	if limit < 0 {
		limit = 0
	}
	m.deadband = limit
}

// Compute mixes a command. A single full axis maps to full output; when
// both axes push the same side the result saturates at MaxOutput.
func (m *Mixer) Compute(turn, throttle int) {
	if abs(turn) < m.deadband {
		turn = 0
	}
	if abs(throttle) < m.deadband {
		throttle = 0
	}
	m.left = m.scale(throttle + turn)
	m.right = m.scale(throttle - turn)
}

func (m *Mixer) scale(v int) int {
	return clamp(v*m.maxOutput/FullScale, -m.maxOutput, m.maxOutput)
}

// Left returns the last left output.
func (m *Mixer) Left() int { return m.left }

// Right returns the last right output.
func (m *Mixer) Right() int { return m.right }

// MaxOutput returns the output bound.
func (m *Mixer) MaxOutput() int { return m.maxOutput }

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func clamp[T constraints.Integer](v, min, max T) T {
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}
