// Package hal defines the hardware primitives consumed by the control
// components. Every component receives these as interfaces so the same
// logic runs against GPIO on a board or against the simulator.
package hal

// Level is the logic level of a digital line.
type Level bool

// Logic levels.
const (
	Low  Level = false
	High Level = true
)

// Clock provides monotonic time. Both counters wrap around at 2^32 and
// consumers must compare them with unsigned subtraction.
type Clock interface {
	// Millis returns milliseconds since an arbitrary origin.
	Millis() uint32
	// Micros returns microseconds since an arbitrary origin.
	Micros() uint32
}

// DigitalOutput drives a logic line.
type DigitalOutput interface {
	Write(Level)
}

// DigitalInput samples a logic line.
type DigitalInput interface {
	Read() Level
}

// PulseReader measures the width of the next pulse at the given level.
// It blocks up to timeoutUs microseconds and returns 0 on timeout.
type PulseReader interface {
	PulseIn(level Level, timeoutUs uint32) uint32
}

// AnalogInput reads one ADC sample in a platform defined range
// (e.g. 0-1023 or 0-4095).
type AnalogInput interface {
	ReadAnalog() int
}

// Motors accepts a left/right differential drive command.
type Motors interface {
	SetSpeed(left, right int) error
}

// DigitalOutputFunc is the func form of DigitalOutput.
type DigitalOutputFunc func(Level)

// Write implements DigitalOutput.
func (f DigitalOutputFunc) Write(l Level) { f(l) }

// DigitalInputFunc is the func form of DigitalInput.
type DigitalInputFunc func() Level

// Read implements DigitalInput.
func (f DigitalInputFunc) Read() Level { return f() }

// AnalogInputFunc is the func form of AnalogInput.
type AnalogInputFunc func() int

// ReadAnalog implements AnalogInput.
func (f AnalogInputFunc) ReadAnalog() int { return f() }
