// Package digital provides debounced buttons and status LEDs.
package digital

import "github.com/robotalks/mcu.go/pkg/hal"

// DefaultDebounceMs is the minimum spacing between two presses.
const DefaultDebounceMs uint32 = 50

// Button detects presses on an active high input.
type Button struct {
	Debounce uint32

	in        hal.DigitalInput
	clock     hal.Clock
	last      hal.Level
	lastPress uint32
}

// NewButton creates a Button.
func NewButton(in hal.DigitalInput, clock hal.Clock) *Button {
	return &Button{Debounce: DefaultDebounceMs, in: in, clock: clock}
}

// Pressed samples the input and reports a rising edge that occurs more
// than Debounce ms after the previous press.
func (b *Button) Pressed() bool {
	cur := b.in.Read()
	pressed := false
	if cur == hal.High && b.last == hal.Low {
		if now := b.clock.Millis(); now-b.lastPress > b.Debounce {
			b.lastPress = now
			pressed = true
		}
	}
	b.last = cur
	return pressed
}

// Held reports whether the button is down and the last press was more than
// durationMs ago.
func (b *Button) Held(durationMs uint32) bool {
	return b.in.Read() == hal.High && b.clock.Millis()-b.lastPress > durationMs
}

// LED is an active low indicator.
type LED struct {
	out   hal.DigitalOutput
	clock hal.Clock
	on    bool
	prev  uint32
}

// NewLED creates an LED and switches it off.
func NewLED(out hal.DigitalOutput, clock hal.Clock) *LED {
	l := &LED{out: out, clock: clock}
	l.Off()
	return l
}

// On switches the LED on.
func (l *LED) On() { l.set(true) }

// Off switches the LED off.
func (l *LED) Off() { l.set(false) }

// Toggle inverts the LED.
func (l *LED) Toggle() { l.set(!l.on) }

// IsOn reports the LED state.
func (l *LED) IsOn() bool { return l.on }

// Blink toggles the LED when intervalMs has elapsed since the last toggle.
// Call it repeatedly, e.g. from a scheduled task.
func (l *LED) Blink(intervalMs uint32) {
	if now := l.clock.Millis(); now-l.prev >= intervalMs {
		l.prev = now
		l.Toggle()
	}
}

func (l *LED) set(on bool) {
	l.on = on
	l.out.Write(hal.Level(!on))
}
