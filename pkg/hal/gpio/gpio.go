// Package gpio implements hal primitives on host GPIO using periph.io.
package gpio

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"

	"github.com/robotalks/mcu.go/pkg/hal"
)

var initOnce struct {
	sync.Once
	err error
}

// Init initializes periph host drivers. It is safe to call repeatedly.
func Init() error {
	initOnce.Do(func() {
		_, initOnce.err = host.Init()
	})
	return initOnce.err
}

// Pin wraps a periph pin and implements the hal digital primitives.
type Pin struct {
	gpio.PinIO
}

// Open looks up a pin by name, e.g. "GPIO23" or the BCM number "23".
func Open(name string) (*Pin, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no GPIO pin named: %s", name)
	}
	return &Pin{PinIO: p}, nil
}

// OpenOutput opens a pin and drives it low.
func OpenOutput(name string) (*Pin, error) {
	p, err := Open(name)
	if err != nil {
		return nil, err
	}
	if err = p.Out(gpio.Low); err != nil {
		return nil, err
	}
	return p, nil
}

// OpenInput opens a pin as input with pull-down and edge detection.
func OpenInput(name string) (*Pin, error) {
	p, err := Open(name)
	if err != nil {
		return nil, err
	}
	if err = p.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return nil, err
	}
	return p, nil
}

// Write implements hal.DigitalOutput.
func (p *Pin) Write(l hal.Level) {
	if err := p.Out(gpio.Level(l)); err != nil {
		glog.Warningf("%s write: %v", p.Name(), err)
	}
}

// Read implements hal.DigitalInput.
func (p *Pin) Read() hal.Level {
	return hal.Level(p.PinIO.Read())
}

// PulseIn implements hal.PulseReader using edge detection. Like the
// Arduino primitive it first lets an already active pulse finish, then
// measures the next full pulse, all within timeoutUs.
func (p *Pin) PulseIn(level hal.Level, timeoutUs uint32) uint32 {
	deadline := time.Now().Add(time.Duration(timeoutUs) * time.Microsecond)
	want := gpio.Level(level)
	if p.PinIO.Read() == want {
		if !p.waitLevel(!want, deadline) {
			return 0
		}
	}
	if !p.waitLevel(want, deadline) {
		return 0
	}
	start := time.Now()
	if !p.waitLevel(!want, deadline) {
		return 0
	}
	return uint32(time.Since(start) / time.Microsecond)
}

func (p *Pin) waitLevel(l gpio.Level, deadline time.Time) bool {
	for p.PinIO.Read() != l {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		p.WaitForEdge(remaining)
	}
	return true
}

// PWMFrequency is the carrier used for motor outputs.
const PWMFrequency = 20 * physic.KiloHertz

// Motor drives one H-bridge channel: a PWM pin for speed and a direction pin.
type Motor struct {
	PWM *Pin
	Dir *Pin
	// Max is the command magnitude mapped to full duty.
	Max int
}

// Set applies a signed speed command.
func (m *Motor) Set(speed int) error {
	dir := gpio.Low
	if speed < 0 {
		dir, speed = gpio.High, -speed
	}
	if speed > m.Max {
		speed = m.Max
	}
	if err := m.Dir.Out(dir); err != nil {
		return err
	}
	duty := gpio.Duty(int64(gpio.DutyMax) * int64(speed) / int64(m.Max))
	return m.PWM.PWM(duty, PWMFrequency)
}

// Motors implements hal.Motors with two H-bridge channels.
type Motors struct {
	Left, Right Motor
}

// SetSpeed implements hal.Motors.
func (m *Motors) SetSpeed(left, right int) error {
	if err := m.Left.Set(left); err != nil {
		return err
	}
	return m.Right.Set(right)
}
