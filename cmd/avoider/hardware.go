package main

import (
	"flag"
	"fmt"

	"github.com/robotalks/mcu.go/pkg/analog"
	"github.com/robotalks/mcu.go/pkg/avoid"
	"github.com/robotalks/mcu.go/pkg/digital"
	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/hal/gpio"
	"github.com/robotalks/mcu.go/pkg/hal/iio"
)

var pins = struct {
	trig, echo         string
	leftPWM, leftDir   string
	rightPWM, rightDir string
	led, button        string
	battery            string
	batteryBits        uint
}{
	trig:        "GPIO23",
	echo:        "GPIO24",
	leftPWM:     "GPIO12",
	leftDir:     "GPIO5",
	rightPWM:    "GPIO13",
	rightDir:    "GPIO6",
	batteryBits: 12,
}

func setupHardwareFlags() {
	flag.StringVar(&pins.trig, "trig", pins.trig, "Trigger pin of the range sensor")
	flag.StringVar(&pins.echo, "echo", pins.echo, "Echo pin of the range sensor")
	flag.StringVar(&pins.leftPWM, "motor-left-pwm", pins.leftPWM, "PWM pin of the left motor")
	flag.StringVar(&pins.leftDir, "motor-left-dir", pins.leftDir, "Direction pin of the left motor")
	flag.StringVar(&pins.rightPWM, "motor-right-pwm", pins.rightPWM, "PWM pin of the right motor")
	flag.StringVar(&pins.rightDir, "motor-right-dir", pins.rightDir, "Direction pin of the right motor")
	flag.StringVar(&pins.led, "led", pins.led, "Status LED pin, active low")
	flag.StringVar(&pins.button, "button", pins.button, "Go/stop button pin")
	flag.StringVar(&pins.battery, "battery", pins.battery, "Battery sense IIO channel as DEVICE:CHANNEL, e.g. 0:1")
	flag.UintVar(&pins.batteryBits, "battery-resolution", pins.batteryBits, "ADC resolution of the battery channel in bits")
}

// batteryChannel parses a DEVICE:CHANNEL IIO channel and the full scale of
// a bits wide ADC.
func batteryChannel(channel string, bits uint) (dev, ch, resolution int, err error) {
	if _, err = fmt.Sscanf(channel, "%d:%d", &dev, &ch); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid battery channel %q: %v", channel, err)
	}
	if resolution = analog.ResolutionOf(bits); resolution == 0 {
		return 0, 0, 0, fmt.Errorf("invalid battery resolution %d bits", bits)
	}
	return dev, ch, resolution, nil
}

type hardware struct {
	trig    hal.DigitalOutput
	echo    hal.PulseReader
	motors  hal.Motors
	led     hal.DigitalOutput
	button  hal.DigitalInput
	battery hal.AnalogInput
	// resolution is the full scale of battery samples.
	resolution int
}

func (h *hardware) open(maxOutput int) error {
	trig, err := gpio.OpenOutput(pins.trig)
	if err != nil {
		return fmt.Errorf("trigger pin: %v", err)
	}
	echo, err := gpio.OpenInput(pins.echo)
	if err != nil {
		return fmt.Errorf("echo pin: %v", err)
	}
	h.trig, h.echo = trig, echo

	m := &gpio.Motors{}
	for _, p := range []struct {
		pin  **gpio.Pin
		name string
	}{
		{&m.Left.PWM, pins.leftPWM},
		{&m.Left.Dir, pins.leftDir},
		{&m.Right.PWM, pins.rightPWM},
		{&m.Right.Dir, pins.rightDir},
	} {
		if *p.pin, err = gpio.OpenOutput(p.name); err != nil {
			return fmt.Errorf("motor pin %s: %v", p.name, err)
		}
	}
	m.Left.Max, m.Right.Max = maxOutput, maxOutput
	h.motors = m

	if pins.led != "" {
		if h.led, err = gpio.OpenOutput(pins.led); err != nil {
			return fmt.Errorf("led pin: %v", err)
		}
	}
	if pins.button != "" {
		if h.button, err = gpio.OpenInput(pins.button); err != nil {
			return fmt.Errorf("button pin: %v", err)
		}
	}
	if pins.battery != "" {
		dev, ch, resolution, err := batteryChannel(pins.battery, pins.batteryBits)
		if err != nil {
			return err
		}
		h.battery, h.resolution = iio.NewChannel(dev, ch), resolution
	}
	return nil
}

func (h *hardware) attach(r *avoid.Robot, clock hal.Clock) {
	if h.led != nil {
		r.LED = digital.NewLED(h.led, clock)
	}
	if h.button != nil {
		r.Button = digital.NewButton(h.button, clock)
	}
	if h.battery != nil {
		r.Battery = analog.NewBattery(h.battery, h.resolution, 0, 0)
	}
}
