// Package joystick drives a robot manually from a joystick.
package joystick

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/drive"
	fx "github.com/robotalks/mcu.go/pkg/framework"
	"github.com/robotalks/mcu.go/pkg/joystick/device"
)

// RetryInterval is the delay between device detection attempts.
const RetryInterval = time.Second

// Teleop turns joystick events into turn/throttle commands in
// [-drive.FullScale, drive.FullScale]. Manual driving is toggled with the
// manual button and ends when the device goes away.
type Teleop struct {
	Config

	// Open opens the device, defaults to the system joystick selected by
	// DeviceIndex.
	Open func() (device.Device, error)

	lock     sync.Mutex
	turn     int
	throttle int
	active   bool
}

// NewTeleop creates a Teleop.
func NewTeleop() *Teleop {
	t := &Teleop{Config: defaultConfig}
	t.Open = t.openSystem
	return t
}

// AddToLoop implements LoopAdder.
func (t *Teleop) AddToLoop(l *fx.Loop) {
	l.AddRunnable(fx.NamedRun("joystick", t))
}

// Command returns the manual command. active is false unless manual
// driving is on.
func (t *Teleop) Command() (turn, throttle int, active bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.turn, t.throttle, t.active
}

// Run implements Runnable.
func (t *Teleop) Run(ctx context.Context) error {
	for {
		dev, err := t.Open()
		switch {
		case err != nil:
			glog.V(1).Infof("open joystick: %v", err)
		case dev != nil:
			glog.Infof("joystick %d %q opened", dev.Index(), dev.Name())
			err = fx.RunWithContextCloser(ctx, dev, func() error {
				return t.poll(dev)
			})
			t.stopAll()
			if err == context.Canceled {
				return err
			}
			glog.Warningf("joystick %d lost: %v", dev.Index(), err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryInterval):
		}
	}
}

func (t *Teleop) openSystem() (device.Device, error) {
	if t.DeviceIndex >= 0 {
		return device.Open(t.DeviceIndex)
	}
	return device.DetectAndOpen(0)
}

func (t *Teleop) poll(dev device.Device) error {
	for {
		ev, err := dev.ReadEvent()
		if err != nil {
			return err
		}
		t.HandleEvent(ev)
	}
}

// HandleEvent applies one joystick event.
func (t *Teleop) HandleEvent(ev device.Event) {
	if t.Verbose {
		var prefix string
		if ev.IsInit() {
			prefix = "[INIT] "
		}
		switch evt := ev.(type) {
		case device.AxisEvent:
			glog.Infof(prefix+"Axis %d: %d", evt.Index(), evt.Value())
		case device.ButtonEvent:
			glog.Infof(prefix+"Button %d: %v", evt.Index(), evt.Pressed())
		}
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	switch evt := ev.(type) {
	case device.AxisEvent:
		switch evt.Index() {
		case t.TurnAxis:
			t.turn = scaleAxis(evt.Value())
		case t.ThrottleAxis:
			t.throttle = -scaleAxis(evt.Value())
		}
	case device.ButtonEvent:
		if evt.Index() == t.ManualButton && evt.Pressed() && !evt.IsInit() {
			t.active = !t.active
			glog.Infof("manual driving: %v", t.active)
		}
	}
}

func (t *Teleop) stopAll() {
	t.lock.Lock()
	t.turn, t.throttle, t.active = 0, 0, false
	t.lock.Unlock()
}

func scaleAxis(v int) int {
	return v * drive.FullScale / device.AxisMax
}
