package joystick

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/joystick/device"
)

func rawEvent(typ, number uint8, value int16) device.Event {
	buf := make([]byte, device.EventSize)
	binary.LittleEndian.PutUint16(buf[4:], uint16(value))
	buf[6], buf[7] = typ, number
	ev, err := device.DecodeEvent(buf)
	if err != nil {
		panic(err)
	}
	return ev
}

func axis(n uint8, v int16) device.Event { return rawEvent(0x02, n, v) }

func button(n uint8, pressed bool) device.Event {
	var v int16
	if pressed {
		v = 1
	}
	return rawEvent(0x01, n, v)
}

func TestTeleopHandleEvent(t *testing.T) {
	tp := NewConfig().NewTeleop()

	tp.HandleEvent(axis(0, device.AxisMax))
	tp.HandleEvent(axis(1, -device.AxisMax/2))
	turn, throttle, active := tp.Command()
	require.Equal(t, 100, turn)
	require.Equal(t, 49, throttle)
	require.False(t, active)

	tp.HandleEvent(rawEvent(0x81, 0, 1))
	_, _, active = tp.Command()
	require.False(t, active)

	tp.HandleEvent(button(0, true))
	tp.HandleEvent(button(0, false))
	_, _, active = tp.Command()
	require.True(t, active)

	tp.HandleEvent(button(1, true))
	tp.HandleEvent(axis(5, 1000))
	turn, throttle, active = tp.Command()
	require.Equal(t, []int{100, 49}, []int{turn, throttle})
	require.True(t, active)

	tp.HandleEvent(button(0, true))
	_, _, active = tp.Command()
	require.False(t, active)
}

type scriptedDevice struct {
	events chan device.Event
	closed chan struct{}
}

func newScriptedDevice() *scriptedDevice {
	return &scriptedDevice{events: make(chan device.Event, 8), closed: make(chan struct{})}
}

func (d *scriptedDevice) Close() error {
	select {
	case <-d.closed:
	default:
		close(d.closed)
	}
	return nil
}

func (d *scriptedDevice) Index() int       { return 0 }
func (d *scriptedDevice) Name() string     { return "scripted" }
func (d *scriptedDevice) AxisCount() int   { return 2 }
func (d *scriptedDevice) ButtonCount() int { return 1 }

func (d *scriptedDevice) ReadEvent() (device.Event, error) {
	select {
	case ev, ok := <-d.events:
		if !ok {
			return nil, io.EOF
		}
		return ev, nil
	case <-d.closed:
		return nil, errors.New("closed")
	}
}

func TestTeleopRun(t *testing.T) {
	dev := newScriptedDevice()
	tp := NewTeleop()
	tp.Open = func() (device.Device, error) { return dev, nil }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tp.Run(ctx) }()

	dev.events <- button(0, true)
	dev.events <- axis(1, -device.AxisMax)
	deadline := time.Now().Add(5 * time.Second)
	for {
		_, throttle, active := tp.Command()
		if active && throttle == 100 {
			break
		}
		require.True(t, time.Now().Before(deadline), "events not applied")
		time.Sleep(time.Millisecond)
	}

	// losing the device stops manual driving.
	close(dev.events)
	deadline = time.Now().Add(5 * time.Second)
	for {
		if _, _, active := tp.Command(); !active {
			break
		}
		require.True(t, time.Now().Before(deadline), "manual driving not stopped")
		time.Sleep(time.Millisecond)
	}
	cancel()
	require.Equal(t, context.Canceled, <-done)
}
