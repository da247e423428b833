package sonar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/hal/fake"
)

type sensorRig struct {
	clock *fake.Clock
	trig  *fake.Pin
	echo  *fake.Echo
	s     *Sensor
}

func newRig() *sensorRig {
	r := &sensorRig{clock: fake.NewClock(0), trig: &fake.Pin{}}
	r.echo = &fake.Echo{Clock: r.clock}
	r.s = New(r.clock, r.trig, r.echo)
	r.s.Begin()
	return r
}

// cycle walks a full measurement, advancing the clock generously between
// updates.
func (r *sensorRig) cycle(t *testing.T) {
	r.s.StartMeasure()
	require.Equal(t, PulseLow, r.s.Phase())
	r.clock.Advance(PulseLowUs)
	r.s.Update()
	require.Equal(t, PulseHigh, r.s.Phase())
	r.clock.Advance(PulseHighUs)
	r.s.Update()
	require.Equal(t, AwaitingEcho, r.s.Phase())
	r.s.Update()
	require.Equal(t, Idle, r.s.Phase())
}

func TestSensorCycle(t *testing.T) {
	r := newRig()
	require.Equal(t, []hal.Level{hal.Low}, r.trig.Writes())
	require.Zero(t, r.s.Distance())

	r.echo.Push(1000)
	r.cycle(t)
	require.InDelta(t, 17.15, r.s.Distance(), 1e-3)
	require.Equal(t, []hal.Level{hal.Low, hal.High, hal.Low}, r.trig.Writes())
	require.Equal(t, 1, r.echo.Calls())
}

func TestSensorTimeoutKeepsDistance(t *testing.T) {
	r := newRig()
	r.echo.Push(2000)
	r.cycle(t)
	before := r.s.Distance()
	require.InDelta(t, 34.3, before, 1e-3)

	testCases := []struct {
		name  string
		width uint32
	}{
		{"no echo", 0},
		{"beyond timeout", DefaultTimeoutUs + 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r.echo.Push(tc.width)
			start := r.clock.Micros()
			r.cycle(t)
			require.Equal(t, before, r.s.Distance())
			require.True(t, r.clock.Micros()-start >= DefaultTimeoutUs, "echo wait blocks up to the timeout")
		})
	}
}

func TestSensorPhaseTiming(t *testing.T) {
	r := newRig()
	r.trig.Writes()
	r.s.StartMeasure()

	r.clock.Advance(1)
	r.s.Update()
	require.Equal(t, PulseLow, r.s.Phase(), "low settle not elapsed")
	require.Equal(t, []hal.Level{hal.Low}, r.trig.Writes())

	r.clock.Advance(1)
	r.s.Update()
	require.Equal(t, PulseHigh, r.s.Phase())
	require.Equal(t, []hal.Level{hal.Low, hal.High}, r.trig.Writes())

	r.clock.Advance(9)
	r.s.Update()
	require.Equal(t, PulseHigh, r.s.Phase(), "trigger pulse too short")
	require.Empty(t, r.trig.Writes())

	r.clock.Advance(1)
	r.s.Update()
	require.Equal(t, AwaitingEcho, r.s.Phase())
	require.Equal(t, 0, r.echo.Calls())
}

func TestSensorStartMeasureMidCycle(t *testing.T) {
	r := newRig()
	r.s.StartMeasure()
	r.clock.Advance(5)
	r.s.Update()
	require.Equal(t, PulseHigh, r.s.Phase())
	r.s.StartMeasure()
	require.Equal(t, PulseHigh, r.s.Phase())
}

func TestSensorUpdateWhenIdle(t *testing.T) {
	r := newRig()
	r.trig.Writes()
	r.s.Update()
	require.Equal(t, Idle, r.s.Phase())
	require.Empty(t, r.trig.Writes())
	require.Equal(t, 0, r.echo.Calls())
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "AwaitingEcho", AwaitingEcho.String())
	require.Equal(t, "Phase(9)", Phase(9).String())
}
