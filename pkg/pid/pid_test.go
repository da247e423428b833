package pid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/hal/fake"
)

func TestCompute(t *testing.T) {
	testCases := []struct {
		name       string
		kp, ki, kd float32
		setpoint   float32
		inputs     []float32
		expect     float32
	}{
		{name: "proportional", kp: 1, setpoint: 10, inputs: []float32{7}, expect: 3},
		{name: "proportional clamped", kp: 100, setpoint: 10, inputs: []float32{0}, expect: 255},
		{name: "integral accumulates", ki: 0.5, setpoint: 10, inputs: []float32{8, 8, 8}, expect: 3},
		{name: "derivative on measurement", kd: 2, setpoint: 0, inputs: []float32{1, 4}, expect: -6},
		{name: "setpoint change has no kick", kd: 2, setpoint: 50, inputs: []float32{5, 5}, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := fake.NewClock(0)
			c := New(clock, tc.kp, tc.ki, tc.kd, 0)
			var out float32
			for _, in := range tc.inputs {
				out = c.Compute(tc.setpoint, in)
				clock.AdvanceMillis(DefaultSampleTimeMs)
			}
			require.InDelta(t, tc.expect, out, 1e-5)
		})
	}
}

func TestComputeRateLimited(t *testing.T) {
	clock := fake.NewClock(1000)
	c := New(clock, 1, 0, 0, 50)
	require.Equal(t, float32(3), c.Compute(10, 7))
	clock.AdvanceMillis(49)
	require.Equal(t, float32(3), c.Compute(10, 0), "output held within sample time")
	clock.AdvanceMillis(1)
	require.Equal(t, float32(10), c.Compute(10, 0))
}

func TestAntiWindup(t *testing.T) {
	clock := fake.NewClock(0)
	c := New(clock, 0.1, 5, 0, 10)
	c.SetOutputLimits(-100, 100)
	for i := 0; i < 200; i++ {
		out := c.Compute(1000, 0)
		require.True(t, c.Integral() <= 100)
		require.True(t, out <= 100)
		clock.AdvanceMillis(10)
	}
	for i := 0; i < 200; i++ {
		out := c.Compute(-1000, 0)
		require.True(t, c.Integral() >= -100)
		require.True(t, out >= -100)
		clock.AdvanceMillis(10)
	}
	require.Equal(t, float32(-100), c.Integral())
}

func TestSetOutputLimits(t *testing.T) {
	clock := fake.NewClock(0)
	c := New(clock, 0, 10, 0, 1)
	for i := 0; i < 30; i++ {
		c.Compute(100, 0)
		clock.AdvanceMillis(1)
	}
	require.Equal(t, float32(255), c.Integral())

	c.SetOutputLimits(10, 10)
	min, max := c.OutputLimits()
	require.Equal(t, DefaultOutputMin, min)
	require.Equal(t, DefaultOutputMax, max)

	c.SetOutputLimits(-50, 50)
	require.Equal(t, float32(50), c.Integral())
}

func TestSetTunings(t *testing.T) {
	c := New(fake.NewClock(0), 1, 2, 3, 0)
	c.SetTunings(4, -1, 0)
	kp, ki, kd := c.Tunings()
	require.Equal(t, []float32{1, 2, 3}, []float32{kp, ki, kd})
	c.SetTunings(4, 5, 6)
	kp, ki, kd = c.Tunings()
	require.Equal(t, []float32{4, 5, 6}, []float32{kp, ki, kd})
}

func TestReset(t *testing.T) {
	clock := fake.NewClock(0)
	c := New(clock, 1, 1, 0, 0)
	c.Compute(10, 5)
	require.NotZero(t, c.Output())
	c.Reset()
	require.Zero(t, c.Output())
	require.Zero(t, c.Integral())
}

func TestResetClearsLastInput(t *testing.T) {
	clock := fake.NewClock(0)
	c := New(clock, 0, 0, 1, 0)
	require.Equal(t, float32(-50), c.Compute(0, 50))
	c.Reset()
	clock.AdvanceMillis(DefaultSampleTimeMs)
	require.Equal(t, float32(-10), c.Compute(0, 10), "derivative starts from 0 after Reset")
}
