package digital

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/hal/fake"
)

func TestButtonPressed(t *testing.T) {
	type step struct {
		after uint32
		level hal.Level
		press bool
	}
	testCases := []struct {
		name  string
		steps []step
	}{
		{
			name: "single press",
			steps: []step{
				{100, hal.High, true},
				{10, hal.High, false},
				{10, hal.Low, false},
			},
		},
		{
			name: "bounce ignored",
			steps: []step{
				{100, hal.High, true},
				{5, hal.Low, false},
				{5, hal.High, false},
				{40, hal.Low, false},
				{1, hal.High, true},
			},
		},
		{
			name: "too early after boot",
			steps: []step{
				{50, hal.High, false},
				{1, hal.Low, false},
				{1, hal.High, true},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := fake.NewClock(0)
			pin := &fake.Pin{}
			b := NewButton(pin, clock)
			for n, s := range tc.steps {
				clock.AdvanceMillis(s.after)
				pin.Set(s.level)
				require.Equal(t, s.press, b.Pressed(), "step %d", n)
			}
		})
	}
}

func TestButtonHeld(t *testing.T) {
	clock := fake.NewClock(1000)
	pin := &fake.Pin{}
	b := NewButton(pin, clock)
	pin.Set(hal.High)
	require.True(t, b.Pressed())
	clock.AdvanceMillis(500)
	require.False(t, b.Held(500))
	clock.AdvanceMillis(1)
	require.True(t, b.Held(500))
	pin.Set(hal.Low)
	require.False(t, b.Held(500))
}

func TestLED(t *testing.T) {
	clock := fake.NewClock(0)
	pin := &fake.Pin{}
	l := NewLED(pin, clock)
	require.False(t, l.IsOn())
	require.Equal(t, []hal.Level{hal.High}, pin.Writes(), "off is high")

	l.On()
	l.Toggle()
	l.Toggle()
	require.True(t, l.IsOn())
	require.Equal(t, []hal.Level{hal.Low, hal.High, hal.Low}, pin.Writes())
}

func TestLEDBlink(t *testing.T) {
	clock := fake.NewClock(0)
	pin := &fake.Pin{}
	l := NewLED(pin, clock)
	pin.Writes()

	var states []bool
	for i := 0; i < 6; i++ {
		clock.AdvanceMillis(100)
		l.Blink(200)
		states = append(states, l.IsOn())
	}
	require.Equal(t, []bool{false, true, true, false, false, true}, states)
	require.Len(t, pin.Writes(), 3)
}
