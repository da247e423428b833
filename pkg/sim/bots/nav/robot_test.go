package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/hal/fake"
	"github.com/robotalks/mcu.go/pkg/sim"
	"github.com/robotalks/mcu.go/pkg/sonar"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

func newTestRobot(clock *fake.Clock) *Robot {
	r := NewRobot(clock, sim.NewArena(200, 100), 10, 15)
	r.pose.Pos2D = sim.Pos2D{X: 100, Y: 50}
	r.Update()
	return r
}

func TestRobotEcho(t *testing.T) {
	clock := fake.NewClock(0)
	r := newTestRobot(clock)

	dist := 90.0
	width := r.PulseIn(hal.High, sonar.DefaultTimeoutUs)
	require.Equal(t, uint32(dist*2/sonar.SoundSpeedCmPerUs), width)
	require.Equal(t, width, clock.Micros())

	r.RangeMaxCm = 50
	require.Zero(t, r.PulseIn(hal.High, sonar.DefaultTimeoutUs))
	require.Equal(t, width+sonar.DefaultTimeoutUs, clock.Micros())

	r.RangeMaxCm = DefaultRangeMax
	require.Zero(t, r.PulseIn(hal.High, 1000))
}

func TestRobotSonarReading(t *testing.T) {
	clock := fake.NewClock(0)
	r := newTestRobot(clock)
	s := sonar.New(clock, r.Trig(), r)
	s.Begin()
	s.StartMeasure()
	for i := 0; i < 100 && (s.Phase() != sonar.Idle || s.Distance() == 0); i++ {
		clock.Advance(5)
		s.Update()
	}
	require.InDelta(t, 90, s.Distance(), 0.1)
}

func TestRobotDrive(t *testing.T) {
	clock := fake.NewClock(0)
	r := newTestRobot(clock)
	r.SpeedMax = 50

	require.NoError(t, r.SetSpeed(255, 255))
	clock.AdvanceMillis(1000)
	r.Update()
	require.InDelta(t, 150, r.Position2D().X, 1e-6)
	require.InDelta(t, 40, r.Range(), 1e-6)

	// the wall stops the body at its radius.
	clock.AdvanceMillis(1000)
	r.Update()
	require.InDelta(t, 150, r.Position2D().X, 1e-6)
	require.Equal(t, uint32(1), r.Collisions())

	require.NoError(t, r.SetSpeed(-1000, 1000))
	clock.AdvanceMillis(100)
	r.Update()
	require.True(t, r.Position2D().Orientation.Deg() > 0)

	pose, ok := r.PoseMessage().(*msgs.Pose)
	require.True(t, ok)
	require.Equal(t, uint32(1), pose.Collisions)
	require.InDelta(t, 150, pose.XCm, 1e-3)
}

func TestConfigNewRobot(t *testing.T) {
	clock := fake.NewClock(0)
	r := NewConfig().NewRobot(clock, 100)
	require.Equal(t, 100, r.MaxOutput)
	require.Equal(t, DefaultSize/2, r.RadiusCm)
	require.True(t, r.Arena.Free(r.Position2D().Pos2D, r.RadiusCm))
	require.Equal(t, 850, r.Battery().ReadAnalog())
	require.True(t, r.Range() > 0)
}
