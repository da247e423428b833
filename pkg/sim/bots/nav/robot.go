package nav

import (
	"time"

	fx "github.com/robotalks/mcu.go/pkg/framework"
	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/sim"
	physics "github.com/robotalks/mcu.go/pkg/sim/physics/nav"
	"github.com/robotalks/mcu.go/pkg/sonar"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

// Robot is a simulated bot in an Arena. It implements hal.Motors for the
// wheels and hal.PulseReader for the echo line of the range sensor. Robot
// is not safe for concurrent use; drive it from the control loop.
type Robot struct {
	Clock hal.Clock
	Arena *sim.Arena
	Nav   *physics.Engine

	RadiusCm     float64
	SpeedMax     float64
	MaxOutput    int
	RangeMaxCm   float64
	BatteryLevel int

	pose       sim.Pose2D
	collisions uint32
	lastUs     uint32
	started    bool
}

// advancer is implemented by clocks that only move when told to.
type advancer interface {
	Advance(us uint32)
}

// NewRobot creates a Robot at the origin of the arena.
func NewRobot(clock hal.Clock, arena *sim.Arena, radiusCm, trackCm float64) *Robot {
	r := &Robot{
		Clock:      clock,
		Arena:      arena,
		RadiusCm:   radiusCm,
		SpeedMax:   DefaultDriveSpeedMax,
		MaxOutput:  255,
		RangeMaxCm: DefaultRangeMax,
	}
	r.Nav = physics.New(r, trackCm)
	return r
}

// Name implements Named.
func (r *Robot) Name() string {
	return "sim"
}

// AddToLoop implements LoopAdder.
func (r *Robot) AddToLoop(l *fx.Loop) {
	l.AddUpdater(r)
}

// Position2D implements Placeable2D.
func (r *Robot) Position2D() sim.Pose2D {
	return r.pose
}

// SetPose2D implements Placeable2D. A pose overlapping a wall or an
// obstacle only takes the new orientation and counts a collision.
func (r *Robot) SetPose2D(pose sim.Pose2D) sim.Pose2D {
	if !r.Arena.Free(pose.Pos2D, r.RadiusCm) {
		r.collisions++
		pose.Pos2D = r.pose.Pos2D
	}
	r.pose = pose
	return r.pose
}

// Collisions counts the blocked moves.
func (r *Robot) Collisions() uint32 {
	return r.collisions
}

// Update integrates motion up to the current time.
func (r *Robot) Update() {
	now := r.Clock.Micros()
	if !r.started {
		r.lastUs, r.started = now, true
		return
	}
	elapsed := now - r.lastUs
	r.lastUs = now
	r.Nav.Step(time.Duration(elapsed) * time.Microsecond)
}

// SetSpeed implements hal.Motors.
func (r *Robot) SetSpeed(left, right int) error {
	r.Update()
	r.Nav.Drive(r.wheelSpeed(left), r.wheelSpeed(right))
	return nil
}

func (r *Robot) wheelSpeed(cmd int) float64 {
	if r.MaxOutput <= 0 {
		return 0
	}
	if cmd > r.MaxOutput {
		cmd = r.MaxOutput
	} else if cmd < -r.MaxOutput {
		cmd = -r.MaxOutput
	}
	return float64(cmd) * r.SpeedMax / float64(r.MaxOutput)
}

// Range returns the free distance in front of the body.
func (r *Robot) Range() float64 {
	r.Update()
	d := r.Arena.Raycast(r.pose) - r.RadiusCm
	if d < 0 {
		return 0
	}
	return d
}

// PulseIn implements hal.PulseReader as an ultrasonic echo. Like the real
// line it takes the echo width to return, which only passes on a clock
// that is advanced manually.
func (r *Robot) PulseIn(level hal.Level, timeoutUs uint32) uint32 {
	var width uint32
	if d := r.Range(); level == hal.High && d <= r.RangeMaxCm {
		width = uint32(d * 2 / sonar.SoundSpeedCmPerUs)
	}
	if width == 0 || width > timeoutUs {
		r.wait(timeoutUs)
		return 0
	}
	r.wait(width)
	return width
}

func (r *Robot) wait(us uint32) {
	if c, ok := r.Clock.(advancer); ok {
		c.Advance(us)
	}
}

// Trig is the trigger line of the range sensor.
func (r *Robot) Trig() hal.DigitalOutput {
	return hal.DigitalOutputFunc(func(hal.Level) {})
}

// Battery is a steady battery sense input.
func (r *Robot) Battery() hal.AnalogInput {
	return hal.AnalogInputFunc(func() int { return r.BatteryLevel })
}

// PoseMessage reports the pose for telemetry.
func (r *Robot) PoseMessage() msgs.Message {
	return &msgs.Pose{
		XCm:        float32(r.pose.X),
		YCm:        float32(r.pose.Y),
		HeadingDeg: float32(r.pose.Orientation.Deg()),
		Collisions: r.collisions,
	}
}
