// Package nav integrates differential drive motion.
package nav

import (
	"math"
	"time"

	"github.com/robotalks/mcu.go/pkg/sim"
)

// Engine moves Object with two independently driven wheels.
type Engine struct {
	Object sim.Placeable2D
	// TrackCm is the distance between the wheels.
	TrackCm float64
	// Accel limits the wheel speed change in cm/s², 0 is unlimited.
	Accel float64

	left, right wheel
}

// New creates the engine.
func New(obj sim.Placeable2D, trackCm float64) *Engine {
	return &Engine{Object: obj, TrackCm: trackCm}
}

// Drive sets the desired wheel speeds in cm/s.
func (e *Engine) Drive(left, right float64) {
	e.left.desired, e.right.desired = left, right
}

// Speeds returns the current wheel speeds in cm/s.
func (e *Engine) Speeds() (left, right float64) {
	return e.left.current, e.right.current
}

// Moving reports whether either wheel turns or is about to.
func (e *Engine) Moving() bool {
	return e.left.current != 0 || e.right.current != 0 ||
		e.left.desired != 0 || e.right.desired != 0
}

// Step integrates dt of motion and places the object at the new pose.
func (e *Engine) Step(dt time.Duration) sim.Pose2D {
	pose := e.Object.Position2D()
	if dt <= 0 || !e.Moving() {
		return pose
	}
	secs := dt.Seconds()
	dl, dr := e.left.advance(e.Accel, secs), e.right.advance(e.Accel, secs)
	return e.Object.SetPose2D(Move(pose, dl, dr, e.TrackCm))
}

// Move applies wheel travel dl and dr to pose, following an arc of
// constant curvature.
func Move(pose sim.Pose2D, dl, dr, track float64) sim.Pose2D {
	dist := (dl + dr) / 2
	var turn float64
	if track > 0 {
		turn = (dr - dl) / track
	}
	if math.Abs(turn) < 1e-9 {
		pose.Pos2D.OffsetBy(pose.Orientation.Offset(dist))
		return pose
	}
	radius := dist / turn
	heading := pose.Orientation.Rad()
	pose.X += radius * (math.Sin(heading+turn) - math.Sin(heading))
	pose.Y -= radius * (math.Cos(heading+turn) - math.Cos(heading))
	pose.Orientation = pose.Orientation.Turn(turn)
	return pose
}
