package sim

import "math"

// Angle is a heading in radians, kept within [-π, π].
type Angle float64

// AngleDeg converts degrees to an Angle.
func AngleDeg(deg float64) Angle {
	return AngleRad(deg * math.Pi / 180)
}

// AngleRad converts radians to an Angle.
func AngleRad(rad float64) Angle {
	return Angle(math.Atan2(math.Sin(rad), math.Cos(rad)))
}

// Rad returns the angle in radians.
func (a Angle) Rad() float64 {
	return float64(a)
}

// Deg returns the angle in degrees.
func (a Angle) Deg() float64 {
	return float64(a) * 180 / math.Pi
}

// Turn rotates the heading by rad, counter-clockwise when positive.
func (a Angle) Turn(rad float64) Angle {
	return AngleRad(float64(a) + rad)
}

// Unit is the unit vector pointing along the heading.
func (a Angle) Unit() (dx, dy float64) {
	return math.Cos(float64(a)), math.Sin(float64(a))
}

// Offset is the displacement of travelling dist along the heading.
func (a Angle) Offset(dist float64) Pos2D {
	dx, dy := a.Unit()
	return Pos2D{X: dist * dx, Y: dist * dy}
}

// To is the shortest signed rotation from a to b.
func (a Angle) To(b Angle) float64 {
	return AngleRad(float64(b) - float64(a)).Rad()
}
