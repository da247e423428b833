// Package sim models a small robot world on a 2D plane. Lengths are in
// centimeters and angles are radians counter-clockwise from the X axis.
package sim

// Size2D defines the rectangular size in 2D.
type Size2D struct {
	CX, CY float64
}

// Pos2D defines the position in 2D.
type Pos2D struct {
	X, Y float64
}

// Rect defines a rectangle in 2D. Pos2D is the corner with the smallest
// coordinates.
type Rect struct {
	Pos2D
	Size2D
}

// Pose2D defines the pose in 2D.
type Pose2D struct {
	Pos2D
	Orientation Angle
}

// Positionable2D object maintains a 2D position.
type Positionable2D interface {
	Position2D() Pose2D
}

// Placeable2D object can be moved with a new pose on a 2D plane.
// The returned pose is where the object actually ends up.
type Placeable2D interface {
	Positionable2D
	SetPose2D(Pose2D) Pose2D
}

// Add is a helper to add Pos2D.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// OffsetBy performs Add in-place.
func (p *Pos2D) OffsetBy(p1 Pos2D) *Pos2D {
	p.X += p1.X
	p.Y += p1.Y
	return p
}

// MinX is the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX is the right edge.
func (r Rect) MaxX() float64 { return r.X + r.CX }

// MinY is the bottom edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY is the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.CY }

// Center returns the center point.
func (r Rect) Center() Pos2D {
	return Pos2D{X: r.X + r.CX/2, Y: r.Y + r.CY/2}
}

// Contains reports whether p is inside r, edges included.
func (r Rect) Contains(p Pos2D) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}
