package sim

import "math"

// Arena is a walled floor with rectangular obstacles.
type Arena struct {
	Bounds    Rect
	Obstacles []Rect
}

// NewArena creates an empty arena of cx by cy with a corner at the origin.
func NewArena(cx, cy float64) *Arena {
	return &Arena{Bounds: Rect{Size2D: Size2D{CX: cx, CY: cy}}}
}

// AddObstacle places obstacles in the arena.
func (a *Arena) AddObstacle(obstacles ...Rect) *Arena {
	a.Obstacles = append(a.Obstacles, obstacles...)
	return a
}

// Free reports whether a round body of the given radius centered at p fits
// inside the walls without touching any obstacle.
func (a *Arena) Free(p Pos2D, radius float64) bool {
	b := a.Bounds
	if p.X-radius < b.MinX() || p.X+radius > b.MaxX() ||
		p.Y-radius < b.MinY() || p.Y+radius > b.MaxY() {
		return false
	}
	for _, o := range a.Obstacles {
		dx := p.X - clamp(p.X, o.MinX(), o.MaxX())
		dy := p.Y - clamp(p.Y, o.MinY(), o.MaxY())
		if dx*dx+dy*dy < radius*radius {
			return false
		}
	}
	return true
}

// Raycast returns the distance from pose along its orientation to the first
// wall or obstacle. It is +Inf when nothing is hit, which only happens from
// outside the walls.
func (a *Arena) Raycast(pose Pose2D) float64 {
	dx, dy := pose.Orientation.Unit()
	dist := exitDistance(a.Bounds, pose.Pos2D, dx, dy)
	for _, o := range a.Obstacles {
		if d, hit := entryDistance(o, pose.Pos2D, dx, dy); hit && d < dist {
			dist = d
		}
	}
	return dist
}

// exitDistance is the ray length from p, inside r, to its boundary.
func exitDistance(r Rect, p Pos2D, dx, dy float64) float64 {
	if !r.Contains(p) {
		return math.Inf(1)
	}
	dist := math.Inf(1)
	if dx > 0 {
		dist = math.Min(dist, (r.MaxX()-p.X)/dx)
	} else if dx < 0 {
		dist = math.Min(dist, (r.MinX()-p.X)/dx)
	}
	if dy > 0 {
		dist = math.Min(dist, (r.MaxY()-p.Y)/dy)
	} else if dy < 0 {
		dist = math.Min(dist, (r.MinY()-p.Y)/dy)
	}
	return dist
}

// entryDistance intersects the ray with r using the slab method.
func entryDistance(r Rect, p Pos2D, dx, dy float64) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for _, s := range [2]struct{ o, d, lo, hi float64 }{
		{p.X, dx, r.MinX(), r.MaxX()},
		{p.Y, dy, r.MinY(), r.MaxY()},
	} {
		if math.Abs(s.d) < 1e-12 {
			if s.o < s.lo || s.o > s.hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (s.lo-s.o)/s.d, (s.hi-s.o)/s.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin, tmax = math.Max(tmin, t1), math.Min(tmax, t2)
	}
	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	return math.Max(tmin, 0), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
