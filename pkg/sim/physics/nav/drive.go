package nav

import "math"

// wheel ramps its speed towards the desired speed with a constant
// acceleration.
type wheel struct {
	desired float64
	current float64
}

// advance moves the wheel for secs seconds and returns the distance
// travelled. accel 0 applies the desired speed immediately.
func (w *wheel) advance(accel, secs float64) float64 {
	if accel == 0 || w.current == w.desired {
		w.current = w.desired
		return w.current * secs
	}
	a := math.Abs(accel)
	if w.current > w.desired {
		a = -a
	}
	accelSecs := (w.desired - w.current) / a
	if secs < accelSecs {
		dist := w.current*secs + a*secs*secs/2
		w.current += a * secs
		return dist
	}
	// acceleration completes within this step.
	dist := w.current*accelSecs + a*accelSecs*accelSecs/2
	w.current = w.desired
	return dist + w.desired*(secs-accelSecs)
}
