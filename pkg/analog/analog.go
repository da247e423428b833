// Package analog provides smoothed analog inputs: a thresholded sensor
// input and a battery voltage monitor.
package analog

import (
	"github.com/robotalks/mcu.go/pkg/filter"
	"github.com/robotalks/mcu.go/pkg/hal"
)

// Common ADC resolutions, the maximum raw sample value.
const (
	Resolution10Bit = 1023
	Resolution12Bit = 4095
	Resolution16Bit = 65535
)

// ResolutionOf returns the maximum sample of a bits wide ADC, or 0 when
// bits is outside 1-31.
func ResolutionOf(bits uint) int {
	if bits == 0 || bits > 31 {
		return 0
	}
	return 1<<bits - 1
}

// Defaults of Input.
const (
	DefaultFilterSize = 10
	DefaultThreshold  = 512
	DefaultHysteresis = 20
)

// Input is an analog sensor smoothed by a moving average, with a Schmitt
// trigger for on/off use (e.g. line or light sensors).
type Input struct {
	in         hal.AnalogInput
	resolution int
	filter     *filter.Filter[int]
	threshold  int
	hysteresis int
	invert     bool
	active     bool
}

// NewInput creates an Input. filterSize <= 0 uses DefaultFilterSize and
// resolution <= 0 uses Resolution10Bit.
func NewInput(in hal.AnalogInput, resolution, filterSize int) *Input {
	if filterSize <= 0 {
		filterSize = DefaultFilterSize
	}
	if resolution <= 0 {
		resolution = Resolution10Bit
	}
	return &Input{
		in:         in,
		resolution: resolution,
		filter:     filter.New[int](filterSize),
		threshold:  DefaultThreshold,
		hysteresis: DefaultHysteresis,
	}
}

// Begin prepares the filter. It must be called before any smoothed read.
func (a *Input) Begin() {
	a.filter.Begin()
}

// SetThreshold sets the trigger point and the hysteresis band around it.
func (a *Input) SetThreshold(threshold, hysteresis int) {
	a.threshold, a.hysteresis = threshold, hysteresis
}

// SetInvert makes Active trigger on low values instead of high ones.
func (a *Input) SetInvert(invert bool) {
	a.invert = invert
}

// ReadRaw returns an unfiltered sample.
func (a *Input) ReadRaw() int {
	return a.in.ReadAnalog()
}

// ReadSmooth samples and returns the moving average.
func (a *Input) ReadSmooth() int {
	return a.filter.Filter(a.in.ReadAnalog())
}

// ReadPercentage samples and returns the average as 0-100 of the ADC range.
func (a *Input) ReadPercentage() int {
	pct := mapRange(a.ReadSmooth(), 0, a.resolution, 0, 100)
	switch {
	case pct > 100:
		return 100
	case pct < 0:
		return 0
	}
	return pct
}

// Active samples and returns the trigger state. It switches on above
// threshold+hysteresis, off below threshold-hysteresis, and holds in
// between. Inverted inputs mirror this.
func (a *Input) Active() bool {
	val := a.ReadSmooth()
	hi, lo := val > a.threshold+a.hysteresis, val < a.threshold-a.hysteresis
	if a.invert {
		hi, lo = lo, hi
	}
	if hi {
		a.active = true
	} else if lo {
		a.active = false
	}
	return a.active
}

// mapRange is the integer linear map used by Arduino's map().
func mapRange(v, fromMin, fromMax, toMin, toMax int) int {
	return (v-fromMin)*(toMax-toMin)/(fromMax-fromMin) + toMin
}
