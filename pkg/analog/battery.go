package analog

import (
	"github.com/robotalks/mcu.go/pkg/filter"
	"github.com/robotalks/mcu.go/pkg/hal"
)

// Defaults of Battery.
const (
	BatteryFilterSize   = 20
	DefaultDividerRatio = 3.0
	DefaultRefVoltage   = 3.3
	LowBatteryPercent   = 10
)

// Battery estimates battery charge from a voltage divider on an ADC pin.
type Battery struct {
	in         hal.AnalogInput
	resolution int
	ratio      float32
	ref        float32
	minV, maxV float32
	filter     *filter.Filter[int]
}

// NewBattery creates a Battery. Zero values select Resolution10Bit,
// DefaultDividerRatio and DefaultRefVoltage.
func NewBattery(in hal.AnalogInput, resolution int, ratio, refVoltage float32) *Battery {
	if resolution <= 0 {
		resolution = Resolution10Bit
	}
	if ratio <= 0 {
		ratio = DefaultDividerRatio
	}
	if refVoltage <= 0 {
		refVoltage = DefaultRefVoltage
	}
	return &Battery{
		in:         in,
		resolution: resolution,
		ratio:      ratio,
		ref:        refVoltage,
		filter:     filter.New[int](BatteryFilterSize),
	}
}

// Begin sets the empty and full voltages and starts the filter.
func (b *Battery) Begin(minV, maxV float32) {
	b.minV, b.maxV = minV, maxV
	b.filter.Begin()
}

// Prime fills the filter window with fresh samples, so the first readings
// aren't averaged against zeros.
func (b *Battery) Prime() {
	for i := 0; i < b.filter.Size(); i++ {
		b.Voltage()
	}
}

// BatteryReading is the state of the battery derived from one sample.
type BatteryReading struct {
	Voltage    float32
	Percentage int
	Low        bool
}

// Read takes one ADC sample and derives voltage, charge and the low flag
// from it.
func (b *Battery) Read() BatteryReading {
	v := b.Voltage()
	pct := b.percentage(v)
	return BatteryReading{Voltage: v, Percentage: pct, Low: pct < LowBatteryPercent}
}

// Voltage samples and returns the smoothed battery voltage.
func (b *Battery) Voltage() float32 {
	raw := b.filter.Filter(b.in.ReadAnalog())
	return float32(raw) / float32(b.resolution) * b.ref * b.ratio
}

// Percentage samples and returns the charge estimate, clamped to 0-100.
func (b *Battery) Percentage() int {
	return b.percentage(b.Voltage())
}

// Low samples and reports whether the charge is below LowBatteryPercent.
func (b *Battery) Low() bool {
	return b.Read().Low
}

func (b *Battery) percentage(v float32) int {
	if b.maxV <= b.minV {
		return 0
	}
	pct := int((v - b.minV) * 100 / (b.maxV - b.minV))
	switch {
	case pct > 100:
		return 100
	case pct < 0:
		return 0
	}
	return pct
}
