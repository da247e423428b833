// Package nav simulates a differential drive robot carrying a forward
// facing range sensor.
package nav

import (
	"flag"

	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/sim"
)

// Config defines the configuration for the bot.
type Config struct {
	// SizeCm is the diameter of the round body.
	SizeCm  float64
	TrackCm float64
	// DriveSpeedMax is the wheel speed (cm/s) at full motor output.
	DriveSpeedMax float64
	// Accel is the wheel acceleration (cm/s²), 0 is unlimited.
	Accel        float64
	ArenaCX      float64
	ArenaCY      float64
	Obstacles    []sim.Rect
	RangeMaxCm   float64
	BatteryLevel int
}

// Defaults
const (
	DefaultSize          float64 = 20
	DefaultTrack         float64 = 15
	DefaultDriveSpeedMax float64 = 50
	DefaultAccel         float64 = 100
	DefaultRangeMax      float64 = 400
)

var defaultConfig = Config{
	SizeCm:        DefaultSize,
	TrackCm:       DefaultTrack,
	DriveSpeedMax: DefaultDriveSpeedMax,
	Accel:         DefaultAccel,
	ArenaCX:       300,
	ArenaCY:       200,
	Obstacles: []sim.Rect{
		{Pos2D: sim.Pos2D{X: 180, Y: 80}, Size2D: sim.Size2D{CX: 30, CY: 40}},
	},
	RangeMaxCm:   DefaultRangeMax,
	BatteryLevel: 850,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.SizeCm, "bot-size", defaultConfig.SizeCm, "Diameter (cm) of the simulated bot.")
	flag.Float64Var(&defaultConfig.DriveSpeedMax, "drive-speed-max", defaultConfig.DriveSpeedMax, "Wheel speed (cm/s) at full motor output.")
	flag.Float64Var(&defaultConfig.ArenaCX, "arena-width", defaultConfig.ArenaCX, "Arena width (cm).")
	flag.Float64Var(&defaultConfig.ArenaCY, "arena-height", defaultConfig.ArenaCY, "Arena height (cm).")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewRobot creates the Robot near the left wall of the arena, facing
// east. maxOutput is the motor command mapped to DriveSpeedMax.
func (c *Config) NewRobot(clock hal.Clock, maxOutput int) *Robot {
	arena := sim.NewArena(c.ArenaCX, c.ArenaCY).AddObstacle(c.Obstacles...)
	r := NewRobot(clock, arena, c.SizeCm/2, c.TrackCm)
	r.Nav.Accel = c.Accel
	r.SpeedMax = c.DriveSpeedMax
	r.MaxOutput = maxOutput
	r.RangeMaxCm = c.RangeMaxCm
	r.BatteryLevel = c.BatteryLevel
	r.pose.Pos2D = sim.Pos2D{X: c.SizeCm * 2, Y: c.ArenaCY / 2}
	return r
}
