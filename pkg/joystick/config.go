package joystick

import (
	"flag"
)

// Config defines the configurations of the Teleop.
type Config struct {
	// DeviceIndex selects /dev/input/jsN, -1 for auto detection.
	DeviceIndex  int
	TurnAxis     int
	ThrottleAxis int
	// ManualButton toggles manual driving.
	ManualButton int
	Verbose      bool
}

var defaultConfig = Config{
	DeviceIndex:  -1,
	TurnAxis:     0,
	ThrottleAxis: 1,
	ManualButton: 0,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.DeviceIndex, "joystick", defaultConfig.DeviceIndex, "Joystick device index, -1 for auto detection.")
	flag.IntVar(&defaultConfig.TurnAxis, "joystick-turn-axis", defaultConfig.TurnAxis, "Joystick axis for turning.")
	flag.IntVar(&defaultConfig.ThrottleAxis, "joystick-throttle-axis", defaultConfig.ThrottleAxis, "Joystick axis for throttle, pushed forward is negative.")
	flag.IntVar(&defaultConfig.ManualButton, "joystick-manual-button", defaultConfig.ManualButton, "Joystick button toggling manual driving.")
	flag.BoolVar(&defaultConfig.Verbose, "joystick-verbose", defaultConfig.Verbose, "Print Joystick events.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTeleop creates a Teleop using the config.
func (c *Config) NewTeleop() *Teleop {
	t := NewTeleop()
	t.Config = *c
	return t
}
