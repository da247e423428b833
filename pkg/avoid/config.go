package avoid

import (
	"github.com/robotalks/mcu.go/pkg/drive"
	"github.com/robotalks/mcu.go/pkg/store"
)

// Config tunes the avoidance loop. It's persisted as YAML.
type Config struct {
	Kp           float32 `yaml:"kp"`
	Ki           float32 `yaml:"ki"`
	Kd           float32 `yaml:"kd"`
	SampleTimeMs uint32  `yaml:"sample_time_ms"`

	// SafeDistanceCm is the distance the robot tries to keep.
	SafeDistanceCm float32 `yaml:"safe_distance_cm"`
	// TurnDistanceCm is the distance below which the robot stops and turns.
	TurnDistanceCm float32 `yaml:"turn_distance_cm"`
	// TurnRate is the mixer turn input, in [-100, 100], while turning.
	TurnRate int `yaml:"turn_rate"`

	MaxOutput  int `yaml:"max_output"`
	Deadband   int `yaml:"deadband"`
	FilterSize int `yaml:"filter_size"`

	SensorPeriodMs  uint32 `yaml:"sensor_period_ms"`
	MeasurePeriodMs uint32 `yaml:"measure_period_ms"`
	ControlPeriodMs uint32 `yaml:"control_period_ms"`
	EchoTimeoutUs   uint32 `yaml:"echo_timeout_us"`

	BatteryMinV float32 `yaml:"battery_min_v"`
	BatteryMaxV float32 `yaml:"battery_max_v"`
}

// DefaultConfig returns the factory settings.
func DefaultConfig() Config {
	return Config{
		Kp:              2,
		Ki:              0.05,
		Kd:              0.5,
		SampleTimeMs:    20,
		SafeDistanceCm:  50,
		TurnDistanceCm:  20,
		TurnRate:        60,
		MaxOutput:       drive.DefaultMaxOutput,
		Deadband:        10,
		FilterSize:      5,
		SensorPeriodMs:  1,
		MeasurePeriodMs: 50,
		ControlPeriodMs: 20,
		EchoTimeoutUs:   24000,
		BatteryMinV:     6.0,
		BatteryMaxV:     8.4,
	}
}

// NewStore creates the store of Config at path, falling back to
// DefaultConfig.
func NewStore(path string) *store.Store[Config] {
	return store.New(path, DefaultConfig())
}
