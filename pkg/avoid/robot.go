// Package avoid is an obstacle avoidance robot: a forward range sensor
// feeds a PID loop holding a safe distance, and the robot turns in place
// when something gets too close.
package avoid

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/analog"
	"github.com/robotalks/mcu.go/pkg/app"
	"github.com/robotalks/mcu.go/pkg/digital"
	"github.com/robotalks/mcu.go/pkg/drive"
	"github.com/robotalks/mcu.go/pkg/filter"
	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/pid"
	"github.com/robotalks/mcu.go/pkg/sonar"
	"github.com/robotalks/mcu.go/pkg/store"
	"github.com/robotalks/mcu.go/pkg/telemetry"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

// Periods of the optional tasks.
const (
	UIPeriodMs      uint32 = 20
	BatteryPeriodMs uint32 = 1000
	BlinkMs         uint32 = 500
)

type task struct {
	name   string
	fn     func()
	period uint32
}

// Robot wires the control components into an App.
type Robot struct {
	App    *app.App
	Config Config
	// Store persists Config with the save command, optional.
	Store *store.Store[Config]

	Sensor *sonar.Sensor
	Filter *filter.Filter[float32]
	PID    *pid.Controller
	Mixer  *drive.Mixer
	Motors hal.Motors

	Battery *analog.Battery
	LED     *digital.LED
	Button  *digital.Button
	Manual  ManualSource

	enabled   bool
	primed    bool
	distance  float32
	turn      int
	throttle  int
	motorErrs int
}

// New creates the Robot. Attach optional parts before Begin.
func New(a *app.App, conf Config, trig hal.DigitalOutput, echo hal.PulseReader, motors hal.Motors) *Robot {
	r := &Robot{
		App:    a,
		Config: conf,
		Sensor: sonar.New(a.Clock, trig, echo),
		Filter: filter.New[float32](conf.FilterSize),
		PID:    pid.New(a.Clock, conf.Kp, conf.Ki, conf.Kd, conf.SampleTimeMs),
		Mixer:  drive.NewMixer(conf.MaxOutput),
		Motors: motors,
	}
	if conf.EchoTimeoutUs > 0 {
		r.Sensor.Timeout = conf.EchoTimeoutUs
	}
	r.PID.SetOutputLimits(-drive.FullScale, drive.FullScale)
	r.Mixer.SetDeadband(conf.Deadband)
	return r
}

// Begin initializes the hardware, registers the tasks and the console
// commands. The robot starts stopped.
func (r *Robot) Begin() error {
	r.Sensor.Begin()
	r.Filter.Begin()
	r.drive(0, 0)

	tasks := []task{
		{"sonar update", r.Sensor.Update, r.Config.SensorPeriodMs},
		{"start measure", r.Sensor.StartMeasure, r.Config.MeasurePeriodMs},
		{"control", r.Control, r.Config.ControlPeriodMs},
	}
	if r.Battery != nil {
		r.Battery.Begin(r.Config.BatteryMinV, r.Config.BatteryMaxV)
		r.Battery.Prime()
		tasks = append(tasks, task{"battery", r.CheckBattery, BatteryPeriodMs})
	}
	if r.LED != nil || r.Button != nil {
		tasks = append(tasks, task{"ui", r.UpdateUI, UIPeriodMs})
	}
	for _, t := range tasks {
		if _, ok := r.App.AddTask(t.fn, t.period); !ok {
			return fmt.Errorf("add task %s: scheduler full", t.name)
		}
	}

	if r.App.Console == nil {
		return nil
	}
	for _, cmd := range []struct {
		name string
		fn   func()
	}{
		{"stop", r.Stop},
		{"go", r.Go},
		{"status", r.Status},
		{"reset", r.Reset},
		{"save", r.Save},
	} {
		if err := r.App.Console.Register(cmd.name, cmd.fn); err != nil {
			return fmt.Errorf("add command %s: %v", cmd.name, err)
		}
	}
	return nil
}

// ManualSource overrides the control loop while active, e.g. a joystick.
type ManualSource interface {
	Command() (turn, throttle int, active bool)
}

// Control runs one control step.
func (r *Robot) Control() {
	if raw := r.Sensor.Distance(); raw > 0 {
		if !r.primed {
			for i := 1; i < r.Filter.Size(); i++ {
				r.Filter.Filter(raw)
			}
			r.primed = true
		}
		r.distance = r.Filter.Filter(raw)
	}
	if r.manualDrive() {
		return
	}
	if r.distance <= 0 || !r.enabled {
		// no valid reading yet, or stopped.
		r.drive(0, 0)
		return
	}
	if r.distance < r.Config.TurnDistanceCm {
		r.PID.Reset()
		r.drive(r.Config.TurnRate, 0)
		return
	}
	out := r.PID.Compute(r.Config.SafeDistanceCm, r.distance)
	r.drive(0, int(-out))
}

// manualDrive applies the manual command, refusing to go forward into an
// obstacle.
func (r *Robot) manualDrive() bool {
	if r.Manual == nil {
		return false
	}
	turn, throttle, active := r.Manual.Command()
	if !active {
		return false
	}
	if throttle > 0 && r.distance > 0 && r.distance < r.Config.TurnDistanceCm {
		throttle = 0
	}
	r.drive(turn, throttle)
	return true
}

func (r *Robot) drive(turn, throttle int) {
	r.turn, r.throttle = turn, throttle
	r.Mixer.Compute(turn, throttle)
	if err := r.Motors.SetSpeed(r.Mixer.Left(), r.Mixer.Right()); err != nil {
		if r.motorErrs == 0 {
			glog.Errorf("set motor speed: %v", err)
		}
		r.motorErrs++
		return
	}
	if r.motorErrs > 0 {
		glog.Infof("motors recovered after %d errors", r.motorErrs)
		r.motorErrs = 0
	}
}

// Go enables the control loop.
func (r *Robot) Go() {
	if r.Battery != nil && r.Battery.Low() {
		glog.Warning("battery low, refusing to go")
		return
	}
	r.PID.Reset()
	r.enabled = true
	glog.Info("avoid: go")
}

// Stop disables the control loop and stops the motors.
func (r *Robot) Stop() {
	r.enabled = false
	r.drive(0, 0)
	glog.Info("avoid: stop")
}

// Reset clears the controller and the distance history.
func (r *Robot) Reset() {
	r.PID.Reset()
	r.Filter.Begin()
	r.primed, r.distance = false, 0
}

// Save persists the current Config.
func (r *Robot) Save() {
	if r.Store == nil {
		glog.Warning("avoid: no config store")
		return
	}
	if err := r.Store.Save(r.Config); err != nil {
		glog.Errorf("save config: %v", err)
	}
}

// Status reports the loop state on the console.
func (r *Robot) Status() {
	msg := r.StatusLine()
	glog.Info(msg)
	if r.App.Console != nil {
		r.App.Console.Printf("%s\n", msg)
	}
}

// StatusLine formats the loop state.
func (r *Robot) StatusLine() string {
	msg := fmt.Sprintf("enabled=%v distance=%.1f output=%.1f left=%d right=%d",
		r.enabled, r.distance, r.PID.Output(), r.Mixer.Left(), r.Mixer.Right())
	if r.Battery != nil {
		batt := r.Battery.Read()
		msg += fmt.Sprintf(" battery=%.2fV/%d%%", batt.Voltage, batt.Percentage)
	}
	return msg
}

// CheckBattery stops the robot on a low battery.
func (r *Robot) CheckBattery() {
	if batt := r.Battery.Read(); batt.Low && r.enabled {
		glog.Warningf("battery low (%.2fV), stopping", batt.Voltage)
		r.Stop()
	}
}

// UpdateUI toggles go/stop on a button press and shows the state on the
// LED: blinking while running, steady when stopped.
func (r *Robot) UpdateUI() {
	if r.Button != nil && r.Button.Pressed() {
		if r.enabled {
			r.Stop()
		} else {
			r.Go()
		}
	}
	if r.LED == nil {
		return
	}
	if r.enabled {
		r.LED.Blink(BlinkMs)
	} else if !r.LED.IsOn() {
		r.LED.On()
	}
}

// Enabled reports whether the control loop drives the motors.
func (r *Robot) Enabled() bool {
	return r.enabled
}

// Distance returns the filtered distance.
func (r *Robot) Distance() float32 {
	return r.distance
}

// Sources returns the telemetry sources of the robot.
func (r *Robot) Sources() []telemetry.Source {
	sources := []telemetry.Source{
		func() msgs.Message {
			return &msgs.RangeReading{DistanceCm: r.Sensor.Distance(), Filtered: r.distance}
		},
		func() msgs.Message {
			return &msgs.ControlState{
				Setpoint: r.Config.SafeDistanceCm,
				Input:    r.distance,
				Output:   r.PID.Output(),
				Integral: r.PID.Integral(),
				Enabled:  r.enabled,
			}
		},
		func() msgs.Message {
			return &msgs.DriveOutput{
				Turn:     int32(r.turn),
				Throttle: int32(r.throttle),
				Left:     int32(r.Mixer.Left()),
				Right:    int32(r.Mixer.Right()),
			}
		},
	}
	if r.Battery != nil {
		sources = append(sources, func() msgs.Message {
			batt := r.Battery.Read()
			return &msgs.BatteryState{
				Voltage:    batt.Voltage,
				Percentage: int32(batt.Percentage),
				Low:        batt.Low,
			}
		})
	}
	return sources
}
