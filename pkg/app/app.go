// Package app bundles a scheduler and a command console into the main
// loop of a robot.
package app

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/console"
	fx "github.com/robotalks/mcu.go/pkg/framework"
	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/sched"
)

// Version is reported in the boot banner.
const Version = "1.0.0"

// App runs scheduled tasks and console commands from a single Update.
type App struct {
	Name      string
	Clock     hal.Clock
	Scheduler *sched.Scheduler
	// Console is nil when the app has no command link.
	Console *console.Console
}

// New creates an App. port may be nil.
func New(name string, clock hal.Clock, port console.Port) *App {
	a := &App{
		Name:      name,
		Clock:     clock,
		Scheduler: sched.New(clock),
	}
	if port != nil {
		a.Console = console.New(port)
	}
	return a
}

// Begin logs the boot banner.
func (a *App) Begin() {
	glog.Infof("%s %s starting: %d tasks, %d commands",
		a.Name, Version, a.Scheduler.Len(), len(a.Commands()))
}

// Update runs due tasks, then pending console commands.
func (a *App) Update() {
	a.Scheduler.Run()
	if a.Console != nil {
		a.Console.Check()
	}
}

// AddTask schedules fn every periodMs milliseconds.
func (a *App) AddTask(fn sched.TaskFunc, periodMs uint32) (sched.TaskID, bool) {
	id, ok := a.Scheduler.AddTask(fn, periodMs)
	if !ok {
		glog.Warningf("%s: task rejected, scheduler full", a.Name)
	}
	return id, ok
}

// AddCommand registers a console command. It returns false without a
// console or when the command table is full.
func (a *App) AddCommand(name string, fn console.CommandFunc) bool {
	if a.Console == nil {
		return false
	}
	return a.Console.AddCommand(name, fn)
}

// Commands lists the console commands.
func (a *App) Commands() []string {
	if a.Console == nil {
		return nil
	}
	return a.Console.Names()
}

// AddToLoop implements framework.LoopAdder.
func (a *App) AddToLoop(l *fx.Loop) {
	l.AddUpdater(a)
}

// Loop creates a framework.Loop calling Update every interval.
func (a *App) Loop(interval time.Duration) *fx.Loop {
	l := fx.NewLoop()
	if interval > 0 {
		l.Interval = interval
	}
	return l.Add(a)
}
