// Package sched implements a fixed capacity cooperative scheduler.
//
// Tasks are plain callbacks invoked from Run when their period has elapsed.
// Nothing preempts a running task: a task that blocks delays every task
// after it. Callbacks must not call Run or AddTask on the scheduler that
// invoked them.
package sched

import "github.com/robotalks/mcu.go/pkg/hal"

// MaxTasks is the capacity of a Scheduler.
const MaxTasks = 10

// TaskFunc is the callback of a scheduled task.
type TaskFunc func()

// TaskID identifies a registered task by its registration index.
type TaskID int

type task struct {
	fn       TaskFunc
	period   uint32
	lastFire uint32
	enabled  bool
}

// Scheduler runs periodic tasks in registration order.
type Scheduler struct {
	clock hal.Clock
	tasks [MaxTasks]task
	count int
}

// New creates a Scheduler on the given clock.
func New(clock hal.Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// AddTask registers fn to run every periodMs milliseconds. It returns false
// when all MaxTasks slots are taken. A task with period 0 fires on every Run.
// Tasks can't be removed.
func (s *Scheduler) AddTask(fn TaskFunc, periodMs uint32) (TaskID, bool) {
	if s.count >= MaxTasks || fn == nil {
		return -1, false
	}
	id := TaskID(s.count)
	s.tasks[id] = task{fn: fn, period: periodMs, enabled: true}
	s.count++
	return id, true
}

// SetEnabled enables or disables a task. It returns false for unknown IDs.
func (s *Scheduler) SetEnabled(id TaskID, enabled bool) bool {
	if id < 0 || int(id) >= s.count {
		return false
	}
	s.tasks[id].enabled = enabled
	return true
}

// Enabled reports whether the task is enabled.
func (s *Scheduler) Enabled(id TaskID) bool {
	return id >= 0 && int(id) < s.count && s.tasks[id].enabled
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int {
	return s.count
}

// Run fires every enabled task whose period has elapsed. The clock is read
// once; a task's last fire time is the time of this Run, so lateness is
// not compensated.
func (s *Scheduler) Run() {
	now := s.clock.Millis()
	for i := 0; i < s.count; i++ {
		t := &s.tasks[i]
		if !t.enabled || now-t.lastFire < t.period {
			continue
		}
		t.lastFire = now
		t.fn()
	}
}
