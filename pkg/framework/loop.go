package framework

import (
	"context"
	"log"
	"time"
)

// DefaultInterval is the default Loop period.
const DefaultInterval = time.Millisecond

// Loop polls Updaters at a fixed interval, in the order they were added,
// all from one goroutine. Runnables added to the Loop run alongside it and
// stop with it.
type Loop struct {
	Interval time.Duration

	updaters []Updater
	runners  []Runnable
	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddUpdater registers Updaters. Updaters that are also Runnable are
// started by Run.
func (l *Loop) AddUpdater(updaters ...Updater) *Loop {
	l.updaters = append(l.updaters, updaters...)
	for _, u := range updaters {
		if runner, ok := u.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.runIteration()
		case <-l.wakeUpCh:
			l.runIteration()
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop until
// interrupted.
func (l *Loop) RunOrFail() {
	if err := NewRunner().HandleSignals().Go(l).Wait(); err != nil {
		log.Fatalln(err)
	}
}

// TriggerNext schedules an iteration right away instead of waiting for
// the next tick. It's safe to call from any goroutine.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runIteration() {
	for _, u := range l.updaters {
		u.Update()
	}
}
