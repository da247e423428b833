// Package framework runs cooperative control code on a host: a Loop
// standing in for a microcontroller's main loop, and a Runner for the
// goroutines around it (telemetry transports, servers).
package framework

import "context"

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Updater is polled by a Loop. Update must return quickly: everything
// sharing the Loop waits for it.
type Updater interface {
	Update()
}

// UpdateFunc is the func form of Updater.
type UpdateFunc func()

// Update implements Updater.
func (f UpdateFunc) Update() {
	f()
}
