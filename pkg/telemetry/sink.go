// Package telemetry reports robot state to outside observers.
//
// A Publisher samples Sources from a scheduler task and writes one encoded
// msgs.Frame per message to a Sink. Transports live in sub-packages.
// Telemetry is best effort: failed writes are logged and dropped.
package telemetry

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/mcu.go/pkg/framework"
)

// Sink writes one encoded frame.
type Sink interface {
	WritePacket([]byte) error
}

// SinkFunc is the func form of Sink.
type SinkFunc func([]byte) error

// WritePacket implements Sink.
func (f SinkFunc) WritePacket(pkt []byte) error {
	return f(pkt)
}

// SinkMux writes every packet to all Sinks.
type SinkMux struct {
	Sinks []Sink
}

// WritePacket implements Sink.
func (m *SinkMux) WritePacket(pkt []byte) error {
	var errs fx.AggregatedError
	for _, s := range m.Sinks {
		errs.Add(s.WritePacket(pkt))
	}
	return errs.Aggregate()
}

// Add adds more sinks.
func (m *SinkMux) Add(sinks ...Sink) {
	m.Sinks = append(m.Sinks, sinks...)
}

// AddToLoop implements framework.LoopAdder: sinks that are Runnable run
// alongside the loop.
func (m *SinkMux) AddToLoop(l *fx.Loop) {
	for _, s := range m.Sinks {
		if adder, ok := s.(fx.LoopAdder); ok {
			l.Add(adder)
		} else if r, ok := s.(fx.Runnable); ok {
			l.AddRunnable(r)
		}
	}
}

// ErrQueueFull is returned by AsyncSink when the queue is full.
var ErrQueueFull = errors.New("telemetry queue full")

// DefaultQueueSize is the queue length of an AsyncSink.
const DefaultQueueSize = 64

// AsyncSink decouples a slow Sink (network) from the control loop.
// WritePacket only enqueues; Run drains the queue into the inner Sink.
type AsyncSink struct {
	Sink Sink

	queue   chan []byte
	dropped uint64
}

// NewAsyncSink wraps sink with a queue of size entries.
func NewAsyncSink(sink Sink, size int) *AsyncSink {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &AsyncSink{Sink: sink, queue: make(chan []byte, size)}
}

// WritePacket implements Sink. It never blocks.
func (s *AsyncSink) WritePacket(pkt []byte) error {
	select {
	case s.queue <- pkt:
		return nil
	default:
		atomic.AddUint64(&s.dropped, 1)
		return ErrQueueFull
	}
}

// Dropped returns the number of packets dropped on a full queue.
func (s *AsyncSink) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

// Run implements framework.Runnable.
func (s *AsyncSink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pkt := <-s.queue:
			if err := s.Sink.WritePacket(pkt); err != nil {
				glog.V(1).Infof("telemetry write: %v", err)
			}
		}
	}
}

// AddToLoop implements framework.LoopAdder.
func (s *AsyncSink) AddToLoop(l *fx.Loop) {
	l.AddRunnable(fx.NamedRun("telemetry", s))
	if adder, ok := s.Sink.(fx.LoopAdder); ok {
		l.Add(adder)
	} else if r, ok := s.Sink.(fx.Runnable); ok {
		l.AddRunnable(r)
	}
}
