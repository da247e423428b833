package telemetry

import (
	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

// Source samples one message. Returning nil skips it for this round.
type Source func() msgs.Message

// Publisher writes sampled messages as frames to a Sink.
type Publisher struct {
	sink    Sink
	clock   hal.Clock
	sources []Source
	seq     uint32
	errors  int
}

// NewPublisher creates a Publisher.
func NewPublisher(sink Sink, clock hal.Clock) *Publisher {
	return &Publisher{sink: sink, clock: clock}
}

// AddSource adds sources, sampled in order.
func (p *Publisher) AddSource(sources ...Source) *Publisher {
	p.sources = append(p.sources, sources...)
	return p
}

// Publish samples every source once. Use it as a scheduler task.
func (p *Publisher) Publish() {
	now := p.clock.Millis()
	for _, src := range p.sources {
		msg := src()
		if msg == nil {
			continue
		}
		p.seq++
		frame, err := msgs.FrameFrom(msg, p.seq, now)
		if err == nil {
			var data []byte
			if data, err = frame.Encode(); err == nil {
				err = p.sink.WritePacket(data)
			}
		}
		if err != nil {
			// only the first failure of a streak is worth a warning.
			if p.errors == 0 {
				glog.Warningf("telemetry: %v", err)
			}
			p.errors++
			continue
		}
		if p.errors > 0 {
			glog.Infof("telemetry recovered after %d failures", p.errors)
			p.errors = 0
		}
	}
}

// Sequence returns the sequence number of the last frame.
func (p *Publisher) Sequence() uint32 {
	return p.seq
}
