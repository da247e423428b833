package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/hal/fake"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

type recorder struct {
	packets [][]byte
	err     error
}

func (r *recorder) WritePacket(pkt []byte) error {
	if r.err != nil {
		return r.err
	}
	r.packets = append(r.packets, pkt)
	return nil
}

func (r *recorder) frames(t *testing.T) []*msgs.Frame {
	var frames []*msgs.Frame
	for _, pkt := range r.packets {
		f, err := msgs.DecodeFrame(pkt)
		require.NoError(t, err)
		frames = append(frames, f)
	}
	return frames
}

func TestPublisher(t *testing.T) {
	clock := fake.NewClock(500)
	rec := &recorder{}
	distance := float32(42)
	p := NewPublisher(rec, clock).AddSource(
		func() msgs.Message { return &msgs.RangeReading{DistanceCm: distance} },
		func() msgs.Message { return nil },
		func() msgs.Message { return &msgs.DriveOutput{Left: -10, Right: 10} },
	)
	p.Publish()
	clock.AdvanceMillis(200)
	distance = 40
	p.Publish()

	frames := rec.frames(t)
	require.Len(t, frames, 4)
	for n, f := range frames {
		require.Equal(t, uint32(n+1), f.Sequence)
	}
	require.Equal(t, uint32(500), frames[0].Timestamp)
	require.Equal(t, uint32(700), frames[2].Timestamp)
	msg, err := frames[2].Decode()
	require.NoError(t, err)
	require.Equal(t, &msgs.RangeReading{DistanceCm: 40}, msg)
	require.Equal(t, msgs.DriveOutputTypeID, frames[3].TypeId)
	require.Equal(t, uint32(4), p.Sequence())
}

func TestPublisherSinkFailure(t *testing.T) {
	rec := &recorder{err: errors.New("offline")}
	p := NewPublisher(rec, fake.NewClock(0)).AddSource(
		func() msgs.Message { return &msgs.BatteryState{Voltage: 7.4} },
	)
	p.Publish()
	p.Publish()
	require.Empty(t, rec.packets)
	require.Equal(t, 2, p.errors)

	rec.err = nil
	p.Publish()
	require.Len(t, rec.packets, 1)
	require.Zero(t, p.errors)
}

func TestSinkMux(t *testing.T) {
	a, b := &recorder{}, &recorder{err: errors.New("b failed")}
	c := &recorder{}
	mux := &SinkMux{}
	mux.Add(a, b, c)
	err := mux.WritePacket([]byte{1})
	require.Error(t, err)
	require.Equal(t, "b failed", err.Error())
	require.Len(t, a.packets, 1)
	require.Len(t, c.packets, 1)
}

func TestAsyncSink(t *testing.T) {
	got := make(chan []byte, 8)
	s := NewAsyncSink(SinkFunc(func(pkt []byte) error {
		got <- pkt
		return nil
	}), 2)

	require.NoError(t, s.WritePacket([]byte{1}))
	require.NoError(t, s.WritePacket([]byte{2}))
	require.Equal(t, ErrQueueFull, s.WritePacket([]byte{3}))
	require.Equal(t, uint64(1), s.Dropped())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	for _, expect := range []byte{1, 2} {
		select {
		case pkt := <-got:
			require.Equal(t, []byte{expect}, pkt)
		case <-time.After(5 * time.Second):
			t.Fatal("packet not delivered")
		}
	}
	cancel()
	require.Equal(t, context.Canceled, <-done)
}
