package sh

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
	"github.com/robotalks/mcu.go/pkg/telemetry/stream"
)

func TestWatchRecording(t *testing.T) {
	dir, err := ioutil.TempDir("", "watch")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "frames.bin")

	f, err := os.Create(path)
	require.NoError(t, err)
	w := stream.Writer(f)
	for n, m := range []msgs.Message{
		&msgs.RangeReading{DistanceCm: 42},
		&msgs.DriveOutput{Left: 255, Right: -255},
	} {
		frame, err := msgs.FrameFrom(m, uint32(n+1), uint32(100*n))
		require.NoError(t, err)
		pkt, err := frame.Encode()
		require.NoError(t, err)
		require.NoError(t, w.WritePacket(pkt))
	}
	require.NoError(t, f.Close())

	frames := make(chan *msgs.Frame, 4)
	sources := make(chan string, 4)
	closer, err := Watch(path, "+", func(source string, frame *msgs.Frame) {
		sources <- source
		frames <- frame
	})
	require.NoError(t, err)
	defer closer.Close()

	var got []string
	for len(got) < 2 {
		select {
		case frame := <-frames:
			require.Equal(t, path, <-sources)
			line, err := FormatFrame("log", frame, false)
			require.NoError(t, err)
			got = append(got, line)
		case <-time.After(5 * time.Second):
			t.Fatal("frames not received")
		}
	}
	require.True(t, strings.HasPrefix(got[0], "[log] #1 @0ms RangeReading {"))
	require.True(t, strings.HasPrefix(got[1], "[log] #2 @100ms DriveOutput {"))
}

func TestFormatFrameJSON(t *testing.T) {
	frame, err := msgs.FrameFrom(&msgs.BatteryState{Low: true}, 7, 9)
	require.NoError(t, err)
	line, err := FormatFrame("ws", frame, true)
	require.NoError(t, err)
	require.Equal(t, `{"source":"ws","seq":7,"ts":9,"type":"BatteryState","msg":{"low":true}}`, line)
}

func TestWatchMissingFile(t *testing.T) {
	_, err := Watch(filepath.Join(os.TempDir(), "no-such-telemetry"), "+", func(string, *msgs.Frame) {})
	require.Error(t, err)
}
