package telemetry

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/mcu.go/pkg/telemetry/stream"
)

func TestConfigNewSink(t *testing.T) {
	conf := NewConfig()
	conf.MQTTBrokerURL, conf.WebsocketAddr, conf.LogFile = "", "", ""
	require.False(t, conf.Enabled())
	_, err := conf.NewSink()
	require.Error(t, err)

	dir, err := ioutil.TempDir("", "telemetry")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	conf.LogFile = filepath.Join(dir, "frames.bin")
	conf.WebsocketAddr = "127.0.0.1:0"
	require.True(t, conf.Enabled())
	s, err := conf.NewSink()
	require.NoError(t, err)
	mux, ok := s.Sink.(*SinkMux)
	require.True(t, ok)
	require.Len(t, mux.Sinks, 2)
	_, ok = mux.Sinks[1].(*stream.ReadWriter)
	require.True(t, ok)
}

func TestMachineID(t *testing.T) {
	id := MachineID()
	require.NotEmpty(t, id)
	require.True(t, len(id) <= 12)
	require.NotEmpty(t, Default().RobotID)
}
