package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServerBroadcast(t *testing.T) {
	s := NewServer("")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	c1, err := Dial(url)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := Dial(url)
	require.NoError(t, err)

	deadline := time.Now().Add(5 * time.Second)
	for s.Clients() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 2, s.Clients())

	require.NoError(t, s.WritePacket([]byte{1, 2, 3}))
	for _, c := range []*ReadWriter{c1, c2} {
		pkt, err := c.ReadPacket()
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2, 3}, pkt)
	}

	c2.Close()
	for s.Clients() > 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 1, s.Clients())
}
