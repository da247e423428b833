package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type bufPort struct {
	in  bytes.Buffer
	out bytes.Buffer
}

func (p *bufPort) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p *bufPort) Write(b []byte) (int, error) { return p.out.Write(b) }

func TestConsoleDispatch(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		calls  int
		output string
	}{
		{"match", "ping\n", 1, "OK\n"},
		{"carriage return ignored", "ping\r\n", 1, "OK\n"},
		{"case sensitive", "PING\n", 0, "ERROR: PING\n"},
		{"unknown", "pong\n", 0, "ERROR: pong\n"},
		{"empty lines skipped", "\n\n\nping\n", 1, "OK\n"},
		{"incomplete line waits", "pin", 0, ""},
		{"several lines", "ping\nx\nping\n", 2, "OK\nERROR: x\nOK\n"},
		{"non printable dropped", "pi\x01\x7fng\n", 1, "OK\n"},
		{"no partial match", "ping \n", 0, "ERROR: ping \n"},
		{
			"overflow truncated",
			strings.Repeat("a", 40) + "\n",
			0,
			"ERROR: " + strings.Repeat("a", BufferSize-1) + "\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			port := &bufPort{}
			c := New(port)
			var calls int
			require.True(t, c.AddCommand("ping", func() { calls++ }))
			port.in.WriteString(tc.input)
			c.Check()
			require.Equal(t, tc.calls, calls)
			require.Equal(t, tc.output, port.out.String())
		})
	}
}

func TestConsoleLineAcrossChecks(t *testing.T) {
	port := &bufPort{}
	c := New(port)
	var calls int
	c.AddCommand("stop", func() { calls++ })
	port.in.WriteString("st")
	c.Check()
	require.Zero(t, calls)
	port.in.WriteString("op\n")
	c.Check()
	require.Equal(t, 1, calls)
	require.Equal(t, "OK\n", port.out.String())
}

func TestConsoleRegister(t *testing.T) {
	c := New(&bufPort{})
	for i := 0; i < MaxCommands; i++ {
		require.NoError(t, c.Register(string(rune('a'+i)), func() {}))
	}
	require.Equal(t, ErrTooManyCommands, c.Register("z", func() {}))
	require.False(t, c.AddCommand("z", func() {}))
	require.Len(t, c.Names(), MaxCommands)
	require.Equal(t, "a", c.Names()[0])

	c = New(&bufPort{})
	require.Equal(t, ErrInvalidCommand, c.Register("", func() {}))
	require.Equal(t, ErrInvalidCommand, c.Register("x", nil))
	require.Equal(t, ErrInvalidCommand, c.Register(strings.Repeat("x", BufferSize), func() {}))
}

func TestConsoleFirstMatchWins(t *testing.T) {
	port := &bufPort{}
	c := New(port)
	var seq []int
	c.AddCommand("go", func() { seq = append(seq, 1) })
	c.AddCommand("go", func() { seq = append(seq, 2) })
	port.in.WriteString("go\n")
	c.Check()
	require.Equal(t, []int{1}, seq)
}

func TestConsolePrintf(t *testing.T) {
	port := &bufPort{}
	c := New(port)
	c.AddCommand("status", func() { c.Printf("distance=%d\n", 42) })
	port.in.WriteString("status\n")
	c.Check()
	require.Equal(t, "distance=42\nOK\n", port.out.String())
}

func TestAsyncReader(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewAsyncReader(pr)
	buf := make([]byte, 16)

	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Zero(t, n, "nothing pending")

	go pw.Write([]byte("hello"))
	var got []byte
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < 5 && time.Now().Before(deadline) {
		n, err = r.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, "hello", string(got))

	pw.Close()
	for err == nil && time.Now().Before(deadline) {
		_, err = r.Read(buf)
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, io.EOF, err)
}
