package sh

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// serveConsole answers like a robot console on the other end of a pipe.
func serveConsole(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		switch line := scanner.Text(); line {
		case "go":
			conn.Write([]byte("OK\n"))
		case "status":
			conn.Write([]byte("enabled=true\r\ndistance=42.0\nOK\n"))
		case "long":
			conn.Write([]byte(strings.Repeat("x", MaxLineLength*2) + "\nOK\n"))
		case "hang":
		default:
			conn.Write([]byte("ERROR: " + line + "\n"))
		}
	}
}

func TestConnSend(t *testing.T) {
	testCases := []struct {
		line   string
		expect Reply
	}{
		{"go", Reply{Command: "go", OK: true}},
		{"status", Reply{Command: "status", OK: true, Output: []string{"enabled=true", "distance=42.0"}}},
		{"fly", Reply{Command: "fly", Error: "fly"}},
		{"long", Reply{Command: "long", OK: true, Output: []string{strings.Repeat("x", MaxLineLength)}}},
	}

	client, robot := net.Pipe()
	go serveConsole(robot)
	conn := NewConn("pipe", client)
	defer conn.Close()

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			reply, err := conn.Send(tc.line, time.Second)
			require.NoError(t, err)
			require.Equal(t, &tc.expect, reply)
		})
	}
}

func TestConnTimeout(t *testing.T) {
	client, robot := net.Pipe()
	go serveConsole(robot)
	conn := NewConn("pipe", client)
	defer conn.Close()

	_, err := conn.Send("hang", 10*time.Millisecond)
	require.Equal(t, ErrReplyTimeout, err)
}

func TestConnClosed(t *testing.T) {
	client, robot := net.Pipe()
	conn := NewConn("pipe", client)
	robot.Close()

	deadline := time.Now().Add(5 * time.Second)
	for conn.Err() == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Error(t, conn.Err())
	_, err := conn.Send("go", time.Second)
	require.Error(t, err)
}

func TestConnCloseWithBacklog(t *testing.T) {
	client, robot := net.Pipe()
	defer robot.Close()
	conn := NewConn("pipe", client)
	go func() {
		for i := 0; i < lineBacklog*2; i++ {
			if _, err := robot.Write([]byte("banner\n")); err != nil {
				return
			}
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for len(conn.lines) < lineBacklog && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Len(t, conn.lines, lineBacklog)
	conn.Close()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-conn.lines:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("reader still running after Close")
		}
	}
}

func TestFormatReply(t *testing.T) {
	require.Equal(t, "a\nb\nOK", FormatReply(&Reply{OK: true, Output: []string{"a", "b"}}))
	require.True(t, strings.HasPrefix(FormatReply(&Reply{Error: "fly"}), "ERROR:"))
	require.Empty(t, FormatReply(&Reply{}))
}
