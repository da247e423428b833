package sh

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/console/serialport"
)

// Defaults of a Conn.
const (
	DefaultReplyTimeout = time.Second
	pollTimeout         = 100 * time.Millisecond
	// MaxLineLength bounds a received line, longer lines are truncated.
	MaxLineLength = 1024
	lineBacklog   = 64
)

// ErrReplyTimeout is returned when the robot doesn't answer in time.
var ErrReplyTimeout = errors.New("reply timeout")

// Reply is the answer of a robot console to one command.
type Reply struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	// Error is the rejected line when the command is unknown.
	Error  string   `json:"error,omitempty"`
	Output []string `json:"output,omitempty"`
}

// Conn is a line oriented connection to a robot console.
type Conn struct {
	Name string

	port      io.ReadWriteCloser
	lines     chan string
	done      chan struct{}
	closeOnce sync.Once
	lock      sync.Mutex
	errLock   sync.Mutex
	err       error
}

// NewConn starts reading lines from port.
func NewConn(name string, port io.ReadWriteCloser) *Conn {
	c := &Conn{
		Name:  name,
		port:  port,
		lines: make(chan string, lineBacklog),
		done:  make(chan struct{}),
	}
	go c.read()
	return c
}

// Dial opens a serial device.
func Dial(device string, opts serialport.Options) (*Conn, error) {
	port, err := serialport.Open(device, opts)
	if err != nil {
		return nil, err
	}
	// the shell waits on replies, no need to poll as fast as the robot.
	if err = port.SetReadTimeout(pollTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return NewConn(device, port), nil
}

func (c *Conn) read() {
	defer close(c.lines)
	buf := make([]byte, 256)
	var line []byte
	for {
		n, err := c.port.Read(buf)
		for _, b := range buf[:n] {
			if b != '\n' {
				if len(line) < MaxLineLength {
					line = append(line, b)
				}
				continue
			}
			select {
			case c.lines <- strings.TrimRight(string(line), "\r"):
			case <-c.done:
				return
			}
			line = line[:0]
		}
		if err != nil {
			if err != io.EOF {
				glog.V(1).Infof("%s: read: %v", c.Name, err)
			}
			c.errLock.Lock()
			c.err = err
			c.errLock.Unlock()
			return
		}
	}
}

// Send writes a command line and collects the reply. Lines received before
// the terminating OK or ERROR are returned as Output.
func (c *Conn) Send(line string, timeout time.Duration) (*Reply, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.Err(); err != nil {
		return nil, err
	}
	c.drain()
	if _, err := io.WriteString(c.port, line+"\n"); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	reply := &Reply{Command: line}
	for {
		select {
		case l, ok := <-c.lines:
			if !ok {
				return reply, io.ErrUnexpectedEOF
			}
			switch {
			case l == "OK":
				reply.OK = true
				return reply, nil
			case strings.HasPrefix(l, "ERROR: "):
				reply.Error = strings.TrimPrefix(l, "ERROR: ")
				return reply, nil
			default:
				reply.Output = append(reply.Output, l)
			}
		case <-timer.C:
			return reply, ErrReplyTimeout
		}
	}
}

// Err returns the error that ended reading, if any.
func (c *Conn) Err() error {
	c.errLock.Lock()
	defer c.errLock.Unlock()
	return c.err
}

// drain drops unsolicited output, e.g. the boot banner.
func (c *Conn) drain() {
	for {
		select {
		case l, ok := <-c.lines:
			if !ok {
				return
			}
			glog.V(2).Infof("%s: %s", c.Name, l)
		default:
			return
		}
	}
}

// Close closes the port and stops the reader.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.port.Close()
}
