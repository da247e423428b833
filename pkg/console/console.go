// Package console implements a line based text command dispatcher for a
// serial link.
//
// Each line received is matched exactly against the registered command
// names. A match runs the command and answers "OK", anything else is
// answered with "ERROR: <line>".
package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// Limits of a Console.
const (
	MaxCommands = 10
	// BufferSize includes a terminator slot, so lines keep at most
	// BufferSize-1 characters. Extra characters are dropped.
	BufferSize = 32
)

// Console errors.
var (
	ErrTooManyCommands = errors.New("too many commands")
	ErrInvalidCommand  = errors.New("invalid command")
)

// CommandFunc is invoked when its command is received.
type CommandFunc func()

// Port is the link a Console talks over. Read must return promptly with
// n == 0 when nothing is pending.
type Port interface {
	io.Reader
	io.Writer
}

type command struct {
	name string
	fn   CommandFunc
}

// Console dispatches text commands received on a Port.
type Console struct {
	port     Port
	commands [MaxCommands]command
	count    int
	line     [BufferSize - 1]byte
	lineLen  int
	readBuf  [64]byte
}

// New creates a Console on the port.
func New(port Port) *Console {
	return &Console{port: port}
}

// Register adds a command.
func (c *Console) Register(name string, fn CommandFunc) error {
	if name == "" || fn == nil || len(name) >= BufferSize {
		return ErrInvalidCommand
	}
	if c.count >= MaxCommands {
		return ErrTooManyCommands
	}
	c.commands[c.count] = command{name: name, fn: fn}
	c.count++
	return nil
}

// AddCommand adds a command and reports whether it was accepted.
func (c *Console) AddCommand(name string, fn CommandFunc) bool {
	if err := c.Register(name, fn); err != nil {
		glog.Warningf("console: add command %q: %v", name, err)
		return false
	}
	return true
}

// Names lists the registered commands in registration order.
func (c *Console) Names() []string {
	names := make([]string, c.count)
	for i := range names {
		names[i] = c.commands[i].name
	}
	return names
}

// Check consumes everything currently pending on the port and dispatches
// complete lines.
func (c *Console) Check() {
	for {
		n, err := c.port.Read(c.readBuf[:])
		for _, b := range c.readBuf[:n] {
			c.feed(b)
		}
		if err != nil {
			if err != io.EOF && !os.IsTimeout(err) {
				glog.Warningf("console read: %v", err)
			}
			return
		}
		if n == 0 {
			return
		}
	}
}

func (c *Console) feed(b byte) {
	switch {
	case b == '\n':
		if c.lineLen > 0 {
			c.dispatch(string(c.line[:c.lineLen]))
			c.lineLen = 0
		}
	case b >= 32 && b <= 126 && c.lineLen < len(c.line):
		c.line[c.lineLen] = b
		c.lineLen++
	}
}

func (c *Console) dispatch(line string) {
	for i := 0; i < c.count; i++ {
		if c.commands[i].name == line {
			glog.V(2).Infof("console: %s", line)
			c.commands[i].fn()
			c.reply("OK\n")
			return
		}
	}
	glog.Warningf("console: unknown command %q", line)
	c.reply("ERROR: " + line + "\n")
}

// Printf writes a free form message to the port, e.g. a status report
// from a command.
func (c *Console) Printf(format string, args ...interface{}) {
	c.reply(fmt.Sprintf(format, args...))
}

func (c *Console) reply(msg string) {
	if _, err := io.WriteString(c.port, msg); err != nil {
		glog.Warningf("console write: %v", err)
	}
}
