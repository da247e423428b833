// Package sh is an interactive shell for robot consoles: it sends command
// lines over a serial link and watches telemetry.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/mcu.go/pkg/console/serialport"
	"github.com/robotalks/mcu.go/pkg/telemetry"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	Timeout     time.Duration
	// Device is connected by Run when set.
	Device  string
	Options serialport.Options

	Shell *ishell.Shell
	Conn  *Conn

	watch io.Closer
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	device     string
	baudRate   = 115200
	timeout    = DefaultReplyTimeout
	watchID    = "+"

	// commands
	commands = []*ishell.Cmd{
		&ListCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&SendCmd,
		&WatchCmd,
		&UnwatchCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&device, "d", device, "Serial device to connect on start.")
	flag.IntVar(&baudRate, "baud", baudRate, "Baud rate of the serial device.")
	flag.DurationVar(&timeout, "timeout", timeout, "Command reply timeout.")
	flag.StringVar(&watchID, "watch-id", watchID, "Robot ID to watch on MQTT, + for all.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// RobotCmd creates a shortcut sending name as a command line.
func RobotCmd(name, help string) *ishell.Cmd {
	return &ishell.Cmd{
		Name: name,
		Help: help,
		Func: MustBeConnected(func(c *ishell.Context) {
			DoCommand(c, strings.Join(append([]string{name}, c.Args...), " "))
		}),
	}
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Timeout:     timeout,
		Device:      device,
		Options:     serialport.Options{BaudRate: baudRate},

		Shell: ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// FormatReply prints a Reply into friendly string for display.
func FormatReply(r *Reply) string {
	var lines []string
	lines = append(lines, r.Output...)
	switch {
	case r.OK:
		lines = append(lines, "OK")
	case r.Error != "":
		lines = append(lines, "ERROR: unknown command "+strconv.Quote(r.Error))
	}
	return strings.Join(lines, "\n")
}

// DoCommand sends a command line and prints the reply.
func DoCommand(c *ishell.Context, line string) (*Reply, error) {
	s := ShellFrom(c)
	if s.Conn == nil {
		err := fmt.Errorf("not connected")
		c.Err(err)
		return nil, err
	}
	reply, err := s.Conn.Send(line, s.Timeout)
	if err != nil {
		c.Err(err)
		return reply, err
	}
	if s.OutputJSON {
		out, err := json.Marshal(reply)
		if err != nil {
			c.Err(err)
			return reply, err
		}
		c.Println(string(out))
		return reply, nil
	}
	c.Println(FormatReply(reply))
	return reply, nil
}

// Connect opens a serial device.
func (s *Shell) Connect(device string, opts serialport.Options) error {
	conn, err := Dial(device, opts)
	if err != nil {
		return err
	}
	s.Attach(conn)
	return nil
}

// Attach replaces the current connection.
func (s *Shell) Attach(conn *Conn) {
	s.Disconnect()
	s.Conn = conn
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", conn.Name))
}

// Disconnect disconnects current robot.
func (s *Shell) Disconnect() {
	if s.Conn != nil {
		s.Conn.Close()
		s.Conn = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// StartWatch prints telemetry frames from source until StopWatch.
func (s *Shell) StartWatch(source string) error {
	s.StopWatch()
	w, err := Watch(source, watchID, func(src string, frame *msgs.Frame) {
		line, err := FormatFrame(src, frame, s.OutputJSON)
		if err != nil {
			s.Shell.Printf("%s: %v\n", src, err)
			return
		}
		s.Shell.Println(line)
	})
	if err != nil {
		return err
	}
	s.watch = w
	return nil
}

// StopWatch stops the current watch.
func (s *Shell) StopWatch() {
	if s.watch != nil {
		s.watch.Close()
		s.watch = nil
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.Device != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Device)
		}
		if err := s.Connect(s.Device, s.Options); err != nil {
			log.Fatalf("connect %q failed: %v", s.Device, err)
		}
	}
	defer s.Disconnect()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// ListCmd lists serial devices.
	ListCmd = ishell.Cmd{
		Name:    "list",
		Aliases: []string{"l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			ports, err := serialport.List()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if ports == nil {
					ports = []string{}
				}
				out, err := json.Marshal(ports)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// ConnectCmd connects a robot.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "DEVICE [BAUD]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("device expected"))
				return
			}
			opts := s.Options
			if len(c.Args) > 1 {
				baud, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("invalid baud rate %q", c.Args[1]))
					return
				}
				opts.BaudRate = baud
			}
			if err := s.Connect(c.Args[0], opts); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// DisconnectCmd disconnects current robot.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// SendCmd sends a raw command line.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "LINE...",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("command line expected"))
				return
			}
			DoCommand(c, strings.Join(c.Args, " "))
		}),
	}

	// WatchCmd prints telemetry.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[ws://HOST/PATH | mqtt://BROKER/PREFIX | FILE]",
		Func: func(c *ishell.Context) {
			source := telemetry.Default().MQTTBrokerURL
			if len(c.Args) > 0 {
				source = c.Args[0]
			}
			if source == "" {
				c.Err(fmt.Errorf("telemetry source expected"))
				return
			}
			if err := ShellFrom(c).StartWatch(source); err != nil {
				c.Err(err)
			}
		},
	}

	// UnwatchCmd stops printing telemetry.
	UnwatchCmd = ishell.Cmd{
		Name: "unwatch",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).StopWatch()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New().Run(flag.Args()...)
}
