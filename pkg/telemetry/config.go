package telemetry

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/telemetry/mqtt"
	"github.com/robotalks/mcu.go/pkg/telemetry/stream"
	"github.com/robotalks/mcu.go/pkg/telemetry/websocket"
)

// Config selects the telemetry transports of a robot.
type Config struct {
	RobotID   string
	RobotType string
	// PeriodMs is the publishing period.
	PeriodMs uint
	// MQTTBrokerURL e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// WebsocketAddr is the listen address of the websocket server.
	WebsocketAddr string
	// LogFile receives length prefixed frames.
	LogFile string
}

var defaultConfig = Config{
	RobotType: "mcu",
	PeriodMs:  200,
}

func init() {
	if val := os.Getenv("MCU_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.RobotID = MachineID()
}

// MachineID returns a stable ID of this host, or "robot" when it can't be
// determined.
func MachineID() string {
	id, err := machineid.ProtectedID("mcu.go")
	if err != nil {
		glog.V(1).Infof("machine id: %v", err)
		return "robot"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.RobotID, "id", defaultConfig.RobotID, "Robot ID")
	flag.UintVar(&defaultConfig.PeriodMs, "telemetry-period", defaultConfig.PeriodMs, "Telemetry period in ms")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.WebsocketAddr, "ws", defaultConfig.WebsocketAddr, "Websocket telemetry listen address")
	flag.StringVar(&defaultConfig.LogFile, "telemetry-log", defaultConfig.LogFile, "File to record telemetry frames")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Enabled reports whether any transport is configured.
func (c *Config) Enabled() bool {
	return c.MQTTBrokerURL != "" || c.WebsocketAddr != "" || c.LogFile != ""
}

// NewSink creates the configured transports behind one AsyncSink, so
// publishing never blocks the control loop. Add the result to the Loop to
// run it.
func (c *Config) NewSink() (*AsyncSink, error) {
	mux := &SinkMux{}
	if c.MQTTBrokerURL != "" {
		s, err := mqtt.NewSink(c.MQTTBrokerURL, c.RobotID, c.RobotType)
		if err != nil {
			return nil, fmt.Errorf("create MQTT sink error: %v", err)
		}
		mux.Add(s)
	}
	if c.WebsocketAddr != "" {
		mux.Add(websocket.NewServer(c.WebsocketAddr))
	}
	if c.LogFile != "" {
		f, err := os.Create(c.LogFile)
		if err != nil {
			return nil, fmt.Errorf("create telemetry log error: %v", err)
		}
		mux.Add(stream.Writer(f))
	}
	if len(mux.Sinks) == 0 {
		return nil, fmt.Errorf("no telemetry transport configured")
	}
	return NewAsyncSink(mux, 0), nil
}

// MustNewSink creates the sink and fails on error.
func (c *Config) MustNewSink() *AsyncSink {
	s, err := c.NewSink()
	if err != nil {
		log.Fatalln(err)
	}
	return s
}
