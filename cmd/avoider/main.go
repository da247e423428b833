package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/analog"
	"github.com/robotalks/mcu.go/pkg/app"
	"github.com/robotalks/mcu.go/pkg/avoid"
	"github.com/robotalks/mcu.go/pkg/console"
	"github.com/robotalks/mcu.go/pkg/console/serialport"
	"github.com/robotalks/mcu.go/pkg/hal"
	"github.com/robotalks/mcu.go/pkg/joystick"
	navbot "github.com/robotalks/mcu.go/pkg/sim/bots/nav"
	"github.com/robotalks/mcu.go/pkg/telemetry"
)

var (
	useSim      = flag.Bool("sim", true, "Run in the simulated arena instead of on GPIO")
	configFile  = flag.String("config", "", "YAML file of the avoidance settings")
	consoleDev  = flag.String("console", "-", "Serial device of the command console, - for stdin, empty to disable")
	consoleBaud = flag.Int("baud", 115200, "Baud rate of the console device")
	interval    = flag.Duration("interval", time.Millisecond, "Main loop interval")
	teleop      = flag.Bool("teleop", false, "Allow manual driving with a joystick")
)

func init() {
	telemetry.SetupFlags()
	navbot.SetupFlags()
	joystick.SetupFlags()
	setupHardwareFlags()
}

func main() {
	flag.Parse()

	store := avoid.NewStore(*configFile)
	conf, err := store.Load()
	if err != nil {
		log.Fatalln(err)
	}

	clock := hal.NewSystemClock()
	a := app.New("avoider", clock, mustOpenConsole())
	loop := a.Loop(*interval)

	var (
		trig    hal.DigitalOutput
		echo    hal.PulseReader
		motors  hal.Motors
		sources []telemetry.Source
	)
	hw := &hardware{}
	if *useSim {
		bot := navbot.Default().NewRobot(clock, conf.MaxOutput)
		trig, echo, motors = bot.Trig(), bot, bot
		hw.battery, hw.resolution = bot.Battery(), analog.Resolution10Bit
		sources = append(sources, bot.PoseMessage)
		loop.Add(bot)
	} else {
		if err := hw.open(conf.MaxOutput); err != nil {
			log.Fatalln(err)
		}
		trig, echo, motors = hw.trig, hw.echo, hw.motors
	}

	robot := avoid.New(a, conf, trig, echo, motors)
	robot.Store = store
	hw.attach(robot, clock)
	if *teleop {
		tp := joystick.Default().NewTeleop()
		robot.Manual = tp
		loop.Add(tp)
	}
	if err := robot.Begin(); err != nil {
		log.Fatalln(err)
	}

	if tconf := telemetry.Default(); tconf.Enabled() {
		sink := tconf.MustNewSink()
		pub := telemetry.NewPublisher(sink, clock).
			AddSource(robot.Sources()...).
			AddSource(sources...)
		if _, ok := a.AddTask(pub.Publish, uint32(tconf.PeriodMs)); !ok {
			log.Fatalln("no room for the telemetry task")
		}
		loop.Add(sink)
	}

	a.Begin()
	glog.Infof("config: %+v", conf)
	loop.RunOrFail()
}

func mustOpenConsole() console.Port {
	switch *consoleDev {
	case "":
		return nil
	case "-":
		return &console.Conn{Reader: console.NewAsyncReader(os.Stdin), Writer: os.Stdout}
	}
	port, err := serialport.Open(*consoleDev, serialport.Options{BaudRate: *consoleBaud})
	if err != nil {
		log.Fatalln(err)
	}
	return port
}
