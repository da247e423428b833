package main

import (
	"github.com/robotalks/mcu.go/pkg/cli/sh"
)

//go-build: CGO_ENABLED=0

func init() {
	sh.AddCmds(
		sh.RobotCmd("go", "Start the control loop"),
		sh.RobotCmd("stop", "Stop the motors"),
		sh.RobotCmd("status", "Print the control state"),
		sh.RobotCmd("reset", "Reset the controller"),
		sh.RobotCmd("save", "Persist the configuration"),
	)
}

func main() {
	sh.Main()
}
