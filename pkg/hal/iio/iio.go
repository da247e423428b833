// Package iio reads ADC channels exposed by the Linux industrial I/O
// subsystem under /sys/bus/iio.
package iio

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// DefaultRoot is the sysfs directory of IIO devices.
const DefaultRoot = "/sys/bus/iio/devices"

// Channel is one raw voltage channel, e.g. iio:device0/in_voltage0_raw.
type Channel struct {
	Path string

	last int
}

// NewChannel creates a Channel for device/channel indices under DefaultRoot.
func NewChannel(device, channel int) *Channel {
	return &Channel{
		Path: fmt.Sprintf("%s/iio:device%d/in_voltage%d_raw", DefaultRoot, device, channel),
	}
}

// Sample reads the raw ADC value.
func (c *Channel) Sample() (int, error) {
	data, err := ioutil.ReadFile(c.Path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// ReadAnalog implements hal.AnalogInput. Read failures repeat the last
// good sample.
func (c *Channel) ReadAnalog() int {
	val, err := c.Sample()
	if err != nil {
		glog.V(2).Infof("iio %s: %v", c.Path, err)
		return c.last
	}
	c.last = val
	return val
}
