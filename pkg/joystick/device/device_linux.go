//go:build linux

package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl requests of linux/joystick.h.
const (
	jsioCGAXES    = 0x80016a11
	jsioCGBUTTONS = 0x80016a12
	jsioCGNAME    = 0x80ff6a13 // JSIOCGNAME(255)
)

// MaxIndex bounds DetectAndOpen.
const MaxIndex = 32

type jsDevice struct {
	f       *os.File
	index   int
	name    string
	axes    uint8
	buttons uint8
}

// Path is the device node of a joystick index.
func Path(index int) string {
	return fmt.Sprintf("/dev/input/js%d", index)
}

// Open opens /dev/input/js<index> and queries its layout.
func Open(index int) (Device, error) {
	f, err := os.Open(Path(index))
	if err != nil {
		return nil, err
	}
	d := &jsDevice{f: f, index: index}
	if err := d.query(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %v", Path(index), err)
	}
	return d, nil
}

// DetectAndOpen opens the first joystick from startIndex. It returns nil
// without error when none is attached.
func DetectAndOpen(startIndex int) (Device, error) {
	for index := startIndex; index < MaxIndex; index++ {
		d, err := Open(index)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return d, err
	}
	return nil, nil
}

func (d *jsDevice) query() error {
	if err := d.ioctl(jsioCGAXES, unsafe.Pointer(&d.axes)); err != nil {
		return err
	}
	if err := d.ioctl(jsioCGBUTTONS, unsafe.Pointer(&d.buttons)); err != nil {
		return err
	}
	var name [255]byte
	if err := d.ioctl(jsioCGNAME, unsafe.Pointer(&name[0])); err != nil {
		return err
	}
	if end := bytes.IndexByte(name[:], 0); end >= 0 {
		d.name = string(name[:end])
	} else {
		d.name = string(name[:])
	}
	return nil
}

func (d *jsDevice) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *jsDevice) Close() error { return d.f.Close() }
func (d *jsDevice) Index() int { return d.index }
func (d *jsDevice) Name() string { return d.name }
func (d *jsDevice) AxisCount() int { return int(d.axes) }
func (d *jsDevice) ButtonCount() int { return int(d.buttons) }

// ReadEvent blocks until the next event arrives.
func (d *jsDevice) ReadEvent() (Event, error) {
	buf := make([]byte, EventSize)
	if _, err := io.ReadFull(d.f, buf); err != nil {
		return nil, err
	}
	return DecodeEvent(buf)
}
