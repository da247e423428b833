package sh

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/telemetry/mqtt"
	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
	"github.com/robotalks/mcu.go/pkg/telemetry/stream"
	"github.com/robotalks/mcu.go/pkg/telemetry/websocket"
)

// FrameHandler receives the frames of a watch.
type FrameHandler func(source string, frame *msgs.Frame)

type packetReader interface {
	ReadPacket() ([]byte, error)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Watch streams telemetry frames from source until the returned Closer is
// closed. source is a websocket URL (ws://), an MQTT broker URL (mqtt://)
// or the path of a recorded telemetry file. robotID filters MQTT
// telemetry, "+" matches all robots.
func Watch(source, robotID string, handler FrameHandler) (io.Closer, error) {
	switch {
	case strings.HasPrefix(source, "ws://") || strings.HasPrefix(source, "wss://"):
		rw, err := websocket.Dial(source)
		if err != nil {
			return nil, err
		}
		go pump(source, rw, handler)
		return rw, nil
	case strings.Contains(source, "://"):
		q, err := mqtt.NewQueueFromURL(source)
		if err != nil {
			return nil, err
		}
		if token := q.Connect(); token.Wait() && token.Error() != nil {
			return nil, token.Error()
		}
		sub := mqtt.Watch(q, robotID, func(id string, frame *msgs.Frame) {
			handler(id, frame)
		})
		return closerFunc(func() error {
			sub.Close()
			return q.Close()
		}), nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	go pump(source, stream.Reader(f), handler)
	return f, nil
}

func pump(source string, r packetReader, handler FrameHandler) {
	for {
		pkt, err := r.ReadPacket()
		if err != nil {
			if err != io.EOF {
				glog.V(1).Infof("watch %s: %v", source, err)
			}
			return
		}
		frame, err := msgs.DecodeFrame(pkt)
		if err != nil {
			glog.Warningf("watch %s: %v", source, err)
			continue
		}
		handler(source, frame)
	}
}

// FormatFrame renders a frame for display.
func FormatFrame(source string, frame *msgs.Frame, asJSON bool) (string, error) {
	msg, err := frame.Decode()
	if err != nil {
		return "", err
	}
	name := reflect.Indirect(reflect.ValueOf(msg)).Type().Name()
	if asJSON {
		out, err := json.Marshal(struct {
			Source    string       `json:"source"`
			Sequence  uint32       `json:"seq"`
			Timestamp uint32       `json:"ts"`
			Type      string       `json:"type"`
			Message   msgs.Message `json:"msg"`
		}{source, frame.Sequence, frame.Timestamp, name, msg})
		return string(out), err
	}
	return fmt.Sprintf("[%s] #%d @%dms %s {%s}", source, frame.Sequence, frame.Timestamp, name, msg.String()), nil
}
