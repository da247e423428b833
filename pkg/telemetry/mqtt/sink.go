package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/mcu.go/pkg/telemetry/msgs"
)

// Topic suffixes under a robot's ID.
const (
	TelemetryTopicSuffix = "/telemetry"
	MetaTopicSuffix      = "/meta"
)

// TelemetryTopic returns the telemetry topic of a robot.
func TelemetryTopic(robotID string) string {
	return robotID + TelemetryTopicSuffix
}

// MetaTopic returns the meta topic of a robot.
func MetaTopic(robotID string) string {
	return robotID + MetaTopicSuffix
}

// Meta describes a robot in its retained meta topic.
type Meta struct {
	ID    string `json:"id"`
	Type  string `json:"type,omitempty"`
	Topic string `json:"telemetry"`
}

// Sink publishes telemetry frames of one robot.
type Sink struct {
	Queue   *Queue
	RobotID string

	meta []byte
}

// NewSink creates a Sink. The client is connected by Run.
func NewSink(brokerURL, robotID, robotType string) (*Sink, error) {
	if robotID == "" || strings.ContainsAny(robotID, "/+#") {
		return nil, fmt.Errorf("invalid robot ID %q", robotID)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	meta, err := json.Marshal(&Meta{ID: robotID, Type: robotType, Topic: topicPrefix + TelemetryTopic(robotID)})
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+MetaTopic(robotID), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("mcu:" + robotID)
	}
	s := &Sink{
		Queue:   NewQueue(opts, topicPrefix),
		RobotID: robotID,
		meta:    meta,
	}
	s.Queue.OnConnect = func(q *Queue) {
		q.PubWith(MetaTopic(robotID), s.meta, 1, true)
	}
	return s, nil
}

// WritePacket implements telemetry.Sink.
func (s *Sink) WritePacket(pkt []byte) error {
	token := s.Queue.Pub(TelemetryTopic(s.RobotID), pkt)
	token.Wait()
	return token.Error()
}

// Run implements framework.Runnable.
func (s *Sink) Run(ctx context.Context) error {
	if token := s.Queue.Connect(); token.Wait() && token.Error() != nil {
		glog.Errorf("mqtt connect: %v", token.Error())
		return token.Error()
	}
	<-ctx.Done()
	s.Queue.PubWith(MetaTopic(s.RobotID), nil, 1, true).Wait()
	s.Queue.Close()
	return ctx.Err()
}

// FrameHandler receives decoded telemetry frames.
type FrameHandler func(robotID string, frame *msgs.Frame)

// Watch subscribes to the telemetry of a robot, or all robots when robotID
// is "+". Undecodable payloads are logged and skipped.
func Watch(q *Queue, robotID string, handler FrameHandler) *Subscription {
	return q.Sub(TelemetryTopic(robotID), func(topic string, payload []byte) {
		frame, err := msgs.DecodeFrame(payload)
		if err != nil {
			glog.Warningf("bad frame on %s: %v", topic, err)
			return
		}
		handler(strings.TrimSuffix(topic, TelemetryTopicSuffix), frame)
	})
}
