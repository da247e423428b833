package msgs

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
)

// Message Kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// GroupTelemetry is the group of all messages in this package.
const GroupTelemetry uint32 = 0x00010000

// Message is a telemetry message.
type Message interface {
	proto.Message
	// New creates an empty message of the same type.
	New() Message
	TypeID() uint32
}

// MessageTypes maps type IDs to message prototypes for decoding.
var MessageTypes = map[uint32]Message{}

// ErrUnknownType indicates unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

// Frame is the envelope of an encoded message.
type Frame struct {
	TypeId    uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence  uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Timestamp uint32 `protobuf:"varint,3,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Message   []byte `protobuf:"bytes,4,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Frame) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Frame) Reset() { *m = Frame{} }

// String implements proto.Message.
func (m *Frame) String() string { return proto.CompactTextString(m) }

// FrameFrom wraps a message into a Frame.
func FrameFrom(msg Message, seq, timestamp uint32) (*Frame, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Frame{TypeId: msg.TypeID(), Sequence: seq, Timestamp: timestamp, Message: data}, nil
}

// Decode decodes the enclosed message.
func (m *Frame) Decode() (Message, error) {
	msgType, ok := MessageTypes[m.TypeId]
	if !ok {
		return nil, &ErrUnknownType{TypeID: m.TypeId}
	}
	msg := msgType.New()
	if err := proto.Unmarshal(m.Message, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode encodes the Frame to bytes.
func (m *Frame) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// IsEvent determines if the frame carries an event.
func (m *Frame) IsEvent() bool {
	return m.TypeId&TypeIDMaskKind == TypeIDKindEvent
}

// DecodeFrame decodes bytes into a Frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var frame Frame
	if err := proto.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	return &frame, nil
}
