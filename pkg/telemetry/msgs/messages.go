package msgs

import (
	"github.com/golang/protobuf/proto"
)

// RangeReading reports a range sensor.
type RangeReading struct {
	DistanceCm float32 `protobuf:"fixed32,1,opt,name=distance_cm,json=distanceCm,proto3" json:"distance_cm,omitempty"`
	Filtered   float32 `protobuf:"fixed32,2,opt,name=filtered,proto3" json:"filtered,omitempty"`
}

// New implements Message.
func (m *RangeReading) New() Message { return &RangeReading{} }

// TypeID implements Message.
func (m *RangeReading) TypeID() uint32 { return RangeReadingTypeID }

// ProtoMessage implements proto.Message.
func (m *RangeReading) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RangeReading) Reset() { *m = RangeReading{} }

// String implements proto.Message.
func (m *RangeReading) String() string { return proto.CompactTextString(m) }

// ControlState reports a PID loop.
type ControlState struct {
	Setpoint float32 `protobuf:"fixed32,1,opt,name=setpoint,proto3" json:"setpoint,omitempty"`
	Input    float32 `protobuf:"fixed32,2,opt,name=input,proto3" json:"input,omitempty"`
	Output   float32 `protobuf:"fixed32,3,opt,name=output,proto3" json:"output,omitempty"`
	Integral float32 `protobuf:"fixed32,4,opt,name=integral,proto3" json:"integral,omitempty"`
	Enabled  bool    `protobuf:"varint,5,opt,name=enabled,proto3" json:"enabled,omitempty"`
}

// New implements Message.
func (m *ControlState) New() Message { return &ControlState{} }

// TypeID implements Message.
func (m *ControlState) TypeID() uint32 { return ControlStateTypeID }

// ProtoMessage implements proto.Message.
func (m *ControlState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ControlState) Reset() { *m = ControlState{} }

// String implements proto.Message.
func (m *ControlState) String() string { return proto.CompactTextString(m) }

// DriveOutput reports the mixer input and the resulting motor commands.
type DriveOutput struct {
	Turn     int32 `protobuf:"zigzag32,1,opt,name=turn,proto3" json:"turn,omitempty"`
	Throttle int32 `protobuf:"zigzag32,2,opt,name=throttle,proto3" json:"throttle,omitempty"`
	Left     int32 `protobuf:"zigzag32,3,opt,name=left,proto3" json:"left,omitempty"`
	Right    int32 `protobuf:"zigzag32,4,opt,name=right,proto3" json:"right,omitempty"`
}

// New implements Message.
func (m *DriveOutput) New() Message { return &DriveOutput{} }

// TypeID implements Message.
func (m *DriveOutput) TypeID() uint32 { return DriveOutputTypeID }

// ProtoMessage implements proto.Message.
func (m *DriveOutput) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DriveOutput) Reset() { *m = DriveOutput{} }

// String implements proto.Message.
func (m *DriveOutput) String() string { return proto.CompactTextString(m) }

// BatteryState reports the battery monitor.
type BatteryState struct {
	Voltage    float32 `protobuf:"fixed32,1,opt,name=voltage,proto3" json:"voltage,omitempty"`
	Percentage int32   `protobuf:"varint,2,opt,name=percentage,proto3" json:"percentage,omitempty"`
	Low        bool    `protobuf:"varint,3,opt,name=low,proto3" json:"low,omitempty"`
}

// New implements Message.
func (m *BatteryState) New() Message { return &BatteryState{} }

// TypeID implements Message.
func (m *BatteryState) TypeID() uint32 { return BatteryStateTypeID }

// ProtoMessage implements proto.Message.
func (m *BatteryState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *BatteryState) Reset() { *m = BatteryState{} }

// String implements proto.Message.
func (m *BatteryState) String() string { return proto.CompactTextString(m) }

// Pose reports the simulated position of a robot.
type Pose struct {
	XCm        float32 `protobuf:"fixed32,1,opt,name=x_cm,json=xCm,proto3" json:"x_cm,omitempty"`
	YCm        float32 `protobuf:"fixed32,2,opt,name=y_cm,json=yCm,proto3" json:"y_cm,omitempty"`
	HeadingDeg float32 `protobuf:"fixed32,3,opt,name=heading_deg,json=headingDeg,proto3" json:"heading_deg,omitempty"`
	Collisions uint32  `protobuf:"varint,4,opt,name=collisions,proto3" json:"collisions,omitempty"`
}

// New implements Message.
func (m *Pose) New() Message { return &Pose{} }

// TypeID implements Message.
func (m *Pose) TypeID() uint32 { return PoseTypeID }

// ProtoMessage implements proto.Message.
func (m *Pose) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Pose) Reset() { *m = Pose{} }

// String implements proto.Message.
func (m *Pose) String() string { return proto.CompactTextString(m) }

// TypeIDs
const (
	RangeReadingTypeID uint32 = TypeIDKindEvent | GroupTelemetry | 0x0001
	ControlStateTypeID uint32 = TypeIDKindEvent | GroupTelemetry | 0x0002
	DriveOutputTypeID  uint32 = TypeIDKindEvent | GroupTelemetry | 0x0003
	BatteryStateTypeID uint32 = TypeIDKindEvent | GroupTelemetry | 0x0004
	PoseTypeID         uint32 = TypeIDKindEvent | GroupTelemetry | 0x0005
)

func init() {
	MessageTypes[RangeReadingTypeID] = (*RangeReading)(nil)
	MessageTypes[ControlStateTypeID] = (*ControlState)(nil)
	MessageTypes[DriveOutputTypeID] = (*DriveOutput)(nil)
	MessageTypes[BatteryStateTypeID] = (*BatteryState)(nil)
	MessageTypes[PoseTypeID] = (*Pose)(nil)
}
