// Package msgs defines the telemetry messages a robot reports and the
// Frame envelope carrying them over a packet transport.
//
// Messages are proto3 encoded. A Frame carries the type ID of the
// enclosed message, a per publisher sequence number and the robot's
// millisecond clock at sampling time.
package msgs
