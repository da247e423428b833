// Package stream frames telemetry packets over a byte stream such as a
// serial port, a TCP connection or a log file.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxPacketSize bounds packets accepted by ReadPacket.
const MaxPacketSize = 1 << 16

// ReadWriter prefixes each packet with its 4-byte little-endian length.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// Writer returns a write-only ReadWriter, e.g. for a file.
func Writer(w io.Writer) *ReadWriter {
	return &ReadWriter{struct {
		io.Reader
		io.Writer
	}{eofReader{}, w}}
}

// Reader returns a read-only ReadWriter.
func Reader(r io.Reader) *ReadWriter {
	return &ReadWriter{struct {
		io.Reader
		io.Writer
	}{r, io.Discard}}
}

// ReadPacket reads one packet.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(p, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > MaxPacketSize {
		return nil, fmt.Errorf("packet too large: %d bytes", size)
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(p, pkt)
	return pkt, err
}

// WritePacket implements telemetry.Sink. The header and payload go out in
// a single Write.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	copy(buf[4:], pkt)
	_, err := p.Write(buf)
	return err
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
