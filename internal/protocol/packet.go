package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortPacket is returned when a read runs past the end of the payload.
var ErrShortPacket = errors.New("packet too short")

// Packet reads and writes the binary payload of a single message. Integers are
// 32-bit big endian, strings are prefixed with a 16-bit big endian byte length.
type Packet struct {
	buf []byte
	pos int
}

// NewPacket wraps payload for reading. The payload is not copied.
func NewPacket(payload []byte) *Packet {
	return &Packet{buf: payload}
}

// Bytes returns the full payload regardless of the read position.
func (p *Packet) Bytes() []byte {
	return p.buf
}

// Remaining reports how many unread bytes are left.
func (p *Packet) Remaining() int {
	return len(p.buf) - p.pos
}

func (p *Packet) ReadInt() (int32, error) {
	if p.Remaining() < 4 {
		return 0, fmt.Errorf("reading int at %d: %w", p.pos, ErrShortPacket)
	}
	v := int32(binary.BigEndian.Uint32(p.buf[p.pos:]))
	p.pos += 4
	return v, nil
}

func (p *Packet) ReadString() (string, error) {
	if p.Remaining() < 2 {
		return "", fmt.Errorf("reading string length at %d: %w", p.pos, ErrShortPacket)
	}
	n := int(binary.BigEndian.Uint16(p.buf[p.pos:]))
	if p.Remaining()-2 < n {
		return "", fmt.Errorf("reading string of %d bytes at %d: %w", n, p.pos, ErrShortPacket)
	}
	s := string(p.buf[p.pos+2 : p.pos+2+n])
	p.pos += 2 + n
	return s, nil
}

func (p *Packet) AppendInt(v int32) *Packet {
	p.buf = binary.BigEndian.AppendUint32(p.buf, uint32(v))
	return p
}

// AppendString writes s with its length prefix. Strings longer than the
// prefix can describe are cut at the limit.
func (p *Packet) AppendString(s string) *Packet {
	if len(s) > math.MaxUint16 {
		s = s[:math.MaxUint16]
	}
	p.buf = binary.BigEndian.AppendUint16(p.buf, uint16(len(s)))
	p.buf = append(p.buf, s...)
	return p
}
