package zpack

import (
	"encoding/binary"
	"math"
)

var le = binary.LittleEndian

func (p *Package) ReadUint8() uint8 { return p.take("read byte", 1)[0] }

func (p *Package) WriteUint8(v uint8) { p.grab(1)[0] = v }

func (p *Package) ReadInt8() int8 { return int8(p.ReadUint8()) }

func (p *Package) WriteInt8(v int8) { p.WriteUint8(uint8(v)) }

// ReadBool reads a single byte; any positive value is true.
func (p *Package) ReadBool() bool { return p.ReadInt8() > 0 }

func (p *Package) WriteBool(v bool) {
	if v {
		p.WriteUint8(1)
		return
	}
	p.WriteUint8(0)
}

func (p *Package) ReadInt16() int16 { return int16(p.ReadUint16()) }

func (p *Package) WriteInt16(v int16) { p.WriteUint16(uint16(v)) }

func (p *Package) ReadUint16() uint16 { return le.Uint16(p.take("read int16", 2)) }

func (p *Package) WriteUint16(v uint16) { le.PutUint16(p.grab(2), v) }

func (p *Package) ReadInt32() int32 { return int32(p.ReadUint32()) }

func (p *Package) WriteInt32(v int32) { p.WriteUint32(uint32(v)) }

// ReadUint32 reads the full unsigned 32-bit range, including values above
// 0x7FFFFFFF that the game stores through a signed field.
func (p *Package) ReadUint32() uint32 { return le.Uint32(p.take("read int32", 4)) }

func (p *Package) WriteUint32(v uint32) { le.PutUint32(p.grab(4), v) }

func (p *Package) ReadInt64() int64 { return int64(le.Uint64(p.take("read int64", 8))) }

func (p *Package) WriteInt64(v int64) { le.PutUint64(p.grab(8), uint64(v)) }

func (p *Package) ReadFloat32() float32 { return math.Float32frombits(p.ReadUint32()) }

func (p *Package) WriteFloat32(v float32) { p.WriteUint32(math.Float32bits(v)) }

func (p *Package) ReadFloat64() float64 { return math.Float64frombits(le.Uint64(p.take("read double", 8))) }

func (p *Package) WriteFloat64(v float64) { le.PutUint64(p.grab(8), math.Float64bits(v)) }

// ReadBytes returns a copy of the next n bytes.
func (p *Package) ReadBytes(n int) []byte {
	b := p.take("read bytes", n)
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (p *Package) WriteBytes(b []byte) { copy(p.grab(len(b)), b) }

// ReadByteArray reads an int32 length followed by that many bytes.
func (p *Package) ReadByteArray() []byte {
	n := p.ReadInt32()
	if n < 0 {
		p.pos -= 4
		p.fail("read byte array", ErrNegative)
	}
	return p.ReadBytes(int(n))
}

func (p *Package) WriteByteArray(b []byte) {
	p.WriteInt32(int32(len(b)))
	p.WriteBytes(b)
}
