package zpack

import "fmt"

// CompactCountVersion is the first world version that stores item counts in
// the compact one-or-two byte form.
const CompactCountVersion = 33

const (
	maxCharCount    = 0x1FFFFF
	maxCompactCount = 0x7FFF
)

// ReadCount reads an item count in the encoding used by the given world
// version.
func (p *Package) ReadCount(version int) int {
	if version < CompactCountVersion {
		return p.ReadChar()
	}
	n := int(p.ReadUint8())
	if n&0x80 != 0 {
		n = (n&0x7f)<<8 | int(p.ReadUint8())
	}
	return n
}

// WriteCount writes an item count in the encoding used by the given world
// version.
func (p *Package) WriteCount(version, n int) {
	if version < CompactCountVersion {
		p.WriteChar(n)
		return
	}
	switch {
	case n < 0 || n > maxCompactCount:
		p.fail("write count", fmt.Errorf("%d: %w", n, ErrCountRange))
	case n < 0x80:
		p.WriteUint8(uint8(n))
	default:
		p.WriteUint8(uint8(n>>8) | 0x80)
		p.WriteUint8(uint8(n))
	}
}

// ReadChar decodes a single character written with the UTF-8 byte layout.
// Older worlds used this to store 16-bit item counts.
func (p *Package) ReadChar() int {
	start := p.pos
	first := int(p.ReadUint8())
	switch {
	case first&0x80 == 0:
		return first
	case first&0xE0 == 0xC0:
		return (first&0x1F)<<6 | p.continuation()
	case first&0xF0 == 0xE0:
		hi := (first & 0x0F) << 12
		mid := p.continuation() << 6
		return hi | mid | p.continuation()
	case first&0xF8 == 0xF0:
		hi := (first & 0x07) << 18
		b2 := p.continuation() << 12
		b3 := p.continuation() << 6
		return hi | b2 | b3 | p.continuation()
	}
	p.pos = start
	p.fail("read char", fmt.Errorf("0x%02x: %w", first, ErrInvalidChar))
	return 0
}

func (p *Package) continuation() int {
	return int(p.ReadUint8()) & 0x3F
}

// WriteChar encodes n with the UTF-8 byte layout, using up to four bytes.
func (p *Package) WriteChar(n int) {
	switch {
	case n < 0 || n > maxCharCount:
		p.fail("write char", fmt.Errorf("%d: %w", n, ErrCountRange))
	case n <= 0x7F:
		p.WriteUint8(uint8(n))
	case n <= 0x7FF:
		p.WriteUint8(uint8(n>>6) | 0xC0)
		p.WriteUint8(uint8(n&0x3F) | 0x80)
	case n <= 0xFFFF:
		p.WriteUint8(uint8(n>>12)&0x0F | 0xE0)
		p.WriteUint8(uint8(n>>6)&0x3F | 0x80)
		p.WriteUint8(uint8(n&0x3F) | 0x80)
	default:
		p.WriteUint8(uint8(n>>18)&0x07 | 0xF0)
		p.WriteUint8(uint8(n>>12)&0x3F | 0x80)
		p.WriteUint8(uint8(n>>6)&0x3F | 0x80)
		p.WriteUint8(uint8(n&0x3F) | 0x80)
	}
}

// readCount32 reads a non-negative int32 element count.
func (p *Package) readCount32(op string) int {
	n := p.ReadInt32()
	if n < 0 {
		p.pos -= 4
		p.fail(op, fmt.Errorf("count %d: %w", n, ErrNegative))
	}
	return int(n)
}

// ReadCount32 reads a non-negative int32 element count.
func (p *Package) ReadCount32() int {
	return p.readCount32("read count")
}
