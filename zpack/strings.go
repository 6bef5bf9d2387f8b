package zpack

import (
	"fmt"
	"io"
	"math"
)

// maxLengthGroups is the number of 7-bit groups a string length may span.
const maxLengthGroups = 5

// StringPair is one entry of an ordered string map.
type StringPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ReadLength reads a string length stored as 7-bit groups, least significant
// group first, with the top bit of each byte flagging a continuation.
func (p *Package) ReadLength() int {
	start := p.pos
	var n uint64
	for i := 0; ; i++ {
		if i == maxLengthGroups {
			p.pos = start
			p.fail("read string length", ErrOverflow)
		}
		b := p.ReadUint8()
		n |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	if n > math.MaxInt32 {
		p.pos = start
		p.fail("read string length", ErrOverflow)
	}
	return int(n)
}

// WriteLength writes n using the minimal number of 7-bit groups.
func (p *Package) WriteLength(n int) {
	if n < 0 {
		p.fail("write string length", ErrNegative)
	}
	v := uint32(n)
	for v >= 0x80 {
		p.WriteUint8(uint8(v) | 0x80)
		v >>= 7
	}
	p.WriteUint8(uint8(v))
}

func (p *Package) ReadString() string {
	start := p.pos
	n := p.ReadLength()
	if rem := p.Remaining(); n > rem {
		p.pos = start
		p.fail("read string", fmt.Errorf("length %d exceeds %d remaining bytes: %w", n, rem, io.ErrUnexpectedEOF))
	}
	return string(p.take("read string", n))
}

func (p *Package) WriteString(s string) {
	p.WriteLength(len(s))
	copy(p.grab(len(s)), s)
}

// ReadStringSet reads an int32 count followed by that many strings. Order is
// preserved and duplicates are kept as stored.
func (p *Package) ReadStringSet() []string {
	n := p.readCount32("read string set")
	out := make([]string, 0, min(n, p.Remaining()))
	for range n {
		out = append(out, p.ReadString())
	}
	return out
}

func (p *Package) WriteStringSet(s []string) {
	p.WriteInt32(int32(len(s)))
	for _, v := range s {
		p.WriteString(v)
	}
}

// ReadStringMap reads an int32 count followed by that many key/value string
// pairs.
func (p *Package) ReadStringMap() []StringPair {
	n := p.readCount32("read string map")
	out := make([]StringPair, 0, min(n, p.Remaining()))
	for range n {
		k := p.ReadString()
		out = append(out, StringPair{Key: k, Value: p.ReadString()})
	}
	return out
}

func (p *Package) WriteStringMap(m []StringPair) {
	p.WriteInt32(int32(len(m)))
	for _, kv := range m {
		p.WriteString(kv.Key)
		p.WriteString(kv.Value)
	}
}
