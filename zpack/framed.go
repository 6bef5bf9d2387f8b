package zpack

import (
	"crypto/sha512"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ReadFramed reads an int32 byte count and runs fn on the following block.
// When fn does not end exactly at the end of the block the drift is logged
// and the cursor is moved to the block end. The error returned by fn is
// passed through after the cursor has been resynchronised.
func (p *Package) ReadFramed(fn func(*Package) error) error {
	count := p.ReadInt32()
	start := p.pos
	if count < 0 || int(count) > len(p.buf)-start {
		p.pos = start - 4
		p.fail("read framed object", fmt.Errorf("size %d with %d bytes remaining: %w", count, len(p.buf)-start, io.ErrUnexpectedEOF))
	}
	end := start + int(count)

	err := fn(p)

	if p.pos != end {
		Logger().Debug("framed object drift",
			zap.Int("position", start),
			zap.Int32("size", count),
			zap.Int("delta", p.pos-end))
		p.pos = end
	}
	return err
}

// WriteFramed serialises fn into a scratch package and writes its length
// followed by its bytes.
func (p *Package) WriteFramed(fn func(*Package) error) error {
	_, err := p.writeFramed(fn)
	return err
}

// WriteHashedFramed writes a framed block like WriteFramed and then appends
// the SHA-512 digest of the block bytes as a length-prefixed byte array.
func (p *Package) WriteHashedFramed(fn func(*Package) error) error {
	block, err := p.writeFramed(fn)
	if err != nil {
		return err
	}
	sum := sha512.Sum512(block)
	p.WriteByteArray(sum[:])
	return nil
}

func (p *Package) writeFramed(fn func(*Package) error) ([]byte, error) {
	if p.readOnly {
		p.fail("write framed object", ErrReadOnly)
	}
	sub := New()
	if err := fn(sub); err != nil {
		return nil, err
	}
	p.WriteInt32(int32(sub.Len()))
	p.WriteBytes(sub.Bytes())
	return sub.Bytes(), nil
}

// SkipTrailer reads and discards a length-prefixed trailer such as the digest
// written by WriteHashedFramed. The digest is not verified.
func (p *Package) SkipTrailer() {
	n := p.readCount32("skip trailer")
	p.take("skip trailer", n)
}
