package zpack

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

const minGrow = 256

// Package is a little-endian cursor over a byte region.
type Package struct {
	buf      []byte
	pos      int
	readOnly bool

	file  *os.File
	unmap func() error
}

// New returns an empty writable package.
func New() *Package {
	return &Package{}
}

// NewReader returns a read-only package over b. The package does not copy b.
func NewReader(b []byte) *Package {
	return &Package{buf: b, readOnly: true}
}

// Open maps the file at path read-only. The mapping and the file handle are
// released by Close.
func Open(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, unmap, err := mapFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	return &Package{buf: data, readOnly: true, file: f, unmap: unmap}, nil
}

// Close releases the memory mapping of a package returned by Open. Calling
// Close on any other package is a no-op. A reader that was not consumed to
// the end logs the number of unread bytes.
func (p *Package) Close() error {
	if p.readOnly && p.pos < len(p.buf) {
		Logger().Debug("package not fully read", zap.Int("remaining", len(p.buf)-p.pos))
	}
	var err error
	if p.unmap != nil {
		err = p.unmap()
		p.unmap = nil
	}
	if p.file != nil {
		if cerr := p.file.Close(); err == nil {
			err = cerr
		}
		p.file = nil
	}
	p.buf = nil
	return err
}

// ReadOnly reports whether the package rejects writes.
func (p *Package) ReadOnly() bool { return p.readOnly }

// Position returns the cursor offset.
func (p *Package) Position() int { return p.pos }

// Len returns the size of the region for a reader, or the number of bytes
// written so far for a writer.
func (p *Package) Len() int { return len(p.buf) }

// Remaining returns the number of bytes between the cursor and the end of the
// region.
func (p *Package) Remaining() int { return len(p.buf) - p.pos }

// Seek moves the cursor to an absolute offset within the region.
func (p *Package) Seek(pos int) {
	if pos < 0 || pos > len(p.buf) {
		p.fail("seek", io.ErrUnexpectedEOF)
	}
	p.pos = pos
}

// Bytes returns the region of a reader or the written bytes of a writer.
// The slice aliases the package's storage.
func (p *Package) Bytes() []byte { return p.buf }

// WriteTo writes the package contents to w.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.buf)
	return int64(n), err
}

// take returns the next n bytes of the region and advances the cursor.
func (p *Package) take(op string, n int) []byte {
	if n < 0 {
		p.fail(op, ErrNegative)
	}
	if n > len(p.buf)-p.pos {
		p.fail(op, io.ErrUnexpectedEOF)
	}
	b := p.buf[p.pos : p.pos+n]
	p.pos += n
	return b
}

// grab returns n writable bytes at the cursor, growing the buffer as needed,
// and advances the cursor.
func (p *Package) grab(n int) []byte {
	if p.readOnly {
		p.fail("write", ErrReadOnly)
	}
	end := p.pos + n
	if end > len(p.buf) {
		if end > cap(p.buf) {
			size := max(2*cap(p.buf), end, minGrow)
			nb := make([]byte, len(p.buf), size)
			copy(nb, p.buf)
			p.buf = nb
		}
		p.buf = p.buf[:end]
	}
	b := p.buf[p.pos:end]
	p.pos = end
	return b
}
