package zpack

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// ReadCompressed reads a length-prefixed gzip blob and returns a reader over
// the decompressed bytes together with the raw blob.
func (p *Package) ReadCompressed() (*Package, []byte) {
	start := p.pos
	blob := p.ReadByteArray()
	data, err := Decompress(blob)
	if err != nil {
		p.pos = start
		p.fail("read compressed package", err)
	}
	return NewReader(data), blob
}

// WriteCompressed serialises fn into a scratch package, gzips it and writes
// the result as a length-prefixed blob.
func (p *Package) WriteCompressed(fn func(*Package) error) error {
	if p.readOnly {
		p.fail("write compressed package", ErrReadOnly)
	}
	sub := New()
	if err := fn(sub); err != nil {
		return err
	}
	blob, err := Compress(sub.Bytes())
	if err != nil {
		return err
	}
	p.WriteRaw(blob)
	return nil
}

// WriteRaw writes an already compressed blob length-prefixed, exactly as
// ReadCompressed returned it.
func (p *Package) WriteRaw(blob []byte) {
	p.WriteByteArray(blob)
}

// Compress gzips data with the default compression level.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates a gzip blob.
func Decompress(blob []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
