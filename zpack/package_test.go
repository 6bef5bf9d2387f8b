package zpack

import (
	"bytes"
	"crypto/sha512"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// decode runs fn against a reader over b and converts a codec panic to an
// error.
func decode(b []byte, fn func(p *Package)) (err error) {
	defer Recover(&err)
	fn(NewReader(b))
	return nil
}

func TestPrimitivesRoundTrip(t *testing.T) {
	w := New()
	w.WriteUint8(0xfe)
	w.WriteInt8(-3)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteInt16(-1234)
	w.WriteUint16(0xbeef)
	w.WriteInt32(math.MinInt32)
	w.WriteUint32(0xfffffff0)
	w.WriteInt64(-9876543210)
	w.WriteFloat32(3.5)
	w.WriteFloat64(-0.125)
	w.WriteByteArray([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if got := r.ReadUint8(); got != 0xfe {
		t.Errorf("ReadUint8() = %#x, want 0xfe", got)
	}
	if got := r.ReadInt8(); got != -3 {
		t.Errorf("ReadInt8() = %d, want -3", got)
	}
	if got := r.ReadBool(); !got {
		t.Errorf("ReadBool() = false, want true")
	}
	if got := r.ReadBool(); got {
		t.Errorf("ReadBool() = true, want false")
	}
	if got := r.ReadInt16(); got != -1234 {
		t.Errorf("ReadInt16() = %d, want -1234", got)
	}
	if got := r.ReadUint16(); got != 0xbeef {
		t.Errorf("ReadUint16() = %#x, want 0xbeef", got)
	}
	if got := r.ReadInt32(); got != math.MinInt32 {
		t.Errorf("ReadInt32() = %d, want %d", got, math.MinInt32)
	}
	if got := r.ReadUint32(); got != 0xfffffff0 {
		t.Errorf("ReadUint32() = %#x, want 0xfffffff0", got)
	}
	if got := r.ReadInt64(); got != -9876543210 {
		t.Errorf("ReadInt64() = %d, want -9876543210", got)
	}
	if got := r.ReadFloat32(); got != 3.5 {
		t.Errorf("ReadFloat32() = %v, want 3.5", got)
	}
	if got := r.ReadFloat64(); got != -0.125 {
		t.Errorf("ReadFloat64() = %v, want -0.125", got)
	}
	if got := r.ReadByteArray(); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("ReadByteArray() = %v, want [1 2 3]", got)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestLittleEndianLayout(t *testing.T) {
	w := New()
	w.WriteInt32(0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("WriteInt32() bytes = %v, want %v", w.Bytes(), want)
	}
}

func TestUint32HighRange(t *testing.T) {
	values := []uint32{0, 1, 0x7fffffff, 0x80000000, 0xdeadbeef, math.MaxUint32}
	for _, v := range values {
		w := New()
		w.WriteUint32(v)
		if got := NewReader(w.Bytes()).ReadUint32(); got != v {
			t.Errorf("ReadUint32() = %#x, want %#x", got, v)
		}
	}
}

func TestGrowthPreservesBytes(t *testing.T) {
	w := New()
	for i := range 10000 {
		w.WriteInt32(int32(i))
	}
	if w.Len() != 40000 {
		t.Fatalf("Len() = %d, want 40000", w.Len())
	}
	if w.Position() != 40000 {
		t.Fatalf("Position() = %d, want 40000", w.Position())
	}
	r := NewReader(w.Bytes())
	for i := range 10000 {
		if got := r.ReadInt32(); got != int32(i) {
			t.Fatalf("value %d = %d after growth", i, got)
		}
	}
}

func TestReadPastEnd(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(p *Package)
	}{
		{"int32 from 3 bytes", []byte{1, 2, 3}, func(p *Package) { p.ReadInt32() }},
		{"int64 from empty", nil, func(p *Package) { p.ReadInt64() }},
		{"string longer than buffer", []byte{5, 'a', 'b'}, func(p *Package) { p.ReadString() }},
		{"byte array longer than buffer", []byte{9, 0, 0, 0, 1}, func(p *Package) { p.ReadByteArray() }},
		{"framed object longer than buffer", []byte{8, 0, 0, 0, 1, 2}, func(p *Package) {
			p.ReadFramed(func(*Package) error { return nil })
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(tt.data, tt.read)
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("error = %v, want io.ErrUnexpectedEOF", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a *ParseError", err)
			}
		})
	}
}

func TestWriteToReader(t *testing.T) {
	err := decode([]byte{0}, func(p *Package) { p.WriteInt32(1) })
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", err)
	}
}

func TestRecoverRepanicsForeignValues(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recover() = %v, want boom", r)
		}
	}()
	func() (err error) {
		defer Recover(&err)
		panic("boom")
	}()
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	w := New()
	w.WriteString("hello world")
	w.WriteInt32(42)
	path := filepath.Join(tmpDir, "sample.bin")
	if err := os.WriteFile(path, w.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !p.ReadOnly() {
		t.Error("Open() returned a writable package")
	}
	if got := p.ReadString(); got != "hello world" {
		t.Errorf("ReadString() = %q, want %q", got, "hello world")
	}
	if got := p.ReadInt32(); got != 42 {
		t.Errorf("ReadInt32() = %d, want 42", got)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	empty := filepath.Join(tmpDir, "empty.bin")
	os.WriteFile(empty, nil, 0644)
	p, err = Open(empty)
	if err != nil {
		t.Fatalf("Open(empty) error = %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	p.Close()

	if _, err := Open(filepath.Join(tmpDir, "missing.bin")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestReadFramedDrift(t *testing.T) {
	w := New()
	w.WriteFramed(func(sub *Package) error {
		sub.WriteInt32(7)
		sub.WriteInt32(8) // unknown newer field
		return nil
	})
	w.WriteInt32(99)

	tests := []struct {
		name  string
		inner func(p *Package)
	}{
		{"under-read", func(p *Package) { p.ReadInt32() }},
		{"exact", func(p *Package) { p.ReadInt32(); p.ReadInt32() }},
		{"over-read", func(p *Package) { p.ReadInt32(); p.ReadInt32(); p.ReadInt16() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(w.Bytes())
			err := r.ReadFramed(func(p *Package) error {
				tt.inner(p)
				return nil
			})
			if err != nil {
				t.Fatalf("ReadFramed() error = %v", err)
			}
			if r.Position() != 12 {
				t.Errorf("Position() = %d, want 12", r.Position())
			}
			if got := r.ReadInt32(); got != 99 {
				t.Errorf("value after frame = %d, want 99", got)
			}
		})
	}
}

func TestReadFramedPassesError(t *testing.T) {
	w := New()
	w.WriteFramed(func(sub *Package) error {
		sub.WriteInt64(1)
		return nil
	})
	sentinel := errors.New("unsupported")
	r := NewReader(w.Bytes())
	err := r.ReadFramed(func(*Package) error { return sentinel })
	if err != sentinel {
		t.Errorf("ReadFramed() error = %v, want %v", err, sentinel)
	}
	if r.Position() != 12 {
		t.Errorf("Position() = %d, want 12", r.Position())
	}
}

func TestWriteHashedFramed(t *testing.T) {
	w := New()
	err := w.WriteHashedFramed(func(sub *Package) error {
		sub.WriteString("character")
		return nil
	})
	if err != nil {
		t.Fatalf("WriteHashedFramed() error = %v", err)
	}

	block := append([]byte{9}, "character"...)
	sum := sha512.Sum512(block)

	var want bytes.Buffer
	want.Write([]byte{10, 0, 0, 0})
	want.Write(block)
	want.Write([]byte{64, 0, 0, 0})
	want.Write(sum[:])
	if !bytes.Equal(w.Bytes(), want.Bytes()) {
		t.Errorf("WriteHashedFramed() = %x, want %x", w.Bytes(), want.Bytes())
	}

	r := NewReader(w.Bytes())
	var got string
	r.ReadFramed(func(p *Package) error {
		got = p.ReadString()
		return nil
	})
	r.SkipTrailer()
	if got != "character" || r.Remaining() != 0 {
		t.Errorf("read back %q with %d bytes left", got, r.Remaining())
	}
}

func TestCompressedPackage(t *testing.T) {
	w := New()
	payload := bytes.Repeat([]byte{0, 1}, 1024)
	err := w.WriteCompressed(func(sub *Package) error {
		sub.WriteInt32(64)
		sub.WriteBytes(payload)
		return nil
	})
	if err != nil {
		t.Fatalf("WriteCompressed() error = %v", err)
	}
	if w.Len() >= len(payload) {
		t.Errorf("compressed size %d not smaller than payload %d", w.Len(), len(payload))
	}

	r := NewReader(w.Bytes())
	sub, blob := r.ReadCompressed()
	if len(blob)+4 != w.Len() {
		t.Errorf("raw blob size = %d, want %d", len(blob), w.Len()-4)
	}
	if got := sub.ReadInt32(); got != 64 {
		t.Errorf("ReadInt32() = %d, want 64", got)
	}
	if got := sub.ReadBytes(len(payload)); !bytes.Equal(got, payload) {
		t.Error("decompressed payload mismatch")
	}
}

func TestCorruptCompressedPackage(t *testing.T) {
	w := New()
	w.WriteByteArray([]byte("definitely not gzip"))
	err := decode(w.Bytes(), func(p *Package) { p.ReadCompressed() })
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Position != 0 {
		t.Errorf("ReadCompressed() error = %v, want *ParseError at 0", err)
	}
}

func TestVectors(t *testing.T) {
	w := New()
	w.WriteVector3(Vector3{1, 2, 3})
	w.WriteQuaternion(Quaternion{0, 0, 0, 1})
	w.WriteVector2i(Vector2i{-5, 7})
	w.WriteVector2s(Vector2i{-2, 3})
	if w.Len() != 12+16+8+4 {
		t.Fatalf("Len() = %d, want 40", w.Len())
	}
	r := NewReader(w.Bytes())
	if got := r.ReadVector3(); got != (Vector3{1, 2, 3}) {
		t.Errorf("ReadVector3() = %v", got)
	}
	if got := r.ReadQuaternion(); got != (Quaternion{0, 0, 0, 1}) {
		t.Errorf("ReadQuaternion() = %v", got)
	}
	if got := r.ReadVector2i(); got != (Vector2i{-5, 7}) {
		t.Errorf("ReadVector2i() = %v", got)
	}
	if got := r.ReadVector2s(); got != (Vector2i{-2, 3}) {
		t.Errorf("ReadVector2s() = %v", got)
	}
}
