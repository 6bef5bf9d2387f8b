package save

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/valheim-save-tools/zpack"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Type discriminates the archive kinds. Each kind is stored under its own
// file extension.
type Type int

const (
	TypeUnknown Type = iota
	TypeMetadata
	TypeWorld
	TypeCharacter
	TypeJSON
)

var typeExtensions = map[Type]string{
	TypeMetadata:  "fwl",
	TypeWorld:     "db",
	TypeCharacter: "fch",
	TypeJSON:      "json",
}

// String returns the file extension of the type without the dot.
func (t Type) String() string {
	if ext, ok := typeExtensions[t]; ok {
		return ext
	}
	return "unknown"
}

// ParseType maps an extension, with or without a leading dot, to a Type.
func ParseType(ext string) (Type, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for t, e := range typeExtensions {
		if e == ext {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("%w: %q", ErrUnknownType, ext)
}

// TypeFromPath returns the Type of a file from its extension.
func TypeFromPath(path string) (Type, error) {
	return ParseType(filepath.Ext(path))
}

// Archive is one decoded save file: *Metadata, *World or *Character.
type Archive interface {
	Type() Type
	encode(p *zpack.Package) error
}

var (
	_ Archive = (*Metadata)(nil)
	_ Archive = (*World)(nil)
	_ Archive = (*Character)(nil)
)

// AsWorld returns a as a world database or ErrNotWorld.
func AsWorld(a Archive) (*World, error) {
	w, ok := a.(*World)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotWorld, a.Type())
	}
	return w, nil
}

// Decode parses data as an archive of type t.
func Decode(data []byte, t Type, hints ReaderHints) (Archive, error) {
	p := zpack.NewReader(data)
	a, err := decode(p, t, hints)
	if err != nil {
		return nil, err
	}
	if rem := p.Remaining(); rem > 0 {
		Logger().Debug("unread trailing bytes", zap.Stringer("type", t), zap.Int("remaining", rem))
	}
	return a, nil
}

func decode(p *zpack.Package, t Type, hints ReaderHints) (a Archive, err error) {
	defer zpack.Recover(&err)

	switch t {
	case TypeMetadata:
		return readMetadata(p, hints)
	case TypeWorld:
		return readWorld(p, hints)
	case TypeCharacter:
		return readCharacter(p, hints)
	default:
		return nil, fmt.Errorf("%w: cannot decode %s as a binary archive", ErrUnknownType, t)
	}
}

// Encode serialises a into its binary form.
func Encode(a Archive) (data []byte, err error) {
	defer zpack.Recover(&err)

	p := zpack.New()
	if err := a.encode(p); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// ReadFile reads the archive at path. The type is taken from the extension;
// .json files are loaded from a dump written by WriteFile.
func ReadFile(path string, hints ReaderHints) (Archive, error) {
	if err := hints.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reader hints: %w", err)
	}
	t, err := TypeFromPath(path)
	if err != nil {
		return nil, err
	}
	if t == TypeJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		return ReadJSON(data)
	}

	p, err := zpack.Open(path)
	if err != nil {
		return nil, err
	}
	// Close only releases the read-only mapping.
	defer func() { _ = p.Close() }()

	a, err := decode(p, t, hints)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return a, nil
}

// WriteFile writes a to path, as a JSON dump when path ends in .json and in
// the binary form otherwise. The file is replaced atomically.
func WriteFile(a Archive, path string) error {
	t, err := TypeFromPath(path)
	if err != nil {
		return err
	}

	var data []byte
	switch t {
	case TypeJSON:
		data, err = WriteJSON(a)
	case a.Type():
		data, err = Encode(a)
	default:
		return fmt.Errorf("cannot write %s archive to a .%s file", a.Type(), t)
	}
	if err != nil {
		return err
	}
	return atomicWrite(path, data, 0o644)
}

// atomicWrite writes data to a uniquely named temp file next to path, then
// renames it over path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			Logger().Warn("failed to remove temp file after rename failure",
				zap.String("path", tmp), zap.Error(removeErr))
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
