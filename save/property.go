package save

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/dendrascience/valheim-save-tools/zpack"
)

// Key identifies a property. It holds either the stored hash or a name whose
// stable hash is the stored hash, never both.
type Key struct {
	hash  int32
	name  string
	named bool
}

// HashKey returns a key for a hash with no known name.
func HashKey(h int32) Key {
	return Key{hash: h}
}

// NameKey returns a key for a property name.
func NameKey(name string) Key {
	return Key{hash: stablehash.Hash(name), name: name, named: true}
}

// Hash returns the on-disk hash of the key, whichever form it holds.
func (k Key) Hash() int32 { return k.hash }

// Name returns the property name if the key holds one.
func (k Key) Name() (string, bool) { return k.name, k.named }

// String renders a named key as its name and a hash key as #<hash>.
func (k Key) String() string {
	if k.named {
		return k.name
	}
	return "#" + strconv.FormatInt(int64(k.hash), 10)
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, error) {
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		h, err := strconv.ParseInt(rest, 10, 32)
		if err != nil {
			return Key{}, fmt.Errorf("invalid hash key %q: %w", s, err)
		}
		return HashKey(int32(h)), nil
	}
	return NameKey(s), nil
}

// Prop is a single keyed property value.
type Prop[T any] struct {
	Key   Key `json:"key"`
	Value T   `json:"value"`
}

// Props is an ordered property table. Order is kept so tables re-encode in
// the order they were read.
type Props[T any] []Prop[T]

// Get returns the value whose key has the same hash as k.
func (ps Props[T]) Get(k Key) (T, bool) {
	if i := ps.index(k.Hash()); i >= 0 {
		return ps[i].Value, true
	}
	var zero T
	return zero, false
}

// Has reports whether the table holds the hash h.
func (ps Props[T]) Has(h int32) bool {
	return ps.index(h) >= 0
}

// Set replaces the value stored under k's hash, or appends a new entry.
func (ps *Props[T]) Set(k Key, v T) {
	if i := ps.index(k.Hash()); i >= 0 {
		(*ps)[i] = Prop[T]{Key: k, Value: v}
		return
	}
	*ps = append(*ps, Prop[T]{Key: k, Value: v})
}

// Delete removes the entry stored under k's hash.
func (ps *Props[T]) Delete(k Key) bool {
	i := ps.index(k.Hash())
	if i < 0 {
		return false
	}
	*ps = append((*ps)[:i], (*ps)[i+1:]...)
	return true
}

func (ps Props[T]) index(h int32) int {
	for i, p := range ps {
		if p.Key.hash == h {
			return i
		}
	}
	return -1
}

func readProps[T any](p *zpack.Package, n int, hints ReaderHints, read func() T) Props[T] {
	if n == 0 {
		return nil
	}
	props := make(Props[T], 0, min(n, p.Remaining()))
	for range n {
		h := p.ReadInt32()
		props = append(props, Prop[T]{Key: hints.key(h), Value: read()})
	}
	return props
}

func writeProps[T any](p *zpack.Package, version int, props Props[T], write func(T)) {
	p.WriteCount(version, len(props))
	for _, prop := range props {
		p.WriteInt32(prop.Key.Hash())
		write(prop.Value)
	}
}
