package save

import "github.com/dendrascience/valheim-save-tools/zpack"

// field is one entry of a record layout. It is read and written only for
// record versions in [since, until); a zero until means no upper bound.
type field[T any] struct {
	since int
	until int
	read  func(p *zpack.Package, r *T)
	write func(p *zpack.Package, r *T)
}

func (f field[T]) present(version int) bool {
	return version >= f.since && (f.until == 0 || version < f.until)
}

// layout lists a record's fields in stream order, each tagged with the
// version that introduced it.
type layout[T any] []field[T]

func (l layout[T]) read(p *zpack.Package, version int, r *T) {
	for _, f := range l {
		if f.present(version) {
			f.read(p, r)
		}
	}
}

func (l layout[T]) write(p *zpack.Package, version int, r *T) {
	for _, f := range l {
		if f.present(version) {
			f.write(p, r)
		}
	}
}
