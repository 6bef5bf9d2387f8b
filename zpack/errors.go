package zpack

import (
	"errors"
	"fmt"
)

// Sentinel errors for package zpack.
// These are wrapped by *ParseError and can be checked with errors.Is().
var (
	// Buffer access errors
	ErrReadOnly = errors.New("package is read-only")

	// Encoding errors
	ErrOverflow    = errors.New("length exceeds 5 groups")
	ErrCountRange  = errors.New("count out of encodable range")
	ErrInvalidChar = errors.New("invalid character lead byte")
	ErrNegative    = errors.New("negative length")
)

// ParseError reports a fatal codec failure and the cursor position at which
// it happened.
type ParseError struct {
	Op       string
	Position int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("zpack: %s at position %d: %v", e.Op, e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Recover converts a *ParseError panic raised by a Package into an error
// stored in *errp. Any other panic value is re-raised. It must be called
// directly by defer.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	pe, ok := r.(*ParseError)
	if !ok {
		panic(r)
	}
	*errp = pe
}

func (p *Package) fail(op string, err error) {
	panic(&ParseError{Op: op, Position: p.pos, Err: err})
}
