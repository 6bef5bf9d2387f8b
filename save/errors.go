package save

import (
	"errors"
	"fmt"
)

// Sentinel errors for package save.
var (
	ErrUnknownType     = errors.New("unknown archive type")
	ErrNotWorld        = errors.New("archive is not a world database")
	ErrMissingRegistry = errors.New("name resolution requires a name registry")
)

// UnsupportedVersionError is returned when a record declares a format version
// newer than the last one this package understands and the reader was asked
// to fail on unsupported versions.
type UnsupportedVersionError struct {
	Record    string
	Version   int
	Supported int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s version %d is newer than supported version %d", e.Record, e.Version, e.Supported)
}
