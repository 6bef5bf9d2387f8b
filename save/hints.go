package save

import (
	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/pixil98/go-errors"
	"go.uber.org/zap"
)

// ReaderHints control how archives are decoded.
type ReaderHints struct {
	// ResolveNames turns stored hashes into names wherever Names knows them.
	ResolveNames bool
	// FailOnUnsupportedVersion makes a record version newer than the newest
	// supported one an error instead of a warning.
	FailOnUnsupportedVersion bool
	// Names is the reverse lookup table used when ResolveNames is set.
	Names *stablehash.Registry
}

// DefaultHints resolves names through the embedded registry and only warns
// about unsupported versions.
func DefaultHints() ReaderHints {
	return ReaderHints{
		ResolveNames: true,
		Names:        stablehash.Default(),
	}
}

// Validate reports inconsistent hint combinations.
func (h ReaderHints) Validate() error {
	el := errors.NewErrorList()
	if h.ResolveNames && h.Names == nil {
		el.Add(ErrMissingRegistry)
	}
	return el.Err()
}

func (h ReaderHints) lookup(hash int32) (string, bool) {
	if !h.ResolveNames {
		return "", false
	}
	return h.Names.Lookup(hash)
}

func (h ReaderHints) key(hash int32) Key {
	if name, ok := h.lookup(hash); ok {
		return NameKey(name)
	}
	return HashKey(hash)
}

// checkVersion compares a record version against the newest supported one.
func (h ReaderHints) checkVersion(record string, version, supported int) error {
	if version <= supported {
		return nil
	}
	if h.FailOnUnsupportedVersion {
		return &UnsupportedVersionError{Record: record, Version: version, Supported: supported}
	}
	Logger().Warn("record version is newer than supported",
		zap.String("record", record),
		zap.Int("version", version),
		zap.Int("supported", supported))
	return nil
}
