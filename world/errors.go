package world

import "errors"

// Sentinel errors for rule validation.
var (
	ErrNegativeThreshold = errors.New("threshold must not be negative")
	ErrEmptyName         = errors.New("name must not be empty")
)
