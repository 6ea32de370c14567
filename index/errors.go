package index

import "errors"

var (
	// ErrEmptyIndex indicates an index was built over zero rows.
	ErrEmptyIndex = errors.New("index has no rows")

	// ErrBadDimension indicates a vector does not match the index dimension.
	ErrBadDimension = errors.New("vector dimension mismatch")
)
