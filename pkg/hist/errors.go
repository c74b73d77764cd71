package hist

import "errors"

var (
	// ErrTruncated means a dump ended before all of its declared counts.
	ErrTruncated = errors.New("hist: truncated dump")

	// ErrTooLarge means a dump header declares more counts than can be
	// addressed.
	ErrTooLarge = errors.New("hist: histogram too large")

	// ErrEmpty is returned by queries that need at least one bin.
	ErrEmpty = errors.New("hist: empty histogram")

	// ErrOutOfRange is returned for coordinates or windows outside the
	// histogram.
	ErrOutOfRange = errors.New("hist: position out of range")
)
