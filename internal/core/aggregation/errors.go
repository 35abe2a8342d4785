package aggregation

import "errors"

var (
	// ErrNotFound means a Remove or Replace target is not in the aggregate.
	// The aggregate and its record store have drifted apart; only a backfill repairs it.
	ErrNotFound = errors.New("aggregate entry not found")

	// ErrInvalidBounds is returned for malformed or inverted range bounds.
	ErrInvalidBounds = errors.New("invalid aggregate bounds")

	// ErrInvalidKey is returned when an entry key does not match the aggregate shape.
	ErrInvalidKey = errors.New("invalid aggregate key")
)
