package aggregation

import core "github.com/aevon-lab/fleetwise/internal/core/aggregation"

// Re-export core aggregation types so services depend on one package.
type (
	Bounds     = core.Bounds
	Bound      = core.Bound
	Key        = core.Key
	Component  = core.Component
	Entry      = core.Entry
	Summary    = core.Summary
	Shape      = core.Shape
	Definition = core.Definition
	Window     = core.Window
)

var (
	Between         = core.Between
	WithPrefix      = core.WithPrefix
	Number          = core.Number
	String          = core.String
	Millis          = core.Millis
	TrailingWindows = core.TrailingWindows
	BucketFor       = core.BucketFor
	ParseWindowSize = core.ParseWindowSize
	Operators       = core.Operators
	ValidOperator   = core.ValidOperator

	ErrNotFound      = core.ErrNotFound
	ErrInvalidBounds = core.ErrInvalidBounds
	ErrInvalidKey    = core.ErrInvalidKey
)
