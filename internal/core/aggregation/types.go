package aggregation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry is one record's contribution to an aggregate.
type Entry struct {
	Key   Key
	Value decimal.Decimal
}

func (e Entry) String() string {
	return fmt.Sprintf("%s=%s", e.Key, e.Value.String())
}

// Equal reports whether both entries carry the same key and value.
func (e Entry) Equal(o Entry) bool {
	return e.Key.Compare(o.Key) == 0 && e.Value.Equal(o.Value)
}

// Bound is one end of a range query.
type Bound struct {
	Key       Key
	Inclusive bool
}

// Bounds selects a key range. A nil side is unbounded. Prefix selects every
// entry whose leading components equal it and cannot be combined with Lower
// or Upper.
type Bounds struct {
	Lower  *Bound
	Upper  *Bound
	Prefix Key
}

// Between is shorthand for bounds with both ends set.
func Between(lower Key, lowerInclusive bool, upper Key, upperInclusive bool) Bounds {
	return Bounds{
		Lower: &Bound{Key: lower, Inclusive: lowerInclusive},
		Upper: &Bound{Key: upper, Inclusive: upperInclusive},
	}
}

// WithPrefix selects every entry starting with the given components.
func WithPrefix(prefix ...Component) Bounds {
	return Bounds{Prefix: Key(prefix)}
}

// Summary is the count and value sum of a set of entries.
type Summary struct {
	Count int64
	Sum   decimal.Decimal
}

func (s Summary) add(o Summary) Summary {
	return Summary{Count: s.Count + o.Count, Sum: s.Sum.Add(o.Sum)}
}

func (s Summary) sub(o Summary) Summary {
	return Summary{Count: s.Count - o.Count, Sum: s.Sum.Sub(o.Sum)}
}

// resolve validates bounds against the shape and expands Prefix.
func (b Bounds) resolve(shape Shape) (lower, upper *Bound, err error) {
	lower, upper = b.Lower, b.Upper
	if len(b.Prefix) > 0 {
		if lower != nil || upper != nil {
			return nil, nil, fmt.Errorf("%w: prefix cannot be combined with lower/upper", ErrInvalidBounds)
		}
		lower = &Bound{Key: b.Prefix, Inclusive: true}
		upper = &Bound{Key: b.Prefix, Inclusive: true}
	}
	if lower != nil {
		if err := shape.MatchPrefix(lower.Key); err != nil {
			return nil, nil, err
		}
	}
	if upper != nil {
		if err := shape.MatchPrefix(upper.Key); err != nil {
			return nil, nil, err
		}
	}
	if lower != nil && upper != nil {
		n := len(lower.Key)
		if len(upper.Key) < n {
			n = len(upper.Key)
		}
		if lower.Key.comparePrefix(upper.Key, n) > 0 {
			return nil, nil, fmt.Errorf("%w: lower %s is above upper %s", ErrInvalidBounds, lower.Key, upper.Key)
		}
	}
	return lower, upper, nil
}
