package aggregation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the type of a single key component.
type Kind int

const (
	KindNumber Kind = iota
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Component is one element of a sort key.
// Numbers order before strings when kinds differ.
type Component struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric key component.
func Number(v float64) Component { return Component{kind: KindNumber, num: v} }

// String returns a string key component. Strings compare by byte order.
func String(v string) Component { return Component{kind: KindString, str: v} }

// Millis returns a numeric component holding t as Unix milliseconds.
func Millis(t time.Time) Component { return Number(float64(t.UnixMilli())) }

// Kind reports the component kind.
func (c Component) Kind() Kind { return c.kind }

// Compare returns -1, 0 or 1.
func (c Component) Compare(o Component) int {
	if c.kind != o.kind {
		if c.kind < o.kind {
			return -1
		}
		return 1
	}
	switch c.kind {
	case KindNumber:
		switch {
		case c.num < o.num:
			return -1
		case c.num > o.num:
			return 1
		}
		return 0
	default:
		return strings.Compare(c.str, o.str)
	}
}

func (c Component) String() string {
	if c.kind == KindString {
		return strconv.Quote(c.str)
	}
	return strconv.FormatFloat(c.num, 'f', -1, 64)
}

// Key is a scalar (one component) or tuple sort key.
type Key []Component

// Compare orders keys lexicographically. A key that is a strict prefix of
// the other orders first.
func (k Key) Compare(o Key) int {
	n := len(k)
	if len(o) < n {
		n = len(o)
	}
	if c := k.comparePrefix(o, n); c != 0 {
		return c
	}
	switch {
	case len(k) < len(o):
		return -1
	case len(k) > len(o):
		return 1
	}
	return 0
}

// comparePrefix compares only the first n components of both keys.
func (k Key) comparePrefix(o Key, n int) int {
	for i := 0; i < n; i++ {
		if c := k[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	return 0
}

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, c := range k {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Shape is the ordered list of component kinds an aggregate accepts.
type Shape []Kind

// Match reports whether key has exactly this shape.
func (s Shape) Match(key Key) error {
	if len(key) != len(s) {
		return fmt.Errorf("%w: key %s has %d components, want %d", ErrInvalidKey, key, len(key), len(s))
	}
	return s.matchPrefix(key, ErrInvalidKey)
}

// MatchPrefix reports whether key is a non-empty prefix of this shape.
func (s Shape) MatchPrefix(key Key) error {
	if len(key) == 0 || len(key) > len(s) {
		return fmt.Errorf("%w: bound %s must have 1..%d components", ErrInvalidBounds, key, len(s))
	}
	return s.matchPrefix(key, ErrInvalidBounds)
}

func (s Shape) matchPrefix(key Key, sentinel error) error {
	for i, c := range key {
		if c.kind != s[i] {
			return fmt.Errorf("%w: component %d of %s is a %s, want %s", sentinel, i, key, c.kind, s[i])
		}
	}
	return nil
}

// ParseKey parses comma-separated components against the shape. The input
// may hold fewer components than the shape (a prefix).
func (s Shape) ParseKey(raw string) (Key, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > len(s) {
		return nil, fmt.Errorf("%w: %q has %d components, shape has %d", ErrInvalidBounds, raw, len(parts), len(s))
	}
	key := make(Key, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		switch s[i] {
		case KindNumber:
			v, err := strconv.ParseFloat(p, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: component %d %q is not a finite number", ErrInvalidBounds, i, p)
			}
			key = append(key, Number(v))
		default:
			key = append(key, String(p))
		}
	}
	return key, nil
}
