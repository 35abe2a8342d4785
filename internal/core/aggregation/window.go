package aggregation

import (
	"fmt"
	"math"
	"time"
)

// WindowSpec represents a parsed and validated window size.
type WindowSpec struct {
	Size time.Duration
}

// ParseWindowSize parses a duration string into a WindowSpec.
// Supports Go duration syntax (e.g., "10s", "1m", "1h") plus "Xd" for days.
func ParseWindowSize(s string) (WindowSpec, error) {
	if s == "" {
		return WindowSpec{}, fmt.Errorf("window_size must not be empty")
	}

	// time.ParseDuration has no day unit.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
		}
		if days <= 0 {
			return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
		}
		return WindowSpec{Size: time.Duration(days) * 24 * time.Hour}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
	}
	if d <= 0 {
		return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
	}
	return WindowSpec{Size: d}, nil
}

// BucketFor truncates a timestamp to the nearest granularity boundary.
// Daily revenue series are built from BucketFor(t, 24*time.Hour) buckets.
// Example: BucketFor(10:35:42, 1*time.Minute) → 10:35:00
func BucketFor(t time.Time, granularity time.Duration) time.Time {
	return t.Truncate(granularity)
}

// Window is a time range with independently inclusive ends.
type Window struct {
	Start          time.Time
	End            time.Time
	StartInclusive bool
	EndInclusive   bool
}

// TrailingWindows returns the current window [now-size, now] and the previous
// window [now-2*size, now-size). Together they partition the 2*size span
// with no instant counted twice.
func TrailingWindows(now time.Time, size time.Duration) (current, previous Window) {
	boundary := now.Add(-size)
	current = Window{Start: boundary, End: now, StartInclusive: true, EndInclusive: true}
	previous = Window{Start: boundary.Add(-size), End: boundary, StartInclusive: true, EndInclusive: false}
	return current, previous
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) || (!w.StartInclusive && t.Equal(w.Start)) {
		return false
	}
	if t.After(w.End) || (!w.EndInclusive && t.Equal(w.End)) {
		return false
	}
	return true
}

// Days returns the window length in whole days, rounded up.
func (w Window) Days() int {
	return int(math.Ceil(w.End.Sub(w.Start).Hours() / 24))
}

// Bounds converts the window to aggregate bounds over a timestamp component,
// after any leading prefix components (e.g. a status).
func (w Window) Bounds(prefix ...Component) Bounds {
	lower := append(append(Key{}, prefix...), Millis(w.Start))
	upper := append(append(Key{}, prefix...), Millis(w.End))
	return Between(lower, w.StartInclusive, upper, w.EndInclusive)
}
