package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseWindowSize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSize  time.Duration
		wantError bool
	}{
		{name: "minute", input: "1m", wantSize: time.Minute},
		{name: "hour", input: "2h", wantSize: 2 * time.Hour},
		{name: "days suffix", input: "3d", wantSize: 72 * time.Hour},
		{name: "empty invalid", input: "", wantError: true},
		{name: "negative invalid", input: "-1m", wantError: true},
		{name: "zero invalid", input: "0m", wantError: true},
		{name: "bad day format invalid", input: "xd", wantError: true},
		{name: "unknown unit invalid", input: "10x", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ParseWindowSize(tc.input)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantSize, spec.Size)
		})
	}
}

func TestBucketFor(t *testing.T) {
	ts := time.Date(2026, 2, 11, 10, 35, 42, 123456789, time.UTC)

	require.Equal(t,
		time.Date(2026, 2, 11, 10, 35, 0, 0, time.UTC),
		BucketFor(ts, time.Minute),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC),
		BucketFor(ts, time.Hour),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		BucketFor(ts, 24*time.Hour),
	)
}

func TestTrailingWindows(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	current, previous := TrailingWindows(now, 30*24*time.Hour)

	boundary := now.Add(-30 * 24 * time.Hour)
	require.Equal(t, boundary, current.Start)
	require.Equal(t, now, current.End)
	require.Equal(t, boundary, previous.End)
	require.Equal(t, boundary.Add(-30*24*time.Hour), previous.Start)
	require.Equal(t, 30, current.Days())

	// The boundary instant belongs to the current window only.
	require.True(t, current.Contains(boundary))
	require.False(t, previous.Contains(boundary))
	require.True(t, current.Contains(now))
	require.False(t, current.Contains(now.Add(time.Millisecond)))
	require.True(t, previous.Contains(previous.Start))
	require.False(t, previous.Contains(previous.Start.Add(-time.Millisecond)))
}

func TestWindowBounds(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	current, previous := TrailingWindows(now, 24*time.Hour)
	agg := NewOrderedAggregate("bookings", Shape{KindString, KindNumber})

	for _, e := range []Entry{
		{Key: Key{String("completed"), Millis(now)}, Value: money(10)},
		{Key: Key{String("completed"), Millis(current.Start)}, Value: money(20)},
		{Key: Key{String("completed"), Millis(previous.Start)}, Value: money(40)},
		{Key: Key{String("active"), Millis(now)}, Value: money(80)},
	} {
		require.NoError(t, agg.Insert(e))
	}

	requireSum(t, agg, current.Bounds(String("completed")), 30)
	requireSum(t, agg, previous.Bounds(String("completed")), 40)
	requireSum(t, agg, current.Bounds(String("active")), 80)

	b := current.Bounds(String("completed"))
	require.Len(t, b.Lower.Key, 2)
	require.True(t, b.Lower.Inclusive)
	require.True(t, b.Upper.Inclusive)
	require.False(t, previous.Bounds().Upper.Inclusive)
}
