package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKey_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{name: "equal scalars", a: Key{Number(5)}, b: Key{Number(5)}, want: 0},
		{name: "numeric order", a: Key{Number(2)}, b: Key{Number(10)}, want: -1},
		{name: "string byte order", a: Key{String("active")}, b: Key{String("completed")}, want: -1},
		{name: "uppercase before lowercase", a: Key{String("Z")}, b: Key{String("a")}, want: -1},
		{name: "first component decides", a: Key{String("confirmed"), Number(1)}, b: Key{String("completed"), Number(99)}, want: 1},
		{name: "second component breaks tie", a: Key{String("completed"), Number(7)}, b: Key{String("completed"), Number(3)}, want: 1},
		{name: "prefix orders first", a: Key{String("completed")}, b: Key{String("completed"), Number(0)}, want: -1},
		{name: "numbers before strings", a: Key{Number(1e12)}, b: Key{String("")}, want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Compare(tc.b))
			require.Equal(t, -tc.want, tc.b.Compare(tc.a))
		})
	}
}

func TestMillis(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, Number(float64(ts.UnixMilli())), Millis(ts))
}

func TestShape_Match(t *testing.T) {
	shape := Shape{KindString, KindNumber}

	require.NoError(t, shape.Match(Key{String("completed"), Number(1)}))
	require.ErrorIs(t, shape.Match(Key{String("completed")}), ErrInvalidKey)
	require.ErrorIs(t, shape.Match(Key{Number(1), Number(1)}), ErrInvalidKey)

	require.NoError(t, shape.MatchPrefix(Key{String("completed")}))
	require.ErrorIs(t, shape.MatchPrefix(Key{}), ErrInvalidBounds)
	require.ErrorIs(t, shape.MatchPrefix(Key{String("a"), Number(1), Number(2)}), ErrInvalidBounds)
	require.ErrorIs(t, shape.MatchPrefix(Key{Number(1)}), ErrInvalidBounds)
}

func TestShape_ParseKey(t *testing.T) {
	shape := Shape{KindString, KindNumber}

	key, err := shape.ParseKey("completed, 1700000000000")
	require.NoError(t, err)
	require.Equal(t, Key{String("completed"), Number(1700000000000)}, key)

	key, err = shape.ParseKey("active")
	require.NoError(t, err)
	require.Equal(t, Key{String("active")}, key)

	_, err = shape.ParseKey("completed,abc")
	require.ErrorIs(t, err, ErrInvalidBounds)

	_, err = shape.ParseKey("a,1,2")
	require.ErrorIs(t, err, ErrInvalidBounds)

	for _, raw := range []string{"completed,NaN", "completed,nan", "completed,Inf", "completed,-Inf", "completed,1e999"} {
		_, err = shape.ParseKey(raw)
		require.ErrorIs(t, err, ErrInvalidBounds, raw)
	}
}
