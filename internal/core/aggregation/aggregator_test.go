package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOperators_Reduce(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		summary Summary
		want    decimal.Decimal
	}{
		{name: "count", op: OpCount, summary: Summary{Count: 3, Sum: decimal.NewFromInt(90)}, want: decimal.NewFromInt(3)},
		{name: "sum", op: OpSum, summary: Summary{Count: 3, Sum: decimal.NewFromInt(90)}, want: decimal.NewFromInt(90)},
		{name: "avg", op: OpAvg, summary: Summary{Count: 3, Sum: decimal.NewFromInt(100)}, want: decimal.RequireFromString("33.3333")},
		{name: "avg of empty range", op: OpAvg, summary: Summary{Sum: decimal.Zero}, want: decimal.Zero},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			op, ok := Operators[tc.op]
			require.True(t, ok)
			got := op.Reduce(tc.summary)
			require.True(t, tc.want.Equal(got), "want=%s got=%s", tc.want, got)
		})
	}
}

func TestValidOperator(t *testing.T) {
	require.True(t, ValidOperator(OpCount))
	require.True(t, ValidOperator(OpSum))
	require.True(t, ValidOperator(OpAvg))
	require.False(t, ValidOperator("min"))
	require.False(t, ValidOperator(""))
}
