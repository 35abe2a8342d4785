package aggregation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// valueOf reads the summed field of a record. Money columns are decimals;
// counters such as odometer readings arrive as plain numbers, and timestamps
// sum as epoch milliseconds.
func valueOf(fields map[string]interface{}, name string) (decimal.Decimal, error) {
	switch v := fields[name].(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, nil
		}
		return *v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case time.Time:
		return decimal.NewFromInt(v.UnixMilli()), nil
	case nil:
		return decimal.Zero, fmt.Errorf("field %q is missing", name)
	default:
		return decimal.Zero, fmt.Errorf("field %q has non-numeric type %T", name, v)
	}
}
