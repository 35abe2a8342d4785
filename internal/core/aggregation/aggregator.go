package aggregation

import (
	"github.com/shopspring/decimal"
)

// Supported range operators.
const (
	OpCount = "count"
	OpSum   = "sum"
	OpAvg   = "avg"
)

// Operator reduces a range summary to one value.
// To add an operator: implement this interface and register it in Operators.
type Operator interface {
	Reduce(s Summary) decimal.Decimal
}

// Operators is the registry of range operators exposed over HTTP.
var Operators = map[string]Operator{
	OpCount: countOp{},
	OpSum:   sumOp{},
	OpAvg:   avgOp{},
}

// ValidOperator reports whether op is a registered range operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

type countOp struct{}

func (countOp) Reduce(s Summary) decimal.Decimal { return decimal.NewFromInt(s.Count) }

type sumOp struct{}

func (sumOp) Reduce(s Summary) decimal.Decimal { return s.Sum }

// avgOp is the mean entry value; zero for an empty range.
type avgOp struct{}

func (avgOp) Reduce(s Summary) decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.Sum.DivRound(decimal.NewFromInt(s.Count), 4)
}
