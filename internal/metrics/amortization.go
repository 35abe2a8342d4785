package metrics

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/shopspring/decimal"
)

// Amortization policy names accepted by ParsePolicy.
const (
	PolicyStraightLine = "straight_line"
	PolicyAgeWeighted  = "age_weighted"
)

// AmortizationPolicy decides how much of a vehicle's acquisition cost is
// charged against one month of operation.
type AmortizationPolicy interface {
	MonthlyCharge(v *v1.Vehicle, at time.Time) decimal.Decimal
}

// StraightLine spreads the acquisition cost evenly over Months.
type StraightLine struct {
	Months int
}

func (p StraightLine) MonthlyCharge(v *v1.Vehicle, _ time.Time) decimal.Decimal {
	return p.charge(v.AcquisitionCost)
}

// charge is linear in cost, so a fleet total can be charged in one step.
func (p StraightLine) charge(cost decimal.Decimal) decimal.Decimal {
	if p.Months <= 0 {
		return decimal.Zero
	}
	return cost.Div(decimal.NewFromInt(int64(p.Months))).Round(2)
}

// ageBand is an annual depreciation rate applied up to a vehicle age.
type ageBand struct {
	maxYears float64
	rate     decimal.Decimal
}

var defaultAgeBands = []ageBand{
	{maxYears: 1, rate: decimal.RequireFromString("0.25")},
	{maxYears: 3, rate: decimal.RequireFromString("0.15")},
	{maxYears: 5, rate: decimal.RequireFromString("0.10")},
	{maxYears: 0, rate: decimal.RequireFromString("0.05")},
}

// AgeWeighted depreciates young vehicles faster than old ones. Age runs from
// AcquiredAt, or from January 1st of the model year when that is unknown.
type AgeWeighted struct{}

func (AgeWeighted) MonthlyCharge(v *v1.Vehicle, at time.Time) decimal.Decimal {
	years := at.Sub(acquiredAt(v)).Hours() / (24 * 365)
	if years < 0 {
		years = 0
	}
	rate := defaultAgeBands[len(defaultAgeBands)-1].rate
	for _, band := range defaultAgeBands {
		if band.maxYears > 0 && years < band.maxYears {
			rate = band.rate
			break
		}
	}
	return v.AcquisitionCost.Mul(rate).Div(decimal.NewFromInt(12)).Round(2)
}

func acquiredAt(v *v1.Vehicle) time.Time {
	if !v.AcquiredAt.IsZero() {
		return v.AcquiredAt
	}
	return time.Date(v.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// ParsePolicy builds a policy from its configured name.
func ParsePolicy(name string, months int) (AmortizationPolicy, error) {
	switch name {
	case "", PolicyStraightLine:
		if months <= 0 {
			return nil, fmt.Errorf("amortization months must be positive, got %d", months)
		}
		return StraightLine{Months: months}, nil
	case PolicyAgeWeighted:
		return AgeWeighted{}, nil
	}
	return nil, fmt.Errorf("unknown amortization policy %q", name)
}
