package metrics

import (
	"math"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Trend is the percent change from previous to current, rounded to one
// decimal. A zero baseline means no comparable prior data and yields 0.
func Trend(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1).InexactFloat64()
}

// signedTrend divides by |previous| so values that can go negative (profit)
// still trend upwards when they improve.
func signedTrend(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).Round(1).InexactFloat64()
}

// percentOf returns part/whole in percent, 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(2).InexactFloat64()
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }

func round2(f float64) float64 { return math.Round(f*100) / 100 }

// overlapDays counts the started days a booking occupies inside w.
func overlapDays(b *v1.Booking, w aggregation.Window) int64 {
	if b.EndDate.Before(w.Start) {
		return 0
	}
	if b.StartDate.After(w.End) || (!w.EndInclusive && b.StartDate.Equal(w.End)) {
		return 0
	}
	start, end := b.StartDate, b.EndDate
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	days := math.Ceil(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int64(days)
}

// rentalDays sums overlap days of every booking overlapping w, whatever its
// status.
func rentalDays(bookings []*v1.Booking, w aggregation.Window) int64 {
	var total int64
	for _, b := range bookings {
		total += overlapDays(b, w)
	}
	return total
}

// utilization is rented days over possible days in percent.
func utilization(days int64, w aggregation.Window, vehicles int64) float64 {
	possible := float64(w.Days()) * float64(vehicles)
	if possible <= 0 {
		return 0
	}
	return float64(days) / possible * 100
}

func daysBetween(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	return int64(to.Sub(from).Hours() / 24)
}
