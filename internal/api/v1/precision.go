package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places money columns keep.
const MoneyScale = 2

// Money rounds an amount to the scale it is stored with.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// StoredTime truncates t to the microsecond resolution of TIMESTAMPTZ, in UTC.
// Aggregate keys derived from a record must survive a store round trip.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Normalize brings money and timestamps to their stored precision.
func (v *Vehicle) Normalize() {
	v.AcquisitionCost = Money(v.AcquisitionCost)
	v.LastLocationUpdate = StoredTime(v.LastLocationUpdate)
	v.LastOdometerUpdate = StoredTime(v.LastOdometerUpdate)
	if !v.AcquiredAt.IsZero() {
		v.AcquiredAt = StoredTime(v.AcquiredAt)
	}
}

// Normalize brings money and timestamps to their stored precision.
func (b *Booking) Normalize() {
	b.StartDate = StoredTime(b.StartDate)
	b.EndDate = StoredTime(b.EndDate)
	b.DailyRate = Money(b.DailyRate)
	b.TotalAmount = Money(b.TotalAmount)
}

// Normalize brings money and timestamps to their stored precision.
func (m *MaintenanceRecord) Normalize() {
	m.Date = StoredTime(m.Date)
	m.Cost = Money(m.Cost)
	if m.NextServiceDue != nil {
		due := StoredTime(*m.NextServiceDue)
		m.NextServiceDue = &due
	}
}
