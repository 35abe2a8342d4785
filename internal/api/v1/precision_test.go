package v1

import (
	"testing"
	"time"

	"github.com/aevon-lab/fleetwise/internal/core/aggregation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// roundTrip mimics what Postgres returns for NUMERIC(14,2) and TIMESTAMPTZ.
func roundTripBooking(b Booking) Booking {
	b.DailyRate = b.DailyRate.Round(2)
	b.TotalAmount = b.TotalAmount.Round(2)
	b.StartDate = b.StartDate.Round(time.Microsecond)
	b.EndDate = b.EndDate.Round(time.Microsecond)
	return b
}

func roundTripVehicle(v Vehicle) Vehicle {
	v.AcquisitionCost = v.AcquisitionCost.Round(2)
	v.LastLocationUpdate = v.LastLocationUpdate.Round(time.Microsecond)
	v.LastOdometerUpdate = v.LastOdometerUpdate.Round(time.Microsecond)
	return v
}

func entryOf(t *testing.T, table string, rec Record) aggregation.Entry {
	t.Helper()
	repo, err := aggregation.NewFileSystemDefinitionRepository("", FieldCatalog())
	require.NoError(t, err)
	def, err := repo.Get(table)
	require.NoError(t, err)
	entry, err := def.EntryFor(rec.AggregateFields())
	require.NoError(t, err)
	return entry
}

func TestBookingNormalize_SurvivesStoreRoundTrip(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 999999600, time.UTC)
	b := Booking{
		VehicleID: "v1", CustomerName: "Ada", CustomerEmail: "ada@example.com",
		StartDate: start, EndDate: start.Add(72 * time.Hour),
		DailyRate: decimal.RequireFromString("33.335"), Status: BookingConfirmed,
	}

	raw := b
	raw.TotalAmount = PriceBooking(raw.StartDate, raw.EndDate, raw.DailyRate)
	stored := roundTripBooking(raw)
	require.False(t, entryOf(t, TableBookings, &raw).Equal(entryOf(t, TableBookings, &stored)))

	b.Normalize()
	b.TotalAmount = PriceBooking(b.StartDate, b.EndDate, b.DailyRate)
	require.Equal(t, "100.02", b.TotalAmount.String())

	stored = roundTripBooking(b)
	require.True(t, entryOf(t, TableBookings, &b).Equal(entryOf(t, TableBookings, &stored)))
	require.True(t, b.TotalAmount.Equal(stored.TotalAmount))
	require.True(t, b.EndDate.Equal(stored.EndDate))
}

func TestVehicleNormalize_SurvivesStoreRoundTrip(t *testing.T) {
	v := validVehicle()
	v.AcquisitionCost = decimal.RequireFromString("30000.005")
	v.LastLocationUpdate = time.Date(2026, 2, 1, 0, 0, 0, 999999600, time.UTC)
	v.LastOdometerUpdate = v.LastLocationUpdate

	stored := roundTripVehicle(v)
	require.False(t, entryOf(t, TableVehicles, &v).Equal(entryOf(t, TableVehicles, &stored)))

	v.Normalize()
	require.Equal(t, "30000.01", v.AcquisitionCost.String())
	stored = roundTripVehicle(v)
	require.True(t, entryOf(t, TableVehicles, &v).Equal(entryOf(t, TableVehicles, &stored)))
}

func TestMaintenanceNormalize(t *testing.T) {
	due := time.Date(2026, 5, 1, 12, 0, 0, 1500, time.FixedZone("EST", -5*3600))
	m := MaintenanceRecord{
		Date:           time.Date(2026, 2, 1, 0, 0, 0, 999, time.UTC),
		Cost:           decimal.RequireFromString("89.499"),
		NextServiceDue: &due,
	}
	m.Normalize()

	require.Equal(t, "89.5", m.Cost.String())
	require.Equal(t, 0, m.Date.Nanosecond())
	require.Equal(t, 1000, m.NextServiceDue.Nanosecond())
	require.Equal(t, time.UTC, m.NextServiceDue.Location())
	require.Equal(t, 1500, due.Nanosecond(), "caller's time is not modified")
}
