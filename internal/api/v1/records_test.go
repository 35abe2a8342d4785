package v1

import (
	"testing"
	"time"

	"github.com/aevon-lab/fleetwise/internal/core/aggregation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validVehicle() Vehicle {
	return Vehicle{
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2022,
		LicensePlate:       "ABC-123",
		VIN:                "1HGBH41JXMN109186",
		AcquisitionCost:    decimal.NewFromInt(25000),
		Category:           CategoryEconomy,
		Status:             VehicleAvailable,
		CurrentLatitude:    40.7128,
		CurrentLongitude:   -74.0060,
		LastLocationUpdate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestVehicle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Vehicle)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Vehicle) {}},
		{name: "missing make", mutate: func(v *Vehicle) { v.Make = "" }, wantErr: true},
		{name: "bad year", mutate: func(v *Vehicle) { v.Year = 1850 }, wantErr: true},
		{name: "negative cost", mutate: func(v *Vehicle) { v.AcquisitionCost = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "unknown category", mutate: func(v *Vehicle) { v.Category = "Boats" }, wantErr: true},
		{name: "unknown status", mutate: func(v *Vehicle) { v.Status = "stolen" }, wantErr: true},
		{name: "latitude out of range", mutate: func(v *Vehicle) { v.CurrentLatitude = 91 }, wantErr: true},
		{name: "missing location timestamp", mutate: func(v *Vehicle) { v.LastLocationUpdate = time.Time{} }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validVehicle()
			tc.mutate(&v)
			err := v.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBooking_ValidateAndPrice(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	b := Booking{
		VehicleID:     "v1",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		StartDate:     start,
		EndDate:       start.Add(49 * time.Hour),
		DailyRate:     decimal.NewFromInt(45),
		Status:        BookingConfirmed,
	}
	b.TotalAmount = PriceBooking(b.StartDate, b.EndDate, b.DailyRate)
	require.NoError(t, b.Validate())

	// 49 hours bills as three started days.
	require.Equal(t, int64(3), RentalDays(b.StartDate, b.EndDate))
	require.True(t, decimal.NewFromInt(135).Equal(b.TotalAmount))

	b.EndDate = b.StartDate
	require.Error(t, b.Validate())
}

func TestMaintenanceRecord_Validate(t *testing.T) {
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	before := date.Add(-time.Hour)
	m := MaintenanceRecord{VehicleID: "v1", Date: date, Type: "Oil Change", Cost: decimal.NewFromInt(80)}
	require.NoError(t, m.Validate())

	m.NextServiceDue = &before
	require.Error(t, m.Validate())
}

func TestAggregateFieldsMatchCatalog(t *testing.T) {
	catalog := FieldCatalog()
	v := validVehicle()
	b := Booking{Status: BookingCompleted}
	m := MaintenanceRecord{}

	records := map[string]Record{
		TableVehicles:    &v,
		TableBookings:    &b,
		TableMaintenance: &m,
	}
	for table, rec := range records {
		fields := rec.AggregateFields()
		for name := range catalog[table] {
			_, ok := fields[name]
			require.True(t, ok, "%s.%s missing from AggregateFields", table, name)
		}
	}

	repo, err := aggregation.NewFileSystemDefinitionRepository("", catalog)
	require.NoError(t, err)
	def, err := repo.Get(TableBookings)
	require.NoError(t, err)
	entry, err := def.EntryFor(b.AggregateFields())
	require.NoError(t, err)
	require.Equal(t, aggregation.String("completed"), entry.Key[0])
}
