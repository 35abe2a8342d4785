package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func vehicle(id, plate string) *v1.Vehicle {
	return &v1.Vehicle{
		ID: id, Make: "Toyota", Model: "Corolla", Year: 2022, LicensePlate: plate, VIN: "VIN-" + id,
		AcquisitionCost: decimal.NewFromInt(20000), Category: v1.CategoryEconomy, Status: v1.VehicleAvailable,
		LastLocationUpdate: base, LastOdometerUpdate: base,
	}
}

func booking(id, vehicleID string, start time.Time, days int, status v1.BookingStatus) *v1.Booking {
	return &v1.Booking{
		ID: id, VehicleID: vehicleID, CustomerName: "Jane", CustomerEmail: "jane@example.com",
		StartDate: start, EndDate: start.Add(time.Duration(days) * 24 * time.Hour),
		DailyRate: decimal.NewFromInt(50), TotalAmount: decimal.NewFromInt(int64(50 * days)), Status: status,
	}
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.WithTx(ctx, func(tx storage.RecordTx) error {
		if err := tx.InsertVehicle(ctx, vehicle("v1", "AAA-1")); err != nil {
			return err
		}
		if err := tx.InsertVehicle(ctx, vehicle("v2", "BBB-2")); err != nil {
			return err
		}
		if err := tx.InsertBooking(ctx, booking("b1", "v1", base, 2, v1.BookingCompleted)); err != nil {
			return err
		}
		if err := tx.InsertBooking(ctx, booking("b2", "v1", base.Add(5*24*time.Hour), 3, v1.BookingActive)); err != nil {
			return err
		}
		return tx.InsertMaintenance(ctx, &v1.MaintenanceRecord{
			ID: "m1", VehicleID: "v1", Date: base, Type: "Oil Change", Cost: decimal.NewFromInt(80),
		})
	}))
}

func TestStore_WithTxRollsBackEveryWrite(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx storage.RecordTx) error {
		b, err := tx.GetBooking(ctx, "b1")
		if err != nil {
			return err
		}
		b.Status = v1.BookingCancelled
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.DeleteVehicle(ctx, "v2"); err != nil {
			return err
		}
		if err := tx.InsertLocationPoint(ctx, v1.LocationPoint{VehicleID: "v1", Timestamp: base}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	b, err := s.GetBooking(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, v1.BookingCompleted, b.Status)
	_, err = s.GetVehicle(ctx, "v2")
	require.NoError(t, err)
	points, err := s.ListLocationHistory(ctx, "v1", 10)
	require.NoError(t, err)
	require.Empty(t, points)
}

func TestStore_Conflicts(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx storage.RecordTx) error {
		return tx.InsertVehicle(ctx, vehicle("v3", "AAA-1"))
	})
	require.ErrorIs(t, err, storage.ErrConflict)

	err = s.WithTx(ctx, func(tx storage.RecordTx) error {
		return tx.DeleteBooking(ctx, "missing")
	})
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = s.WithTx(ctx, func(tx storage.RecordTx) error {
		n, err := tx.CountOpenBookings(ctx, "v1")
		require.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)
}

func TestStore_ScanPagesInIDOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.WithTx(ctx, func(tx storage.RecordTx) error {
		for i := 0; i < 7; i++ {
			if err := tx.InsertBooking(ctx, booking(fmt.Sprintf("b%02d", i), "v1", base, 1, v1.BookingConfirmed)); err != nil {
				return err
			}
		}
		return nil
	}))

	var seen []string
	cursor := ""
	for {
		page, err := s.ScanBookings(ctx, cursor, 3)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, b := range page {
			seen = append(seen, b.ID)
		}
		cursor = page[len(page)-1].ID
	}
	require.Equal(t, []string{"b00", "b01", "b02", "b03", "b04", "b05", "b06"}, seen)
}

func TestStore_ReadModels(t *testing.T) {
	s := NewStore()
	seed(t, s)
	ctx := context.Background()

	overlapping, err := s.ListBookingsOverlapping(ctx, base.Add(24*time.Hour), base.Add(6*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, overlapping, 2)
	require.Equal(t, "b1", overlapping[0].ID)

	overlapping, err = s.ListBookingsOverlapping(ctx, base.Add(3*24*time.Hour), base.Add(4*24*time.Hour))
	require.NoError(t, err)
	require.Empty(t, overlapping)

	counts, err := s.CountVehiclesByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts[v1.VehicleAvailable])
	require.Equal(t, int64(0), counts[v1.VehicleInUse])

	ledgers, err := s.VehicleLedgers(ctx)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(100).Equal(ledgers["v1"].CompletedRevenue))
	require.Equal(t, int64(1), ledgers["v1"].CompletedCount)
	require.True(t, decimal.NewFromInt(80).Equal(ledgers["v1"].MaintenanceCost))
	require.True(t, ledgers["v2"].CompletedRevenue.IsZero())

	totals, err := s.TableTotals(ctx, v1.TableBookings, "total_amount")
	require.NoError(t, err)
	require.Equal(t, int64(2), totals.Count)
	require.True(t, decimal.NewFromInt(250).Equal(totals.Sum))

	_, err = s.TableTotals(ctx, "payments", "amount")
	require.Error(t, err)
}
