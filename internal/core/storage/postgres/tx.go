package postgres

import (
	"context"
	"database/sql"
	"fmt"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
)

// recordTx implements storage.RecordTx on a *sql.Tx. Reads lock the row.
type recordTx struct {
	tx *sql.Tx
}

func (t *recordTx) GetVehicle(ctx context.Context, id string) (*v1.Vehicle, error) {
	v, err := scanVehicle(t.tx.QueryRowContext(ctx, queryGetVehicleForUpdate, id))
	if err != nil {
		return nil, mapRowError("vehicle", id, err)
	}
	return v, nil
}

func (t *recordTx) GetBooking(ctx context.Context, id string) (*v1.Booking, error) {
	b, err := scanBooking(t.tx.QueryRowContext(ctx, queryGetBookingForUpdate, id))
	if err != nil {
		return nil, mapRowError("booking", id, err)
	}
	return b, nil
}

func (t *recordTx) GetMaintenance(ctx context.Context, id string) (*v1.MaintenanceRecord, error) {
	m, err := scanMaintenance(t.tx.QueryRowContext(ctx, queryGetMaintenanceForUpdate, id))
	if err != nil {
		return nil, mapRowError("maintenance record", id, err)
	}
	return m, nil
}

func (t *recordTx) InsertVehicle(ctx context.Context, v *v1.Vehicle) error {
	if _, err := t.tx.ExecContext(ctx, queryInsertVehicle, vehicleArgs(v)...); err != nil {
		return mapWriteError("insert vehicle", err)
	}
	return nil
}

func (t *recordTx) UpdateVehicle(ctx context.Context, v *v1.Vehicle) error {
	res, err := t.tx.ExecContext(ctx, queryUpdateVehicle, vehicleArgs(v)...)
	if err != nil {
		return mapWriteError("update vehicle", err)
	}
	return requireAffected(res, "vehicle", v.ID)
}

func (t *recordTx) DeleteVehicle(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, queryDeleteVehicle, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}
	return requireAffected(res, "vehicle", id)
}

func (t *recordTx) InsertBooking(ctx context.Context, b *v1.Booking) error {
	if _, err := t.tx.ExecContext(ctx, queryInsertBooking, bookingArgs(b)...); err != nil {
		return mapWriteError("insert booking", err)
	}
	return nil
}

func (t *recordTx) UpdateBooking(ctx context.Context, b *v1.Booking) error {
	res, err := t.tx.ExecContext(ctx, queryUpdateBooking, bookingArgs(b)...)
	if err != nil {
		return mapWriteError("update booking", err)
	}
	return requireAffected(res, "booking", b.ID)
}

func (t *recordTx) DeleteBooking(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, queryDeleteBooking, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	return requireAffected(res, "booking", id)
}

func (t *recordTx) InsertMaintenance(ctx context.Context, m *v1.MaintenanceRecord) error {
	if _, err := t.tx.ExecContext(ctx, queryInsertMaintenance, maintenanceArgs(m)...); err != nil {
		return mapWriteError("insert maintenance record", err)
	}
	return nil
}

func (t *recordTx) DeleteMaintenance(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, queryDeleteMaintenance, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance record %s: %w", id, err)
	}
	return requireAffected(res, "maintenance record", id)
}

func (t *recordTx) InsertLocationPoint(ctx context.Context, p v1.LocationPoint) error {
	if _, err := t.tx.ExecContext(ctx, queryInsertLocationPoint, p.VehicleID, p.Latitude, p.Longitude, p.Timestamp); err != nil {
		return fmt.Errorf("failed to insert location point for %s: %w", p.VehicleID, err)
	}
	return nil
}

func (t *recordTx) InsertOdometerReading(ctx context.Context, r v1.OdometerReading) error {
	if _, err := t.tx.ExecContext(ctx, queryInsertOdometerReading, r.VehicleID, r.Reading, r.Timestamp); err != nil {
		return fmt.Errorf("failed to insert odometer reading for %s: %w", r.VehicleID, err)
	}
	return nil
}

func (t *recordTx) CountOpenBookings(ctx context.Context, vehicleID string) (int64, error) {
	var n int64
	if err := t.tx.QueryRowContext(ctx, queryCountOpenBookings, vehicleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count open bookings of %s: %w", vehicleID, err)
	}
	return n, nil
}
