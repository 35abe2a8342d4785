package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanVehicle reads one row selected with vehicleColumns.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanVehicle(row scanner) (*v1.Vehicle, error) {
	var v v1.Vehicle
	var category, status string
	var acquiredAt sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.LicensePlate,
		&v.VIN,
		&v.AcquisitionCost,
		&category,
		&status,
		&v.CurrentLatitude,
		&v.CurrentLongitude,
		&v.LastLocationUpdate,
		&v.CurrentOdometer,
		&v.LastOdometerUpdate,
		&acquiredAt,
	)
	if err != nil {
		return nil, err
	}

	v.Category = v1.VehicleCategory(category)
	v.Status = v1.VehicleStatus(status)
	v.LastLocationUpdate = v.LastLocationUpdate.UTC()
	v.LastOdometerUpdate = v.LastOdometerUpdate.UTC()
	if acquiredAt.Valid {
		v.AcquiredAt = acquiredAt.Time.UTC()
	}
	return &v, nil
}

func scanBooking(row scanner) (*v1.Booking, error) {
	var b v1.Booking
	var status string

	err := row.Scan(
		&b.ID,
		&b.VehicleID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.StartDate,
		&b.EndDate,
		&b.DailyRate,
		&b.TotalAmount,
		&status,
	)
	if err != nil {
		return nil, err
	}

	b.Status = v1.BookingStatus(status)
	b.StartDate = b.StartDate.UTC()
	b.EndDate = b.EndDate.UTC()
	return &b, nil
}

func scanMaintenance(row scanner) (*v1.MaintenanceRecord, error) {
	var m v1.MaintenanceRecord
	var nextDue sql.NullTime
	var nextMileage sql.NullFloat64

	err := row.Scan(
		&m.ID,
		&m.VehicleID,
		&m.Date,
		&m.Type,
		&m.Description,
		&m.Cost,
		&m.OdometerAtService,
		&nextDue,
		&nextMileage,
	)
	if err != nil {
		return nil, err
	}

	m.Date = m.Date.UTC()
	if nextDue.Valid {
		t := nextDue.Time.UTC()
		m.NextServiceDue = &t
	}
	if nextMileage.Valid {
		miles := nextMileage.Float64
		m.NextServiceMileage = &miles
	}
	return &m, nil
}

func vehicleArgs(v *v1.Vehicle) []interface{} {
	var acquiredAt sql.NullTime
	if !v.AcquiredAt.IsZero() {
		acquiredAt = sql.NullTime{Time: v.AcquiredAt, Valid: true}
	}
	return []interface{}{
		v.ID, v.Make, v.Model, v.Year, v.LicensePlate, v.VIN, v.AcquisitionCost,
		string(v.Category), string(v.Status),
		v.CurrentLatitude, v.CurrentLongitude, v.LastLocationUpdate,
		v.CurrentOdometer, v.LastOdometerUpdate, acquiredAt,
	}
}

func bookingArgs(b *v1.Booking) []interface{} {
	return []interface{}{
		b.ID, b.VehicleID, b.CustomerName, b.CustomerEmail,
		b.StartDate, b.EndDate, b.DailyRate, b.TotalAmount, string(b.Status),
	}
}

func maintenanceArgs(m *v1.MaintenanceRecord) []interface{} {
	var nextDue sql.NullTime
	if m.NextServiceDue != nil {
		nextDue = sql.NullTime{Time: *m.NextServiceDue, Valid: true}
	}
	var nextMileage sql.NullFloat64
	if m.NextServiceMileage != nil {
		nextMileage = sql.NullFloat64{Float64: *m.NextServiceMileage, Valid: true}
	}
	return []interface{}{
		m.ID, m.VehicleID, m.Date, m.Type, m.Description, m.Cost,
		m.OdometerAtService, nextDue, nextMileage,
	}
}

// mapRowError turns sql.ErrNoRows into storage.ErrNotFound and wraps the rest.
func mapRowError(what, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return fmt.Errorf("failed to read %s %s: %w", what, id, err)
}

// mapWriteError turns unique violations into storage.ErrConflict.
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pqErr.Message, storage.ErrConflict)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// requireAffected reports ErrNotFound when an UPDATE or DELETE touched no row.
func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s %s write: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}
