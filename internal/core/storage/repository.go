package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a record with the given ID does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write would break a relationship, e.g. deleting
	// a vehicle that still has open bookings or inserting a duplicate license plate.
	ErrConflict = errors.New("record conflict")
)

// Totals is the unbounded count and sum of one table, computed by the store
// itself. Drift checks compare it with the in-memory aggregate.
type Totals struct {
	Count int64
	Sum   decimal.Decimal
}

// VehicleLedger holds one vehicle's lifetime revenue and maintenance spend.
type VehicleLedger struct {
	VehicleID        string
	CompletedRevenue decimal.Decimal
	CompletedCount   int64
	MaintenanceCost  decimal.Decimal
	MaintenanceCount int64
}

// BackfillRun records the outcome of one aggregate rebuild for one table.
type BackfillRun struct {
	Table       string
	Definition  string
	Fingerprint string
	Entries     int64
	Total       decimal.Decimal
	StartedAt   time.Time
	FinishedAt  time.Time
}

// RecordReader serves the read paths of the fleet and metrics services.
type RecordReader interface {
	GetVehicle(ctx context.Context, id string) (*v1.Vehicle, error)
	GetBooking(ctx context.Context, id string) (*v1.Booking, error)
	GetMaintenance(ctx context.Context, id string) (*v1.MaintenanceRecord, error)

	ListVehicles(ctx context.Context) ([]*v1.Vehicle, error)
	ListBookings(ctx context.Context) ([]*v1.Booking, error)
	ListMaintenance(ctx context.Context) ([]*v1.MaintenanceRecord, error)
	ListBookingsByVehicle(ctx context.Context, vehicleID string) ([]*v1.Booking, error)
	ListMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]*v1.MaintenanceRecord, error)
	ListLocationHistory(ctx context.Context, vehicleID string, limit int) ([]v1.LocationPoint, error)

	// ListBookingsOverlapping returns bookings with start <= end and end_date >= start,
	// served by the start_date index.
	ListBookingsOverlapping(ctx context.Context, start, end time.Time) ([]*v1.Booking, error)

	CountVehiclesByStatus(ctx context.Context) (map[v1.VehicleStatus]int64, error)
	VehicleLedgers(ctx context.Context) (map[string]VehicleLedger, error)

	// TableTotals sums sumColumn over every row of table. Both names must come
	// from the field catalog.
	TableTotals(ctx context.Context, table, sumColumn string) (Totals, error)
}

// RecordScanner pages through a table in ID order for aggregate backfill.
// afterID == "" starts from the beginning.
type RecordScanner interface {
	ScanVehicles(ctx context.Context, afterID string, limit int) ([]*v1.Vehicle, error)
	ScanBookings(ctx context.Context, afterID string, limit int) ([]*v1.Booking, error)
	ScanMaintenance(ctx context.Context, afterID string, limit int) ([]*v1.MaintenanceRecord, error)
}

// RecordTx is the write surface available inside WithTx.
type RecordTx interface {
	GetVehicle(ctx context.Context, id string) (*v1.Vehicle, error)
	GetBooking(ctx context.Context, id string) (*v1.Booking, error)
	GetMaintenance(ctx context.Context, id string) (*v1.MaintenanceRecord, error)

	InsertVehicle(ctx context.Context, v *v1.Vehicle) error
	UpdateVehicle(ctx context.Context, v *v1.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error

	InsertBooking(ctx context.Context, b *v1.Booking) error
	UpdateBooking(ctx context.Context, b *v1.Booking) error
	DeleteBooking(ctx context.Context, id string) error

	InsertMaintenance(ctx context.Context, m *v1.MaintenanceRecord) error
	DeleteMaintenance(ctx context.Context, id string) error

	InsertLocationPoint(ctx context.Context, p v1.LocationPoint) error
	InsertOdometerReading(ctx context.Context, r v1.OdometerReading) error

	// CountOpenBookings counts confirmed or active bookings of a vehicle.
	CountOpenBookings(ctx context.Context, vehicleID string) (int64, error)
}

// BackfillLog persists rebuild history.
type BackfillLog interface {
	SaveBackfillRun(ctx context.Context, run BackfillRun) error
	LatestBackfillRuns(ctx context.Context) ([]BackfillRun, error)
}

// RecordStore is the system of record for vehicles, bookings and maintenance.
type RecordStore interface {
	RecordReader
	RecordScanner
	BackfillLog

	// WithTx runs fn in a transaction. fn's error rolls back; otherwise the
	// transaction commits and the commit error, if any, is returned.
	WithTx(ctx context.Context, fn func(tx RecordTx) error) error

	Ping(ctx context.Context) error
	Close() error
}
