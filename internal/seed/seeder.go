package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
)

// Rebuilder rebuilds aggregates from the record store.
type Rebuilder interface {
	Run(ctx context.Context) (aggregation.BackfillResult, error)
}

// Result summarizes one seeding run.
type Result struct {
	Seed        uint64                     `json:"seed"`
	Vehicles    int                        `json:"vehicles"`
	Bookings    int                        `json:"bookings"`
	Maintenance int                        `json:"maintenance"`
	Removed     int                        `json:"removed"`
	Backfill    aggregation.BackfillResult `json:"backfill"`
}

// Seeder replaces the store contents with a generated dataset. Records are
// written directly, so aggregates are rebuilt afterwards.
type Seeder struct {
	store   storage.RecordStore
	rebuild Rebuilder
	nowFn   func() time.Time
}

func NewSeeder(store storage.RecordStore, rebuild Rebuilder) *Seeder {
	return &Seeder{store: store, rebuild: rebuild, nowFn: time.Now}
}

// Run clears every vehicle, booking and maintenance record, loads the dataset
// generated from seed and backfills.
func (s *Seeder) Run(ctx context.Context, seed uint64) (Result, error) {
	ds := NewGenerator(seed, s.nowFn()).Generate()

	removed, err := s.load(ctx, ds)
	if err != nil {
		return Result{}, err
	}
	slog.Info("[Seed] Sample data loaded",
		"seed", seed,
		"vehicles", len(ds.Vehicles),
		"bookings", len(ds.Bookings),
		"maintenance", len(ds.Maintenance),
		"removed", removed)

	res, err := s.rebuild.Run(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("backfill after seed: %w", err)
	}

	return Result{
		Seed:        seed,
		Vehicles:    len(ds.Vehicles),
		Bookings:    len(ds.Bookings),
		Maintenance: len(ds.Maintenance),
		Removed:     removed,
		Backfill:    res,
	}, nil
}

func (s *Seeder) load(ctx context.Context, ds Dataset) (int, error) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return 0, err
	}
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return 0, err
	}
	records, err := s.store.ListMaintenance(ctx)
	if err != nil {
		return 0, err
	}

	err = s.store.WithTx(ctx, func(tx storage.RecordTx) error {
		for _, b := range bookings {
			if err := tx.DeleteBooking(ctx, b.ID); err != nil {
				return err
			}
		}
		for _, m := range records {
			if err := tx.DeleteMaintenance(ctx, m.ID); err != nil {
				return err
			}
		}
		for _, v := range vehicles {
			if err := tx.DeleteVehicle(ctx, v.ID); err != nil {
				return err
			}
		}

		for _, v := range ds.Vehicles {
			if err := tx.InsertVehicle(ctx, v); err != nil {
				return fmt.Errorf("seed vehicle %s: %w", v.LicensePlate, err)
			}
			if err := tx.InsertLocationPoint(ctx, v1.LocationPoint{
				VehicleID: v.ID, Latitude: v.CurrentLatitude, Longitude: v.CurrentLongitude, Timestamp: v.LastLocationUpdate,
			}); err != nil {
				return err
			}
			if err := tx.InsertOdometerReading(ctx, v1.OdometerReading{
				VehicleID: v.ID, Reading: v.CurrentOdometer, Timestamp: v.LastOdometerUpdate,
			}); err != nil {
				return err
			}
		}
		for _, b := range ds.Bookings {
			if err := tx.InsertBooking(ctx, b); err != nil {
				return fmt.Errorf("seed booking: %w", err)
			}
		}
		for _, m := range ds.Maintenance {
			if err := tx.InsertMaintenance(ctx, m); err != nil {
				return fmt.Errorf("seed maintenance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(vehicles) + len(bookings) + len(records), nil
}
