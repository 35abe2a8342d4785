// Package memory is an in-memory storage.RecordStore for development, tests
// and single-node demos. Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/shopspring/decimal"
)

// Store keeps every table in maps guarded by one RWMutex. A transaction holds
// the write lock for its whole duration and keeps an undo log so a failed
// callback leaves no trace.
type Store struct {
	mu          sync.RWMutex
	vehicles    map[string]*v1.Vehicle
	bookings    map[string]*v1.Booking
	maintenance map[string]*v1.MaintenanceRecord
	locations   []v1.LocationPoint
	odometer    []v1.OdometerReading
	runs        map[string]storage.BackfillRun
}

var _ storage.RecordStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		vehicles:    make(map[string]*v1.Vehicle),
		bookings:    make(map[string]*v1.Booking),
		maintenance: make(map[string]*v1.MaintenanceRecord),
		runs:        make(map[string]storage.BackfillRun),
	}
}

func copyVehicle(v *v1.Vehicle) *v1.Vehicle {
	c := *v
	return &c
}

func copyBooking(b *v1.Booking) *v1.Booking {
	c := *b
	return &c
}

func copyMaintenance(m *v1.MaintenanceRecord) *v1.MaintenanceRecord {
	c := *m
	if m.NextServiceDue != nil {
		due := *m.NextServiceDue
		c.NextServiceDue = &due
	}
	if m.NextServiceMileage != nil {
		miles := *m.NextServiceMileage
		c.NextServiceMileage = &miles
	}
	return &c
}

func (s *Store) GetVehicle(ctx context.Context, id string) (*v1.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getVehicle(id)
}

func (s *Store) getVehicle(id string) (*v1.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", id, storage.ErrNotFound)
	}
	return copyVehicle(v), nil
}

func (s *Store) GetBooking(ctx context.Context, id string) (*v1.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getBooking(id)
}

func (s *Store) getBooking(id string) (*v1.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, storage.ErrNotFound)
	}
	return copyBooking(b), nil
}

func (s *Store) GetMaintenance(ctx context.Context, id string) (*v1.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMaintenance(id)
}

func (s *Store) getMaintenance(id string) (*v1.MaintenanceRecord, error) {
	m, ok := s.maintenance[id]
	if !ok {
		return nil, fmt.Errorf("maintenance record %s: %w", id, storage.ErrNotFound)
	}
	return copyMaintenance(m), nil
}

func (s *Store) ListVehicles(ctx context.Context) ([]*v1.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*v1.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, copyVehicle(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Make != out[j].Make {
			return out[i].Make < out[j].Make
		}
		if out[i].Model != out[j].Model {
			return out[i].Model < out[j].Model
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) ListBookings(ctx context.Context) ([]*v1.Booking, error) {
	return s.filterBookings(func(*v1.Booking) bool { return true }), nil
}

func (s *Store) ListBookingsByVehicle(ctx context.Context, vehicleID string) ([]*v1.Booking, error) {
	return s.filterBookings(func(b *v1.Booking) bool { return b.VehicleID == vehicleID }), nil
}

func (s *Store) ListBookingsOverlapping(ctx context.Context, start, end time.Time) ([]*v1.Booking, error) {
	out := s.filterBookings(func(b *v1.Booking) bool {
		return !b.StartDate.After(end) && !b.EndDate.Before(start)
	})
	// Same order as the start_date index walk in Postgres.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) filterBookings(keep func(*v1.Booking) bool) []*v1.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.Booking
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) ListMaintenance(ctx context.Context) ([]*v1.MaintenanceRecord, error) {
	return s.filterMaintenance(func(*v1.MaintenanceRecord) bool { return true }), nil
}

func (s *Store) ListMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]*v1.MaintenanceRecord, error) {
	return s.filterMaintenance(func(m *v1.MaintenanceRecord) bool { return m.VehicleID == vehicleID }), nil
}

func (s *Store) filterMaintenance(keep func(*v1.MaintenanceRecord) bool) []*v1.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.MaintenanceRecord
	for _, m := range s.maintenance {
		if keep(m) {
			out = append(out, copyMaintenance(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) ListLocationHistory(ctx context.Context, vehicleID string, limit int) ([]v1.LocationPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []v1.LocationPoint
	for i := len(s.locations) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if s.locations[i].VehicleID == vehicleID {
			out = append(out, s.locations[i])
		}
	}
	return out, nil
}

func (s *Store) CountVehiclesByStatus(ctx context.Context) (map[v1.VehicleStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[v1.VehicleStatus]int64, len(v1.VehicleStatuses))
	for _, st := range v1.VehicleStatuses {
		out[st] = 0
	}
	for _, v := range s.vehicles {
		out[v.Status]++
	}
	return out, nil
}

func (s *Store) VehicleLedgers(ctx context.Context) (map[string]storage.VehicleLedger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]storage.VehicleLedger, len(s.vehicles))
	for id := range s.vehicles {
		out[id] = storage.VehicleLedger{
			VehicleID:        id,
			CompletedRevenue: decimal.Zero,
			MaintenanceCost:  decimal.Zero,
		}
	}
	for _, b := range s.bookings {
		l, ok := out[b.VehicleID]
		if !ok || b.Status != v1.BookingCompleted {
			continue
		}
		l.CompletedRevenue = l.CompletedRevenue.Add(b.TotalAmount)
		l.CompletedCount++
		out[b.VehicleID] = l
	}
	for _, m := range s.maintenance {
		l, ok := out[m.VehicleID]
		if !ok {
			continue
		}
		l.MaintenanceCost = l.MaintenanceCost.Add(m.Cost)
		l.MaintenanceCount++
		out[m.VehicleID] = l
	}
	return out, nil
}

func (s *Store) TableTotals(ctx context.Context, table, sumColumn string) (storage.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []v1.Record
	switch table {
	case v1.TableVehicles:
		for _, v := range s.vehicles {
			records = append(records, v)
		}
	case v1.TableBookings:
		for _, b := range s.bookings {
			records = append(records, b)
		}
	case v1.TableMaintenance:
		for _, m := range s.maintenance {
			records = append(records, m)
		}
	default:
		return storage.Totals{}, fmt.Errorf("unknown table %q", table)
	}

	t := storage.Totals{Sum: decimal.Zero}
	for _, r := range records {
		fields := r.AggregateFields()
		v, ok := fields[sumColumn].(decimal.Decimal)
		if !ok {
			return storage.Totals{}, fmt.Errorf("%s.%s is not a money column", table, sumColumn)
		}
		t.Count++
		t.Sum = t.Sum.Add(v)
	}
	return t, nil
}

func (s *Store) ScanVehicles(ctx context.Context, afterID string, limit int) ([]*v1.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.Vehicle
	for _, id := range pageIDs(s.vehicles, afterID, limit) {
		out = append(out, copyVehicle(s.vehicles[id]))
	}
	return out, nil
}

func (s *Store) ScanBookings(ctx context.Context, afterID string, limit int) ([]*v1.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.Booking
	for _, id := range pageIDs(s.bookings, afterID, limit) {
		out = append(out, copyBooking(s.bookings[id]))
	}
	return out, nil
}

func (s *Store) ScanMaintenance(ctx context.Context, afterID string, limit int) ([]*v1.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.MaintenanceRecord
	for _, id := range pageIDs(s.maintenance, afterID, limit) {
		out = append(out, copyMaintenance(s.maintenance[id]))
	}
	return out, nil
}

// pageIDs returns up to limit keys greater than afterID in ascending order.
func pageIDs[T any](m map[string]T, afterID string, limit int) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

func (s *Store) SaveBackfillRun(ctx context.Context, run storage.BackfillRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.Table] = run
	return nil
}

func (s *Store) LatestBackfillRuns(ctx context.Context) ([]storage.BackfillRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.BackfillRun, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out, nil
}

// WithTx serializes transactions on the store lock. If fn fails, every write it
// made is undone in reverse order.
func (s *Store) WithTx(ctx context.Context, fn func(storage.RecordTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &recordTx{s: s}
	if err := fn(tx); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }
