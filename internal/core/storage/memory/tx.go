package memory

import (
	"context"
	"fmt"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
)

// recordTx runs with Store.mu held for writing.
type recordTx struct {
	s    *Store
	undo []func()
}

func (t *recordTx) GetVehicle(ctx context.Context, id string) (*v1.Vehicle, error) {
	return t.s.getVehicle(id)
}

func (t *recordTx) GetBooking(ctx context.Context, id string) (*v1.Booking, error) {
	return t.s.getBooking(id)
}

func (t *recordTx) GetMaintenance(ctx context.Context, id string) (*v1.MaintenanceRecord, error) {
	return t.s.getMaintenance(id)
}

func (t *recordTx) InsertVehicle(ctx context.Context, v *v1.Vehicle) error {
	if _, exists := t.s.vehicles[v.ID]; exists {
		return fmt.Errorf("insert vehicle %s: %w", v.ID, storage.ErrConflict)
	}
	for _, other := range t.s.vehicles {
		if other.LicensePlate == v.LicensePlate {
			return fmt.Errorf("insert vehicle: license plate %s in use: %w", v.LicensePlate, storage.ErrConflict)
		}
	}
	t.s.vehicles[v.ID] = copyVehicle(v)
	t.undo = append(t.undo, func() { delete(t.s.vehicles, v.ID) })
	return nil
}

func (t *recordTx) UpdateVehicle(ctx context.Context, v *v1.Vehicle) error {
	prev, ok := t.s.vehicles[v.ID]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", v.ID, storage.ErrNotFound)
	}
	for id, other := range t.s.vehicles {
		if id != v.ID && other.LicensePlate == v.LicensePlate {
			return fmt.Errorf("update vehicle: license plate %s in use: %w", v.LicensePlate, storage.ErrConflict)
		}
	}
	t.s.vehicles[v.ID] = copyVehicle(v)
	t.undo = append(t.undo, func() { t.s.vehicles[v.ID] = prev })
	return nil
}

func (t *recordTx) DeleteVehicle(ctx context.Context, id string) error {
	prev, ok := t.s.vehicles[id]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", id, storage.ErrNotFound)
	}
	delete(t.s.vehicles, id)
	t.undo = append(t.undo, func() { t.s.vehicles[id] = prev })
	return nil
}

func (t *recordTx) InsertBooking(ctx context.Context, b *v1.Booking) error {
	if _, exists := t.s.bookings[b.ID]; exists {
		return fmt.Errorf("insert booking %s: %w", b.ID, storage.ErrConflict)
	}
	t.s.bookings[b.ID] = copyBooking(b)
	t.undo = append(t.undo, func() { delete(t.s.bookings, b.ID) })
	return nil
}

func (t *recordTx) UpdateBooking(ctx context.Context, b *v1.Booking) error {
	prev, ok := t.s.bookings[b.ID]
	if !ok {
		return fmt.Errorf("booking %s: %w", b.ID, storage.ErrNotFound)
	}
	t.s.bookings[b.ID] = copyBooking(b)
	t.undo = append(t.undo, func() { t.s.bookings[b.ID] = prev })
	return nil
}

func (t *recordTx) DeleteBooking(ctx context.Context, id string) error {
	prev, ok := t.s.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, storage.ErrNotFound)
	}
	delete(t.s.bookings, id)
	t.undo = append(t.undo, func() { t.s.bookings[id] = prev })
	return nil
}

func (t *recordTx) InsertMaintenance(ctx context.Context, m *v1.MaintenanceRecord) error {
	if _, exists := t.s.maintenance[m.ID]; exists {
		return fmt.Errorf("insert maintenance record %s: %w", m.ID, storage.ErrConflict)
	}
	t.s.maintenance[m.ID] = copyMaintenance(m)
	t.undo = append(t.undo, func() { delete(t.s.maintenance, m.ID) })
	return nil
}

func (t *recordTx) DeleteMaintenance(ctx context.Context, id string) error {
	prev, ok := t.s.maintenance[id]
	if !ok {
		return fmt.Errorf("maintenance record %s: %w", id, storage.ErrNotFound)
	}
	delete(t.s.maintenance, id)
	t.undo = append(t.undo, func() { t.s.maintenance[id] = prev })
	return nil
}

func (t *recordTx) InsertLocationPoint(ctx context.Context, p v1.LocationPoint) error {
	n := len(t.s.locations)
	t.s.locations = append(t.s.locations, p)
	t.undo = append(t.undo, func() { t.s.locations = t.s.locations[:n] })
	return nil
}

func (t *recordTx) InsertOdometerReading(ctx context.Context, r v1.OdometerReading) error {
	n := len(t.s.odometer)
	t.s.odometer = append(t.s.odometer, r)
	t.undo = append(t.undo, func() { t.s.odometer = t.s.odometer[:n] })
	return nil
}

func (t *recordTx) CountOpenBookings(ctx context.Context, vehicleID string) (int64, error) {
	var n int64
	for _, b := range t.s.bookings {
		if b.VehicleID == vehicleID && (b.Status == v1.BookingConfirmed || b.Status == v1.BookingActive) {
			n++
		}
	}
	return n, nil
}
