package fleet

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
)

const defaultLocationHistoryLimit = 100

// BookingWithVehicle is a booking joined with its vehicle. Vehicle is nil when
// the vehicle has been deleted.
type BookingWithVehicle struct {
	*v1.Booking
	Vehicle *v1.Vehicle `json:"vehicle"`
}

// MaintenanceWithVehicle is a maintenance record joined with its vehicle.
type MaintenanceWithVehicle struct {
	*v1.MaintenanceRecord
	Vehicle *v1.Vehicle `json:"vehicle"`
}

func (s *Service) ListVehicles(ctx context.Context) ([]*v1.Vehicle, error) {
	return s.store.ListVehicles(ctx)
}

func (s *Service) GetVehicle(ctx context.Context, id string) (*v1.Vehicle, error) {
	return s.store.GetVehicle(ctx, id)
}

// LocationHistory returns a vehicle's most recent locations, newest first.
func (s *Service) LocationHistory(ctx context.Context, vehicleID string, limit int) ([]v1.LocationPoint, error) {
	if limit < 0 {
		return nil, invalidf("limit must not be negative")
	}
	if limit == 0 {
		limit = defaultLocationHistoryLimit
	}
	if _, err := s.store.GetVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	points, err := s.store.ListLocationHistory(ctx, vehicleID, limit)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []v1.LocationPoint{}
	}
	return points, nil
}

func (s *Service) vehicleIndex(ctx context.Context) (map[string]*v1.Vehicle, error) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*v1.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	return byID, nil
}

// ListBookings returns every booking, newest start first, with its vehicle.
func (s *Service) ListBookings(ctx context.Context) ([]BookingWithVehicle, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BookingWithVehicle, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingWithVehicle{Booking: b, Vehicle: vehicles[b.VehicleID]})
	}
	return out, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*BookingWithVehicle, error) {
	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &BookingWithVehicle{Booking: b}
	out.Vehicle, err = s.optionalVehicle(ctx, b.VehicleID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMaintenance returns every maintenance record, newest first, with its vehicle.
func (s *Service) ListMaintenance(ctx context.Context) ([]MaintenanceWithVehicle, error) {
	records, err := s.store.ListMaintenance(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MaintenanceWithVehicle, 0, len(records))
	for _, m := range records {
		out = append(out, MaintenanceWithVehicle{MaintenanceRecord: m, Vehicle: vehicles[m.VehicleID]})
	}
	return out, nil
}

func (s *Service) optionalVehicle(ctx context.Context, id string) (*v1.Vehicle, error) {
	v, err := s.store.GetVehicle(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
