package fleet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidRecord is returned when input fails validation.
var ErrInvalidRecord = errors.New("invalid record")

// Service applies fleet mutations to the record store and keeps the aggregate
// set in step with them.
type Service struct {
	store storage.RecordStore
	aggs  *aggregation.Set
	nowFn func() time.Time
	newID func() string
}

func NewService(store storage.RecordStore, aggs *aggregation.Set) *Service {
	return &Service{
		store: store,
		aggs:  aggs,
		nowFn: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// undoLog collects aggregate undos in application order.
type undoLog []func()

func (u *undoLog) track(undo func(), err error) error {
	if err != nil {
		return err
	}
	*u = append(*u, undo)
	return nil
}

func (u undoLog) run() {
	for i := len(u) - 1; i >= 0; i-- {
		u[i]()
	}
}

// mutate runs fn in a store transaction while holding the aggregate gate.
// Aggregate changes fn made are reverted when the transaction does not commit.
// A failing fn is reverted inside the transaction, while its row locks are
// still held; only a failed commit is reverted afterwards.
func (s *Service) mutate(ctx context.Context, op string, fn func(tx storage.RecordTx, undo *undoLog) error) error {
	return s.aggs.Mutate(func() error {
		var undo undoLog
		err := s.store.WithTx(ctx, func(tx storage.RecordTx) error {
			if err := fn(tx, &undo); err != nil {
				undo.revert(op, err)
				undo = nil
				return err
			}
			return nil
		})
		if err != nil {
			undo.revert(op, err)
			return err
		}
		return nil
	})
}

func (u undoLog) revert(op string, cause error) {
	if len(u) == 0 {
		return
	}
	slog.Warn("[Fleet] Reverting aggregate changes", "op", op, "changes", len(u), "error", cause)
	u.run()
}

// now is the current time at stored precision.
func (s *Service) now() time.Time {
	return v1.StoredTime(s.nowFn())
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// VehicleInput is the body of a vehicle creation.
type VehicleInput struct {
	Make             string             `json:"make"`
	Model            string             `json:"model"`
	Year             int                `json:"year"`
	LicensePlate     string             `json:"license_plate"`
	VIN              string             `json:"vin"`
	AcquisitionCost  decimal.Decimal    `json:"acquisition_cost"`
	Category         v1.VehicleCategory `json:"category"`
	Status           v1.VehicleStatus   `json:"status"`
	CurrentLatitude  float64            `json:"current_latitude"`
	CurrentLongitude float64            `json:"current_longitude"`
	CurrentOdometer  float64            `json:"current_odometer"`
	AcquiredAt       time.Time          `json:"acquired_at"`
}

// CreateVehicle inserts a vehicle with its first location and odometer
// history rows. Status defaults to available.
func (s *Service) CreateVehicle(ctx context.Context, in VehicleInput) (*v1.Vehicle, error) {
	now := s.now()
	v := &v1.Vehicle{
		ID:                 s.newID(),
		Make:               in.Make,
		Model:              in.Model,
		Year:               in.Year,
		LicensePlate:       in.LicensePlate,
		VIN:                in.VIN,
		AcquisitionCost:    in.AcquisitionCost,
		Category:           in.Category,
		Status:             in.Status,
		CurrentLatitude:    in.CurrentLatitude,
		CurrentLongitude:   in.CurrentLongitude,
		LastLocationUpdate: now,
		CurrentOdometer:    in.CurrentOdometer,
		LastOdometerUpdate: now,
		AcquiredAt:         in.AcquiredAt,
	}
	if v.Status == "" {
		v.Status = v1.VehicleAvailable
	}
	v.Normalize()
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	err := s.mutate(ctx, "create_vehicle", func(tx storage.RecordTx, undo *undoLog) error {
		if err := tx.InsertVehicle(ctx, v); err != nil {
			return err
		}
		if err := tx.InsertLocationPoint(ctx, v1.LocationPoint{
			VehicleID: v.ID, Latitude: v.CurrentLatitude, Longitude: v.CurrentLongitude, Timestamp: now,
		}); err != nil {
			return err
		}
		if err := tx.InsertOdometerReading(ctx, v1.OdometerReading{
			VehicleID: v.ID, Reading: v.CurrentOdometer, Timestamp: now,
		}); err != nil {
			return err
		}
		return undo.track(s.aggs.OnInsert(v1.TableVehicles, v))
	})
	if err != nil {
		return nil, err
	}
	slog.Info("[Fleet] Vehicle created", "vehicle_id", v.ID, "plate", v.LicensePlate)
	return v, nil
}

// updateVehicle loads a vehicle, applies change to a copy and writes it back
// with the matching aggregate replace.
func (s *Service) updateVehicle(ctx context.Context, tx storage.RecordTx, undo *undoLog, id string, change func(v *v1.Vehicle)) (*v1.Vehicle, error) {
	old, err := tx.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *old
	change(&updated)
	if err := tx.UpdateVehicle(ctx, &updated); err != nil {
		return nil, err
	}
	if err := undo.track(s.aggs.OnUpdate(v1.TableVehicles, old, &updated)); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateVehicleLocation moves a vehicle and appends to its location history.
// The location timestamp is part of the vehicles aggregate key.
func (s *Service) UpdateVehicleLocation(ctx context.Context, id string, lat, lon float64) (*v1.Vehicle, error) {
	if lat < -90 || lat > 90 {
		return nil, invalidf("latitude %v is out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, invalidf("longitude %v is out of range", lon)
	}
	now := s.now()

	var out *v1.Vehicle
	err := s.mutate(ctx, "update_location", func(tx storage.RecordTx, undo *undoLog) error {
		v, err := s.updateVehicle(ctx, tx, undo, id, func(v *v1.Vehicle) {
			v.CurrentLatitude = lat
			v.CurrentLongitude = lon
			v.LastLocationUpdate = now
		})
		if err != nil {
			return err
		}
		out = v
		return tx.InsertLocationPoint(ctx, v1.LocationPoint{VehicleID: id, Latitude: lat, Longitude: lon, Timestamp: now})
	})
	return out, err
}

// UpdateVehicleOdometer records a new odometer reading in kilometres.
func (s *Service) UpdateVehicleOdometer(ctx context.Context, id string, reading float64) (*v1.Vehicle, error) {
	if reading < 0 {
		return nil, invalidf("odometer reading must not be negative")
	}
	now := s.now()

	var out *v1.Vehicle
	err := s.mutate(ctx, "update_odometer", func(tx storage.RecordTx, undo *undoLog) error {
		v, err := s.updateVehicle(ctx, tx, undo, id, func(v *v1.Vehicle) {
			v.CurrentOdometer = reading
			v.LastOdometerUpdate = now
		})
		if err != nil {
			return err
		}
		out = v
		return tx.InsertOdometerReading(ctx, v1.OdometerReading{VehicleID: id, Reading: reading, Timestamp: now})
	})
	return out, err
}

func (s *Service) UpdateVehicleStatus(ctx context.Context, id string, status v1.VehicleStatus) (*v1.Vehicle, error) {
	if !status.Valid() {
		return nil, invalidf("unknown vehicle status %q", status)
	}

	var out *v1.Vehicle
	err := s.mutate(ctx, "update_vehicle_status", func(tx storage.RecordTx, undo *undoLog) error {
		v, err := s.updateVehicle(ctx, tx, undo, id, func(v *v1.Vehicle) { v.Status = status })
		out = v
		return err
	})
	return out, err
}

// DeleteVehicle removes a vehicle. Vehicles with confirmed or active bookings
// cannot be deleted; past bookings and maintenance keep their vehicle_id.
func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	err := s.mutate(ctx, "delete_vehicle", func(tx storage.RecordTx, undo *undoLog) error {
		v, err := tx.GetVehicle(ctx, id)
		if err != nil {
			return err
		}
		open, err := tx.CountOpenBookings(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("vehicle %s has %d open bookings: %w", id, open, storage.ErrConflict)
		}
		if err := tx.DeleteVehicle(ctx, id); err != nil {
			return err
		}
		return undo.track(s.aggs.OnDelete(v1.TableVehicles, v))
	})
	if err != nil {
		return err
	}
	slog.Info("[Fleet] Vehicle deleted", "vehicle_id", id)
	return nil
}

// BookingInput is the body of a booking creation.
type BookingInput struct {
	VehicleID     string          `json:"vehicle_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
}

// CreateBooking prices and confirms a booking and reserves its vehicle.
func (s *Service) CreateBooking(ctx context.Context, in BookingInput) (*v1.Booking, error) {
	b := &v1.Booking{
		ID:            s.newID(),
		VehicleID:     in.VehicleID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		DailyRate:     in.DailyRate,
		Status:        v1.BookingConfirmed,
	}
	b.Normalize()
	b.TotalAmount = v1.PriceBooking(b.StartDate, b.EndDate, b.DailyRate)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	err := s.mutate(ctx, "create_booking", func(tx storage.RecordTx, undo *undoLog) error {
		if _, err := s.updateVehicle(ctx, tx, undo, b.VehicleID, func(v *v1.Vehicle) {
			v.Status = v1.VehicleReserved
		}); err != nil {
			return err
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}
		return undo.track(s.aggs.OnInsert(v1.TableBookings, b))
	})
	if err != nil {
		return nil, err
	}
	slog.Info("[Fleet] Booking created", "booking_id", b.ID, "vehicle_id", b.VehicleID, "total", b.TotalAmount)
	return b, nil
}

// vehicleStatusFor is the vehicle status a booking status implies, if any.
func vehicleStatusFor(status v1.BookingStatus) (v1.VehicleStatus, bool) {
	switch status {
	case v1.BookingActive:
		return v1.VehicleInUse, true
	case v1.BookingCompleted, v1.BookingCancelled:
		return v1.VehicleAvailable, true
	}
	return "", false
}

// UpdateBookingStatus moves a booking through its lifecycle. Completed and
// cancelled bookings are final. A vehicle that no longer exists is skipped.
func (s *Service) UpdateBookingStatus(ctx context.Context, id string, status v1.BookingStatus) (*v1.Booking, error) {
	if !status.Valid() {
		return nil, invalidf("unknown booking status %q", status)
	}

	var out *v1.Booking
	err := s.mutate(ctx, "update_booking_status", func(tx storage.RecordTx, undo *undoLog) error {
		old, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if old.Status == status {
			out = old
			return nil
		}
		if old.Status == v1.BookingCompleted || old.Status == v1.BookingCancelled {
			return fmt.Errorf("booking %s is %s: %w", id, old.Status, storage.ErrConflict)
		}

		updated := *old
		updated.Status = status
		if err := tx.UpdateBooking(ctx, &updated); err != nil {
			return err
		}
		if err := undo.track(s.aggs.OnUpdate(v1.TableBookings, old, &updated)); err != nil {
			return err
		}
		out = &updated

		vs, ok := vehicleStatusFor(status)
		if !ok {
			return nil
		}
		_, err = s.updateVehicle(ctx, tx, undo, old.VehicleID, func(v *v1.Vehicle) { v.Status = vs })
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("[Fleet] Booking vehicle missing", "booking_id", id, "vehicle_id", old.VehicleID)
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_booking", func(tx storage.RecordTx, undo *undoLog) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteBooking(ctx, id); err != nil {
			return err
		}
		return undo.track(s.aggs.OnDelete(v1.TableBookings, b))
	})
}

// MaintenanceInput is the body of a maintenance record creation.
type MaintenanceInput struct {
	VehicleID          string          `json:"vehicle_id"`
	Date               time.Time       `json:"date"`
	Type               string          `json:"type"`
	Description        string          `json:"description"`
	Cost               decimal.Decimal `json:"cost"`
	OdometerAtService  float64         `json:"odometer_at_service"`
	NextServiceDue     *time.Time      `json:"next_service_due"`
	NextServiceMileage *float64        `json:"next_service_mileage"`
}

// CreateMaintenance records a service on an existing vehicle.
func (s *Service) CreateMaintenance(ctx context.Context, in MaintenanceInput) (*v1.MaintenanceRecord, error) {
	m := &v1.MaintenanceRecord{
		ID:                 s.newID(),
		VehicleID:          in.VehicleID,
		Date:               in.Date,
		Type:               in.Type,
		Description:        in.Description,
		Cost:               in.Cost,
		OdometerAtService:  in.OdometerAtService,
		NextServiceDue:     in.NextServiceDue,
		NextServiceMileage: in.NextServiceMileage,
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	err := s.mutate(ctx, "create_maintenance", func(tx storage.RecordTx, undo *undoLog) error {
		if _, err := tx.GetVehicle(ctx, m.VehicleID); err != nil {
			return err
		}
		if err := tx.InsertMaintenance(ctx, m); err != nil {
			return err
		}
		return undo.track(s.aggs.OnInsert(v1.TableMaintenance, m))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteMaintenance(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_maintenance", func(tx storage.RecordTx, undo *undoLog) error {
		m, err := tx.GetMaintenance(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteMaintenance(ctx, id); err != nil {
			return err
		}
		return undo.track(s.aggs.OnDelete(v1.TableMaintenance, m))
	})
}
