package v1

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VehicleCategory groups vehicles for analytics.
type VehicleCategory string

const (
	CategoryEconomy  VehicleCategory = "Economy Cars"
	CategoryMidSUV   VehicleCategory = "Mid-size SUVs"
	CategoryLuxury   VehicleCategory = "Luxury Sedans"
	CategoryLargeSUV VehicleCategory = "Large SUVs"
	CategoryTruck    VehicleCategory = "Trucks"
)

// Categories lists every vehicle category in display order.
var Categories = []VehicleCategory{CategoryEconomy, CategoryMidSUV, CategoryLuxury, CategoryLargeSUV, CategoryTruck}

func (c VehicleCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// VehicleStatus is the rental state of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleReserved    VehicleStatus = "reserved"
	VehicleInUse       VehicleStatus = "in-use"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// VehicleStatuses lists every vehicle status.
var VehicleStatuses = []VehicleStatus{VehicleAvailable, VehicleReserved, VehicleInUse, VehicleMaintenance}

func (s VehicleStatus) Valid() bool {
	for _, known := range VehicleStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Vehicle is one rentable unit of the fleet.
type Vehicle struct {
	ID              string          `json:"id"`
	Make            string          `json:"make"`
	Model           string          `json:"model"`
	Year            int             `json:"year"`
	LicensePlate    string          `json:"license_plate"`
	VIN             string          `json:"vin"`
	AcquisitionCost decimal.Decimal `json:"acquisition_cost"`
	Category        VehicleCategory `json:"category"`
	Status          VehicleStatus   `json:"status"`

	CurrentLatitude    float64   `json:"current_latitude"`
	CurrentLongitude   float64   `json:"current_longitude"`
	LastLocationUpdate time.Time `json:"last_location_update"`

	// CurrentOdometer is in kilometres.
	CurrentOdometer    float64   `json:"current_odometer"`
	LastOdometerUpdate time.Time `json:"last_odometer_update"`

	// AcquiredAt drives age-weighted amortization. Zero means unknown.
	AcquiredAt time.Time `json:"acquired_at,omitempty"`
}

// Validate checks required fields and enumerations.
func (v *Vehicle) Validate() error {
	if v.Make == "" {
		return fmt.Errorf("make is required")
	}
	if v.Model == "" {
		return fmt.Errorf("model is required")
	}
	if v.Year < 1900 || v.Year > 2100 {
		return fmt.Errorf("year %d is out of range", v.Year)
	}
	if v.LicensePlate == "" {
		return fmt.Errorf("license_plate is required")
	}
	if v.VIN == "" {
		return fmt.Errorf("vin is required")
	}
	if v.AcquisitionCost.IsNegative() {
		return fmt.Errorf("acquisition_cost must not be negative")
	}
	if !v.Category.Valid() {
		return fmt.Errorf("unknown category %q", v.Category)
	}
	if !v.Status.Valid() {
		return fmt.Errorf("unknown status %q", v.Status)
	}
	if v.CurrentLatitude < -90 || v.CurrentLatitude > 90 {
		return fmt.Errorf("current_latitude %v is out of range", v.CurrentLatitude)
	}
	if v.CurrentLongitude < -180 || v.CurrentLongitude > 180 {
		return fmt.Errorf("current_longitude %v is out of range", v.CurrentLongitude)
	}
	if v.CurrentOdometer < 0 {
		return fmt.Errorf("current_odometer must not be negative")
	}
	if v.LastLocationUpdate.IsZero() {
		return fmt.Errorf("last_location_update is required")
	}
	return nil
}

// AggregateFields exposes the columns an aggregate definition may reference.
func (v *Vehicle) AggregateFields() map[string]interface{} {
	return map[string]interface{}{
		"id":                   v.ID,
		"status":               string(v.Status),
		"category":             string(v.Category),
		"acquisition_cost":     v.AcquisitionCost,
		"last_location_update": v.LastLocationUpdate,
		"last_odometer_update": v.LastOdometerUpdate,
		"current_odometer":     v.CurrentOdometer,
		"year":                 v.Year,
	}
}

// LocationPoint is one entry of a vehicle's location history.
type LocationPoint struct {
	VehicleID string    `json:"vehicle_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// OdometerReading is one entry of a vehicle's odometer history.
type OdometerReading struct {
	VehicleID string    `json:"vehicle_id"`
	Reading   float64   `json:"reading"`
	Timestamp time.Time `json:"timestamp"`
}
