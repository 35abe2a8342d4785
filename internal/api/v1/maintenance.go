package v1

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceRecord is a completed service on a vehicle.
type MaintenanceRecord struct {
	ID                 string          `json:"id"`
	VehicleID          string          `json:"vehicle_id"`
	Date               time.Time       `json:"date"`
	Type               string          `json:"type"`
	Description        string          `json:"description"`
	Cost               decimal.Decimal `json:"cost"`
	OdometerAtService  float64         `json:"odometer_at_service"`
	NextServiceDue     *time.Time      `json:"next_service_due,omitempty"`
	NextServiceMileage *float64        `json:"next_service_mileage,omitempty"`
}

func (m *MaintenanceRecord) Validate() error {
	if m.VehicleID == "" {
		return fmt.Errorf("vehicle_id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if m.Type == "" {
		return fmt.Errorf("type is required")
	}
	if m.Cost.IsNegative() {
		return fmt.Errorf("cost must not be negative")
	}
	if m.OdometerAtService < 0 {
		return fmt.Errorf("odometer_at_service must not be negative")
	}
	if m.NextServiceDue != nil && m.NextServiceDue.Before(m.Date) {
		return fmt.Errorf("next_service_due precedes date")
	}
	return nil
}

func (m *MaintenanceRecord) AggregateFields() map[string]interface{} {
	return map[string]interface{}{
		"id":                  m.ID,
		"vehicle_id":          m.VehicleID,
		"date":                m.Date,
		"type":                m.Type,
		"cost":                m.Cost,
		"odometer_at_service": m.OdometerAtService,
	}
}
