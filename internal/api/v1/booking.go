package v1

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Booking is a rental of one vehicle over [StartDate, EndDate].
type Booking struct {
	ID            string          `json:"id"`
	VehicleID     string          `json:"vehicle_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        BookingStatus   `json:"status"`
}

// RentalDays is the number of started days between start and end.
func RentalDays(start, end time.Time) int64 {
	return int64(math.Ceil(end.Sub(start).Hours() / 24))
}

// PriceBooking returns days × rate for a rental.
func PriceBooking(start, end time.Time, dailyRate decimal.Decimal) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(RentalDays(start, end)))
}

func (b *Booking) Validate() error {
	if b.VehicleID == "" {
		return fmt.Errorf("vehicle_id is required")
	}
	if b.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if b.CustomerEmail == "" {
		return fmt.Errorf("customer_email is required")
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if !b.EndDate.After(b.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	if !b.DailyRate.IsPositive() {
		return fmt.Errorf("daily_rate must be positive")
	}
	if b.TotalAmount.IsNegative() {
		return fmt.Errorf("total_amount must not be negative")
	}
	if !b.Status.Valid() {
		return fmt.Errorf("unknown status %q", b.Status)
	}
	return nil
}

func (b *Booking) AggregateFields() map[string]interface{} {
	return map[string]interface{}{
		"id":           b.ID,
		"vehicle_id":   b.VehicleID,
		"status":       string(b.Status),
		"start_date":   b.StartDate,
		"end_date":     b.EndDate,
		"daily_rate":   b.DailyRate,
		"total_amount": b.TotalAmount,
	}
}
