package metrics

import (
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/shopspring/decimal"
)

// MoneyMetric is a monetary value over the current and previous windows.
type MoneyMetric struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Trend    float64         `json:"trend"`
}

// NetProfitMetric adds the margin of the current window.
type NetProfitMetric struct {
	Current      decimal.Decimal `json:"current"`
	Previous     decimal.Decimal `json:"previous"`
	Trend        float64         `json:"trend"`
	ProfitMargin float64         `json:"profit_margin"`
}

// UtilizationMetric holds utilization percentages. Trend is the difference in
// percentage points, not a relative change.
type UtilizationMetric struct {
	Current        float64 `json:"current"`
	Previous       float64 `json:"previous"`
	Trend          float64 `json:"trend"`
	ActiveVehicles int64   `json:"active_vehicles"`
}

type CountMetric struct {
	Current  int64   `json:"current"`
	Previous int64   `json:"previous"`
	Trend    float64 `json:"trend"`
}

// DashboardCards carries every card that could be computed. A card that
// failed is nil and its error is listed under Errors by card name.
type DashboardCards struct {
	TotalRevenue     *MoneyMetric       `json:"total_revenue"`
	NetProfit        *NetProfitMetric   `json:"net_profit"`
	FleetUtilization *UtilizationMetric `json:"fleet_utilization"`
	ActiveBookings   *CountMetric       `json:"active_bookings"`
	Errors           map[string]string  `json:"errors,omitempty"`
}

type FleetStatus struct {
	Available   int64 `json:"available"`
	Reserved    int64 `json:"reserved"`
	InUse       int64 `json:"in_use"`
	Maintenance int64 `json:"maintenance"`
}

// Overview is the all-time summary shown on the analytics page.
type Overview struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalCosts          decimal.Decimal `json:"total_costs"`
	NetProfit           decimal.Decimal `json:"net_profit"`
	UtilizationRate     float64         `json:"utilization_rate"`
	TotalVehicles       int64           `json:"total_vehicles"`
	FleetStatus         FleetStatus     `json:"fleet_status"`
	TotalBookings       int64           `json:"total_bookings"`
	AverageBookingValue decimal.Decimal `json:"average_booking_value"`
}

// Financials are lifetime figures of one vehicle. Net profit charges the full
// acquisition cost.
type Financials struct {
	AcquisitionCost      decimal.Decimal `json:"acquisition_cost"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalMaintenanceCost decimal.Decimal `json:"total_maintenance_cost"`
	NetProfit            decimal.Decimal `json:"net_profit"`
	ROI                  float64         `json:"roi"`
}

type VehicleProfitability struct {
	Vehicle *v1.Vehicle `json:"vehicle"`
	Financials
	BookingCount int64 `json:"booking_count"`
}

type CategoryAnalytics struct {
	Category             v1.VehicleCategory `json:"category"`
	VehicleCount         int64              `json:"vehicle_count"`
	TotalBookings        int64              `json:"total_bookings"`
	TotalRevenue         decimal.Decimal    `json:"total_revenue"`
	TotalAcquisitionCost decimal.Decimal    `json:"total_acquisition_cost"`
	TotalMaintenanceCost decimal.Decimal    `json:"total_maintenance_cost"`
	NetProfit            decimal.Decimal    `json:"net_profit"`
	ROI                  float64            `json:"roi"`
	TotalRentalDays      int64              `json:"total_rental_days"`
	AvgUtilizationRate   float64            `json:"avg_utilization_rate"`
	RevenuePerDay        decimal.Decimal    `json:"revenue_per_day"`
	AvgRevenuePerVehicle decimal.Decimal    `json:"avg_revenue_per_vehicle"`
}

type BreakEven struct {
	VehicleID            string          `json:"vehicle_id"`
	Make                 string          `json:"make"`
	Model                string          `json:"model"`
	Year                 int             `json:"year"`
	LicensePlate         string          `json:"license_plate"`
	AcquisitionCost      decimal.Decimal `json:"acquisition_cost"`
	NetRevenue           decimal.Decimal `json:"net_revenue"`
	BreakEvenProgress    float64         `json:"break_even_progress"`
	HasReachedBreakEven  bool            `json:"has_reached_break_even"`
	DailyNetRevenue      decimal.Decimal `json:"daily_net_revenue"`
	DaysSinceAcquisition int64           `json:"days_since_acquisition"`
	// ProjectedDaysToBreakEven is nil when break-even is reached or unreachable
	// at the current daily rate.
	ProjectedDaysToBreakEven *int64 `json:"projected_days_to_break_even"`
}

// DailyRevenuePoint is the completed-booking revenue of one UTC day, keyed by
// booking end date.
type DailyRevenuePoint struct {
	Date     string          `json:"date"`
	Revenue  decimal.Decimal `json:"revenue"`
	Bookings int64           `json:"bookings"`
}

type BookingHistory struct {
	TotalBookings        int64           `json:"total_bookings"`
	CompletedBookings    int64           `json:"completed_bookings"`
	AvgBookingDuration   float64         `json:"avg_booking_duration"`
	AvgDailyRate         decimal.Decimal `json:"avg_daily_rate"`
	AvgRevenuePerBooking decimal.Decimal `json:"avg_revenue_per_booking"`
	RecentBookings       []*v1.Booking   `json:"recent_bookings"`
}

type MaintenanceHistory struct {
	TotalRecords          int64                   `json:"total_records"`
	TotalCost             decimal.Decimal         `json:"total_cost"`
	RecentMaintenance     []*v1.MaintenanceRecord `json:"recent_maintenance"`
	UpcomingServiceAlerts []*v1.MaintenanceRecord `json:"upcoming_service_alerts"`
}

type VehicleDetails struct {
	Vehicle            *v1.Vehicle        `json:"vehicle"`
	Financial          Financials         `json:"financial"`
	BookingHistory     BookingHistory     `json:"booking_history"`
	MaintenanceHistory MaintenanceHistory `json:"maintenance_history"`
	LocationHistory    []v1.LocationPoint `json:"location_history"`
}
