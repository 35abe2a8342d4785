package v1

import "github.com/aevon-lab/fleetwise/internal/core/aggregation"

// Table names used by aggregate definitions and the record store.
const (
	TableVehicles    = "vehicles"
	TableBookings    = "bookings"
	TableMaintenance = "maintenance"
)

// Record is anything an aggregate can be derived from.
type Record interface {
	AggregateFields() map[string]interface{}
}

// FieldCatalog lists the fields of each table that aggregate definitions may
// use, with their key component kinds. Timestamps are numeric (Unix millis).
func FieldCatalog() aggregation.Catalog {
	return aggregation.Catalog{
		TableVehicles: {
			"status":               aggregation.KindString,
			"category":             aggregation.KindString,
			"acquisition_cost":     aggregation.KindNumber,
			"last_location_update": aggregation.KindNumber,
			"last_odometer_update": aggregation.KindNumber,
			"current_odometer":     aggregation.KindNumber,
			"year":                 aggregation.KindNumber,
		},
		TableBookings: {
			"vehicle_id":   aggregation.KindString,
			"status":       aggregation.KindString,
			"start_date":   aggregation.KindNumber,
			"end_date":     aggregation.KindNumber,
			"daily_rate":   aggregation.KindNumber,
			"total_amount": aggregation.KindNumber,
		},
		TableMaintenance: {
			"vehicle_id":          aggregation.KindString,
			"type":                aggregation.KindString,
			"date":                aggregation.KindNumber,
			"cost":                aggregation.KindNumber,
			"odometer_at_service": aggregation.KindNumber,
		},
	}
}
