package postgres

// SQL for the fleet record store. Column lists are kept in one place so the
// scan helpers and the queries cannot drift apart.

const (
	vehicleColumns = `
		id, make, model, year, license_plate, vin, acquisition_cost, category, status,
		current_latitude, current_longitude, last_location_update,
		current_odometer, last_odometer_update, acquired_at`

	bookingColumns = `
		id, vehicle_id, customer_name, customer_email, start_date, end_date,
		daily_rate, total_amount, status`

	maintenanceColumns = `
		id, vehicle_id, date, type, description, cost, odometer_at_service,
		next_service_due, next_service_mileage`
)

const (
	queryGetVehicle     = `SELECT` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	queryGetBooking     = `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	queryGetMaintenance = `SELECT` + maintenanceColumns + ` FROM maintenance WHERE id = $1`

	// Row locks taken inside a transaction serialize concurrent mutations of the
	// same record, so the old aggregate entry a mutation removes is never stale.
	queryGetVehicleForUpdate     = queryGetVehicle + ` FOR UPDATE`
	queryGetBookingForUpdate     = queryGetBooking + ` FOR UPDATE`
	queryGetMaintenanceForUpdate = queryGetMaintenance + ` FOR UPDATE`

	queryListVehicles    = `SELECT` + vehicleColumns + ` FROM vehicles ORDER BY make, model, id`
	queryListBookings    = `SELECT` + bookingColumns + ` FROM bookings ORDER BY start_date DESC, id`
	queryListMaintenance = `SELECT` + maintenanceColumns + ` FROM maintenance ORDER BY date DESC, id`

	queryListBookingsByVehicle    = `SELECT` + bookingColumns + ` FROM bookings WHERE vehicle_id = $1 ORDER BY start_date DESC, id`
	queryListMaintenanceByVehicle = `SELECT` + maintenanceColumns + ` FROM maintenance WHERE vehicle_id = $1 ORDER BY date DESC, id`

	queryListLocationHistory = `
		SELECT vehicle_id, latitude, longitude, recorded_at
		FROM vehicle_location_history
		WHERE vehicle_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2`

	// queryListBookingsOverlapping walks the start_date index and filters on end_date.
	queryListBookingsOverlapping = `SELECT` + bookingColumns + `
		FROM bookings
		WHERE start_date <= $2
		  AND end_date >= $1
		ORDER BY start_date ASC, id`

	// Cursor pagination for backfill. IDs are UUIDs, so ID order is arbitrary
	// but total and stable, which is all a replay needs.
	queryScanVehicles    = `SELECT` + vehicleColumns + ` FROM vehicles WHERE id > $1 ORDER BY id LIMIT $2`
	queryScanBookings    = `SELECT` + bookingColumns + ` FROM bookings WHERE id > $1 ORDER BY id LIMIT $2`
	queryScanMaintenance = `SELECT` + maintenanceColumns + ` FROM maintenance WHERE id > $1 ORDER BY id LIMIT $2`

	queryCountVehiclesByStatus = `SELECT status, COUNT(*) FROM vehicles GROUP BY status`

	queryVehicleLedgers = `
		SELECT
			v.id,
			COALESCE(b.revenue, 0),
			COALESCE(b.bookings, 0),
			COALESCE(m.cost, 0),
			COALESCE(m.services, 0)
		FROM vehicles v
		LEFT JOIN (
			SELECT vehicle_id, SUM(total_amount) AS revenue, COUNT(*) AS bookings
			FROM bookings
			WHERE status = 'completed'
			GROUP BY vehicle_id
		) b ON b.vehicle_id = v.id
		LEFT JOIN (
			SELECT vehicle_id, SUM(cost) AS cost, COUNT(*) AS services
			FROM maintenance
			GROUP BY vehicle_id
		) m ON m.vehicle_id = v.id`

	queryCountOpenBookings = `
		SELECT COUNT(*)
		FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('confirmed', 'active')`

	queryInsertVehicle = `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	queryUpdateVehicle = `
		UPDATE vehicles SET
			make = $2, model = $3, year = $4, license_plate = $5, vin = $6,
			acquisition_cost = $7, category = $8, status = $9,
			current_latitude = $10, current_longitude = $11, last_location_update = $12,
			current_odometer = $13, last_odometer_update = $14, acquired_at = $15
		WHERE id = $1`

	queryDeleteVehicle = `DELETE FROM vehicles WHERE id = $1`

	queryInsertBooking = `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	queryUpdateBooking = `
		UPDATE bookings SET
			vehicle_id = $2, customer_name = $3, customer_email = $4,
			start_date = $5, end_date = $6, daily_rate = $7, total_amount = $8, status = $9
		WHERE id = $1`

	queryDeleteBooking = `DELETE FROM bookings WHERE id = $1`

	queryInsertMaintenance = `
		INSERT INTO maintenance (` + maintenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	queryDeleteMaintenance = `DELETE FROM maintenance WHERE id = $1`

	queryInsertLocationPoint = `
		INSERT INTO vehicle_location_history (vehicle_id, latitude, longitude, recorded_at)
		VALUES ($1, $2, $3, $4)`

	queryInsertOdometerReading = `
		INSERT INTO vehicle_odometer_history (vehicle_id, reading, recorded_at)
		VALUES ($1, $2, $3)`

	queryInsertBackfillRun = `
		INSERT INTO aggregate_backfill_runs (
			table_name, definition, fingerprint, entries, total, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	queryLatestBackfillRuns = `
		SELECT DISTINCT ON (table_name)
			table_name, definition, fingerprint, entries, total, started_at, finished_at
		FROM aggregate_backfill_runs
		ORDER BY table_name, finished_at DESC`

	querySchemaReady = `
		SELECT COUNT(*) = 3
		FROM information_schema.tables
		WHERE table_name IN ('vehicles', 'bookings', 'maintenance')`
)
