package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/shopspring/decimal"
)

const (
	maxDailyRevenueDays  = 366
	recentHistoryLimit   = 5
	locationHistoryLimit = 20
	serviceAlertLead     = 30 * 24 * time.Hour
	serviceAlertDistance = 1000.0
)

func financialsOf(v *v1.Vehicle, l storage.VehicleLedger) Financials {
	net := l.CompletedRevenue.Sub(v.AcquisitionCost).Sub(l.MaintenanceCost)
	return Financials{
		AcquisitionCost:      v.AcquisitionCost,
		TotalRevenue:         l.CompletedRevenue,
		TotalMaintenanceCost: l.MaintenanceCost,
		NetProfit:            net,
		ROI:                  percentOf(net, v.AcquisitionCost),
	}
}

// ledgerOf folds one vehicle's bookings and maintenance into a ledger.
func ledgerOf(vehicleID string, bookings []*v1.Booking, records []*v1.MaintenanceRecord) storage.VehicleLedger {
	l := storage.VehicleLedger{
		VehicleID:        vehicleID,
		CompletedRevenue: decimal.Zero,
		MaintenanceCost:  decimal.Zero,
	}
	for _, b := range bookings {
		if b.Status == v1.BookingCompleted {
			l.CompletedRevenue = l.CompletedRevenue.Add(b.TotalAmount)
			l.CompletedCount++
		}
	}
	for _, m := range records {
		l.MaintenanceCost = l.MaintenanceCost.Add(m.Cost)
		l.MaintenanceCount++
	}
	return l
}

// VehicleProfitability returns lifetime financials of one vehicle.
func (s *Service) VehicleProfitability(ctx context.Context, vehicleID string) (*VehicleProfitability, error) {
	v, err := s.records.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.records.ListBookingsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle bookings: %w", err)
	}
	records, err := s.records.ListMaintenanceByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle maintenance: %w", err)
	}

	l := ledgerOf(vehicleID, bookings, records)
	return &VehicleProfitability{
		Vehicle:      v,
		Financials:   financialsOf(v, l),
		BookingCount: l.CompletedCount,
	}, nil
}

// VehicleProfitabilityList returns every vehicle's financials, most
// profitable first.
func (s *Service) VehicleProfitabilityList(ctx context.Context) ([]VehicleProfitability, error) {
	vehicles, err := s.records.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	ledgers, err := s.records.VehicleLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("vehicle ledgers: %w", err)
	}

	out := make([]VehicleProfitability, 0, len(vehicles))
	for _, v := range vehicles {
		l := ledgers[v.ID]
		out = append(out, VehicleProfitability{
			Vehicle:      v,
			Financials:   financialsOf(v, l),
			BookingCount: l.CompletedCount,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetProfit.GreaterThan(out[j].NetProfit)
	})
	return out, nil
}

// CategoryAnalytics groups vehicle financials by category. Utilization uses
// the bookings overlapping the analytics horizon.
func (s *Service) CategoryAnalytics(ctx context.Context) ([]CategoryAnalytics, error) {
	now := s.nowFn()
	horizon := aggregation.Window{Start: now.Add(-s.horizon), End: now, StartInclusive: true, EndInclusive: true}

	vehicles, err := s.records.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	ledgers, err := s.records.VehicleLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("vehicle ledgers: %w", err)
	}
	bookings, err := s.records.ListBookingsOverlapping(ctx, horizon.Start, horizon.End)
	if err != nil {
		return nil, fmt.Errorf("overlapping bookings: %w", err)
	}

	daysByVehicle := make(map[string]int64)
	for _, b := range bookings {
		daysByVehicle[b.VehicleID] += overlapDays(b, horizon)
	}

	byCategory := make(map[v1.VehicleCategory]*CategoryAnalytics)
	for _, v := range vehicles {
		c, ok := byCategory[v.Category]
		if !ok {
			c = &CategoryAnalytics{
				Category:             v.Category,
				TotalRevenue:         decimal.Zero,
				TotalAcquisitionCost: decimal.Zero,
				TotalMaintenanceCost: decimal.Zero,
			}
			byCategory[v.Category] = c
		}
		l := ledgers[v.ID]
		c.VehicleCount++
		c.TotalBookings += l.CompletedCount
		c.TotalRevenue = c.TotalRevenue.Add(l.CompletedRevenue)
		c.TotalAcquisitionCost = c.TotalAcquisitionCost.Add(v.AcquisitionCost)
		c.TotalMaintenanceCost = c.TotalMaintenanceCost.Add(l.MaintenanceCost)
		c.TotalRentalDays += daysByVehicle[v.ID]
	}

	out := make([]CategoryAnalytics, 0, len(byCategory))
	for _, category := range v1.Categories {
		c, ok := byCategory[category]
		if !ok {
			continue
		}
		c.NetProfit = c.TotalRevenue.Sub(c.TotalAcquisitionCost).Sub(c.TotalMaintenanceCost)
		c.ROI = percentOf(c.NetProfit, c.TotalAcquisitionCost)
		c.AvgUtilizationRate = round2(utilization(c.TotalRentalDays, horizon, c.VehicleCount))
		c.AvgRevenuePerVehicle = c.TotalRevenue.DivRound(decimal.NewFromInt(c.VehicleCount), 2)
		c.RevenuePerDay = decimal.Zero
		if c.TotalRentalDays > 0 {
			c.RevenuePerDay = c.TotalRevenue.DivRound(decimal.NewFromInt(c.TotalRentalDays), 2)
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetProfit.GreaterThan(out[j].NetProfit)
	})
	return out, nil
}

// BreakEvenAnalysis reports how far each vehicle's net revenue (completed
// revenue minus maintenance) has come towards its acquisition cost.
func (s *Service) BreakEvenAnalysis(ctx context.Context) ([]BreakEven, error) {
	now := s.nowFn()

	vehicles, err := s.records.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	ledgers, err := s.records.VehicleLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("vehicle ledgers: %w", err)
	}

	out := make([]BreakEven, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, breakEvenOf(v, ledgers[v.ID], now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BreakEvenProgress > out[j].BreakEvenProgress
	})
	return out, nil
}

func breakEvenOf(v *v1.Vehicle, l storage.VehicleLedger, now time.Time) BreakEven {
	f := financialsOf(v, l)
	net := f.TotalRevenue.Sub(f.TotalMaintenanceCost)
	days := daysBetween(acquiredAt(v), now)

	be := BreakEven{
		VehicleID:            v.ID,
		Make:                 v.Make,
		Model:                v.Model,
		Year:                 v.Year,
		LicensePlate:         v.LicensePlate,
		AcquisitionCost:      v.AcquisitionCost,
		NetRevenue:           net,
		HasReachedBreakEven:  net.GreaterThanOrEqual(v.AcquisitionCost),
		DailyNetRevenue:      decimal.Zero,
		DaysSinceAcquisition: days,
		BreakEvenProgress:    100,
	}
	if v.AcquisitionCost.IsPositive() {
		be.BreakEvenProgress = percentOf(net, v.AcquisitionCost)
		if be.BreakEvenProgress < 0 {
			be.BreakEvenProgress = 0
		}
		if be.BreakEvenProgress > 100 {
			be.BreakEvenProgress = 100
		}
	}
	if days > 0 {
		be.DailyNetRevenue = net.DivRound(decimal.NewFromInt(days), 2)
	}
	if !be.HasReachedBreakEven && be.DailyNetRevenue.IsPositive() {
		remaining := v.AcquisitionCost.Sub(net)
		projected := remaining.Div(be.DailyNetRevenue).Ceil().IntPart()
		be.ProjectedDaysToBreakEven = &projected
	}
	return be
}

// DailyRevenue returns one point per UTC day for the last days days, oldest
// first, each a range query on the completed-bookings aggregate.
func (s *Service) DailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error) {
	if days < 1 || days > maxDailyRevenueDays {
		return nil, invalidQueryf("days must be between 1 and %d, got %d", maxDailyRevenueDays, days)
	}

	today := aggregation.BucketFor(s.nowFn(), 24*time.Hour)
	points := make([]DailyRevenuePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		day := aggregation.Window{Start: start, End: start.AddDate(0, 0, 1), StartInclusive: true}
		bounds := day.Bounds(completed)

		revenue, err := s.aggs.Sum(v1.TableBookings, bounds)
		if err != nil {
			return nil, fmt.Errorf("revenue for %s: %w", start.Format(time.DateOnly), err)
		}
		count, err := s.aggs.Count(v1.TableBookings, bounds)
		if err != nil {
			return nil, fmt.Errorf("bookings for %s: %w", start.Format(time.DateOnly), err)
		}
		points = append(points, DailyRevenuePoint{
			Date:     start.Format(time.DateOnly),
			Revenue:  revenue,
			Bookings: count,
		})
	}
	return points, nil
}

// VehicleDetails collects one vehicle with its financials and history.
func (s *Service) VehicleDetails(ctx context.Context, vehicleID string) (*VehicleDetails, error) {
	v, err := s.records.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.records.ListBookingsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle bookings: %w", err)
	}
	records, err := s.records.ListMaintenanceByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle maintenance: %w", err)
	}
	locations, err := s.records.ListLocationHistory(ctx, vehicleID, locationHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("location history: %w", err)
	}

	l := ledgerOf(vehicleID, bookings, records)
	return &VehicleDetails{
		Vehicle:            v,
		Financial:          financialsOf(v, l),
		BookingHistory:     bookingHistoryOf(bookings, l),
		MaintenanceHistory: maintenanceHistoryOf(v, records, l, s.nowFn()),
		LocationHistory:    locations,
	}, nil
}

func bookingHistoryOf(bookings []*v1.Booking, l storage.VehicleLedger) BookingHistory {
	h := BookingHistory{
		TotalBookings:        int64(len(bookings)),
		CompletedBookings:    l.CompletedCount,
		AvgDailyRate:         decimal.Zero,
		AvgRevenuePerBooking: decimal.Zero,
		RecentBookings:       []*v1.Booking{},
	}
	if len(bookings) == 0 {
		return h
	}

	var days int64
	rates := decimal.Zero
	for _, b := range bookings {
		days += v1.RentalDays(b.StartDate, b.EndDate)
		rates = rates.Add(b.DailyRate)
	}
	n := decimal.NewFromInt(int64(len(bookings)))
	h.AvgBookingDuration = round1(float64(days) / float64(len(bookings)))
	h.AvgDailyRate = rates.DivRound(n, 2)
	if l.CompletedCount > 0 {
		h.AvgRevenuePerBooking = l.CompletedRevenue.DivRound(decimal.NewFromInt(l.CompletedCount), 2)
	}

	recent := append([]*v1.Booking(nil), bookings...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].StartDate.After(recent[j].StartDate) })
	if len(recent) > recentHistoryLimit {
		recent = recent[:recentHistoryLimit]
	}
	h.RecentBookings = recent
	return h
}

// maintenanceHistoryOf raises an alert for the latest service of each type
// when its next due date is within the lead time or its next mileage is
// within reach of the current odometer.
func maintenanceHistoryOf(v *v1.Vehicle, records []*v1.MaintenanceRecord, l storage.VehicleLedger, now time.Time) MaintenanceHistory {
	h := MaintenanceHistory{
		TotalRecords:          l.MaintenanceCount,
		TotalCost:             l.MaintenanceCost,
		RecentMaintenance:     []*v1.MaintenanceRecord{},
		UpcomingServiceAlerts: []*v1.MaintenanceRecord{},
	}

	sorted := make([]*v1.MaintenanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	seen := make(map[string]bool)
	for _, m := range sorted {
		if seen[m.Type] {
			continue
		}
		seen[m.Type] = true
		dueSoon := m.NextServiceDue != nil && m.NextServiceDue.Before(now.Add(serviceAlertLead))
		mileageSoon := m.NextServiceMileage != nil && *m.NextServiceMileage <= v.CurrentOdometer+serviceAlertDistance
		if dueSoon || mileageSoon {
			h.UpcomingServiceAlerts = append(h.UpcomingServiceAlerts, m)
		}
	}

	if len(sorted) > recentHistoryLimit {
		sorted = sorted[:recentHistoryLimit]
	}
	h.RecentMaintenance = sorted
	return h
}
