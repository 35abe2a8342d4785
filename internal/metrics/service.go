package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWindow  = 30 * 24 * time.Hour
	defaultHorizon = 90 * 24 * time.Hour
	daysPerMonth   = 30
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid metrics query")

// AggregateReader is the aggregate read surface metrics depend on.
type AggregateReader interface {
	Sum(table string, b aggregation.Bounds) (decimal.Decimal, error)
	Count(table string, b aggregation.Bounds) (int64, error)
}

// Options configures the metrics service.
type Options struct {
	// Window is the length of the current and previous comparison windows.
	Window time.Duration
	// Horizon is the look-back of category utilization.
	Horizon      time.Duration
	Amortization AmortizationPolicy
}

// Service computes dashboard and analytics metrics. Windowed money figures
// come from aggregate range queries; utilization scans bookings overlapping
// the window since overlap days cannot be derived from a range sum.
type Service struct {
	aggs    AggregateReader
	records storage.RecordReader
	window  time.Duration
	horizon time.Duration
	policy  AmortizationPolicy
	nowFn   func() time.Time
}

// NewService creates a new metrics service.
func NewService(aggs AggregateReader, records storage.RecordReader, opts Options) *Service {
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	if opts.Horizon <= 0 {
		opts.Horizon = defaultHorizon
	}
	if opts.Amortization == nil {
		opts.Amortization = StraightLine{Months: 12}
	}
	return &Service{
		aggs:    aggs,
		records: records,
		window:  opts.Window,
		horizon: opts.Horizon,
		policy:  opts.Amortization,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Service) windows() (current, previous aggregation.Window) {
	return aggregation.TrailingWindows(s.nowFn(), s.window)
}

var completed = aggregation.String(string(v1.BookingCompleted))

// completedRevenue sums completed bookings ending inside w.
func (s *Service) completedRevenue(w aggregation.Window) (decimal.Decimal, error) {
	return s.aggs.Sum(v1.TableBookings, w.Bounds(completed))
}

// TotalRevenue is completed-booking revenue by end date, current vs previous.
func (s *Service) TotalRevenue(ctx context.Context) (*MoneyMetric, error) {
	cur, prev := s.windows()

	current, err := s.completedRevenue(cur)
	if err != nil {
		return nil, fmt.Errorf("current revenue: %w", err)
	}
	previous, err := s.completedRevenue(prev)
	if err != nil {
		return nil, fmt.Errorf("previous revenue: %w", err)
	}

	return &MoneyMetric{
		Current:  current,
		Previous: previous,
		Trend:    Trend(current, previous),
	}, nil
}

// NetProfit is revenue minus maintenance minus the amortized acquisition
// charge of the window. Both windows carry the same acquisition charge.
func (s *Service) NetProfit(ctx context.Context) (*NetProfitMetric, error) {
	cur, prev := s.windows()

	curRevenue, err := s.completedRevenue(cur)
	if err != nil {
		return nil, fmt.Errorf("current revenue: %w", err)
	}
	prevRevenue, err := s.completedRevenue(prev)
	if err != nil {
		return nil, fmt.Errorf("previous revenue: %w", err)
	}
	curMaintenance, err := s.aggs.Sum(v1.TableMaintenance, cur.Bounds())
	if err != nil {
		return nil, fmt.Errorf("current maintenance: %w", err)
	}
	prevMaintenance, err := s.aggs.Sum(v1.TableMaintenance, prev.Bounds())
	if err != nil {
		return nil, fmt.Errorf("previous maintenance: %w", err)
	}
	charge, err := s.periodAcquisitionCharge(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("acquisition charge: %w", err)
	}

	current := curRevenue.Sub(curMaintenance).Sub(charge)
	previous := prevRevenue.Sub(prevMaintenance).Sub(charge)

	return &NetProfitMetric{
		Current:      current,
		Previous:     previous,
		Trend:        signedTrend(current, previous),
		ProfitMargin: percentOf(current, curRevenue),
	}, nil
}

// periodAcquisitionCharge is the fleet's monthly charge scaled to w.
func (s *Service) periodAcquisitionCharge(ctx context.Context, w aggregation.Window) (decimal.Decimal, error) {
	monthly, err := s.monthlyAcquisitionCharge(ctx, w.End)
	if err != nil {
		return decimal.Zero, err
	}
	days := w.Days()
	if days == daysPerMonth {
		return monthly, nil
	}
	return monthly.Mul(decimal.NewFromInt(int64(days))).Div(decimal.NewFromInt(daysPerMonth)).Round(2), nil
}

func (s *Service) monthlyAcquisitionCharge(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	if sl, ok := s.policy.(StraightLine); ok {
		total, err := s.aggs.Sum(v1.TableVehicles, aggregation.Bounds{})
		if err != nil {
			return decimal.Zero, err
		}
		return sl.charge(total), nil
	}

	vehicles, err := s.records.ListVehicles(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	charge := decimal.Zero
	for _, v := range vehicles {
		charge = charge.Add(s.policy.MonthlyCharge(v, at))
	}
	return charge, nil
}

// FleetUtilization is rented vehicle-days over possible vehicle-days per
// window. An empty fleet counts as one vehicle.
func (s *Service) FleetUtilization(ctx context.Context) (*UtilizationMetric, error) {
	cur, prev := s.windows()

	bookings, err := s.records.ListBookingsOverlapping(ctx, prev.Start, cur.End)
	if err != nil {
		return nil, fmt.Errorf("overlapping bookings: %w", err)
	}
	vehicles, err := s.aggs.Count(v1.TableVehicles, aggregation.Bounds{})
	if err != nil {
		return nil, fmt.Errorf("vehicle count: %w", err)
	}
	if vehicles == 0 {
		vehicles = 1
	}
	byStatus, err := s.records.CountVehiclesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("vehicle statuses: %w", err)
	}

	current := utilization(rentalDays(bookings, cur), cur, vehicles)
	previous := utilization(rentalDays(bookings, prev), prev, vehicles)

	return &UtilizationMetric{
		Current:        round2(current),
		Previous:       round2(previous),
		Trend:          round1(current - previous),
		ActiveVehicles: byStatus[v1.VehicleInUse] + byStatus[v1.VehicleReserved],
	}, nil
}

// ActiveBookings counts open (confirmed or active) bookings, compared with
// the bookings completed in the previous window.
func (s *Service) ActiveBookings(ctx context.Context) (*CountMetric, error) {
	_, prev := s.windows()

	var current int64
	for _, status := range []v1.BookingStatus{v1.BookingConfirmed, v1.BookingActive} {
		n, err := s.aggs.Count(v1.TableBookings, aggregation.WithPrefix(aggregation.String(string(status))))
		if err != nil {
			return nil, fmt.Errorf("%s bookings: %w", status, err)
		}
		current += n
	}
	previous, err := s.aggs.Count(v1.TableBookings, prev.Bounds(completed))
	if err != nil {
		return nil, fmt.Errorf("previous completed bookings: %w", err)
	}

	return &CountMetric{
		Current:  current,
		Previous: previous,
		Trend:    Trend(decimal.NewFromInt(current), decimal.NewFromInt(previous)),
	}, nil
}

// DashboardCards computes the four cards concurrently. A failing card is
// reported in Errors; the others still render.
func (s *Service) DashboardCards(ctx context.Context) *DashboardCards {
	var (
		cards DashboardCards
		mu    sync.Mutex
		g     errgroup.Group
	)

	fail := func(card string, err error) {
		slog.Warn("[Metrics] Dashboard card failed", "card", card, "error", err)
		mu.Lock()
		defer mu.Unlock()
		if cards.Errors == nil {
			cards.Errors = make(map[string]string)
		}
		cards.Errors[card] = err.Error()
	}

	g.Go(func() error {
		m, err := s.TotalRevenue(ctx)
		if err != nil {
			fail("total_revenue", err)
			return nil
		}
		cards.TotalRevenue = m
		return nil
	})
	g.Go(func() error {
		m, err := s.NetProfit(ctx)
		if err != nil {
			fail("net_profit", err)
			return nil
		}
		cards.NetProfit = m
		return nil
	})
	g.Go(func() error {
		m, err := s.FleetUtilization(ctx)
		if err != nil {
			fail("fleet_utilization", err)
			return nil
		}
		cards.FleetUtilization = m
		return nil
	})
	g.Go(func() error {
		m, err := s.ActiveBookings(ctx)
		if err != nil {
			fail("active_bookings", err)
			return nil
		}
		cards.ActiveBookings = m
		return nil
	})

	_ = g.Wait()
	return &cards
}

// Overview summarizes all-time revenue and cost with current utilization.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	cur, _ := s.windows()

	revenue, err := s.aggs.Sum(v1.TableBookings, aggregation.WithPrefix(completed))
	if err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}
	completedCount, err := s.aggs.Count(v1.TableBookings, aggregation.WithPrefix(completed))
	if err != nil {
		return nil, fmt.Errorf("completed bookings: %w", err)
	}
	acquisition, err := s.aggs.Sum(v1.TableVehicles, aggregation.Bounds{})
	if err != nil {
		return nil, fmt.Errorf("acquisition cost: %w", err)
	}
	maintenance, err := s.aggs.Sum(v1.TableMaintenance, aggregation.Bounds{})
	if err != nil {
		return nil, fmt.Errorf("maintenance cost: %w", err)
	}
	vehicles, err := s.aggs.Count(v1.TableVehicles, aggregation.Bounds{})
	if err != nil {
		return nil, fmt.Errorf("vehicle count: %w", err)
	}
	byStatus, err := s.records.CountVehiclesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("vehicle statuses: %w", err)
	}
	bookings, err := s.records.ListBookingsOverlapping(ctx, cur.Start, cur.End)
	if err != nil {
		return nil, fmt.Errorf("overlapping bookings: %w", err)
	}

	costs := acquisition.Add(maintenance)
	avg := decimal.Zero
	if completedCount > 0 {
		avg = revenue.DivRound(decimal.NewFromInt(completedCount), 2)
	}

	return &Overview{
		TotalRevenue:    revenue,
		TotalCosts:      costs,
		NetProfit:       revenue.Sub(costs),
		UtilizationRate: round2(utilization(rentalDays(bookings, cur), cur, vehicles)),
		TotalVehicles:   vehicles,
		FleetStatus: FleetStatus{
			Available:   byStatus[v1.VehicleAvailable],
			Reserved:    byStatus[v1.VehicleReserved],
			InUse:       byStatus[v1.VehicleInUse],
			Maintenance: byStatus[v1.VehicleMaintenance],
		},
		TotalBookings:       completedCount,
		AverageBookingValue: avg,
	}, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
