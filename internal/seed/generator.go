package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	historyDays     = 90
	day             = 24 * time.Hour
	upcomingChance  = 0.3
	inProgressRatio = 0.15
)

type fleetModel struct {
	make, model     string
	year            int
	category        v1.VehicleCategory
	body            string
	dailyRate       int64
	acquisitionCost int64
}

var fleetModels = []fleetModel{
	{"Toyota", "Corolla", 2023, v1.CategoryEconomy, "sedan", 45, 25000},
	{"Toyota", "Corolla", 2023, v1.CategoryEconomy, "sedan", 45, 25000},
	{"Toyota", "Corolla", 2022, v1.CategoryEconomy, "sedan", 40, 22000},
	{"Honda", "Civic", 2023, v1.CategoryEconomy, "sedan", 48, 26000},
	{"Honda", "Civic", 2023, v1.CategoryEconomy, "sedan", 48, 26000},
	{"Hyundai", "Elantra", 2023, v1.CategoryEconomy, "sedan", 42, 23000},

	{"Toyota", "RAV4", 2023, v1.CategoryMidSUV, "suv", 65, 35000},
	{"Toyota", "RAV4", 2023, v1.CategoryMidSUV, "suv", 65, 35000},
	{"Toyota", "RAV4", 2022, v1.CategoryMidSUV, "suv", 60, 32000},
	{"Honda", "CR-V", 2023, v1.CategoryMidSUV, "suv", 62, 34000},
	{"Honda", "CR-V", 2023, v1.CategoryMidSUV, "suv", 62, 34000},
	{"Mazda", "CX-5", 2023, v1.CategoryMidSUV, "suv", 63, 33000},

	{"Tesla", "Model 3", 2023, v1.CategoryLuxury, "sedan", 95, 45000},
	{"Tesla", "Model 3", 2023, v1.CategoryLuxury, "sedan", 95, 45000},
	{"BMW", "3 Series", 2023, v1.CategoryLuxury, "sedan", 110, 50000},
	{"Mercedes-Benz", "C-Class", 2023, v1.CategoryLuxury, "sedan", 115, 52000},

	{"Chevrolet", "Tahoe", 2023, v1.CategoryLargeSUV, "suv", 85, 55000},
	{"Ford", "Explorer", 2023, v1.CategoryLargeSUV, "suv", 80, 50000},
	{"Toyota", "Highlander", 2023, v1.CategoryLargeSUV, "suv", 78, 48000},

	{"Ford", "F-150", 2023, v1.CategoryTruck, "truck", 90, 50000},
	{"Chevrolet", "Silverado", 2023, v1.CategoryTruck, "truck", 88, 48000},
}

// targetUtilization is the share of the history a model spends rented.
func (m fleetModel) targetUtilization() float64 {
	switch {
	case m.body == "suv" && m.dailyRate < 70:
		return 0.7
	case m.body == "sedan" && m.dailyRate < 50:
		return 0.65
	case m.make == "Tesla" || m.make == "BMW":
		return 0.5
	case m.body == "truck":
		return 0.35
	}
	return 0.55
}

type customer struct{ name, email string }

var customers = []customer{
	{"John Smith", "john.smith@email.com"},
	{"Sarah Johnson", "sarah.j@email.com"},
	{"Michael Brown", "m.brown@email.com"},
	{"Emily Davis", "emily.davis@email.com"},
	{"David Wilson", "d.wilson@email.com"},
	{"Jessica Martinez", "j.martinez@email.com"},
	{"James Anderson", "james.a@email.com"},
	{"Lisa Taylor", "lisa.t@email.com"},
	{"Robert Thomas", "rob.thomas@email.com"},
	{"Jennifer White", "jen.white@email.com"},
}

type serviceKind struct {
	name       string
	minCost    int64
	maxCost    int64
	interval   time.Duration
	intervalKm float64
}

var serviceKinds = []serviceKind{
	{"Oil Change", 50, 80, 90 * day, 5000},
	{"Tire Rotation", 40, 60, 120 * day, 8000},
	{"Brake Service", 200, 400, 0, 0},
	{"General Inspection", 75, 125, 365 * day, 0},
	{"Battery Replacement", 150, 250, 0, 0},
	{"Air Filter Replacement", 30, 50, 0, 15000},
	{"Transmission Service", 300, 500, 0, 0},
}

// bookingLengths is weighted toward three to five days.
var bookingLengths = []int{1, 2, 3, 3, 4, 4, 5, 5, 6, 7}

// Dataset is one generated fleet with its booking and maintenance history.
type Dataset struct {
	Vehicles    []*v1.Vehicle
	Bookings    []*v1.Booking
	Maintenance []*v1.MaintenanceRecord
}

// Generator builds sample datasets. The same seed and clock yield the same
// dataset, IDs included.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
	now time.Time
}

func NewGenerator(seed uint64, now time.Time) *Generator {
	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src), now: now.UTC().Truncate(time.Second)}
}

func (g *Generator) id() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8 reads never fail.
		panic(err)
	}
	return id.String()
}

func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

func (g *Generator) plate(used map[string]bool) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for {
		p := fmt.Sprintf("%c%c%c-%04d",
			letters[g.rng.IntN(26)], letters[g.rng.IntN(26)], letters[g.rng.IntN(26)], g.rng.IntN(10000))
		if !used[p] {
			used[p] = true
			return p
		}
	}
}

// Generate builds a fleet acquired historyDays ago with completed rentals up
// to now, some in-progress and upcoming rentals, and a few services each.
func (g *Generator) Generate() Dataset {
	var ds Dataset
	acquired := g.now.Add(-historyDays * day)
	plates := make(map[string]bool)

	for _, m := range fleetModels {
		odometer := float64(g.between(5000, 25000))
		v := &v1.Vehicle{
			ID:                 g.id(),
			Make:               m.make,
			Model:              m.model,
			Year:               m.year,
			LicensePlate:       g.plate(plates),
			VIN:                fmt.Sprintf("VIN%08d", g.between(10000000, 99999999)),
			AcquisitionCost:    decimal.NewFromInt(m.acquisitionCost),
			Category:           m.category,
			Status:             v1.VehicleAvailable,
			CurrentLatitude:    40.7128 + (g.rng.Float64()-0.5)*0.1,
			CurrentLongitude:   -74.0060 + (g.rng.Float64()-0.5)*0.1,
			LastLocationUpdate: g.now.Add(-time.Duration(g.between(0, 3600)) * time.Second),
			CurrentOdometer:    odometer,
			LastOdometerUpdate: g.now,
			AcquiredAt:         acquired,
		}
		ds.Vehicles = append(ds.Vehicles, v)
		ds.Bookings = append(ds.Bookings, g.bookings(v, m, acquired)...)
		ds.Maintenance = append(ds.Maintenance, g.services(v, acquired)...)
	}
	return ds
}

func (g *Generator) booking(v *v1.Vehicle, rate int64, start, end time.Time, status v1.BookingStatus) *v1.Booking {
	c := customers[g.rng.IntN(len(customers))]
	dailyRate := decimal.NewFromInt(rate)
	return &v1.Booking{
		ID:            g.id(),
		VehicleID:     v.ID,
		CustomerName:  c.name,
		CustomerEmail: c.email,
		StartDate:     start,
		EndDate:       end,
		DailyRate:     dailyRate,
		TotalAmount:   v1.PriceBooking(start, end, dailyRate),
		Status:        status,
	}
}

// bookings lays completed rentals back to back with 0-3 day gaps until the
// vehicle reaches its target utilization, then maybe adds a current or an
// upcoming rental and sets the vehicle status to match.
func (g *Generator) bookings(v *v1.Vehicle, m fleetModel, from time.Time) []*v1.Booking {
	var out []*v1.Booking
	target := int(historyDays * m.targetUtilization())
	rented := 0
	cursor := from

	for rented < target {
		length := bookingLengths[g.rng.IntN(len(bookingLengths))]
		end := cursor.Add(time.Duration(length) * day)
		if end.After(g.now) {
			break
		}
		out = append(out, g.booking(v, m.dailyRate, cursor, end, v1.BookingCompleted))
		rented += length
		cursor = end.Add(time.Duration(g.rng.IntN(4)) * day)
	}

	switch r := g.rng.Float64(); {
	case r < inProgressRatio && cursor.Before(g.now.Add(-2*day)):
		start := g.now.Add(-2 * day)
		out = append(out, g.booking(v, m.dailyRate, start, start.Add(time.Duration(g.between(3, 6))*day), v1.BookingActive))
		v.Status = v1.VehicleInUse
	case r > 1-upcomingChance:
		start := g.now.Add(time.Duration(g.between(1, 7)) * day)
		out = append(out, g.booking(v, m.dailyRate, start, start.Add(time.Duration(g.between(3, 7))*day), v1.BookingConfirmed))
		v.Status = v1.VehicleReserved
	}
	return out
}

func (g *Generator) services(v *v1.Vehicle, from time.Time) []*v1.MaintenanceRecord {
	n := int(g.between(2, 5))
	out := make([]*v1.MaintenanceRecord, 0, n)
	span := g.now.Sub(from)
	for i := 0; i < n; i++ {
		kind := serviceKinds[g.rng.IntN(len(serviceKinds))]
		date := from.Add(time.Duration(g.rng.Int64N(int64(span)))).Truncate(time.Second)
		odometer := v.CurrentOdometer - float64(g.between(500, 5000))
		rec := &v1.MaintenanceRecord{
			ID:                g.id(),
			VehicleID:         v.ID,
			Date:              date,
			Type:              kind.name,
			Description:       kind.name + " service performed",
			Cost:              decimal.NewFromInt(g.between(kind.minCost, kind.maxCost)),
			OdometerAtService: odometer,
		}
		if kind.interval > 0 {
			due := date.Add(kind.interval)
			rec.NextServiceDue = &due
		}
		if kind.intervalKm > 0 {
			mileage := odometer + kind.intervalKm
			rec.NextServiceMileage = &mileage
		}
		out = append(out, rec)
	}
	return out
}
