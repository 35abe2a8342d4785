package seed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	core "github.com/aevon-lab/fleetwise/internal/core/aggregation"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/aevon-lab/fleetwise/internal/core/storage/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(7, now).Generate()
	b := NewGenerator(7, now).Generate()
	require.Equal(t, a, b)

	c := NewGenerator(8, now).Generate()
	require.NotEqual(t, a.Vehicles[0].ID, c.Vehicles[0].ID)
}

func TestGenerator_ProducesValidFleet(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42, 1 << 40} {
		ds := NewGenerator(seed, now).Generate()
		require.Len(t, ds.Vehicles, len(fleetModels))

		byID := make(map[string]*v1.Vehicle)
		plates := make(map[string]bool)
		for _, v := range ds.Vehicles {
			require.NoError(t, v.Validate())
			require.False(t, plates[v.LicensePlate], "duplicate plate %s", v.LicensePlate)
			plates[v.LicensePlate] = true
			byID[v.ID] = v
		}

		open := make(map[string]v1.BookingStatus)
		for _, b := range ds.Bookings {
			require.NoError(t, b.Validate())
			require.Contains(t, byID, b.VehicleID)
			require.True(t, v1.PriceBooking(b.StartDate, b.EndDate, b.DailyRate).Equal(b.TotalAmount))
			if b.Status == v1.BookingCompleted {
				assert.False(t, b.EndDate.After(now), "completed bookings end in the past")
			} else {
				open[b.VehicleID] = b.Status
			}
		}

		for id, v := range byID {
			switch open[id] {
			case v1.BookingActive:
				assert.Equal(t, v1.VehicleInUse, v.Status)
			case v1.BookingConfirmed:
				assert.Equal(t, v1.VehicleReserved, v.Status)
			default:
				assert.Equal(t, v1.VehicleAvailable, v.Status)
			}
		}

		require.GreaterOrEqual(t, len(ds.Maintenance), 2*len(ds.Vehicles))
		for _, m := range ds.Maintenance {
			require.NoError(t, m.Validate())
			require.Contains(t, byID, m.VehicleID)
			require.False(t, m.Date.Before(now.Add(-historyDays*day)))
		}
	}
}

func newTestSeeder(t *testing.T) (*Seeder, *memory.Store, *aggregation.Set) {
	t.Helper()
	repo, err := core.NewFileSystemDefinitionRepository("", v1.FieldCatalog())
	require.NoError(t, err)
	set := aggregation.NewSet(repo.List())
	store := memory.NewStore()
	s := NewSeeder(store, aggregation.NewBackfiller(set, store, aggregation.DefaultBackfillOptions()))
	s.nowFn = func() time.Time { return now }
	return s, store, set
}

func TestSeeder_ReplacesDataAndBackfills(t *testing.T) {
	s, store, set := newTestSeeder(t)
	ctx := context.Background()

	first, err := s.Run(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, 0, first.Removed)

	second, err := s.Run(ctx, 12)
	require.NoError(t, err)
	require.Equal(t, first.Vehicles+first.Bookings+first.Maintenance, second.Removed)

	bookings, err := store.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, second.Bookings)

	count, err := set.Count(v1.TableBookings, aggregation.Bounds{})
	require.NoError(t, err)
	require.Equal(t, int64(second.Bookings), count)

	totals, err := store.TableTotals(ctx, v1.TableMaintenance, "cost")
	require.NoError(t, err)
	sum, err := set.Sum(v1.TableMaintenance, aggregation.Bounds{})
	require.NoError(t, err)
	require.True(t, totals.Sum.Equal(sum))
	require.Equal(t, int64(second.Maintenance), totals.Count)

	vehicles, err := store.ListVehicles(ctx)
	require.NoError(t, err)
	var acquisition decimal.Decimal
	for _, v := range vehicles {
		acquisition = acquisition.Add(v.AcquisitionCost)
		history, err := store.ListLocationHistory(ctx, v.ID, 0)
		require.NoError(t, err)
		require.Len(t, history, 1)
	}
	fleetValue, err := set.Sum(v1.TableVehicles, aggregation.Bounds{})
	require.NoError(t, err)
	require.True(t, acquisition.Equal(fleetValue))
}

// brokenRebuilder fails every run.
type brokenRebuilder struct{}

func (brokenRebuilder) Run(context.Context) (aggregation.BackfillResult, error) {
	return aggregation.BackfillResult{}, storage.ErrConflict
}

func TestHandler_Seed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _, _ := newTestSeeder(t)
	r := gin.New()
	s.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/admin/seed?seed=5", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, uint64(5), res.Seed)
	require.Equal(t, len(fleetModels), res.Vehicles)
	require.Len(t, res.Backfill.Tables, 3)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/admin/seed?seed=minus", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	s.rebuild = brokenRebuilder{}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/admin/seed?seed=5", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
