package aggregation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Backfiller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	seedStore(t, store, 5)
	set := newTestSet(t)
	b := NewBackfiller(set, store, DefaultBackfillOptions())
	_, err := b.Run(context.Background())
	require.NoError(t, err)

	r := gin.New()
	NewHandler(set, b).RegisterRoutes(r)
	return r, b
}

func TestHandler_RangeQuery(t *testing.T) {
	r, _ := newTestRouter(t)
	day2 := Millis(base.AddDate(0, 0, 2)).String()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedValue  string
		expectedCount  int64
	}{
		{
			name:           "sum over prefix",
			path:           "/v1/aggregates/bookings/sum?prefix=completed",
			expectedStatus: http.StatusOK,
			expectedValue:  "90",
			expectedCount:  3,
		},
		{
			name:           "count everything",
			path:           "/v1/aggregates/bookings/count",
			expectedStatus: http.StatusOK,
			expectedValue:  "5",
			expectedCount:  5,
		},
		{
			name:           "exclusive upper bound",
			path:           fmt.Sprintf("/v1/aggregates/bookings/sum?lower=completed&upper=completed,%s&upper_inclusive=false", day2),
			expectedStatus: http.StatusOK,
			expectedValue:  "10",
			expectedCount:  1,
		},
		{
			name:           "average",
			path:           "/v1/aggregates/bookings/avg?prefix=completed",
			expectedStatus: http.StatusOK,
			expectedValue:  "30",
			expectedCount:  3,
		},
		{
			name:           "unknown operator",
			path:           "/v1/aggregates/bookings/median",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown table",
			path:           "/v1/aggregates/payments/sum",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric timestamp component",
			path:           "/v1/aggregates/bookings/sum?lower=completed,yesterday",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "NaN timestamp component",
			path:           "/v1/aggregates/bookings/sum?lower=completed,NaN",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "lower above upper",
			path:           "/v1/aggregates/bookings/sum?lower=confirmed&upper=active",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "prefix with lower",
			path:           "/v1/aggregates/bookings/sum?prefix=completed&lower=active",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			if tc.expectedStatus != http.StatusOK {
				return
			}
			var resp RangeQueryResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.True(t, decimal.RequireFromString(tc.expectedValue).Equal(resp.Value), "value=%s", resp.Value)
			require.Equal(t, tc.expectedCount, resp.Count)
			require.Equal(t, v1.TableBookings, resp.Table)
		})
	}
}

func TestHandler_AdminEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/admin/backfill", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var res BackfillResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Tables, 3)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/backfill", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Runs []map[string]interface{} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Runs, 3)
	require.Equal(t, v1.TableBookings, history.Runs[0]["table"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/aggregates/verify", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var report DriftReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.False(t, report.Drifted)
}
