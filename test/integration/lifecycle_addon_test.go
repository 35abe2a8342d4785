//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	"github.com/aevon-lab/fleetwise/internal/seed"
	"github.com/stretchr/testify/require"
)

func TestFleetAPI_DriftAndBackfill_AddOn(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	t.Run("health endpoint", func(t *testing.T) {
		resp, err := h.client.Get(h.baseURL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	})

	var seeded seed.Result
	t.Run("seed loads sample data and backfills", func(t *testing.T) {
		status, body := postJSON(t, h.client, h.baseURL+"/v1/admin/seed?seed=99", nil)
		require.Equal(t, http.StatusOK, status, string(body))
		require.NoError(t, json.Unmarshal(body, &seeded))
		require.Greater(t, seeded.Bookings, 0)

		var report aggregation.DriftReport
		getJSON(t, h.client, h.baseURL+"/v1/admin/aggregates/verify", &report)
		require.False(t, report.Drifted, "%+v", report)
	})

	t.Run("direct writes are reported as drift", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		end := time.Now().UTC().Add(-24 * time.Hour)
		_, err := h.db.ExecContext(ctx, `
			INSERT INTO bookings (id, vehicle_id, customer_name, customer_email, start_date, end_date, daily_rate, total_amount, status)
			VALUES ('out-of-band', 'nobody', 'Eve', 'eve@example.com', $1, $2, 10, 10, 'completed')`,
			end.Add(-24*time.Hour), end)
		require.NoError(t, err)

		var report aggregation.DriftReport
		getJSON(t, h.client, h.baseURL+"/v1/admin/aggregates/verify", &report)
		require.True(t, report.Drifted)
	})

	t.Run("backfill restores sync and records history", func(t *testing.T) {
		status, body := postJSON(t, h.client, h.baseURL+"/v1/admin/backfill", nil)
		require.Equal(t, http.StatusOK, status, string(body))

		var report aggregation.DriftReport
		getJSON(t, h.client, h.baseURL+"/v1/admin/aggregates/verify", &report)
		require.False(t, report.Drifted, "%+v", report)

		var count aggregation.RangeQueryResponse
		getJSON(t, h.client, h.baseURL+"/v1/aggregates/bookings/count", &count)
		require.Equal(t, int64(seeded.Bookings+1), count.Count)

		var runs []map[string]interface{}
		getJSON(t, h.client, h.baseURL+"/v1/admin/backfill", &runs)
		require.Len(t, runs, 3)
	})

	t.Run("deleting the out-of-band booking keeps aggregates in sync", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, h.baseURL+"/v1/bookings/out-of-band", nil)
		require.NoError(t, err)
		resp, err := h.client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var report aggregation.DriftReport
		getJSON(t, h.client, h.baseURL+"/v1/admin/aggregates/verify", &report)
		require.False(t, report.Drifted, "%+v", report)
	})
}
