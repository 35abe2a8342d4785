package fleet

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := newTestEnv(t)
	r := gin.New()
	env.svc.RegisterRoutes(r)
	return r, env
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

const vehicleBody = `{
	"make": "Ford", "model": "Transit", "year": 2023, "license_plate": "TX-9", "vin": "VIN-TX-9",
	"acquisition_cost": "41000", "category": "Trucks",
	"current_latitude": 30.2, "current_longitude": -97.7, "current_odometer": 5000
}`

func TestHandler_VehicleAndBookingFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/v1/vehicles", vehicleBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var vehicle struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vehicle))
	require.Equal(t, "available", vehicle.Status)

	w = do(r, http.MethodPost, "/v1/bookings", `{
		"vehicle_id": "`+vehicle.ID+`", "customer_name": "Ada", "customer_email": "ada@example.com",
		"start_date": "2026-03-01T00:00:00Z", "end_date": "2026-03-04T00:00:00Z", "daily_rate": 55
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booking struct {
		ID          string `json:"id"`
		TotalAmount string `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	require.Equal(t, "165", booking.TotalAmount)

	w = do(r, http.MethodDelete, "/v1/vehicles/"+vehicle.ID, "")
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPut, "/v1/bookings/"+booking.ID+"/status", `{"status": "completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/v1/bookings", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		ID      string                 `json:"id"`
		Status  string                 `json:"status"`
		Vehicle map[string]interface{} `json:"vehicle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "completed", list[0].Status)
	require.Equal(t, vehicle.ID, list[0].Vehicle["id"])

	w = do(r, http.MethodDelete, "/v1/vehicles/"+vehicle.ID, "")
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedType   string
	}{
		{name: "malformed json", method: http.MethodPost, path: "/v1/vehicles", body: `{"make":`, expectedStatus: http.StatusBadRequest, expectedType: "invalid_json"},
		{name: "validation", method: http.MethodPost, path: "/v1/vehicles", body: `{"make": "Ford"}`, expectedStatus: http.StatusBadRequest, expectedType: "validation_failed"},
		{name: "missing vehicle", method: http.MethodGet, path: "/v1/vehicles/nope", expectedStatus: http.StatusNotFound, expectedType: "not_found"},
		{name: "missing location body", method: http.MethodPut, path: "/v1/vehicles/nope/location", body: `{"latitude": 1}`, expectedStatus: http.StatusBadRequest, expectedType: "invalid_json"},
		{name: "bad limit", method: http.MethodGet, path: "/v1/vehicles/nope/locations?limit=x", expectedStatus: http.StatusBadRequest, expectedType: "invalid_query"},
		{name: "missing booking", method: http.MethodDelete, path: "/v1/bookings/nope", expectedStatus: http.StatusNotFound, expectedType: "not_found"},
		{name: "missing maintenance", method: http.MethodDelete, path: "/v1/maintenance/nope", expectedStatus: http.StatusNotFound, expectedType: "not_found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, tc.method, tc.path, tc.body)
			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())

			var body struct {
				ErrorType string `json:"error_type"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tc.expectedType, body.ErrorType)
		})
	}
}
