package fleet

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	httperr "github.com/aevon-lab/fleetwise/internal/core/errors"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers vehicle, booking and maintenance routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	vehicles := r.Group("/v1/vehicles")
	vehicles.GET("", s.HandleListVehicles)
	vehicles.POST("", s.HandleCreateVehicle)
	vehicles.GET("/:id", s.HandleGetVehicle)
	vehicles.DELETE("/:id", s.HandleDeleteVehicle)
	vehicles.PUT("/:id/location", s.HandleUpdateLocation)
	vehicles.PUT("/:id/odometer", s.HandleUpdateOdometer)
	vehicles.PUT("/:id/status", s.HandleUpdateVehicleStatus)
	vehicles.GET("/:id/locations", s.HandleLocationHistory)

	bookings := r.Group("/v1/bookings")
	bookings.GET("", s.HandleListBookings)
	bookings.POST("", s.HandleCreateBooking)
	bookings.GET("/:id", s.HandleGetBooking)
	bookings.PUT("/:id/status", s.HandleUpdateBookingStatus)
	bookings.DELETE("/:id", s.HandleDeleteBooking)

	maintenance := r.Group("/v1/maintenance")
	maintenance.GET("", s.HandleListMaintenance)
	maintenance.POST("", s.HandleCreateMaintenance)
	maintenance.DELETE("/:id", s.HandleDeleteMaintenance)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

func (s *Service) HandleListVehicles(c *gin.Context) {
	out, err := s.ListVehicles(c.Request.Context())
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleCreateVehicle(c *gin.Context) {
	var in VehicleInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := s.CreateVehicle(c.Request.Context(), in)
	respond(c, http.StatusCreated, out, err)
}

func (s *Service) HandleGetVehicle(c *gin.Context) {
	out, err := s.GetVehicle(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleDeleteVehicle(c *gin.Context) {
	err := s.DeleteVehicle(c.Request.Context(), c.Param("id"))
	respondNoContent(c, err)
}

// HandleUpdateLocation handles PUT /v1/vehicles/:id/location
// Body: {"latitude": ..., "longitude": ...}
func (s *Service) HandleUpdateLocation(c *gin.Context) {
	var body struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	out, err := s.UpdateVehicleLocation(c.Request.Context(), c.Param("id"), *body.Latitude, *body.Longitude)
	respond(c, http.StatusOK, out, err)
}

// HandleUpdateOdometer handles PUT /v1/vehicles/:id/odometer
// Body: {"reading": ...}
func (s *Service) HandleUpdateOdometer(c *gin.Context) {
	var body struct {
		Reading *float64 `json:"reading" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	out, err := s.UpdateVehicleOdometer(c.Request.Context(), c.Param("id"), *body.Reading)
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleUpdateVehicleStatus(c *gin.Context) {
	var body struct {
		Status v1.VehicleStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	out, err := s.UpdateVehicleStatus(c.Request.Context(), c.Param("id"), body.Status)
	respond(c, http.StatusOK, out, err)
}

// HandleLocationHistory handles GET /v1/vehicles/:id/locations
// Query parameters: limit (default 100)
func (s *Service) HandleLocationHistory(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}
	out, err := s.LocationHistory(c.Request.Context(), c.Param("id"), query.Limit)
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleListBookings(c *gin.Context) {
	out, err := s.ListBookings(c.Request.Context())
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleCreateBooking(c *gin.Context) {
	var in BookingInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := s.CreateBooking(c.Request.Context(), in)
	respond(c, http.StatusCreated, out, err)
}

func (s *Service) HandleGetBooking(c *gin.Context) {
	out, err := s.GetBooking(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleUpdateBookingStatus(c *gin.Context) {
	var body struct {
		Status v1.BookingStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	out, err := s.UpdateBookingStatus(c.Request.Context(), c.Param("id"), body.Status)
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleDeleteBooking(c *gin.Context) {
	respondNoContent(c, s.DeleteBooking(c.Request.Context(), c.Param("id")))
}

func (s *Service) HandleListMaintenance(c *gin.Context) {
	out, err := s.ListMaintenance(c.Request.Context())
	respond(c, http.StatusOK, out, err)
}

func (s *Service) HandleCreateMaintenance(c *gin.Context) {
	var in MaintenanceInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := s.CreateMaintenance(c.Request.Context(), in)
	respond(c, http.StatusCreated, out, err)
}

func (s *Service) HandleDeleteMaintenance(c *gin.Context) {
	respondNoContent(c, s.DeleteMaintenance(c.Request.Context(), c.Param("id")))
}

func respond(c *gin.Context, status int, body interface{}, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, body)
}

func respondNoContent(c *gin.Context, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpValidationError,
			Message:   "Record validation failed",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
			Message:   "Record not found",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, httperr.ErrorResponse{
			ErrorType: httperr.HttpConflictError,
			Message:   "Record conflict",
			Details:   err.Error(),
		})
	case errors.Is(err, aggregation.ErrNotFound):
		slog.Error("[Fleet] Aggregate out of sync with records", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpAggregateDesync,
			Message:   "Aggregates are out of sync; run a backfill",
		})
	default:
		slog.Error("[Fleet] Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Internal server error",
		})
	}
}
