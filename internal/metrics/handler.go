package metrics

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/fleetwise/internal/core/errors"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const defaultDailyRevenueDays = 30

// RegisterRoutes registers all dashboard routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/dashboard")
	g.GET("/cards", s.HandleDashboardCards)
	g.GET("/revenue", s.HandleTotalRevenue)
	g.GET("/net-profit", s.HandleNetProfit)
	g.GET("/utilization", s.HandleFleetUtilization)
	g.GET("/active-bookings", s.HandleActiveBookings)
	g.GET("/overview", s.HandleOverview)
	g.GET("/profitability", s.HandleProfitabilityList)
	g.GET("/profitability/:vehicle_id", s.HandleVehicleProfitability)
	g.GET("/categories", s.HandleCategoryAnalytics)
	g.GET("/break-even", s.HandleBreakEven)
	g.GET("/daily-revenue", s.HandleDailyRevenue)
	g.GET("/vehicles/:vehicle_id", s.HandleVehicleDetails)
}

// HandleDashboardCards handles GET /v1/dashboard/cards. It always answers 200;
// failed cards are listed in the body.
func (s *Service) HandleDashboardCards(c *gin.Context) {
	c.JSON(http.StatusOK, s.DashboardCards(c.Request.Context()))
}

func (s *Service) HandleTotalRevenue(c *gin.Context) {
	m, err := s.TotalRevenue(c.Request.Context())
	respond(c, m, err)
}

func (s *Service) HandleNetProfit(c *gin.Context) {
	m, err := s.NetProfit(c.Request.Context())
	respond(c, m, err)
}

func (s *Service) HandleFleetUtilization(c *gin.Context) {
	m, err := s.FleetUtilization(c.Request.Context())
	respond(c, m, err)
}

func (s *Service) HandleActiveBookings(c *gin.Context) {
	m, err := s.ActiveBookings(c.Request.Context())
	respond(c, m, err)
}

func (s *Service) HandleOverview(c *gin.Context) {
	m, err := s.Overview(c.Request.Context())
	respond(c, m, err)
}

func (s *Service) HandleProfitabilityList(c *gin.Context) {
	m, err := s.VehicleProfitabilityList(c.Request.Context())
	respond(c, m, err)
}

// HandleVehicleProfitability handles GET /v1/dashboard/profitability/:vehicle_id
func (s *Service) HandleVehicleProfitability(c *gin.Context) {
	m, err := s.VehicleProfitability(c.Request.Context(), c.Param("vehicle_id"))
	respond(c, m, err)
}

func (s *Service) HandleCategoryAnalytics(c *gin.Context) {
	m, err := s.CategoryAnalytics(c.Request.Context())
	respond(c, m, err)
}

func (s *Service) HandleBreakEven(c *gin.Context) {
	m, err := s.BreakEvenAnalysis(c.Request.Context())
	respond(c, m, err)
}

// HandleDailyRevenue handles GET /v1/dashboard/daily-revenue
// Query parameters: days (default 30)
func (s *Service) HandleDailyRevenue(c *gin.Context) {
	var query struct {
		Days int `form:"days"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}
	if query.Days == 0 {
		query.Days = defaultDailyRevenueDays
	}

	m, err := s.DailyRevenue(c.Request.Context(), query.Days)
	respond(c, m, err)
}

// HandleVehicleDetails handles GET /v1/dashboard/vehicles/:vehicle_id
func (s *Service) HandleVehicleDetails(c *gin.Context) {
	m, err := s.VehicleDetails(c.Request.Context(), c.Param("vehicle_id"))
	respond(c, m, err)
}

func respond(c *gin.Context, body interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, body)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid metrics query",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
			Message:   "Vehicle not found",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to compute metrics",
			Details:   err.Error(),
		})
	}
}
