package seed

import (
	"net/http"
	"time"

	httperr "github.com/aevon-lab/fleetwise/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers POST /v1/admin/seed. Only debug servers mount it.
func (s *Seeder) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/admin/seed", s.HandleSeed)
}

// HandleSeed handles POST /v1/admin/seed
// Query parameters: seed (optional; defaults to the current time)
func (s *Seeder) HandleSeed(c *gin.Context) {
	var query struct {
		Seed *uint64 `form:"seed"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}
	seed := uint64(time.Now().UnixNano())
	if query.Seed != nil {
		seed = *query.Seed
	}

	res, err := s.Run(c.Request.Context(), seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Seeding failed",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, res)
}
