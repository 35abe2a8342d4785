package aggregation

import (
	"errors"
	"net/http"

	core "github.com/aevon-lab/fleetwise/internal/core/aggregation"
	httperr "github.com/aevon-lab/fleetwise/internal/core/errors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Handler exposes aggregate queries and the rebuild/verify admin endpoints.
type Handler struct {
	set        *Set
	backfiller *Backfiller
}

func NewHandler(set *Set, backfiller *Backfiller) *Handler {
	return &Handler{set: set, backfiller: backfiller}
}

// RangeQueryResponse is the body of GET /v1/aggregates/:table/:op.
type RangeQueryResponse struct {
	Table      string          `json:"table"`
	Definition string          `json:"definition"`
	SortKey    []string        `json:"sort_key"`
	Operator   string          `json:"operator"`
	Value      decimal.Decimal `json:"value"`
	Count      int64           `json:"count"`
}

// RegisterRoutes registers aggregate and admin routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/aggregates/:table/:op", h.HandleRangeQuery)

	admin := r.Group("/v1/admin")
	admin.POST("/backfill", h.HandleBackfill)
	admin.GET("/backfill", h.HandleBackfillHistory)
	admin.GET("/aggregates/verify", h.HandleVerify)
}

// HandleRangeQuery handles GET /v1/aggregates/:table/:op
// Query parameters: lower, lower_inclusive, upper, upper_inclusive, prefix.
// Keys are comma-separated components, e.g. lower=completed,1767225600000.
func (h *Handler) HandleRangeQuery(c *gin.Context) {
	var uri struct {
		Table string `uri:"table" binding:"required"`
		Op    string `uri:"op" binding:"required"`
	}
	var query struct {
		Lower          string `form:"lower"`
		LowerInclusive *bool  `form:"lower_inclusive"`
		Upper          string `form:"upper"`
		UpperInclusive *bool  `form:"upper_inclusive"`
		Prefix         string `form:"prefix"`
	}

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	op, ok := core.Operators[uri.Op]
	if !ok {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Unknown operator",
			Details:   uri.Op,
		})
		return
	}

	def, err := h.set.Definition(uri.Table)
	if err != nil {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownAggregate,
			Message:   "No aggregate for table",
			Details:   err.Error(),
		})
		return
	}

	bounds, err := parseBounds(def.Shape, query.Lower, query.LowerInclusive, query.Upper, query.UpperInclusive, query.Prefix)
	if err == nil {
		var summary core.Summary
		summary, err = h.set.Summarize(uri.Table, bounds)
		if err == nil {
			c.JSON(http.StatusOK, RangeQueryResponse{
				Table:      uri.Table,
				Definition: def.Name,
				SortKey:    def.SortKey,
				Operator:   uri.Op,
				Value:      op.Reduce(summary),
				Count:      summary.Count,
			})
			return
		}
	}

	if errors.Is(err, core.ErrInvalidBounds) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid bounds",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Failed to query aggregate",
		Details:   err.Error(),
	})
}

func parseBounds(shape core.Shape, lower string, lowerInc *bool, upper string, upperInc *bool, prefix string) (core.Bounds, error) {
	var b core.Bounds
	if prefix != "" {
		key, err := shape.ParseKey(prefix)
		if err != nil {
			return b, err
		}
		b.Prefix = key
	}
	if lower != "" {
		key, err := shape.ParseKey(lower)
		if err != nil {
			return b, err
		}
		b.Lower = &core.Bound{Key: key, Inclusive: lowerInc == nil || *lowerInc}
	}
	if upper != "" {
		key, err := shape.ParseKey(upper)
		if err != nil {
			return b, err
		}
		b.Upper = &core.Bound{Key: key, Inclusive: upperInc == nil || *upperInc}
	}
	return b, nil
}

// HandleBackfill handles POST /v1/admin/backfill
func (h *Handler) HandleBackfill(c *gin.Context) {
	res, err := h.backfiller.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpBackfillFailedError,
			Message:   "Backfill failed; previous aggregates kept",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleBackfillHistory handles GET /v1/admin/backfill
func (h *Handler) HandleBackfillHistory(c *gin.Context) {
	runs, err := h.backfiller.LatestRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to load backfill history",
			Details:   err.Error(),
		})
		return
	}
	out := make([]gin.H, 0, len(runs))
	for _, r := range runs {
		out = append(out, gin.H{
			"table":       r.Table,
			"definition":  r.Definition,
			"fingerprint": r.Fingerprint,
			"entries":     r.Entries,
			"total":       r.Total,
			"started_at":  r.StartedAt,
			"finished_at": r.FinishedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

// HandleVerify handles GET /v1/admin/aggregates/verify
func (h *Handler) HandleVerify(c *gin.Context) {
	report, err := h.backfiller.Verify(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to verify aggregates",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, report)
}
