package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmartins/capitolpulse/internal/domain/dto"
	"github.com/hmartins/capitolpulse/internal/service"
)

const (
	defaultResultLimit = 50
	maxResultLimit     = 500
)

// Handler provides the HTTP handlers for analysis endpoints.
//
// Responsibilities:
//   - Validate incoming query parameters
//   - Call into the analysis service
//   - Translate domain results into response DTOs
type Handler struct {
	svc service.AnalysisService
}

// NewHandler constructs a Handler with the given service.
func NewHandler(svc service.AnalysisService) *Handler {
	return &Handler{svc: svc}
}

// GetAnalysis handles GET /api/v1/analysis requests.
//
// GetAnalysis godoc
// @Summary      Get scored trades
// @Description  Returns congressional trades scored by uniqueness, highest-signal first
// @Tags         analysis
// @Produce      json
// @Param        limit      query     int  false  "Maximum number of trades to return (default 50, max 500)"  example(50)
// @Param        min_score  query     int  false  "Minimum overall score filter"                               example(70)
// @Success      200        {array}   dto.ScoredTradeResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500        {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/analysis [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	limit, ok := intQuery(c, "limit", defaultResultLimit)
	if !ok {
		return
	}
	if limit <= 0 || limit > maxResultLimit {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("limit must be between 1 and 500", nil))
		return
	}
	minScore, ok := intQuery(c, "min_score", 0)
	if !ok {
		return
	}
	if minScore < 0 || minScore > 100 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("min_score must be between 0 and 100", nil))
		return
	}

	results, err := h.svc.Results(c.Request.Context(), limit, minScore)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch analysis results", err))
		return
	}

	out := make([]dto.ScoredTradeResponse, 0, len(results))
	for _, at := range results {
		out = append(out, dto.FromAnalyzedTrade(at))
	}
	c.JSON(http.StatusOK, out)
}

// GetTrades handles GET /api/v1/trades requests.
//
// GetTrades godoc
// @Summary      List ingested trades
// @Description  Returns the raw ingested disclosure rows, optionally filtered by transaction date
// @Tags         trades
// @Produce      json
// @Param        since  query     string  false  "Earliest transaction date in YYYY-MM-DD"  example(2024-01-01)
// @Success      200    {array}   dto.TradeResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/trades [get]
func (h *Handler) GetTrades(c *gin.Context) {
	var since *time.Time
	if s := c.Query("since"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid since format, expected YYYY-MM-DD", err))
			return
		}
		since = &parsed
	}

	trades, err := h.svc.Trades(c.Request.Context(), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch trades", err))
		return
	}

	out := make([]dto.TradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, dto.FromTrade(t))
	}
	c.JSON(http.StatusOK, out)
}

// intQuery parses an optional integer query parameter; on a malformed value
// it writes a 400 and reports false.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	s := c.Query(name)
	if s == "" {
		return def, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(name+" must be an integer", err))
		return 0, false
	}
	return v, true
}
