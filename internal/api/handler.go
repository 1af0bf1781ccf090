package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Lawrencium-103/finstrat/internal/analysis"
	"github.com/Lawrencium-103/finstrat/internal/domain/dto"
	"github.com/Lawrencium-103/finstrat/internal/domain/models"
	"github.com/Lawrencium-103/finstrat/internal/refresh"
	"github.com/Lawrencium-103/finstrat/internal/service"
)

// Refresher triggers a data refresh. Satisfied by *refresh.Service.
type Refresher interface {
	Run(ctx context.Context) (*refresh.Result, error)
	InProgress() bool
}

// Handler provides the HTTP handlers for market data, picks and refresh
// endpoints.
//
// Responsibilities:
//   - Validate incoming path and query parameters
//   - Call the service layer with the request context
//   - Translate service results and sentinel errors into JSON responses
type Handler struct {
	market    service.MarketService
	picks     service.PicksService
	refresher Refresher
}

// NewHandler constructs a Handler with all dependencies injected.
func NewHandler(market service.MarketService, picks service.PicksService, refresher Refresher) *Handler {
	return &Handler{market: market, picks: picks, refresher: refresher}
}

// GetQuote handles GET /api/v1/quote/:ticker requests.
//
// GetQuote godoc
// @Summary      Latest quote
// @Description  Returns the most recent stored bar for a ticker with the change against the previous bar
// @Tags         market
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(SPY)
// @Success      200     {object}  dto.QuoteResponse      "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse      "Not Found"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/quote/{ticker} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}

	q, err := h.market.Quote(c.Request.Context(), ticker)
	if err != nil {
		respondServiceError(c, err, "failed to load quote")
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetCandles handles GET /api/v1/candles/:ticker requests.
//
// GetCandles godoc
// @Summary      Stored candles
// @Description  Returns a ticker's stored hourly bars in ascending order, optionally limited to the most recent N
// @Tags         market
// @Produce      json
// @Param        ticker  path      string  true   "Stock ticker" example(SPY)
// @Param        limit   query     int     false  "Most recent N bars (0 = all)" example(100)
// @Success      200     {array}   models.Candle          "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse      "Not Found"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/candles/{ticker} [get]
func (h *Handler) GetCandles(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("limit must be a non-negative integer", err))
			return
		}
		limit = n
	}

	candles, err := h.market.Candles(c.Request.Context(), ticker, limit)
	if err != nil {
		respondServiceError(c, err, "failed to load candles")
		return
	}
	c.JSON(http.StatusOK, candles)
}

// GetMetrics handles GET /api/v1/metrics/:ticker requests.
//
// GetMetrics godoc
// @Summary      Indicator snapshot
// @Description  Computes the technical indicator snapshot over a ticker's full stored history
// @Tags         market
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(SPY)
// @Success      200     {object}  models.Metrics         "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse      "Not Found"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/metrics/{ticker} [get]
func (h *Handler) GetMetrics(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}

	m, err := h.market.Metrics(c.Request.Context(), ticker)
	if err != nil {
		respondServiceError(c, err, "failed to compute metrics")
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetPicks handles GET /api/v1/picks requests.
//
// GetPicks godoc
// @Summary      Top picks
// @Description  Scores the configured universe for a strategy and returns the best candidates
// @Tags         picks
// @Produce      json
// @Param        strategy   query     string  false  "conservative|moonshot (default conservative)" example(moonshot)
// @Param        timeframe  query     string  false  "day|week|month|quarter (default day)" example(week)
// @Param        min_score  query     int     false  "Score cutoff 0-100 (default 30)" example(30)
// @Success      200        {object}  dto.PicksResponse      "Success"
// @Failure      400        {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404        {object}  dto.ErrorResponse      "Not Found"
// @Failure      500        {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/picks [get]
func (h *Handler) GetPicks(c *gin.Context) {
	strategy := models.Strategy(strings.ToLower(c.DefaultQuery("strategy", string(models.StrategyConservative))))
	if !strategy.Valid() {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("strategy must be conservative or moonshot", nil))
		return
	}

	timeframe, ok := timeframeQuery(c, string(models.TimeframeDay))
	if !ok {
		return
	}

	minScore := analysis.DefaultMinScore
	if s := c.Query("min_score"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 100 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("min_score must be an integer between 0 and 100", err))
			return
		}
		minScore = n
	}

	resp, err := h.picks.TopPicks(c.Request.Context(), strategy, timeframe, minScore)
	if err != nil {
		respondServiceError(c, err, "failed to compute picks")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPicksHistory handles GET /api/v1/picks/history requests.
//
// GetPicksHistory godoc
// @Summary      Pick history
// @Description  Lists previously recorded picks, newest first, optionally filtered by timeframe
// @Tags         picks
// @Produce      json
// @Param        timeframe  query     string  false  "day|week|month|quarter" example(day)
// @Success      200        {array}   models.Pick            "Success"
// @Failure      400        {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500        {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/picks/history [get]
func (h *Handler) GetPicksHistory(c *gin.Context) {
	timeframe, ok := timeframeQuery(c, "")
	if !ok {
		return
	}

	picks, err := h.picks.History(c.Request.Context(), timeframe)
	if err != nil {
		respondServiceError(c, err, "failed to load pick history")
		return
	}
	if picks == nil {
		picks = []models.Pick{}
	}
	c.JSON(http.StatusOK, picks)
}

// GetStatus handles GET /api/v1/status requests.
//
// GetStatus godoc
// @Summary      Store status
// @Description  Reports what the local store currently holds
// @Tags         status
// @Produce      json
// @Success      200  {object}  dto.StatusResponse     "Success"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	st, err := h.market.Status(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load store status")
		return
	}
	c.JSON(http.StatusOK, st)
}

// TriggerRefresh handles POST /api/v1/refresh requests.
//
// A refresh already in flight answers 409 instead of queueing; a run where
// every ticker failed answers 502 so callers can tell "provider down" from
// "refresh succeeded with gaps".
//
// TriggerRefresh godoc
// @Summary      Trigger a data refresh
// @Description  Fetches the latest bars for all configured tickers and appends them to the local store
// @Tags         refresh
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse    "Success"
// @Failure      409  {object}  dto.ErrorResponse      "Refresh already running"
// @Failure      502  {object}  dto.ErrorResponse      "All tickers failed"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/refresh [post]
func (h *Handler) TriggerRefresh(c *gin.Context) {
	res, err := h.refresher.Run(c.Request.Context())
	switch {
	case errors.Is(err, refresh.ErrInProgress):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("refresh already in progress", nil))
		return
	case errors.Is(err, refresh.ErrAllFailed):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("refresh failed for all tickers", err))
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("refresh failed", err))
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Refreshed:    res.Refreshed,
		RowsInserted: res.RowsInserted,
		Failed:       res.Failed,
		DurationMS:   res.Duration.Milliseconds(),
	})
}

// tickerParam validates the :ticker path parameter, writing the 400 itself
// when invalid.
func tickerParam(c *gin.Context) (string, bool) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return "", false
	}
	return ticker, true
}

// timeframeQuery parses the optional timeframe query parameter. An empty
// def means "no filter".
func timeframeQuery(c *gin.Context, def string) (models.Timeframe, bool) {
	s := strings.ToLower(c.DefaultQuery("timeframe", def))
	tf := models.Timeframe(s)
	if s != "" && !tf.Valid() {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("timeframe must be day, week, month or quarter", nil))
		return "", false
	}
	return tf, true
}

// respondServiceError maps service-layer sentinel errors onto status codes.
func respondServiceError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrNoData) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msg, err))
}
