package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/technical/internal/dataset"
	"github.com/guttosm/technical/internal/domain/dto"
	"github.com/guttosm/technical/internal/middleware"
	"github.com/guttosm/technical/internal/service"
)

// Handler provides HTTP handlers for the technical data endpoints.
//
// Responsibilities:
//   - Read path parameters
//   - Delegate to the service layer
//   - Translate results and failures into response DTOs and status codes
type Handler struct {
	svc service.TechnicalService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.TechnicalService) *Handler {
	return &Handler{svc: svc}
}

// ListStocks handles GET /technical.
//
// ListStocks godoc
// @Summary      List latest values for every ticker
// @Description  Returns the most recent valid row of every ticker file. Tickers without a valid row, or whose file cannot be read, are omitted.
// @Tags         technical
// @Produce      json
// @Success      200  {object}  dto.StockListResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse      "Backing store unavailable"
// @Router       /technical [get]
func (h *Handler) ListStocks(c *gin.Context) {
	stocks, err := h.svc.ListSummaries(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list stocks", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStockListResponse(stocks))
}

// GetDaily handles GET /technical/daily/{ticker}.
//
// Path Parameters:
//   - ticker (string, required): matched exactly against the backing file name.
//
// Responses:
//   - 200 OK: every row with a valid date, ascending by date, all columns preserved.
//   - 404 Not Found: no backing file for ticker.
//   - 500 Internal Server Error: the file could not be read or parsed.
//
// GetDaily godoc
// @Summary      Get full daily history of a ticker
// @Description  Returns every row with a valid YYYY-MM-DD date, sorted ascending, with all original columns
// @Tags         technical
// @Produce      json
// @Param        ticker  path      string  true  "Ticker (file base name)" example(AAPL)
// @Success      200     {object}  dto.DailyDataResponse  "Success"
// @Failure      404     {object}  dto.ErrorResponse      "Not Found"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /technical/daily/{ticker} [get]
func (h *Handler) GetDaily(c *gin.Context) {
	ticker := c.Param("ticker")

	ds, err := h.svc.GetDaily(c.Request.Context(), ticker)
	if err != nil {
		var nf *dataset.NotFoundError
		var re *dataset.ReadError
		switch {
		case errors.As(err, &nf):
			middleware.AbortWithError(c, http.StatusNotFound, nf.Error(), nil)
		case errors.As(err, &re):
			middleware.AbortWithError(c, http.StatusInternalServerError,
				fmt.Sprintf("error processing data for ticker '%s'", re.Ticker), re.Err)
		default:
			middleware.AbortWithError(c, http.StatusInternalServerError,
				fmt.Sprintf("error processing data for ticker '%s'", ticker), err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewDailyDataResponse(ds))
}
