package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/services"
)

// MarketHandler handles market data lookups.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// SearchStock handles resolving a ticker or company name to a quote.
// @Summary     Search for a stock
// @Description Resolve a ticker or company name and return its current price and profile
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       q   query    string  true "Ticker or company name"
// @Success     200 {object} portfolio.StockQuote "Resolved stock"
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     404 {object} ErrorResponse "Symbol not found"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /market/search [get]
func (h *MarketHandler) SearchStock(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "q is required"))
		return
	}

	quote, err := h.marketService.LookupStock(c.Request.Context(), q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
