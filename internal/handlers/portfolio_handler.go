package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/numeric"
	"stonkers/internal/portfolio"
	"stonkers/internal/services"
)

// PortfolioHandler handles holdings ledger requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, auditService: auditService}
}

// GetPortfolioQuery holds the optional sort of the holdings table.
type GetPortfolioQuery struct {
	SortField     string `form:"sort_field" binding:"omitempty,sort_field"`
	SortDirection string `form:"sort_direction" binding:"omitempty,sort_direction"`
}

// AddStockRequest represents the request payload for adding shares of a stock.
type AddStockRequest struct {
	Symbol   string   `json:"symbol" binding:"required,max=20"`
	Shares   *float64 `json:"shares" binding:"required"`
	AvgPrice *float64 `json:"avg_price" binding:"required"`
}

// AddCashRequest represents the request payload for depositing cash.
type AddCashRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// UpdateHoldingRequest represents the request payload for editing a holding.
type UpdateHoldingRequest struct {
	Shares    *float64 `json:"shares" binding:"required"`
	CostBasis *float64 `json:"cost_basis" binding:"required"`
}

// ReorderRequest represents the request payload for moving a holding.
type ReorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// HoldingDisplay holds the formatted figures of a holding row.
type HoldingDisplay struct {
	CostBasis       string `json:"cost_basis"`
	CurrentPrice    string `json:"current_price"`
	MarketValue     string `json:"market_value"`
	GainLossDollar  string `json:"gain_loss_dollar"`
	GainLossPercent string `json:"gain_loss_percent"`
	WeightPercent   string `json:"weight_percent"`
}

// HoldingRowResponse is a holding with its metrics and display strings.
type HoldingRowResponse struct {
	portfolio.Row
	Display HoldingDisplay `json:"display"`
}

// ChartSliceResponse is one slice of the allocation chart.
type ChartSliceResponse struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Logo          string  `json:"logo,omitempty"`
	MarketValue   float64 `json:"market_value"`
	WeightPercent float64 `json:"weight_percent"`
	Label         string  `json:"label"`
}

// SummaryDisplay holds the formatted portfolio totals.
type SummaryDisplay struct {
	TotalMarketValue      string `json:"total_market_value"`
	TotalMarketValueShort string `json:"total_market_value_short"`
	TotalGainLoss         string `json:"total_gain_loss"`
	TotalCashPosition     string `json:"total_cash_position"`
}

// SummaryResponse is the portfolio totals with display strings.
type SummaryResponse struct {
	portfolio.Summary
	Display SummaryDisplay `json:"display"`
}

// PortfolioResponse represents a rendered portfolio.
type PortfolioResponse struct {
	Holdings []HoldingRowResponse `json:"holdings"`
	Chart    []ChartSliceResponse `json:"chart"`
	Summary  SummaryResponse      `json:"summary"`
	Sort     portfolio.SortState  `json:"sort"`
}

// RefreshAllResponse reports a quote refresh across every owner.
type RefreshAllResponse struct {
	OwnersRefreshed int               `json:"owners_refreshed"`
	TickersUpdated  int               `json:"tickers_updated"`
	Failed          map[string]string `json:"failed"`
}

// GetPortfolio handles rendering the authenticated owner's portfolio.
// @Summary     Get portfolio
// @Description Get holdings with metrics in the requested order, the allocation chart and totals
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       sort_field     query    string false "name, shares, costBasis, currentPrice, marketValue, gainLoss, gainLossPercent or weight"
// @Param       sort_direction query    string false "asc, desc or none"
// @Success     200 {object} PortfolioResponse "Portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q GetPortfolioQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	field, err := portfolio.ParseSortField(q.SortField)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	direction, err := portfolio.ParseSortDirection(q.SortDirection)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	view, err := h.portfolioService.GetPortfolio(ownerID, portfolio.SortState{Field: field, Direction: direction})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPortfolioResponse(view))
}

// AddStock handles opening or topping up a stock position.
// @Summary     Add stock
// @Description Resolve a symbol and add shares at an average price. Existing positions are merged.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     AddStockRequest true "Stock to add"
// @Success     201     {object} portfolio.Holding "Resulting holding"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     404     {object} ErrorResponse "Symbol not found"
// @Failure     502     {object} ErrorResponse "Market data unavailable"
// @Router      /portfolio/stocks [post]
func (h *PortfolioHandler) AddStock(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.portfolioService.AddStock(c.Request.Context(), ownerID, req.Symbol, *req.Shares, *req.AvgPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, services.AuditActionAddStock, services.AuditResourceHolding, holding.Ticker, c.ClientIP(),
		map[string]interface{}{"shares": *req.Shares, "avg_price": *req.AvgPrice})

	c.JSON(http.StatusCreated, holding)
}

// AddCash handles depositing cash.
// @Summary     Add cash
// @Description Deposit an amount into the cash position, creating it if needed
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     AddCashRequest true "Amount to deposit"
// @Success     201     {object} portfolio.Holding "Cash holding"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/cash [post]
func (h *PortfolioHandler) AddCash(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.portfolioService.AddCash(ownerID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, services.AuditActionAddCash, services.AuditResourceHolding, holding.Ticker, c.ClientIP(),
		map[string]interface{}{"amount": *req.Amount})

	c.JSON(http.StatusCreated, holding)
}

// UpdateHolding handles editing shares and cost basis of a holding.
// @Summary     Update holding
// @Description Overwrite shares and cost basis. Negative values are stored as zero.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       ticker  path     string               true "Ticker"
// @Param       request body     UpdateHoldingRequest true "New values"
// @Success     200     {object} portfolio.Holding "Updated holding"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     404     {object} ErrorResponse "Holding not found"
// @Router      /portfolio/holdings/{ticker} [put]
func (h *PortfolioHandler) UpdateHolding(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ticker, err := bindTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.portfolioService.UpdateHolding(ownerID, ticker, *req.Shares, *req.CostBasis)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, services.AuditActionUpdateHolding, services.AuditResourceHolding, ticker, c.ClientIP(),
		map[string]interface{}{"shares": holding.Shares, "cost_basis": holding.CostBasis})

	c.JSON(http.StatusOK, holding)
}

// RemoveHolding handles deleting a holding.
// @Summary     Remove holding
// @Description Delete a holding. Removing an absent ticker succeeds.
// @Tags        portfolio
// @Security    BearerAuth
// @Param       ticker path string true "Ticker"
// @Success     204 "No content"
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/holdings/{ticker} [delete]
func (h *PortfolioHandler) RemoveHolding(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ticker, err := bindTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.portfolioService.RemoveHolding(ownerID, ticker); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, services.AuditActionRemoveHolding, services.AuditResourceHolding, ticker, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// ReorderHolding handles moving a holding within the manual order.
// @Summary     Reorder holdings
// @Description Move the holding at index from to index to
// @Tags        portfolio
// @Accept      json
// @Security    BearerAuth
// @Param       request body ReorderRequest true "Indexes"
// @Success     204 "No content"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/reorder [post]
func (h *PortfolioHandler) ReorderHolding(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.portfolioService.ReorderHolding(ownerID, *req.From, *req.To); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, services.AuditActionReorderHolding, services.AuditResourcePortfolio, "", c.ClientIP(),
		map[string]interface{}{"from": *req.From, "to": *req.To})

	c.Status(http.StatusNoContent)
}

// RefreshQuotes handles refreshing prices of the owner's stock holdings.
// @Summary     Refresh quotes
// @Description Fetch fresh prices for every stock holding. Failed tickers keep their previous price.
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.RefreshResult "Refresh result"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/refresh [post]
func (h *PortfolioHandler) RefreshQuotes(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.portfolioService.RefreshQuotes(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshAllQuotes handles refreshing prices for every owner.
// @Summary     Refresh all quotes
// @Description Refresh stock prices for every owner with holdings (pipeline endpoint)
// @Tags        pipeline
// @Produce     json
// @Param       X-API-Key header   string true "Pipeline API key"
// @Success     200       {object} RefreshAllResponse "Refresh summary"
// @Failure     401       {object} ErrorResponse "Invalid API key"
// @Failure     503       {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/quotes [post]
func (h *PortfolioHandler) RefreshAllQuotes(c *gin.Context) {
	owners, err := h.portfolioService.Owners()
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := RefreshAllResponse{Failed: map[string]string{}}
	for _, ownerID := range owners {
		result, err := h.portfolioService.RefreshQuotes(c.Request.Context(), ownerID)
		if err != nil {
			resp.Failed[ownerID] = err.Error()
			continue
		}
		resp.OwnersRefreshed++
		resp.TickersUpdated += len(result.Updated)
		h.auditService.Log(ownerID, services.AuditActionRefreshQuotes, services.AuditResourcePortfolio, "", c.ClientIP(),
			map[string]interface{}{"updated": len(result.Updated), "failed": len(result.Failed)})
	}

	c.JSON(http.StatusOK, resp)
}

func newPortfolioResponse(view *services.PortfolioView) PortfolioResponse {
	resp := PortfolioResponse{
		Holdings: make([]HoldingRowResponse, len(view.Holdings)),
		Chart:    make([]ChartSliceResponse, len(view.Chart)),
		Sort:     view.Sort,
	}
	for i, row := range view.Holdings {
		resp.Holdings[i] = HoldingRowResponse{Row: row, Display: displayRow(row)}
	}
	for i, row := range view.Chart {
		resp.Chart[i] = ChartSliceResponse{
			Ticker:        row.Ticker,
			Name:          row.Name,
			Logo:          row.Logo,
			MarketValue:   numeric.SafeRoundToDecimal(row.MarketValue, numeric.DefaultDecimalPlaces),
			WeightPercent: numeric.SafeRoundToDecimal(row.WeightPercent, numeric.DefaultDecimalPlaces),
			Label:         row.Ticker + " " + numeric.FormatPercent(row.WeightPercent),
		}
	}

	s := view.Summary
	resp.Summary = SummaryResponse{
		Summary: s,
		Display: SummaryDisplay{
			TotalMarketValue:      numeric.FormatCurrency(s.TotalMarketValue, portfolio.CashCurrency),
			TotalMarketValueShort: numeric.FormatDollarAmount(numeric.SafeRoundToDecimal(s.TotalMarketValue, numeric.DefaultDecimalPlaces)),
			TotalGainLoss:         numeric.FormatCurrency(s.TotalGainLoss, portfolio.CashCurrency),
			TotalCashPosition:     numeric.FormatCurrency(s.TotalCashPosition, portfolio.CashCurrency),
		},
	}
	return resp
}

func displayRow(row portfolio.Row) HoldingDisplay {
	currency := row.Currency
	if currency == "" {
		currency = portfolio.CashCurrency
	}
	gainPct := numeric.NotAvailable
	if row.GainLossAvailable {
		gainPct = numeric.FormatPercent(row.GainLossPercent)
	}
	return HoldingDisplay{
		CostBasis:       numeric.FormatCurrency(row.CostBasis, currency),
		CurrentPrice:    numeric.FormatCurrency(row.CurrentPrice, currency),
		MarketValue:     numeric.FormatCurrency(row.MarketValue, currency),
		GainLossDollar:  numeric.FormatCurrency(row.GainLossDollar, currency),
		GainLossPercent: gainPct,
		WeightPercent:   numeric.FormatPercent(row.WeightPercent),
	}
}
