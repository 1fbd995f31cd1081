package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/numeric"
	"stonkers/internal/services"
	"stonkers/internal/valuation"
)

// ValuationHandler handles fair value calculator requests.
type ValuationHandler struct {
	valuationService services.ValuationServicer
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(valuationService services.ValuationServicer) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// CalculateRequest represents a caller-supplied calculator input set.
type CalculateRequest struct {
	Method       string                   `json:"method" binding:"omitempty,valuation_method"`
	CurrentPrice *float64                 `json:"current_price" binding:"required"`
	Earnings     valuation.EarningsInputs `json:"earnings"`
	CashFlow     valuation.CashFlowInputs `json:"cash_flow"`
}

// ResultDisplay holds the formatted calculator outcome.
type ResultDisplay struct {
	FairValue      string `json:"fair_value"`
	CurrentPrice   string `json:"current_price"`
	TargetPrice5yr string `json:"target_price_5yr"`
	ProjectedCAGR  string `json:"projected_cagr"`
}

// ResultResponse is a calculator result with display strings.
type ResultResponse struct {
	valuation.Result
	Display ResultDisplay `json:"display"`
}

// ValuationResponse is a seeded and calculated valuation.
type ValuationResponse struct {
	services.ValuationSeed
	Result ResultResponse `json:"result"`
}

// Valuate handles seeding and calculating a valuation for a symbol.
// @Summary     Valuate a stock
// @Description Seed the calculator from market fundamentals and compute fair value, 5 year target and projected CAGR
// @Tags        valuation
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path     string true  "Ticker"
// @Param       method query    string false "earnings or cash_flow (default cash_flow)"
// @Success     200    {object} ValuationResponse "Valuation"
// @Failure     400    {object} ErrorResponse "Invalid input"
// @Failure     404    {object} ErrorResponse "Symbol not found"
// @Failure     502    {object} ErrorResponse "Market data unavailable"
// @Router      /valuation/{symbol} [get]
func (h *ValuationHandler) Valuate(c *gin.Context) {
	method, err := parseMethodQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.valuationService.Valuate(c.Request.Context(), c.Param("symbol"), method)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValuationResponse{
		ValuationSeed: report.ValuationSeed,
		Result:        newResultResponse(report.Result),
	})
}

// Seed handles fetching the calculator's initial inputs for a symbol.
// @Summary     Get valuation inputs
// @Description Get fundamentals and the initial calculator inputs for a symbol
// @Tags        valuation
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path     string true  "Ticker"
// @Param       method query    string false "earnings or cash_flow (default cash_flow)"
// @Success     200    {object} services.ValuationSeed "Seeded inputs"
// @Failure     400    {object} ErrorResponse "Invalid input"
// @Failure     404    {object} ErrorResponse "Symbol not found"
// @Router      /valuation/{symbol}/inputs [get]
func (h *ValuationHandler) Seed(c *gin.Context) {
	method, err := parseMethodQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	seed, err := h.valuationService.Seed(c.Request.Context(), c.Param("symbol"), method)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, seed)
}

// Calculate handles running the calculator on supplied inputs.
// @Summary     Calculate valuation
// @Description Compute fair value, 5 year target and projected CAGR from an input set
// @Tags        valuation
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     CalculateRequest true "Calculator inputs"
// @Success     200     {object} ResultResponse "Result"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Router      /valuation/calculate [post]
func (h *ValuationHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	method, err := valuation.ParseMethod(req.Method)
	if err != nil {
		respondWithError(c, apperrors.FromLedgerError(err))
		return
	}

	result, err := h.valuationService.Calculate(valuation.Inputs{
		Method:       method,
		CurrentPrice: *req.CurrentPrice,
		Earnings:     req.Earnings,
		CashFlow:     req.CashFlow,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResultResponse(*result))
}

func parseMethodQuery(c *gin.Context) (valuation.Method, error) {
	method, err := valuation.ParseMethod(c.Query("method"))
	if err != nil {
		return "", apperrors.FromLedgerError(err)
	}
	return method, nil
}

func newResultResponse(r valuation.Result) ResultResponse {
	return ResultResponse{
		Result: r,
		Display: ResultDisplay{
			FairValue:      numeric.FormatCurrency(r.FairValue, "USD"),
			CurrentPrice:   numeric.FormatCurrency(r.CurrentPrice, "USD"),
			TargetPrice5yr: numeric.FormatCurrency(r.TargetPrice5yr, "USD"),
			ProjectedCAGR:  numeric.FormatPercent(r.ProjectedCAGR),
		},
	}
}
