package services

import (
	"context"
	"time"

	"stonkers/internal/models"
	"stonkers/internal/pagination"
	"stonkers/internal/portfolio"
	"stonkers/internal/valuation"
)

// MarketServicer defines the contract for resolving symbols against market data.
type MarketServicer interface {
	LookupStock(ctx context.Context, query string) (*portfolio.StockQuote, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// PortfolioView is a rendered portfolio: table rows in the requested order,
// chart rows by weight, and the totals.
type PortfolioView struct {
	Holdings []portfolio.Row     `json:"holdings"`
	Chart    []portfolio.Row     `json:"chart"`
	Summary  portfolio.Summary   `json:"summary"`
	Sort     portfolio.SortState `json:"sort"`
}

// RefreshResult reports a quote refresh. Failed maps ticker to the reason.
type RefreshResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed"`
}

// PortfolioServicer defines the contract for owner-scoped portfolio management.
type PortfolioServicer interface {
	GetPortfolio(ownerID string, sort portfolio.SortState) (*PortfolioView, error)
	AddStock(ctx context.Context, ownerID, symbol string, shares, avgPrice float64) (*portfolio.Holding, error)
	AddCash(ownerID string, amount float64) (*portfolio.Holding, error)
	UpdateHolding(ownerID, ticker string, shares, costBasis float64) (*portfolio.Holding, error)
	RemoveHolding(ownerID, ticker string) error
	ReorderHolding(ownerID string, from, to int) error
	RefreshQuotes(ctx context.Context, ownerID string) (*RefreshResult, error)
	Owners() ([]string, error)
}

// ValuationSeed is the starting point of the calculator for one symbol.
type ValuationSeed struct {
	Symbol       string                 `json:"symbol"`
	CurrentPrice float64                `json:"current_price"`
	Fundamentals valuation.Fundamentals `json:"fundamentals"`
	Inputs       valuation.Inputs       `json:"inputs"`
}

// ValuationReport is a seed together with its calculated result.
type ValuationReport struct {
	ValuationSeed
	Result valuation.Result `json:"result"`
}

// ValuationServicer defines the contract for the fair value calculator.
type ValuationServicer interface {
	Seed(ctx context.Context, symbol string, method valuation.Method) (*ValuationSeed, error)
	Calculate(in valuation.Inputs) (*valuation.Result, error)
	Valuate(ctx context.Context, symbol string, method valuation.Method) (*ValuationReport, error)
}

// PortfolioSnapshotServicer defines the contract for portfolio snapshot operations.
type PortfolioSnapshotServicer interface {
	ComputeAndRecordSnapshots(recordedAt time.Time) (int, error)
	GetSnapshots(ownerID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ownerID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
