// Package provider defines the market data source used to resolve tickers,
// refresh quotes, and seed valuations, and implements it for Finnhub.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrSymbolNotFound is returned when the source has no data for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// Quote is a real-time price quote.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
	Timestamp     int64   `json:"timestamp"`
}

// Profile is a company profile.
type Profile struct {
	Ticker               string  `json:"ticker"`
	Name                 string  `json:"name"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	Country              string  `json:"country"`
	IPO                  string  `json:"ipo"`
	Logo                 string  `json:"logo"`
	Industry             string  `json:"industry"`
	WebURL               string  `json:"weburl"`
	MarketCapitalization float64 `json:"market_capitalization"`
	SharesOutstanding    float64 `json:"shares_outstanding"`
}

// BasicFinancials holds the trailing metrics used for valuation. Metrics
// the source did not report are nil. FCFPerShareTTM is quarterly, newest
// first.
type BasicFinancials struct {
	Symbol          string    `json:"symbol"`
	EPSTTM          *float64  `json:"eps_ttm"`
	PERatioTTM      *float64  `json:"pe_ratio_ttm"`
	EPSGrowthTTMYoy *float64  `json:"eps_growth_ttm_yoy"`
	FCFPerShareTTM  []float64 `json:"fcf_per_share_ttm"`
}

// FetchError is a failed request for one symbol against one endpoint.
type FetchError struct {
	Symbol     string
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s for %s: %v", e.Endpoint, e.Symbol, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// MarketData resolves symbols and fetches market data.
type MarketData interface {
	// Name returns the provider's display name.
	Name() string

	// SearchSymbol resolves a free-text query to a ticker.
	SearchSymbol(ctx context.Context, query string) (string, error)

	// Quote fetches the latest quote for symbol.
	Quote(ctx context.Context, symbol string) (*Quote, error)

	// Profile fetches the company profile for symbol.
	Profile(ctx context.Context, symbol string) (*Profile, error)

	// BasicFinancials fetches trailing fundamentals for symbol.
	BasicFinancials(ctx context.Context, symbol string) (*BasicFinancials, error)
}
