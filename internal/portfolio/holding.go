// Package portfolio implements the holdings ledger: an ordered set of stock
// positions plus at most one cash position, with merge-safe mutations and
// derived metrics and views.
package portfolio

import "errors"

// HoldingType distinguishes stock positions from the cash position.
type HoldingType string

const (
	HoldingTypeStock HoldingType = "stock"
	HoldingTypeCash  HoldingType = "cash"
)

// Cash holding identity. Cash is tracked as a single unit whose price is
// its face value.
const (
	CashTicker   = "USD"
	CashName     = "Cash"
	CashLogo     = "https://flagcdn.com/w320/us.png"
	CashCurrency = "USD"
)

var (
	ErrHoldingNotFound  = errors.New("holding not found")
	ErrInvalidQuantity  = errors.New("shares must be positive")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrInvalidAmount    = errors.New("cash amount must be positive")
	ErrReservedTicker   = errors.New("ticker is reserved for cash")
	ErrEmptyTicker      = errors.New("ticker is required")
	ErrIndexOutOfRange  = errors.New("reorder index out of range")
	ErrDuplicateHolding = errors.New("duplicate holding ticker")
)

// Holding is one line item of a portfolio.
type Holding struct {
	Ticker       string      `json:"ticker"`
	Type         HoldingType `json:"type"`
	Name         string      `json:"name"`
	Shares       float64     `json:"shares"`
	CostBasis    float64     `json:"cost_basis"`
	CurrentPrice float64     `json:"current_price"`
	Logo         string      `json:"logo,omitempty"`
	Exchange     string      `json:"exchange,omitempty"`
	Industry     string      `json:"industry,omitempty"`
	Currency     string      `json:"currency,omitempty"`
}

// IsCash reports whether h is the cash position.
func (h Holding) IsCash() bool { return h.Type == HoldingTypeCash }

// StockQuote is a resolved search result used to open or top up a position.
type StockQuote struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	Logo         string  `json:"logo"`
	Exchange     string  `json:"exchange,omitempty"`
	Industry     string  `json:"industry,omitempty"`
	Currency     string  `json:"currency,omitempty"`
}

func newCashHolding(amount float64) Holding {
	return Holding{
		Ticker:       CashTicker,
		Type:         HoldingTypeCash,
		Name:         CashName,
		Shares:       1,
		CostBasis:    amount,
		CurrentPrice: amount,
		Logo:         CashLogo,
		Currency:     CashCurrency,
	}
}
