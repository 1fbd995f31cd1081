package portfolio

import (
	"fmt"
	"math"

	"stonkers/internal/numeric"
)

// Ledger is the ordered collection of a single owner's holdings. The order
// is the user's manual order and is only changed by Reorder.
//
// A Ledger is not safe for concurrent use; its owner serializes writes.
type Ledger struct {
	holdings []Holding
}

// Snapshot is an opaque copy of a ledger's state used for rollback.
type Snapshot struct {
	holdings []Holding
}

// NewLedger creates a ledger from previously stored holdings, in order.
// Duplicate tickers are rejected and a cash holding is normalized so that
// its price mirrors its cost basis.
func NewLedger(holdings ...Holding) (*Ledger, error) {
	l := &Ledger{holdings: make([]Holding, 0, len(holdings))}
	seen := make(map[string]struct{}, len(holdings))
	for _, h := range holdings {
		if h.Ticker == "" {
			return nil, ErrEmptyTicker
		}
		if _, dup := seen[h.Ticker]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHolding, h.Ticker)
		}
		seen[h.Ticker] = struct{}{}
		if h.IsCash() {
			h.Shares = 1
			h.CurrentPrice = h.CostBasis
		}
		l.holdings = append(l.holdings, h)
	}
	return l, nil
}

// Len returns the number of holdings.
func (l *Ledger) Len() int { return len(l.holdings) }

// Holdings returns a copy of the holdings in ledger order.
func (l *Ledger) Holdings() []Holding {
	out := make([]Holding, len(l.holdings))
	copy(out, l.holdings)
	return out
}

// Get returns the holding for ticker.
func (l *Ledger) Get(ticker string) (Holding, bool) {
	if i := l.indexOf(ticker); i >= 0 {
		return l.holdings[i], true
	}
	return Holding{}, false
}

// AddStock opens a position or merges into an existing one. On merge the
// cost basis becomes the share-weighted average of both lots and the
// current price is replaced by the quote's price.
func (l *Ledger) AddStock(found StockQuote, shares, avgPricePaid float64) error {
	switch {
	case found.Ticker == "":
		return ErrEmptyTicker
	case found.Ticker == CashTicker:
		return ErrReservedTicker
	case !(shares > 0) || math.IsInf(shares, 0):
		return ErrInvalidQuantity
	case !(avgPricePaid > 0) || math.IsInf(avgPricePaid, 0):
		return ErrInvalidPrice
	}

	if i := l.indexOf(found.Ticker); i >= 0 {
		h := &l.holdings[i]
		total := h.Shares + shares
		h.CostBasis = (h.Shares*h.CostBasis + shares*avgPricePaid) / total
		h.Shares = total
		h.CurrentPrice = found.CurrentPrice
		return nil
	}

	l.holdings = append(l.holdings, Holding{
		Ticker:       found.Ticker,
		Type:         HoldingTypeStock,
		Name:         found.Name,
		Shares:       shares,
		CostBasis:    avgPricePaid,
		CurrentPrice: found.CurrentPrice,
		Logo:         found.Logo,
		Exchange:     found.Exchange,
		Industry:     found.Industry,
		Currency:     found.Currency,
	})
	return nil
}

// AddCash deposits amount into the cash holding, creating it if needed.
func (l *Ledger) AddCash(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}

	if i := l.indexOf(CashTicker); i >= 0 {
		h := &l.holdings[i]
		h.CostBasis += amount
		h.CurrentPrice = h.CostBasis
		return nil
	}

	l.holdings = append(l.holdings, newCashHolding(amount))
	return nil
}

// UpdateHolding overwrites a position's shares and cost basis, clamping
// both at zero. For cash, shares are ignored and the price follows the
// new cost basis.
func (l *Ledger) UpdateHolding(ticker string, shares, costBasis float64) error {
	i := l.indexOf(ticker)
	if i < 0 {
		return ErrHoldingNotFound
	}

	h := &l.holdings[i]
	cost := clampNonNegative(costBasis)
	if h.IsCash() {
		h.CostBasis = cost
		h.CurrentPrice = cost
		return nil
	}
	h.Shares = clampNonNegative(shares)
	h.CostBasis = cost
	return nil
}

// UpdatePrice records a fresh quote for a stock holding. The cash holding
// is left untouched.
func (l *Ledger) UpdatePrice(ticker string, price float64) error {
	i := l.indexOf(ticker)
	if i < 0 {
		return ErrHoldingNotFound
	}
	if l.holdings[i].IsCash() {
		return nil
	}
	if !(price >= 0) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	l.holdings[i].CurrentPrice = price
	return nil
}

// Remove deletes the holding for ticker. Removing an absent ticker is a no-op.
func (l *Ledger) Remove(ticker string) {
	i := l.indexOf(ticker)
	if i < 0 {
		return
	}
	l.holdings = append(l.holdings[:i], l.holdings[i+1:]...)
}

// Reorder moves the holding at from to position to, shifting the holdings
// in between by one.
func (l *Ledger) Reorder(from, to int) error {
	n := len(l.holdings)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	moved := l.holdings[from]
	if from < to {
		copy(l.holdings[from:to], l.holdings[from+1:to+1])
	} else {
		copy(l.holdings[to+1:from+1], l.holdings[to:from])
	}
	l.holdings[to] = moved
	return nil
}

// Snapshot captures the current state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{holdings: l.Holdings()}
}

// Restore replaces the current state with s.
func (l *Ledger) Restore(s Snapshot) {
	l.holdings = make([]Holding, len(s.holdings))
	copy(l.holdings, s.holdings)
}

func (l *Ledger) indexOf(ticker string) int {
	for i := range l.holdings {
		if l.holdings[i].Ticker == ticker {
			return i
		}
	}
	return -1
}

func clampNonNegative(v float64) float64 {
	if !numeric.IsFinite(v) || v < 0 {
		return 0
	}
	return v
}
