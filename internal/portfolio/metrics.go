package portfolio

import "stonkers/internal/numeric"

// Metrics are the derived figures for one holding.
type Metrics struct {
	MarketValue     float64 `json:"market_value"`
	GainLossDollar  float64 `json:"gain_loss_dollar"`
	GainLossPercent float64 `json:"gain_loss_percent"`
	WeightPercent   float64 `json:"weight_percent"`
	// GainLossAvailable is false when the percentage could not be computed
	// because the cost basis is zero. GainLossPercent is 0 in that case.
	GainLossAvailable bool `json:"gain_loss_available"`
}

// Summary aggregates a set of holdings.
type Summary struct {
	TotalMarketValue  float64 `json:"total_market_value"`
	TotalGainLoss     float64 `json:"total_gain_loss"`
	TotalCashPosition float64 `json:"total_cash_position"`
	HoldingCount      int     `json:"holding_count"`
}

// MarketValue returns shares times price for stock and the cost basis for cash.
func MarketValue(h Holding) float64 {
	if h.IsCash() {
		return h.CostBasis
	}
	return h.Shares * h.CurrentPrice
}

// GainLoss returns the unrealized dollar gain of a stock holding. Cash never
// gains or loses.
func GainLoss(h Holding) float64 {
	if h.IsCash() {
		return 0
	}
	return h.Shares * (h.CurrentPrice - h.CostBasis)
}

// GainLossPercent returns the price change relative to cost basis, and
// false when the cost basis is zero.
func GainLossPercent(h Holding) (float64, bool) {
	if h.IsCash() {
		return 0, true
	}
	return numeric.SafeDivide((h.CurrentPrice-h.CostBasis)*100, h.CostBasis)
}

// Weight returns h's share of totalMarketValue in percent, or 0 when the
// total is zero.
func Weight(h Holding, totalMarketValue float64) float64 {
	w, _ := numeric.SafeDivide(MarketValue(h)*100, totalMarketValue)
	return w
}

// ComputeMetrics derives the metrics of h within a portfolio worth
// totalMarketValue.
func ComputeMetrics(h Holding, totalMarketValue float64) Metrics {
	pct, ok := GainLossPercent(h)
	return Metrics{
		MarketValue:       MarketValue(h),
		GainLossDollar:    GainLoss(h),
		GainLossPercent:   pct,
		WeightPercent:     Weight(h, totalMarketValue),
		GainLossAvailable: ok,
	}
}

// TotalMarketValue sums the market value of every holding.
func TotalMarketValue(holdings []Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += MarketValue(h)
	}
	return total
}

// TotalGainLoss sums the dollar gain of the stock holdings.
func TotalGainLoss(holdings []Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += GainLoss(h)
	}
	return total
}

// TotalCashPosition sums the market value of cash holdings.
func TotalCashPosition(holdings []Holding) float64 {
	var total float64
	for _, h := range holdings {
		if h.IsCash() {
			total += MarketValue(h)
		}
	}
	return total
}

// Summarize computes all portfolio totals.
func Summarize(holdings []Holding) Summary {
	return Summary{
		TotalMarketValue:  TotalMarketValue(holdings),
		TotalGainLoss:     TotalGainLoss(holdings),
		TotalCashPosition: TotalCashPosition(holdings),
		HoldingCount:      len(holdings),
	}
}
