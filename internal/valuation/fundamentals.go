package valuation

import (
	"math"

	"stonkers/internal/numeric"
)

// Fundamentals are the market data fields used to seed a calculator input
// set. A nil field was not reported by the data source.
type Fundamentals struct {
	Price                *float64 `json:"price"`
	EPSTTM               *float64 `json:"eps_ttm"`
	PERatioTTM           *float64 `json:"pe_ratio_ttm"`
	EPSGrowthTTM         *float64 `json:"eps_growth_ttm"`
	FCFPerShareTTM       *float64 `json:"fcf_per_share_ttm"`
	FCFYieldTTM          *float64 `json:"fcf_yield_ttm"`
	FCFPerShareGrowthTTM *float64 `json:"fcf_per_share_growth_ttm"`
}

// NewFundamentals derives the FCF yield and one year FCF growth from the
// quarterly FCF per share series, newest value first.
func NewFundamentals(price, eps, pe, epsGrowth *float64, fcfSeries []float64) Fundamentals {
	f := Fundamentals{
		Price:        price,
		EPSTTM:       eps,
		PERatioTTM:   pe,
		EPSGrowthTTM: epsGrowth,
	}

	if len(fcfSeries) > 0 {
		fcf := fcfSeries[0]
		f.FCFPerShareTTM = &fcf

		divisor := 1.0
		if price != nil && *price != 0 {
			divisor = *price
		}
		yield := numeric.RoundToDecimal(fcf/divisor*100, DecimalPlaces)
		f.FCFYieldTTM = &yield
	}

	if growth, ok := FCFPerShareGrowth(fcfSeries, 1); ok {
		f.FCFPerShareGrowthTTM = &growth
	}
	return f
}

// FCFPerShareGrowth returns the compound annual growth, in percent, between
// the latest quarterly value and the one four quarters per year earlier.
// Both values must be positive.
func FCFPerShareGrowth(series []float64, years int) (float64, bool) {
	if years <= 0 {
		return 0, false
	}
	previous := 4 * years
	if len(series) <= previous {
		return 0, false
	}

	latest, prior := series[0], series[previous]
	if latest <= 0 || prior <= 0 {
		return 0, false
	}
	cagr := (math.Pow(latest/prior, 1/float64(years)) - 1) * 100
	return numeric.RoundToDecimal(cagr, DecimalPlaces), true
}

// InitialInputs seeds both input sets from fundamentals. Missing fields
// become 0 and the desired return starts at DefaultDesiredReturn.
func InitialInputs(f Fundamentals, method Method) Inputs {
	if method == "" {
		method = DefaultMethod
	}

	var price float64
	if f.Price != nil && numeric.IsFinite(*f.Price) {
		price = *f.Price
	}

	return Inputs{
		Method:       method,
		CurrentPrice: price,
		Earnings: EarningsInputs{
			EPS:           numeric.SafeRoundPtr(f.EPSTTM, DecimalPlaces),
			EPSGrowthRate: numeric.SafeRoundPtr(f.EPSGrowthTTM, DecimalPlaces),
			TargetPERatio: numeric.SafeRoundPtr(f.PERatioTTM, DecimalPlaces),
			DesiredReturn: DefaultDesiredReturn,
		},
		CashFlow: CashFlowInputs{
			FCFPerShare:    numeric.SafeRoundPtr(f.FCFPerShareTTM, DecimalPlaces),
			FCFGrowthRate:  numeric.SafeRoundPtr(f.FCFPerShareGrowthTTM, DecimalPlaces),
			TargetFCFYield: numeric.SafeRoundPtr(f.FCFYieldTTM, DecimalPlaces),
			DesiredReturn:  DefaultDesiredReturn,
		},
	}
}
