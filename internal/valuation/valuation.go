// Package valuation projects a five year target price from earnings or free
// cash flow and discounts it back to a fair value at a desired annual return.
package valuation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"stonkers/internal/numeric"
)

const (
	// ProjectionYears is the fixed projection horizon.
	ProjectionYears = 5
	// DefaultDesiredReturn is the annual return, in percent, used to discount targets.
	DefaultDesiredReturn = 15.0
	// DecimalPlaces is the precision of every reported result.
	DecimalPlaces = 2
	// MinMultiple is the floor Clamp applies to a PE ratio or FCF yield.
	MinMultiple = 0.01
)

// Method selects how the five year target price is projected.
type Method string

const (
	MethodEarnings Method = "earnings"
	MethodCashFlow Method = "cash_flow"

	DefaultMethod = MethodCashFlow
)

var (
	ErrUnknownMethod   = errors.New("unknown valuation method")
	ErrInvalidMultiple = errors.New("target multiple must be positive")
	ErrNonFinite       = errors.New("valuation input is not a finite number")
)

// ParseMethod accepts the canonical names plus the short eps/fcf aliases.
// An empty string yields DefaultMethod.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMethod, nil
	case "earnings", "eps":
		return MethodEarnings, nil
	case "cash_flow", "fcf":
		return MethodCashFlow, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// EarningsInputs drives the earnings method. Rates are percentages.
type EarningsInputs struct {
	EPS           float64 `json:"eps"`
	EPSGrowthRate float64 `json:"eps_growth_rate"`
	TargetPERatio float64 `json:"target_pe_ratio"`
	DesiredReturn float64 `json:"desired_return"`
}

// CashFlowInputs drives the free cash flow method. Rates are percentages.
type CashFlowInputs struct {
	FCFPerShare    float64 `json:"fcf_per_share"`
	FCFGrowthRate  float64 `json:"fcf_growth_rate"`
	TargetFCFYield float64 `json:"target_fcf_yield"`
	DesiredReturn  float64 `json:"desired_return"`
}

// Inputs is a complete calculator input set. Only the set belonging to
// Method is read.
type Inputs struct {
	Method       Method         `json:"method"`
	CurrentPrice float64        `json:"current_price"`
	Earnings     EarningsInputs `json:"earnings"`
	CashFlow     CashFlowInputs `json:"cash_flow"`
}

// Result holds the rounded outcome of a calculation.
type Result struct {
	FairValue      float64 `json:"fair_value"`
	CurrentPrice   float64 `json:"current_price"`
	TargetPrice5yr float64 `json:"target_price_5yr"`
	ProjectedCAGR  float64 `json:"projected_cagr"`
}

// Validate rejects input sets that would produce a non-finite target.
func Validate(in Inputs) error {
	var values []float64
	var multiple float64
	switch in.Method {
	case MethodEarnings:
		e := in.Earnings
		values = []float64{e.EPS, e.EPSGrowthRate, e.TargetPERatio, e.DesiredReturn}
		multiple = e.TargetPERatio
	case MethodCashFlow:
		c := in.CashFlow
		values = []float64{c.FCFPerShare, c.FCFGrowthRate, c.TargetFCFYield, c.DesiredReturn}
		multiple = c.TargetFCFYield
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, in.Method)
	}

	for _, v := range append(values, in.CurrentPrice) {
		if !numeric.IsFinite(v) {
			return ErrNonFinite
		}
	}
	if multiple <= 0 {
		return ErrInvalidMultiple
	}
	return nil
}

// Clamp returns a copy of in with a non-positive multiple on the active
// method raised to MinMultiple.
func Clamp(in Inputs) Inputs {
	switch in.Method {
	case MethodEarnings:
		if in.Earnings.TargetPERatio <= 0 {
			in.Earnings.TargetPERatio = MinMultiple
		}
	case MethodCashFlow:
		if in.CashFlow.TargetFCFYield <= 0 {
			in.CashFlow.TargetFCFYield = MinMultiple
		}
	}
	return in
}

// Calculate validates in and returns the rounded valuation.
func Calculate(in Inputs) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	target := TargetPrice(in)
	fair := target / compound(desiredReturn(in))
	cagr := ProjectedCAGR(target, in.CurrentPrice)

	return Result{
		FairValue:      numeric.SafeRoundToDecimal(fair, DecimalPlaces),
		CurrentPrice:   numeric.SafeRoundToDecimal(in.CurrentPrice, DecimalPlaces),
		TargetPrice5yr: numeric.SafeRoundToDecimal(target, DecimalPlaces),
		ProjectedCAGR:  numeric.SafeRoundToDecimal(cagr, DecimalPlaces),
	}, nil
}

// TargetPrice returns the unrounded five year target for the active method.
func TargetPrice(in Inputs) float64 {
	switch in.Method {
	case MethodEarnings:
		e := in.Earnings
		futureEPS := e.EPS * compound(e.EPSGrowthRate)
		return futureEPS * e.TargetPERatio
	case MethodCashFlow:
		c := in.CashFlow
		futureFCF := c.FCFPerShare * compound(c.FCFGrowthRate)
		return futureFCF / (c.TargetFCFYield / 100)
	}
	return 0
}

// ProjectedCAGR is the annualized return, in percent, from price to target
// over the projection horizon. It is 0 when price is not positive.
func ProjectedCAGR(target, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return (math.Pow(target/price, 1.0/ProjectionYears) - 1) * 100
}

func desiredReturn(in Inputs) float64 {
	if in.Method == MethodEarnings {
		return in.Earnings.DesiredReturn
	}
	return in.CashFlow.DesiredReturn
}

// compound returns (1 + ratePct/100)^ProjectionYears.
func compound(ratePct float64) float64 {
	return math.Pow(1+ratePct/100, ProjectionYears)
}
