package valuation

import (
	"errors"
	"math"
	"testing"
)

func assertClose(t *testing.T, label string, want, got, tolerance float64) {
	t.Helper()
	if math.Abs(want-got) > tolerance {
		t.Errorf("%s: expected %v (±%v), got %v", label, want, tolerance, got)
	}
}

func TestCalculate_EarningsMethod(t *testing.T) {
	in := Inputs{
		Method:       MethodEarnings,
		CurrentPrice: 300,
		Earnings: EarningsInputs{
			EPS:           12.25,
			EPSGrowthRate: 12.3,
			TargetPERatio: 23.25,
			DesiredReturn: 15,
		},
	}

	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertClose(t, "target_price_5yr", 508.70, res.TargetPrice5yr, 0.05)
	assertClose(t, "fair_value", 252.91, res.FairValue, 0.05)
	assertClose(t, "projected_cagr", 11.14, res.ProjectedCAGR, 0.05)
	if res.CurrentPrice != 300 {
		t.Errorf("expected current price 300, got %v", res.CurrentPrice)
	}
}

func TestCalculate_CashFlowMethod(t *testing.T) {
	in := Inputs{
		Method:       MethodCashFlow,
		CurrentPrice: 80,
		CashFlow: CashFlowInputs{
			FCFPerShare:    2.5,
			FCFGrowthRate:  10,
			TargetFCFYield: 4,
			DesiredReturn:  15,
		},
	}

	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertClose(t, "target_price_5yr", 100.66, res.TargetPrice5yr, 0.05)
	assertClose(t, "fair_value", 50.04, res.FairValue, 0.05)
	assertClose(t, "projected_cagr", 4.70, res.ProjectedCAGR, 0.05)
}

func TestCalculate_OnlyActiveInputSetIsRead(t *testing.T) {
	in := Inputs{
		Method:       MethodCashFlow,
		CurrentPrice: 80,
		Earnings:     EarningsInputs{EPS: 99, TargetPERatio: 0},
		CashFlow:     CashFlowInputs{FCFPerShare: 2.5, FCFGrowthRate: 10, TargetFCFYield: 4, DesiredReturn: 15},
	}
	if _, err := Calculate(in); err != nil {
		t.Fatalf("inactive earnings set should not be validated: %v", err)
	}
}

func TestCalculate_ResultsAreRounded(t *testing.T) {
	res, err := Calculate(Inputs{
		Method:       MethodCashFlow,
		CurrentPrice: 33.333333,
		CashFlow:     CashFlowInputs{FCFPerShare: 1.111, FCFGrowthRate: 7.77, TargetFCFYield: 3.3, DesiredReturn: 15},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for label, v := range map[string]float64{
		"fair_value":       res.FairValue,
		"current_price":    res.CurrentPrice,
		"target_price_5yr": res.TargetPrice5yr,
		"projected_cagr":   res.ProjectedCAGR,
	} {
		if scaled := v * 100; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Errorf("%s: expected at most 2 decimals, got %v", label, v)
		}
	}
}

func TestCalculate_DegenerateInputs(t *testing.T) {
	t.Run("zero_pe_rejected", func(t *testing.T) {
		_, err := Calculate(Inputs{Method: MethodEarnings, CurrentPrice: 10, Earnings: EarningsInputs{EPS: 1, TargetPERatio: 0}})
		if !errors.Is(err, ErrInvalidMultiple) {
			t.Errorf("expected ErrInvalidMultiple, got %v", err)
		}
	})

	t.Run("zero_fcf_yield_rejected", func(t *testing.T) {
		_, err := Calculate(Inputs{Method: MethodCashFlow, CurrentPrice: 10, CashFlow: CashFlowInputs{FCFPerShare: 1, TargetFCFYield: 0}})
		if !errors.Is(err, ErrInvalidMultiple) {
			t.Errorf("expected ErrInvalidMultiple, got %v", err)
		}
	})

	t.Run("nan_rejected", func(t *testing.T) {
		_, err := Calculate(Inputs{Method: MethodCashFlow, CurrentPrice: math.NaN(), CashFlow: CashFlowInputs{FCFPerShare: 1, TargetFCFYield: 4}})
		if !errors.Is(err, ErrNonFinite) {
			t.Errorf("expected ErrNonFinite, got %v", err)
		}
	})

	t.Run("unknown_method_rejected", func(t *testing.T) {
		_, err := Calculate(Inputs{Method: "dividend"})
		if !errors.Is(err, ErrUnknownMethod) {
			t.Errorf("expected ErrUnknownMethod, got %v", err)
		}
	})

	t.Run("clamp_makes_zero_multiple_computable", func(t *testing.T) {
		in := Clamp(Inputs{Method: MethodCashFlow, CurrentPrice: 10, CashFlow: CashFlowInputs{FCFPerShare: 1, TargetFCFYield: 0, DesiredReturn: 15}})
		if in.CashFlow.TargetFCFYield != MinMultiple {
			t.Fatalf("expected yield clamped to %v, got %v", MinMultiple, in.CashFlow.TargetFCFYield)
		}
		res, err := Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.IsInf(res.TargetPrice5yr, 0) || math.IsNaN(res.TargetPrice5yr) {
			t.Errorf("expected finite target, got %v", res.TargetPrice5yr)
		}
	})

	t.Run("non_positive_price_zeroes_cagr_only", func(t *testing.T) {
		res, err := Calculate(Inputs{Method: MethodCashFlow, CurrentPrice: 0, CashFlow: CashFlowInputs{FCFPerShare: 2.5, FCFGrowthRate: 10, TargetFCFYield: 4, DesiredReturn: 15}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ProjectedCAGR != 0 {
			t.Errorf("expected cagr 0, got %v", res.ProjectedCAGR)
		}
		assertClose(t, "fair_value", 50.04, res.FairValue, 0.05)
	})

	t.Run("negative_target_never_leaks_nan", func(t *testing.T) {
		res, err := Calculate(Inputs{Method: MethodEarnings, CurrentPrice: 50, Earnings: EarningsInputs{EPS: -2, EPSGrowthRate: 5, TargetPERatio: 15, DesiredReturn: 15}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.IsNaN(res.ProjectedCAGR) {
			t.Error("expected cagr to be guarded, got NaN")
		}
	})
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{input: "", want: MethodCashFlow},
		{input: "earnings", want: MethodEarnings},
		{input: "EPS", want: MethodEarnings},
		{input: "cash_flow", want: MethodCashFlow},
		{input: "fcf", want: MethodCashFlow},
		{input: "dcf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMethod(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMethod(%q): expected %q, got %q (err=%v)", tt.input, tt.want, got, err)
		}
	}
}

func TestProjectedCAGR(t *testing.T) {
	assertClose(t, "doubling", 14.87, ProjectedCAGR(200, 100), 0.01)
	if got := ProjectedCAGR(200, -1); got != 0 {
		t.Errorf("expected 0 for negative price, got %v", got)
	}
}
