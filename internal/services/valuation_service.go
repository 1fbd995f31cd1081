package services

import (
	"context"
	"sync"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/logger"
	"stonkers/internal/numeric"
	"stonkers/internal/provider"
	"stonkers/internal/valuation"
)

// valuationService seeds and runs the fair value calculator.
type valuationService struct {
	data provider.MarketData
}

// NewValuationService creates a new ValuationServicer.
func NewValuationService(data provider.MarketData) ValuationServicer {
	return &valuationService{data: data}
}

// Seed fetches the quote and fundamentals for symbol concurrently and
// builds the calculator's initial inputs. A missing quote leaves the price
// at 0; missing fundamentals fail the seed.
func (s *valuationService) Seed(ctx context.Context, symbol string, method valuation.Method) (*ValuationSeed, error) {
	sym, ok := numeric.SanitizeStockSymbol(symbol)
	if !ok {
		return nil, apperrors.ErrInvalidSymbol
	}
	if method == "" {
		method = valuation.DefaultMethod
	}

	var (
		wg         sync.WaitGroup
		quote      *provider.Quote
		financials *provider.BasicFinancials
		finErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		q, err := s.data.Quote(ctx, sym)
		if err != nil {
			logger.Get().Warnw("valuation quote failed", "symbol", sym, "error", err)
			return
		}
		quote = q
	}()
	go func() {
		defer wg.Done()
		financials, finErr = s.data.BasicFinancials(ctx, sym)
	}()
	wg.Wait()

	if finErr != nil {
		return nil, mapProviderError(finErr)
	}

	var price *float64
	if quote != nil && numeric.IsFinite(quote.Current) && quote.Current > 0 {
		p := quote.Current
		price = &p
	}

	f := valuation.NewFundamentals(price, financials.EPSTTM, financials.PERatioTTM, financials.EPSGrowthTTMYoy, financials.FCFPerShareTTM)
	inputs := valuation.InitialInputs(f, method)
	return &ValuationSeed{
		Symbol:       sym,
		CurrentPrice: inputs.CurrentPrice,
		Fundamentals: f,
		Inputs:       inputs,
	}, nil
}

// Calculate runs the calculator on caller-supplied inputs.
func (s *valuationService) Calculate(in valuation.Inputs) (*valuation.Result, error) {
	if in.Method == "" {
		in.Method = valuation.DefaultMethod
	}
	result, err := valuation.Calculate(in)
	if err != nil {
		return nil, apperrors.FromLedgerError(err)
	}
	return &result, nil
}

// Valuate seeds symbol and calculates with the seeded inputs. A seeded
// multiple that is missing or not positive is raised to the calculator's
// minimum.
func (s *valuationService) Valuate(ctx context.Context, symbol string, method valuation.Method) (*ValuationReport, error) {
	seed, err := s.Seed(ctx, symbol, method)
	if err != nil {
		return nil, err
	}

	seed.Inputs = valuation.Clamp(seed.Inputs)
	result, err := s.Calculate(seed.Inputs)
	if err != nil {
		return nil, err
	}
	return &ValuationReport{ValuationSeed: *seed, Result: *result}, nil
}
