package services

import (
	"context"
	"sync"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/logger"
	"stonkers/internal/numeric"
	"stonkers/internal/portfolio"
	"stonkers/internal/provider"
)

// marketService resolves user queries to stock quotes.
type marketService struct {
	data provider.MarketData
}

// NewMarketService creates a new MarketServicer backed by data.
func NewMarketService(data provider.MarketData) MarketServicer {
	return &marketService{data: data}
}

// LookupStock resolves query to a symbol, then fetches its quote and
// profile concurrently. A failed quote or profile does not fail the lookup;
// the missing fields fall back to "<SYMBOL> Company", a zero price and no
// logo.
func (s *marketService) LookupStock(ctx context.Context, query string) (*portfolio.StockQuote, error) {
	cleaned, ok := numeric.SanitizeCompanyName(query)
	if !ok {
		return nil, apperrors.ErrInvalidSymbol
	}

	found, err := s.data.SearchSymbol(ctx, cleaned)
	if err != nil {
		return nil, mapProviderError(err)
	}
	symbol, ok := numeric.SanitizeStockSymbol(found)
	if !ok {
		return nil, apperrors.ErrSymbolNotFound
	}

	var (
		wg      sync.WaitGroup
		quote   *provider.Quote
		profile *provider.Profile
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		q, err := s.data.Quote(ctx, symbol)
		if err != nil {
			logger.Get().Warnw("quote lookup failed", "symbol", symbol, "provider", s.data.Name(), "error", err)
			return
		}
		quote = q
	}()
	go func() {
		defer wg.Done()
		p, err := s.data.Profile(ctx, symbol)
		if err != nil {
			logger.Get().Warnw("profile lookup failed", "symbol", symbol, "provider", s.data.Name(), "error", err)
			return
		}
		profile = p
	}()
	wg.Wait()

	result := &portfolio.StockQuote{
		Ticker: symbol,
		Name:   symbol + " Company",
	}
	if quote != nil && numeric.IsFinite(quote.Current) && quote.Current > 0 {
		result.CurrentPrice = quote.Current
	}
	if profile != nil {
		if name, ok := numeric.SanitizeCompanyName(profile.Name); ok {
			result.Name = name
		}
		result.Logo = profile.Logo
		result.Exchange = profile.Exchange
		result.Industry = profile.Industry
		result.Currency = profile.Currency
	}
	return result, nil
}

// CurrentPrice returns the latest traded price for symbol. A quote without a
// positive price is reported as unavailable.
func (s *marketService) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	sym, ok := numeric.SanitizeStockSymbol(symbol)
	if !ok {
		return 0, apperrors.ErrInvalidSymbol
	}
	q, err := s.data.Quote(ctx, sym)
	if err != nil {
		return 0, mapProviderError(err)
	}
	if !numeric.IsFinite(q.Current) || !(q.Current > 0) {
		return 0, apperrors.WithMessage(apperrors.ErrMarketDataUnavailable, "Quote has no valid price")
	}
	return q.Current, nil
}

// mapProviderError converts a provider failure to its AppError.
func mapProviderError(err error) error {
	if provider.IsNotFound(err) {
		return apperrors.Wrap(apperrors.ErrSymbolNotFound, err)
	}
	return apperrors.Wrap(apperrors.ErrMarketDataUnavailable, err)
}
