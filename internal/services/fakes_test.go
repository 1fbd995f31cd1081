package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"stonkers/internal/provider"
)

// --- fake market data provider ---

type fakeMarketData struct {
	quotes     map[string]*provider.Quote
	profiles   map[string]*provider.Profile
	financials map[string]*provider.BasicFinancials
	quoteErrs  map[string]error
	aliases    map[string]string
	profileErr error
	searchErr  error
	quoteCalls atomic.Int64
}

var _ provider.MarketData = (*fakeMarketData)(nil)

func newFakeMarketData() *fakeMarketData {
	return &fakeMarketData{
		quotes: map[string]*provider.Quote{
			"AAPL": {Symbol: "AAPL", Current: 190},
			"MSFT": {Symbol: "MSFT", Current: 410},
		},
		profiles: map[string]*provider.Profile{
			"AAPL": {Ticker: "AAPL", Name: "Apple Inc", Logo: "https://logo/aapl.png", Exchange: "NASDAQ", Industry: "Technology", Currency: "USD"},
			"MSFT": {Ticker: "MSFT", Name: "Microsoft Corp", Logo: "https://logo/msft.png", Exchange: "NASDAQ", Industry: "Technology", Currency: "USD"},
		},
		financials: map[string]*provider.BasicFinancials{},
		quoteErrs:  map[string]error{},
		aliases:    map[string]string{},
	}
}

func (f *fakeMarketData) Name() string { return "fake" }

func (f *fakeMarketData) SearchSymbol(_ context.Context, query string) (string, error) {
	if f.searchErr != nil {
		return "", f.searchErr
	}
	sym := strings.ToUpper(strings.TrimSpace(query))
	if _, ok := f.quotes[sym]; ok {
		return sym, nil
	}
	if _, ok := f.financials[sym]; ok {
		return sym, nil
	}
	if alias, ok := f.aliases[sym]; ok {
		return alias, nil
	}
	return "", &provider.FetchError{Symbol: query, Endpoint: "/search", Err: provider.ErrSymbolNotFound}
}

func (f *fakeMarketData) Quote(_ context.Context, symbol string) (*provider.Quote, error) {
	f.quoteCalls.Add(1)
	if err := f.quoteErrs[symbol]; err != nil {
		return nil, err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, &provider.FetchError{Symbol: symbol, Endpoint: "/quote", Err: provider.ErrSymbolNotFound}
	}
	cp := *q
	return &cp, nil
}

func (f *fakeMarketData) Profile(_ context.Context, symbol string) (*provider.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p, ok := f.profiles[symbol]
	if !ok {
		return nil, &provider.FetchError{Symbol: symbol, Endpoint: "/stock/profile2", Err: provider.ErrSymbolNotFound}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeMarketData) BasicFinancials(_ context.Context, symbol string) (*provider.BasicFinancials, error) {
	b, ok := f.financials[symbol]
	if !ok {
		return nil, &provider.FetchError{Symbol: symbol, Endpoint: "/stock/metric", Err: provider.ErrSymbolNotFound}
	}
	cp := *b
	return &cp, nil
}

var errUpstream = errors.New("upstream returned status 500")

func floatPtr(v float64) *float64 { return &v }
