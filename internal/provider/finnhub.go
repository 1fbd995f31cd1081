package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultFinnhubURL is the public Finnhub REST endpoint.
const DefaultFinnhubURL = "https://finnhub.io/api/v1"

// finnhubQuote mirrors GET /quote. Finnhub reports null change fields for
// symbols without a previous close.
type finnhubQuote struct {
	C  float64  `json:"c"`
	D  *float64 `json:"d"`
	DP *float64 `json:"dp"`
	H  float64  `json:"h"`
	L  float64  `json:"l"`
	O  float64  `json:"o"`
	PC float64  `json:"pc"`
	T  int64    `json:"t"`
}

// finnhubProfile mirrors GET /stock/profile2.
type finnhubProfile struct {
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	FinnhubIndustry      string  `json:"finnhubIndustry"`
	IPO                  string  `json:"ipo"`
	Logo                 string  `json:"logo"`
	MarketCapitalization float64 `json:"marketCapitalization"`
	Name                 string  `json:"name"`
	ShareOutstanding     float64 `json:"shareOutstanding"`
	Ticker               string  `json:"ticker"`
	WebURL               string  `json:"weburl"`
}

// finnhubMetrics mirrors the parts of GET /stock/metric?metric=all we read.
type finnhubMetrics struct {
	Metric struct {
		EPSTTM          *float64 `json:"epsTTM"`
		PETTM           *float64 `json:"peTTM"`
		EPSGrowthTTMYoy *float64 `json:"epsGrowthTTMYoy"`
	} `json:"metric"`
	Series struct {
		Quarterly struct {
			FCFPerShareTTM []struct {
				Period string  `json:"period"`
				V      float64 `json:"v"`
			} `json:"fcfPerShareTTM"`
		} `json:"quarterly"`
	} `json:"series"`
}

// finnhubSearch mirrors GET /search.
type finnhubSearch struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

// Finnhub fetches market data from the Finnhub REST API.
type Finnhub struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewFinnhub creates a Finnhub provider. An empty baseURL uses DefaultFinnhubURL.
func NewFinnhub(httpClient *http.Client, baseURL, apiKey string) *Finnhub {
	if baseURL == "" {
		baseURL = DefaultFinnhubURL
	}
	return &Finnhub{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Name returns the provider's display name.
func (p *Finnhub) Name() string { return "Finnhub" }

// SearchSymbol returns the result whose symbol equals the uppercased query,
// or the first result when none matches exactly.
func (p *Finnhub) SearchSymbol(ctx context.Context, query string) (string, error) {
	var resp finnhubSearch
	if err := p.get(ctx, "/search", query, url.Values{"q": {query}}, &resp); err != nil {
		return "", err
	}
	if resp.Count == 0 || len(resp.Result) == 0 {
		return "", &FetchError{Symbol: query, Endpoint: "/search", Err: ErrSymbolNotFound}
	}

	want := strings.ToUpper(query)
	for _, r := range resp.Result {
		if r.Symbol == want {
			return r.Symbol, nil
		}
	}
	return resp.Result[0].Symbol, nil
}

// Quote fetches the latest quote.
func (p *Finnhub) Quote(ctx context.Context, symbol string) (*Quote, error) {
	var raw finnhubQuote
	if err := p.get(ctx, "/quote", symbol, url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, err
	}

	q := &Quote{
		Symbol:        symbol,
		Current:       raw.C,
		High:          raw.H,
		Low:           raw.L,
		Open:          raw.O,
		PreviousClose: raw.PC,
		Timestamp:     raw.T,
	}
	if raw.D != nil {
		q.Change = *raw.D
	}
	if raw.DP != nil {
		q.PercentChange = *raw.DP
	}
	return q, nil
}

// Profile fetches the company profile. Finnhub answers unknown symbols with
// an empty object, which is reported as ErrSymbolNotFound.
func (p *Finnhub) Profile(ctx context.Context, symbol string) (*Profile, error) {
	var raw finnhubProfile
	if err := p.get(ctx, "/stock/profile2", symbol, url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" && raw.Ticker == "" {
		return nil, &FetchError{Symbol: symbol, Endpoint: "/stock/profile2", Err: ErrSymbolNotFound}
	}

	return &Profile{
		Ticker:               raw.Ticker,
		Name:                 raw.Name,
		Currency:             raw.Currency,
		Exchange:             raw.Exchange,
		Country:              raw.Country,
		IPO:                  raw.IPO,
		Logo:                 raw.Logo,
		Industry:             raw.FinnhubIndustry,
		WebURL:               raw.WebURL,
		MarketCapitalization: raw.MarketCapitalization,
		SharesOutstanding:    raw.ShareOutstanding,
	}, nil
}

// BasicFinancials fetches trailing metrics and the quarterly FCF per share series.
func (p *Finnhub) BasicFinancials(ctx context.Context, symbol string) (*BasicFinancials, error) {
	var raw finnhubMetrics
	params := url.Values{"symbol": {symbol}, "metric": {"all"}}
	if err := p.get(ctx, "/stock/metric", symbol, params, &raw); err != nil {
		return nil, err
	}

	series := raw.Series.Quarterly.FCFPerShareTTM
	fcf := make([]float64, len(series))
	for i, point := range series {
		fcf[i] = point.V
	}

	return &BasicFinancials{
		Symbol:          symbol,
		EPSTTM:          raw.Metric.EPSTTM,
		PERatioTTM:      raw.Metric.PETTM,
		EPSGrowthTTMYoy: raw.Metric.EPSGrowthTTMYoy,
		FCFPerShareTTM:  fcf,
	}, nil
}

// get issues a GET against endpoint and decodes the JSON body into out.
func (p *Finnhub) get(ctx context.Context, endpoint, symbol string, params url.Values, out any) error {
	fail := func(status int, err error) error {
		return &FetchError{Symbol: symbol, Endpoint: endpoint, StatusCode: status, Err: err}
	}

	reqURL := p.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fail(0, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("X-Finnhub-Token", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fail(0, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fail(resp.StatusCode, ErrSymbolNotFound)
	case resp.StatusCode != http.StatusOK:
		return fail(resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// IsNotFound reports whether err means the symbol does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSymbolNotFound)
}
