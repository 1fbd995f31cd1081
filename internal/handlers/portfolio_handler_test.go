package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/portfolio"
	"stonkers/internal/services"
)

// --- mock portfolio service ---

type mockPortfolioService struct {
	getPortfolioFn   func(ownerID string, sort portfolio.SortState) (*services.PortfolioView, error)
	addStockFn       func(ctx context.Context, ownerID, symbol string, shares, avgPrice float64) (*portfolio.Holding, error)
	addCashFn        func(ownerID string, amount float64) (*portfolio.Holding, error)
	updateHoldingFn  func(ownerID, ticker string, shares, costBasis float64) (*portfolio.Holding, error)
	removeHoldingFn  func(ownerID, ticker string) error
	reorderHoldingFn func(ownerID string, from, to int) error
	refreshQuotesFn  func(ctx context.Context, ownerID string) (*services.RefreshResult, error)
	ownersFn         func() ([]string, error)
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

func (m *mockPortfolioService) GetPortfolio(ownerID string, sort portfolio.SortState) (*services.PortfolioView, error) {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn(ownerID, sort)
	}
	return &services.PortfolioView{Sort: sort}, nil
}

func (m *mockPortfolioService) AddStock(ctx context.Context, ownerID, symbol string, shares, avgPrice float64) (*portfolio.Holding, error) {
	if m.addStockFn != nil {
		return m.addStockFn(ctx, ownerID, symbol, shares, avgPrice)
	}
	return &portfolio.Holding{Ticker: symbol, Shares: shares, CostBasis: avgPrice}, nil
}

func (m *mockPortfolioService) AddCash(ownerID string, amount float64) (*portfolio.Holding, error) {
	if m.addCashFn != nil {
		return m.addCashFn(ownerID, amount)
	}
	return &portfolio.Holding{Ticker: portfolio.CashTicker, Type: portfolio.HoldingTypeCash, CostBasis: amount, CurrentPrice: amount, Shares: 1}, nil
}

func (m *mockPortfolioService) UpdateHolding(ownerID, ticker string, shares, costBasis float64) (*portfolio.Holding, error) {
	if m.updateHoldingFn != nil {
		return m.updateHoldingFn(ownerID, ticker, shares, costBasis)
	}
	return &portfolio.Holding{Ticker: ticker, Shares: shares, CostBasis: costBasis}, nil
}

func (m *mockPortfolioService) RemoveHolding(ownerID, ticker string) error {
	if m.removeHoldingFn != nil {
		return m.removeHoldingFn(ownerID, ticker)
	}
	return nil
}

func (m *mockPortfolioService) ReorderHolding(ownerID string, from, to int) error {
	if m.reorderHoldingFn != nil {
		return m.reorderHoldingFn(ownerID, from, to)
	}
	return nil
}

func (m *mockPortfolioService) RefreshQuotes(ctx context.Context, ownerID string) (*services.RefreshResult, error) {
	if m.refreshQuotesFn != nil {
		return m.refreshQuotesFn(ctx, ownerID)
	}
	return &services.RefreshResult{Updated: []string{}, Failed: map[string]string{}}, nil
}

func (m *mockPortfolioService) Owners() ([]string, error) {
	if m.ownersFn != nil {
		return m.ownersFn()
	}
	return nil, nil
}

// --- router setup ---

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := gin.New()
	r.POST("/pipeline/quotes", handler.RefreshAllQuotes)
	auth := r.Group("", injectUserID("owner-1"))
	auth.GET("/portfolio", handler.GetPortfolio)
	auth.POST("/portfolio/stocks", handler.AddStock)
	auth.POST("/portfolio/cash", handler.AddCash)
	auth.PUT("/portfolio/holdings/:ticker", handler.UpdateHolding)
	auth.DELETE("/portfolio/holdings/:ticker", handler.RemoveHolding)
	auth.POST("/portfolio/reorder", handler.ReorderHolding)
	auth.POST("/portfolio/refresh", handler.RefreshQuotes)
	return r
}

func sampleView(sort portfolio.SortState) *services.PortfolioView {
	holdings := []portfolio.Holding{
		{Ticker: "AAPL", Type: portfolio.HoldingTypeStock, Name: "Apple Inc", Shares: 10, CostBasis: 100, CurrentPrice: 120, Currency: "USD"},
		{Ticker: "FREE", Type: portfolio.HoldingTypeStock, Name: "Gifted", Shares: 5, CostBasis: 0, CurrentPrice: 10},
		{Ticker: portfolio.CashTicker, Type: portfolio.HoldingTypeCash, Name: portfolio.CashName, Shares: 1, CostBasis: 750, CurrentPrice: 750},
	}
	return &services.PortfolioView{
		Holdings: portfolio.View(holdings, sort),
		Chart:    portfolio.View(portfolio.ChartView(holdings), portfolio.SortState{}),
		Summary:  portfolio.Summarize(holdings),
		Sort:     sort,
	}
}

// --- tests ---

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	t.Run("returns_200_with_display_strings", func(t *testing.T) {
		var gotSort portfolio.SortState
		svc := &mockPortfolioService{
			getPortfolioFn: func(ownerID string, sort portfolio.SortState) (*services.PortfolioView, error) {
				if ownerID != "owner-1" {
					t.Errorf("expected owner-1, got %s", ownerID)
				}
				gotSort = sort
				return sampleView(sort), nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/portfolio?sort_field=marketValue&sort_direction=desc", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSort.Field != portfolio.SortByMarketValue || gotSort.Direction != portfolio.SortDesc {
			t.Errorf("expected marketValue desc, got %+v", gotSort)
		}

		result := parseJSON(t, rec)
		holdings := result["holdings"].([]interface{})
		first := holdings[0].(map[string]interface{})
		if first["ticker"] != "AAPL" {
			t.Errorf("expected AAPL first, got %v", first["ticker"])
		}
		display := first["display"].(map[string]interface{})
		if display["market_value"] != "$1,200.00" {
			t.Errorf("expected $1,200.00, got %v", display["market_value"])
		}
		if display["gain_loss_percent"] != "20.00%" {
			t.Errorf("expected 20.00%%, got %v", display["gain_loss_percent"])
		}

		var free map[string]interface{}
		for _, h := range holdings {
			if row := h.(map[string]interface{}); row["ticker"] == "FREE" {
				free = row
			}
		}
		if free["display"].(map[string]interface{})["gain_loss_percent"] != "N/A" {
			t.Errorf("expected N/A for zero cost basis, got %v", free["display"])
		}

		summary := result["summary"].(map[string]interface{})
		if summary["total_market_value"].(float64) != 2000 {
			t.Errorf("expected total 2000, got %v", summary["total_market_value"])
		}
	})

	t.Run("returns_400_on_invalid_sort_field", func(t *testing.T) {
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/portfolio?sort_field=price", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestPortfolioHandler_AddStock(t *testing.T) {
	t.Run("returns_201_and_audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, audit))

		rec := doRequest(r, "POST", "/portfolio/stocks", `{"symbol":"AAPL","shares":10,"avg_price":150}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(audit.actions) != 1 || audit.actions[0] != services.AuditActionAddStock {
			t.Errorf("expected ADD_STOCK audit, got %v", audit.actions)
		}
	})

	t.Run("returns_400_on_missing_fields", func(t *testing.T) {
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, &mockAuditService{}))
		rec := doRequest(r, "POST", "/portfolio/stocks", `{"symbol":"AAPL"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("passes_through_domain_errors", func(t *testing.T) {
		svc := &mockPortfolioService{
			addStockFn: func(context.Context, string, string, float64, float64) (*portfolio.Holding, error) {
				return nil, apperrors.ErrInvalidQuantity
			},
		}
		audit := &mockAuditService{}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, audit))
		rec := doRequest(r, "POST", "/portfolio/stocks", `{"symbol":"AAPL","shares":0,"avg_price":150}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_QUANTITY")
		if len(audit.actions) != 0 {
			t.Errorf("expected no audit on failure, got %v", audit.actions)
		}
	})
}

func TestPortfolioHandler_AddCash(t *testing.T) {
	r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, &mockAuditService{}))

	rec := doRequest(r, "POST", "/portfolio/cash", `{"amount":500}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["cost_basis"].(float64) != 500 {
		t.Error("expected cost_basis 500")
	}

	rec = doRequest(r, "POST", "/portfolio/cash", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPortfolioHandler_UpdateHolding(t *testing.T) {
	t.Run("normalizes_ticker", func(t *testing.T) {
		var gotTicker string
		svc := &mockPortfolioService{
			updateHoldingFn: func(_, ticker string, shares, costBasis float64) (*portfolio.Holding, error) {
				gotTicker = ticker
				return &portfolio.Holding{Ticker: ticker, Shares: shares, CostBasis: costBasis}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/portfolio/holdings/msft", `{"shares":3,"cost_basis":99.5}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotTicker != "MSFT" {
			t.Errorf("expected MSFT, got %s", gotTicker)
		}
	})

	t.Run("rejects_malformed_ticker", func(t *testing.T) {
		called := false
		svc := &mockPortfolioService{
			updateHoldingFn: func(string, string, float64, float64) (*portfolio.Holding, error) {
				called = true
				return nil, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/portfolio/holdings/TOOLONGSYMBOL", `{"shares":1,"cost_basis":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_SYMBOL")
		if called {
			t.Error("expected service not to be called")
		}
	})

	t.Run("returns_404_when_missing", func(t *testing.T) {
		svc := &mockPortfolioService{
			updateHoldingFn: func(string, string, float64, float64) (*portfolio.Holding, error) {
				return nil, apperrors.ErrHoldingNotFound
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "PUT", "/portfolio/holdings/NVDA", `{"shares":1,"cost_basis":1}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "HOLDING_NOT_FOUND")
	})
}

func TestPortfolioHandler_RemoveHolding(t *testing.T) {
	r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, &mockAuditService{}))

	rec := doRequest(r, "DELETE", "/portfolio/holdings/AAPL", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doRequest(r, "DELETE", "/portfolio/holdings/%3C%3E", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INVALID_SYMBOL")
}

func TestPortfolioHandler_ReorderHolding(t *testing.T) {
	t.Run("accepts_zero_index", func(t *testing.T) {
		var from, to int = -1, -1
		svc := &mockPortfolioService{
			reorderHoldingFn: func(_ string, f, tt int) error {
				from, to = f, tt
				return nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "POST", "/portfolio/reorder", `{"from":2,"to":0}`)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if from != 2 || to != 0 {
			t.Errorf("expected 2 -> 0, got %d -> %d", from, to)
		}
	})

	t.Run("returns_400_out_of_range", func(t *testing.T) {
		svc := &mockPortfolioService{
			reorderHoldingFn: func(string, int, int) error { return apperrors.ErrInvalidReorder },
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "POST", "/portfolio/reorder", `{"from":0,"to":9}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_REORDER")
	})
}

func TestPortfolioHandler_RefreshAllQuotes(t *testing.T) {
	svc := &mockPortfolioService{
		ownersFn: func() ([]string, error) { return []string{"a", "b", "c"}, nil },
		refreshQuotesFn: func(_ context.Context, ownerID string) (*services.RefreshResult, error) {
			if ownerID == "b" {
				return nil, errors.New("database error")
			}
			return &services.RefreshResult{Updated: []string{"AAPL", "MSFT"}, Failed: map[string]string{}}, nil
		},
	}
	r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "POST", "/pipeline/quotes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["owners_refreshed"].(float64) != 2 {
		t.Errorf("expected 2 owners refreshed, got %v", result["owners_refreshed"])
	}
	if result["tickers_updated"].(float64) != 4 {
		t.Errorf("expected 4 tickers updated, got %v", result["tickers_updated"])
	}
	if _, ok := result["failed"].(map[string]interface{})["b"]; !ok {
		t.Errorf("expected owner b in failed, got %v", result["failed"])
	}
}
