package services

import (
	"context"
	"sync"
	"testing"

	"stonkers/internal/models"
	"stonkers/internal/portfolio"
	"stonkers/internal/testutil"
)

func tickers(rows []portfolio.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ticker
	}
	return out
}

func assertTickers(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPortfolioService_AddStock(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_and_persists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
		owner := testutil.NewOwnerID()

		h, err := svc.AddStock(ctx, owner, "aapl", 10, 150)
		testutil.AssertNoError(t, err)

		if h.Ticker != "AAPL" || h.Name != "Apple Inc" {
			t.Errorf("expected AAPL / Apple Inc, got %s / %s", h.Ticker, h.Name)
		}
		if h.CurrentPrice != 190 {
			t.Errorf("expected current price 190, got %v", h.CurrentPrice)
		}

		var row models.Holding
		if err := db.Where("owner_id = ? AND ticker = ?", owner, "AAPL").First(&row).Error; err != nil {
			t.Fatalf("expected stored holding: %v", err)
		}
		if row.Shares != 10 || row.CostBasis != 150 {
			t.Errorf("expected 10 @ 150, got %v @ %v", row.Shares, row.CostBasis)
		}
	})

	t.Run("merges_existing_position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
		owner := testutil.NewOwnerID()

		_, err := svc.AddStock(ctx, owner, "AAPL", 10, 100)
		testutil.AssertNoError(t, err)
		h, err := svc.AddStock(ctx, owner, "AAPL", 10, 200)
		testutil.AssertNoError(t, err)

		if h.Shares != 20 {
			t.Errorf("expected 20 shares, got %v", h.Shares)
		}
		testutil.AssertFloat(t, "cost_basis", h.CostBasis, 150, 1e-9)

		var count int64
		db.Model(&models.Holding{}).Where("owner_id = ?", owner).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 stored holding, got %d", count)
		}
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
		owner := testutil.NewOwnerID()

		_, err := svc.AddStock(ctx, owner, "AAPL", 0, 100)
		testutil.AssertAppError(t, err, "INVALID_QUANTITY")

		_, err = svc.AddStock(ctx, owner, "AAPL", 1, -5)
		testutil.AssertAppError(t, err, "INVALID_PRICE")

		_, err = svc.AddStock(ctx, owner, "usd", 1, 1)
		testutil.AssertAppError(t, err, "RESERVED_TICKER")

		_, err = svc.AddStock(ctx, owner, "<>", 1, 1)
		testutil.AssertAppError(t, err, "INVALID_SYMBOL")

		_, err = svc.AddStock(ctx, owner, "ZZZZ", 1, 1)
		testutil.AssertAppError(t, err, "SYMBOL_NOT_FOUND")

		view, err := svc.GetPortfolio(owner, portfolio.SortState{})
		testutil.AssertNoError(t, err)
		if len(view.Holdings) != 0 {
			t.Errorf("expected empty portfolio, got %v", tickers(view.Holdings))
		}
	})

	t.Run("requires_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))

		_, err := svc.AddStock(ctx, "", "AAPL", 1, 1)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("rejects_inexact_search_match", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		data := newFakeMarketData()
		data.aliases["AAP"] = "AAPL"
		svc := NewPortfolioService(db, NewMarketService(data))
		owner := testutil.NewOwnerID()

		_, err := svc.AddStock(ctx, owner, "AAP", 10, 150)
		testutil.AssertAppError(t, err, "SYMBOL_NOT_FOUND")

		var count int64
		db.Model(&models.Holding{}).Where("owner_id = ?", owner).Count(&count)
		if count != 0 {
			t.Errorf("expected no stored holdings, got %d", count)
		}
	})
}

func TestPortfolioService_SessionEviction(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
	impl := svc.(*portfolioService)
	impl.maxSessions = 1

	ownerA := testutil.NewOwnerID()
	ownerB := testutil.NewOwnerID()
	_, err := svc.AddStock(ctx, ownerA, "AAPL", 10, 150)
	testutil.AssertNoError(t, err)
	_, err = svc.AddStock(ctx, ownerB, "MSFT", 5, 300)
	testutil.AssertNoError(t, err)

	impl.mu.Lock()
	size := len(impl.sessions)
	impl.mu.Unlock()
	if size > 1 {
		t.Errorf("expected at most 1 cached session, got %d", size)
	}

	view, err := svc.GetPortfolio(ownerA, portfolio.SortState{})
	testutil.AssertNoError(t, err)
	assertTickers(t, tickers(view.Holdings), "AAPL")

	view, err = svc.GetPortfolio(ownerB, portfolio.SortState{})
	testutil.AssertNoError(t, err)
	assertTickers(t, tickers(view.Holdings), "MSFT")
	if view.Holdings[0].Shares != 5 {
		t.Errorf("expected 5 shares after reload, got %v", view.Holdings[0].Shares)
	}
}

func TestPortfolioService_AddCash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
	owner := testutil.NewOwnerID()

	_, err := svc.AddCash(owner, 1000)
	testutil.AssertNoError(t, err)
	h, err := svc.AddCash(owner, 250.5)
	testutil.AssertNoError(t, err)

	if h.Ticker != portfolio.CashTicker || !h.IsCash() {
		t.Fatalf("expected cash holding, got %+v", h)
	}
	if h.CostBasis != 1250.5 || h.CurrentPrice != 1250.5 {
		t.Errorf("expected cash 1250.5, got cost %v price %v", h.CostBasis, h.CurrentPrice)
	}

	_, err = svc.AddCash(owner, 0)
	testutil.AssertAppError(t, err, "INVALID_AMOUNT")
}

func TestPortfolioService_UpdateRemoveReorder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	owner := testutil.NewOwnerID()
	testutil.CreateTestHolding(t, db, owner, "AAPL", 0)
	testutil.CreateTestHolding(t, db, owner, "MSFT", 1)
	testutil.CreateTestCashHolding(t, db, owner, 500, 2)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))

	t.Run("loads_stored_order", func(t *testing.T) {
		view, err := svc.GetPortfolio(owner, portfolio.SortState{})
		testutil.AssertNoError(t, err)
		assertTickers(t, tickers(view.Holdings), "AAPL", "MSFT", "USD")
	})

	t.Run("update_holding", func(t *testing.T) {
		h, err := svc.UpdateHolding(owner, "MSFT", 4, 90)
		testutil.AssertNoError(t, err)
		if h.Shares != 4 || h.CostBasis != 90 {
			t.Errorf("expected 4 @ 90, got %v @ %v", h.Shares, h.CostBasis)
		}

		_, err = svc.UpdateHolding(owner, "NVDA", 1, 1)
		testutil.AssertAppError(t, err, "HOLDING_NOT_FOUND")
	})

	t.Run("reorder_persists", func(t *testing.T) {
		testutil.AssertNoError(t, svc.ReorderHolding(owner, 2, 0))

		var rows []models.Holding
		db.Where("owner_id = ?", owner).Order("position").Find(&rows)
		got := make([]string, len(rows))
		for i := range rows {
			got[i] = rows[i].Ticker
		}
		assertTickers(t, got, "USD", "AAPL", "MSFT")

		err := svc.ReorderHolding(owner, 0, 3)
		testutil.AssertAppError(t, err, "INVALID_REORDER")
	})

	t.Run("remove_is_idempotent", func(t *testing.T) {
		testutil.AssertNoError(t, svc.RemoveHolding(owner, "AAPL"))
		testutil.AssertNoError(t, svc.RemoveHolding(owner, "AAPL"))

		view, err := svc.GetPortfolio(owner, portfolio.SortState{})
		testutil.AssertNoError(t, err)
		assertTickers(t, tickers(view.Holdings), "USD", "MSFT")
	})
}

func TestPortfolioService_GetPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	owner := testutil.NewOwnerID()
	testutil.CreateTestHolding(t, db, owner, "AAPL", 0) // 10 x 120 = 1200
	testutil.CreateTestCashHolding(t, db, owner, 3000, 1)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))

	view, err := svc.GetPortfolio(owner, portfolio.SortState{Field: portfolio.SortByMarketValue, Direction: portfolio.SortAsc})
	testutil.AssertNoError(t, err)

	assertTickers(t, tickers(view.Holdings), "AAPL", "USD")
	assertTickers(t, tickers(view.Chart), "USD", "AAPL")

	if view.Summary.TotalMarketValue != 4200 {
		t.Errorf("expected total market value 4200, got %v", view.Summary.TotalMarketValue)
	}
	if view.Summary.TotalGainLoss != 200 {
		t.Errorf("expected total gain/loss 200, got %v", view.Summary.TotalGainLoss)
	}
	if view.Summary.TotalCashPosition != 3000 {
		t.Errorf("expected cash position 3000, got %v", view.Summary.TotalCashPosition)
	}
	if view.Sort.Field != portfolio.SortByMarketValue {
		t.Errorf("expected sort state echoed, got %+v", view.Sort)
	}
	testutil.AssertFloat(t, "aapl_weight", view.Holdings[0].WeightPercent, 1200.0/4200*100, 1e-9)
}

func TestPortfolioService_RollbackOnPersistFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
	owner := testutil.NewOwnerID()

	_, err := svc.AddCash(owner, 100)
	testutil.AssertNoError(t, err)

	if err := db.Migrator().DropTable(&models.Holding{}); err != nil {
		t.Fatalf("failed to drop holdings table: %v", err)
	}

	_, err = svc.AddCash(owner, 50)
	testutil.AssertAppError(t, err, "INTERNAL_ERROR")

	view, err := svc.GetPortfolio(owner, portfolio.SortState{})
	testutil.AssertNoError(t, err)
	if len(view.Holdings) != 1 || view.Holdings[0].CostBasis != 100 {
		t.Errorf("expected cash rolled back to 100, got %+v", view.Holdings)
	}
}

func TestPortfolioService_ConcurrentMutations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))
	owner := testutil.NewOwnerID()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddCash(owner, 5); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	view, err := svc.GetPortfolio(owner, portfolio.SortState{})
	testutil.AssertNoError(t, err)
	if view.Summary.TotalCashPosition != 100 {
		t.Errorf("expected cash 100, got %v", view.Summary.TotalCashPosition)
	}
}

func TestPortfolioService_RefreshQuotes(t *testing.T) {
	ctx := context.Background()

	t.Run("updates_prices_and_reports_failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		owner := testutil.NewOwnerID()
		testutil.CreateTestHolding(t, db, owner, "AAPL", 0)
		testutil.CreateTestHolding(t, db, owner, "ZM", 1)
		testutil.CreateTestCashHolding(t, db, owner, 100, 2)

		data := newFakeMarketData()
		data.quoteErrs["ZM"] = errUpstream
		svc := NewPortfolioService(db, NewMarketService(data))

		result, err := svc.RefreshQuotes(ctx, owner)
		testutil.AssertNoError(t, err)

		if len(result.Updated) != 1 || result.Updated[0] != "AAPL" {
			t.Errorf("expected [AAPL] updated, got %v", result.Updated)
		}
		if _, ok := result.Failed["ZM"]; !ok {
			t.Errorf("expected ZM in failed, got %v", result.Failed)
		}
		if data.quoteCalls.Load() != 2 {
			t.Errorf("expected 2 quote calls, got %d", data.quoteCalls.Load())
		}

		var row models.Holding
		db.Where("owner_id = ? AND ticker = ?", owner, "AAPL").First(&row)
		if row.CurrentPrice != 190 {
			t.Errorf("expected stored AAPL price 190, got %v", row.CurrentPrice)
		}
		db.Where("owner_id = ? AND ticker = ?", owner, "ZM").First(&row)
		if row.CurrentPrice != 120 {
			t.Errorf("expected ZM price unchanged at 120, got %v", row.CurrentPrice)
		}
	})

	t.Run("zero_quote_keeps_previous_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		owner := testutil.NewOwnerID()
		testutil.CreateTestHolding(t, db, owner, "AAPL", 0)

		data := newFakeMarketData()
		data.quotes["AAPL"].Current = 0
		svc := NewPortfolioService(db, NewMarketService(data))

		result, err := svc.RefreshQuotes(ctx, owner)
		testutil.AssertNoError(t, err)
		if len(result.Updated) != 0 {
			t.Errorf("expected nothing updated, got %v", result.Updated)
		}
		if _, ok := result.Failed["AAPL"]; !ok {
			t.Errorf("expected AAPL in failed, got %v", result.Failed)
		}

		var row models.Holding
		db.Where("owner_id = ? AND ticker = ?", owner, "AAPL").First(&row)
		if row.CurrentPrice != 120 {
			t.Errorf("expected AAPL price unchanged at 120, got %v", row.CurrentPrice)
		}
	})

	t.Run("cash_only_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		owner := testutil.NewOwnerID()
		testutil.CreateTestCashHolding(t, db, owner, 100, 0)

		data := newFakeMarketData()
		svc := NewPortfolioService(db, NewMarketService(data))

		result, err := svc.RefreshQuotes(ctx, owner)
		testutil.AssertNoError(t, err)
		if len(result.Updated) != 0 || len(result.Failed) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
		if data.quoteCalls.Load() != 0 {
			t.Errorf("expected no quote calls, got %d", data.quoteCalls.Load())
		}
	})
}

func TestPortfolioService_Owners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	testutil.CreateTestHolding(t, db, "owner-a", "AAPL", 0)
	testutil.CreateTestHolding(t, db, "owner-a", "MSFT", 1)
	testutil.CreateTestCashHolding(t, db, "owner-b", 10, 0)
	svc := NewPortfolioService(db, NewMarketService(newFakeMarketData()))

	owners, err := svc.Owners()
	testutil.AssertNoError(t, err)
	if len(owners) != 2 || owners[0] != "owner-a" || owners[1] != "owner-b" {
		t.Errorf("expected [owner-a owner-b], got %v", owners)
	}
}
