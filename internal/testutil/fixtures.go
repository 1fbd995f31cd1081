package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stonkers/internal/models"
	"stonkers/internal/portfolio"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewOwnerID returns a unique owner identifier.
func NewOwnerID() string {
	return fmt.Sprintf("owner-%d", nextID())
}

// CreateTestHolding stores a stock holding at the given position.
// 10 shares bought at $100.00, now worth $120.00 per share.
func CreateTestHolding(t *testing.T, db *gorm.DB, ownerID, ticker string, position int) *models.Holding {
	t.Helper()

	h := models.NewHolding(ownerID, portfolio.Holding{
		Ticker:       ticker,
		Type:         portfolio.HoldingTypeStock,
		Name:         fmt.Sprintf("%s Inc %d", ticker, nextID()),
		Shares:       10,
		CostBasis:    100,
		CurrentPrice: 120,
		Currency:     "USD",
	}, position)
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return h
}

// CreateTestCashHolding stores the cash holding with the given balance.
func CreateTestCashHolding(t *testing.T, db *gorm.DB, ownerID string, amount float64, position int) *models.Holding {
	t.Helper()

	h := models.NewHolding(ownerID, portfolio.Holding{
		Ticker:       portfolio.CashTicker,
		Type:         portfolio.HoldingTypeCash,
		Name:         portfolio.CashName,
		Shares:       1,
		CostBasis:    amount,
		CurrentPrice: amount,
		Logo:         portfolio.CashLogo,
		Currency:     portfolio.CashCurrency,
	}, position)
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("failed to create test cash holding: %v", err)
	}
	return h
}

// CreateTestSnapshot stores a portfolio snapshot recorded at the given time.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, ownerID string, recordedAt time.Time, totalMarketValue float64) *models.PortfolioSnapshot {
	t.Helper()

	s := &models.PortfolioSnapshot{
		OwnerID:          ownerID,
		RecordedAt:       recordedAt,
		TotalMarketValue: totalMarketValue,
		HoldingCount:     1,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return s
}
