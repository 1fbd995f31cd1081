package services

import (
	"context"
	"math"
	"sort"
	"sync"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/logger"
	"stonkers/internal/models"
	"stonkers/internal/numeric"
	"stonkers/internal/portfolio"

	"gorm.io/gorm"
)

// defaultMaxSessions caps the number of idle ledgers kept in memory.
const defaultMaxSessions = 1024

// session is the in-memory ledger of one owner. mu serializes every read
// and write of the ledger, including the persist that follows a mutation.
// refs counts callers that acquired the session and is guarded by the
// service mutex.
type session struct {
	mu     sync.Mutex
	ledger *portfolio.Ledger
	refs   int
}

// portfolioService manages owner-scoped ledgers backed by the holdings table.
type portfolioService struct {
	db     *gorm.DB
	market MarketServicer

	mu          sync.Mutex
	sessions    map[string]*session
	maxSessions int
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, market MarketServicer) PortfolioServicer {
	return &portfolioService{
		db:          db,
		market:      market,
		sessions:    make(map[string]*session),
		maxSessions: defaultMaxSessions,
	}
}

// GetPortfolio renders the owner's holdings in the requested sort order.
func (s *portfolioService) GetPortfolio(ownerID string, state portfolio.SortState) (*PortfolioView, error) {
	var holdings []portfolio.Holding
	err := s.read(ownerID, func(l *portfolio.Ledger) {
		holdings = l.Holdings()
	})
	if err != nil {
		return nil, err
	}

	if state.Direction == "" {
		state.Direction = portfolio.SortNone
	}
	return &PortfolioView{
		Holdings: portfolio.View(holdings, state),
		Chart:    portfolio.View(portfolio.ChartView(holdings), portfolio.SortState{}),
		Summary:  portfolio.Summarize(holdings),
		Sort:     state,
	}, nil
}

// AddStock resolves symbol and opens or tops up the position.
func (s *portfolioService) AddStock(ctx context.Context, ownerID, symbol string, shares, avgPrice float64) (*portfolio.Holding, error) {
	if !(shares > 0) || math.IsInf(shares, 0) {
		return nil, apperrors.ErrInvalidQuantity
	}
	if !(avgPrice > 0) || math.IsInf(avgPrice, 0) {
		return nil, apperrors.ErrInvalidPrice
	}
	sym, ok := numeric.SanitizeStockSymbol(symbol)
	if !ok {
		return nil, apperrors.ErrInvalidSymbol
	}
	if sym == portfolio.CashTicker {
		return nil, apperrors.ErrReservedTicker
	}

	found, err := s.market.LookupStock(ctx, sym)
	if err != nil {
		return nil, err
	}
	if found.Ticker != sym {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound,
			"No exact match for "+sym+", closest is "+found.Ticker)
	}

	var result portfolio.Holding
	err = s.mutate(ownerID, func(l *portfolio.Ledger) error {
		if err := l.AddStock(*found, shares, avgPrice); err != nil {
			return err
		}
		result, _ = l.Get(found.Ticker)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AddCash deposits amount into the owner's cash position.
func (s *portfolioService) AddCash(ownerID string, amount float64) (*portfolio.Holding, error) {
	var result portfolio.Holding
	err := s.mutate(ownerID, func(l *portfolio.Ledger) error {
		if err := l.AddCash(amount); err != nil {
			return err
		}
		result, _ = l.Get(portfolio.CashTicker)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateHolding overwrites shares and cost basis of an existing holding.
func (s *portfolioService) UpdateHolding(ownerID, ticker string, shares, costBasis float64) (*portfolio.Holding, error) {
	var result portfolio.Holding
	err := s.mutate(ownerID, func(l *portfolio.Ledger) error {
		if err := l.UpdateHolding(ticker, shares, costBasis); err != nil {
			return err
		}
		result, _ = l.Get(ticker)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveHolding deletes a holding. Removing an absent ticker succeeds.
func (s *portfolioService) RemoveHolding(ownerID, ticker string) error {
	return s.mutate(ownerID, func(l *portfolio.Ledger) error {
		l.Remove(ticker)
		return nil
	})
}

// ReorderHolding moves the holding at index from to index to.
func (s *portfolioService) ReorderHolding(ownerID string, from, to int) error {
	return s.mutate(ownerID, func(l *portfolio.Ledger) error {
		return l.Reorder(from, to)
	})
}

// RefreshQuotes fetches a fresh price for every stock holding concurrently.
// A ticker whose quote fails keeps its previous price and is reported in
// the result.
func (s *portfolioService) RefreshQuotes(ctx context.Context, ownerID string) (*RefreshResult, error) {
	var tickers []string
	err := s.read(ownerID, func(l *portfolio.Ledger) {
		for _, h := range l.Holdings() {
			if !h.IsCash() {
				tickers = append(tickers, h.Ticker)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{Updated: []string{}, Failed: map[string]string{}}
	if len(tickers) == 0 {
		return result, nil
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		prices = make(map[string]float64, len(tickers))
	)
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			price, err := s.market.CurrentPrice(ctx, ticker)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[ticker] = err.Error()
				return
			}
			prices[ticker] = price
		}(ticker)
	}
	wg.Wait()

	if len(prices) == 0 {
		return result, nil
	}

	err = s.mutate(ownerID, func(l *portfolio.Ledger) error {
		for ticker, price := range prices {
			if err := l.UpdatePrice(ticker, price); err != nil {
				result.Failed[ticker] = err.Error()
				continue
			}
			result.Updated = append(result.Updated, ticker)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.Updated)
	if len(result.Failed) > 0 {
		logger.Get().Warnw("quote refresh incomplete",
			"owner_id", ownerID,
			"updated", len(result.Updated),
			"failed", len(result.Failed),
		)
	}
	return result, nil
}

// Owners lists every owner with at least one stored holding.
func (s *portfolioService) Owners() ([]string, error) {
	var owners []string
	if err := s.db.Model(&models.Holding{}).
		Distinct("owner_id").
		Order("owner_id").
		Pluck("owner_id", &owners).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return owners, nil
}

// read runs fn against the owner's ledger while holding the session lock.
func (s *portfolioService) read(ownerID string, fn func(l *portfolio.Ledger)) error {
	sess, err := s.session(ownerID)
	if err != nil {
		return err
	}
	defer s.release(ownerID, sess)

	fn(sess.ledger)
	return nil
}

// mutate applies fn to the owner's ledger and persists the result. If fn
// fails or the holdings cannot be stored, the ledger is restored to its
// state before the call.
func (s *portfolioService) mutate(ownerID string, fn func(l *portfolio.Ledger) error) error {
	sess, err := s.session(ownerID)
	if err != nil {
		return err
	}
	defer s.release(ownerID, sess)

	snap := sess.ledger.Snapshot()
	if err := fn(sess.ledger); err != nil {
		sess.ledger.Restore(snap)
		return apperrors.FromLedgerError(err)
	}

	if err := s.persist(ownerID, sess.ledger.Holdings()); err != nil {
		sess.ledger.Restore(snap)
		logger.Get().Errorw("failed to persist holdings, rolled back",
			"owner_id", ownerID,
			"error", err,
		)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// session returns the owner's session with its lock held, loading the
// ledger from the database on first use. Callers must hand it back with
// release.
func (s *portfolioService) session(ownerID string) (*session, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	s.mu.Lock()
	sess, ok := s.sessions[ownerID]
	if !ok {
		sess = &session{}
		s.sessions[ownerID] = sess
	}
	sess.refs++
	s.mu.Unlock()

	sess.mu.Lock()
	if sess.ledger == nil {
		ledger, err := s.load(ownerID)
		if err != nil {
			s.release(ownerID, sess)
			return nil, err
		}
		sess.ledger = ledger
	}
	return sess, nil
}

// release unlocks sess and drops it from memory once nobody holds it and
// the service is over its session cap. Every mutation is persisted before
// release, so an evicted ledger is reloaded intact on next use.
func (s *portfolioService) release(ownerID string, sess *session) {
	sess.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.refs--
	if sess.refs == 0 && (sess.ledger == nil || len(s.sessions) > s.maxSessions) {
		delete(s.sessions, ownerID)
	}
}

func (s *portfolioService) load(ownerID string) (*portfolio.Ledger, error) {
	var rows []models.Holding
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holdings := make([]portfolio.Holding, len(rows))
	for i := range rows {
		holdings[i] = rows[i].ToDomain()
	}
	ledger, err := portfolio.NewLedger(holdings...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ledger, nil
}

// persist replaces the owner's stored holdings with holdings, in order.
func (s *portfolioService) persist(ownerID string, holdings []portfolio.Holding) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("owner_id = ?", ownerID).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		if len(holdings) == 0 {
			return nil
		}
		rows := make([]*models.Holding, len(holdings))
		for i, h := range holdings {
			rows[i] = models.NewHolding(ownerID, h, i)
		}
		return tx.Create(&rows).Error
	})
}
