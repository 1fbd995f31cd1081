package models

import "stonkers/internal/portfolio"

// Holding is the persisted form of one portfolio line item. Position keeps
// the owner's manual order.
type Holding struct {
	Base
	OwnerID      string                `gorm:"not null;uniqueIndex:idx_holdings_owner_ticker" json:"owner_id"`
	Ticker       string                `gorm:"not null;uniqueIndex:idx_holdings_owner_ticker" json:"ticker"`
	Type         portfolio.HoldingType `gorm:"type:varchar(10);not null" json:"type"`
	Name         string                `gorm:"not null" json:"name"`
	Shares       float64               `gorm:"not null;default:0" json:"shares"`
	CostBasis    float64               `gorm:"not null;default:0" json:"cost_basis"`
	CurrentPrice float64               `gorm:"not null;default:0" json:"current_price"`
	Logo         string                `json:"logo"`
	Exchange     string                `json:"exchange"`
	Industry     string                `json:"industry"`
	Currency     string                `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Position     int                   `gorm:"not null;default:0" json:"position"`
}

// ToDomain converts the row to a ledger holding.
func (h *Holding) ToDomain() portfolio.Holding {
	return portfolio.Holding{
		Ticker:       h.Ticker,
		Type:         h.Type,
		Name:         h.Name,
		Shares:       h.Shares,
		CostBasis:    h.CostBasis,
		CurrentPrice: h.CurrentPrice,
		Logo:         h.Logo,
		Exchange:     h.Exchange,
		Industry:     h.Industry,
		Currency:     h.Currency,
	}
}

// NewHolding builds the row for a ledger holding at the given position.
func NewHolding(ownerID string, h portfolio.Holding, position int) *Holding {
	return &Holding{
		OwnerID:      ownerID,
		Ticker:       h.Ticker,
		Type:         h.Type,
		Name:         h.Name,
		Shares:       h.Shares,
		CostBasis:    h.CostBasis,
		CurrentPrice: h.CurrentPrice,
		Logo:         h.Logo,
		Exchange:     h.Exchange,
		Industry:     h.Industry,
		Currency:     h.Currency,
		Position:     position,
	}
}
