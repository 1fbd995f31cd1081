package models

import (
	"time"

	"gorm.io/gorm"
)

// PortfolioSnapshot is a point-in-time record of an owner's portfolio totals.
// This is immutable time-series data, so there is no Base embed and no soft deletes.
type PortfolioSnapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          string    `gorm:"not null;uniqueIndex:idx_snapshots_owner_recorded" json:"owner_id"`
	RecordedAt       time.Time `gorm:"not null;uniqueIndex:idx_snapshots_owner_recorded" json:"recorded_at"`
	TotalMarketValue float64   `gorm:"not null" json:"total_market_value"`
	TotalGainLoss    float64   `gorm:"not null" json:"total_gain_loss"`
	CashPosition     float64   `gorm:"not null" json:"cash_position"`
	HoldingCount     int       `gorm:"not null" json:"holding_count"`
}

// BeforeCreate hook assigns a time-ordered ID to new records
func (p *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}
