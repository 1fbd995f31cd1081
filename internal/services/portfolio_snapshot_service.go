package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "stonkers/internal/errors"
	"stonkers/internal/models"
	"stonkers/internal/numeric"
	"stonkers/internal/pagination"
	"stonkers/internal/portfolio"
)

// portfolioSnapshotService handles portfolio snapshot operations.
type portfolioSnapshotService struct {
	db *gorm.DB
}

// NewPortfolioSnapshotService creates a new PortfolioSnapshotServicer.
func NewPortfolioSnapshotService(db *gorm.DB) PortfolioSnapshotServicer {
	return &portfolioSnapshotService{db: db}
}

// ComputeAndRecordSnapshots computes and stores a totals snapshot for every
// owner with holdings.
func (s *portfolioSnapshotService) ComputeAndRecordSnapshots(recordedAt time.Time) (int, error) {
	var ownerIDs []string
	if err := s.db.Model(&models.Holding{}).
		Distinct("owner_id").
		Pluck("owner_id", &ownerIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, ownerID := range ownerIDs {
		snapshot, err := s.computeSnapshot(ownerID, recordedAt)
		if err != nil {
			return count, err
		}

		// Upsert: check for existing snapshot at same owner+time
		var existing models.PortfolioSnapshot
		result := s.db.Where("owner_id = ? AND recorded_at = ?", ownerID, recordedAt).First(&existing)
		if result.Error == nil {
			if err := s.db.Model(&existing).Updates(map[string]interface{}{
				"total_market_value": snapshot.TotalMarketValue,
				"total_gain_loss":    snapshot.TotalGainLoss,
				"cash_position":      snapshot.CashPosition,
				"holding_count":      snapshot.HoldingCount,
			}).Error; err != nil {
				return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		} else {
			if err := s.db.Create(snapshot).Error; err != nil {
				return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		count++
	}

	return count, nil
}

// computeSnapshot summarizes an owner's stored holdings, rounded to cents.
func (s *portfolioSnapshotService) computeSnapshot(ownerID string, recordedAt time.Time) (*models.PortfolioSnapshot, error) {
	var rows []models.Holding
	if err := s.db.Where("owner_id = ?", ownerID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holdings := make([]portfolio.Holding, len(rows))
	for i := range rows {
		holdings[i] = rows[i].ToDomain()
	}
	summary := portfolio.Summarize(holdings)

	return &models.PortfolioSnapshot{
		OwnerID:          ownerID,
		RecordedAt:       recordedAt,
		TotalMarketValue: numeric.SafeRoundToDecimal(summary.TotalMarketValue, 2),
		TotalGainLoss:    numeric.SafeRoundToDecimal(summary.TotalGainLoss, 2),
		CashPosition:     numeric.SafeRoundToDecimal(summary.TotalCashPosition, 2),
		HoldingCount:     summary.HoldingCount,
	}, nil
}

// GetSnapshots returns paginated snapshots for an owner within a date range.
func (s *portfolioSnapshotService) GetSnapshots(
	ownerID string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.PortfolioSnapshot], error) {
	page.Defaults()
	if to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}

	var totalItems int64
	base := s.db.Model(&models.PortfolioSnapshot{}).
		Where("owner_id = ? AND recorded_at >= ? AND recorded_at <= ?", ownerID, from, to)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PortfolioSnapshot
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
