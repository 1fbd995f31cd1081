package services

import (
	"encoding/json"

	"stonkers/internal/logger"
	"stonkers/internal/models"

	"gorm.io/gorm"
)

// Audit actions recorded by the portfolio handlers.
const (
	AuditActionAddStock       = "ADD_STOCK"
	AuditActionAddCash        = "ADD_CASH"
	AuditActionUpdateHolding  = "UPDATE_HOLDING"
	AuditActionRemoveHolding  = "REMOVE_HOLDING"
	AuditActionReorderHolding = "REORDER_HOLDING"
	AuditActionRefreshQuotes  = "REFRESH_QUOTES"
	AuditActionSnapshots      = "COMPUTE_SNAPSHOTS"

	AuditResourceHolding   = "holding"
	AuditResourcePortfolio = "portfolio"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(ownerID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		OwnerID:      ownerID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"owner_id", ownerID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
