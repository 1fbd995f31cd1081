package models

// AuditLog records portfolio mutations per owner.
type AuditLog struct {
	Base
	OwnerID      string `gorm:"not null;index" json:"owner_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
