package models

import "time"

// DeleteLog records every physical deletion of a listing, whether an
// agent deleted it or the retention cleanup purged it.
type DeleteLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"property_id"`
	AgentID    string    `gorm:"type:varchar(36);not null" json:"agent_id"`
	Title      string    `gorm:"type:varchar(200)" json:"title"`
	Reason     string    `gorm:"type:varchar(50);not null" json:"reason"`
	DeletedAt  time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"deleted_at"`
}

func (DeleteLog) TableName() string {
	return "delete_logs"
}

// Delete reasons.
const (
	DeleteReasonOwner   = "owner_request"
	DeleteReasonExpired = "retention_expired"
)
