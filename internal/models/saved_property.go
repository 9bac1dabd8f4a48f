package models

import "time"

// SavedProperty bookmarks a listing for a user. The (user_id,
// property_id) pair is unique: saving twice is a no-op, and two
// concurrent saves resolve to a single row via the unique index.
type SavedProperty struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_user_property" json:"user_id"`
	PropertyID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_user_property" json:"property_id"`
	CreatedAt  time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (SavedProperty) TableName() string {
	return "saved_properties"
}
