package models

import "time"

// PropertyPhoto is one stored image of a listing. The thumb and medium
// paths are derived names written by the (external) resizing pipeline;
// this service only records them. Ordering controls display order and
// is not required to be contiguous.
type PropertyPhoto struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID  string    `gorm:"type:varchar(36);not null;index" json:"property_id"`
	StoragePath string    `gorm:"type:varchar(500);not null" json:"storage_path"`
	ThumbPath   string    `gorm:"type:varchar(500)" json:"thumb_path,omitempty"`
	MedPath     string    `gorm:"type:varchar(500)" json:"med_path,omitempty"`
	Ordering    int       `gorm:"not null;default:0" json:"ordering"`
	CreatedAt   time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (PropertyPhoto) TableName() string {
	return "property_photos"
}
