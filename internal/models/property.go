package models

import "time"

type Property struct {
	ID          string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	AgentID     string   `gorm:"type:varchar(36);not null;index" json:"agent_id"`
	Title       string   `gorm:"type:varchar(200);not null" json:"title"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Price       int64    `gorm:"not null" json:"price"`
	Currency    string   `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	ForRent     bool     `gorm:"not null;default:false;index" json:"for_rent"`
	Beds        int      `gorm:"not null;default:0" json:"beds"`
	Baths       int      `gorm:"not null;default:0" json:"baths"`
	AreaSqft    *int     `json:"area_sqft,omitempty"`
	Address     string   `gorm:"type:text" json:"address,omitempty"`
	City        string   `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Region      string   `gorm:"type:varchar(100)" json:"region,omitempty"`
	Latitude    *float64 `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	Longitude   *float64 `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`

	Status     PropertyStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ArchivedAt *time.Time     `gorm:"type:datetime" json:"archived_at,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// PropertyStatus is the listing lifecycle state. Only published
// listings are visible to anyone other than the owning agent.
type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusPublished PropertyStatus = "published"
	PropertyStatusArchived  PropertyStatus = "archived"
)

func (Property) TableName() string {
	return "properties"
}

// IsPublished reports whether the listing is publicly visible.
func (p *Property) IsPublished() bool {
	return p.Status == PropertyStatusPublished
}

// MarkArchived takes the listing out of public view.
func (p *Property) MarkArchived() {
	p.Status = PropertyStatusArchived
	now := time.Now()
	p.ArchivedAt = &now
}
