package models

import "time"

// CityMarketStat is an aggregate over published listings in one city,
// split by sale/rental. Aggregates carry no identifying data and are
// readable by everyone, including anonymous visitors.
type CityMarketStat struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	City         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_market_city_kind" json:"city"`
	ForRent      bool      `gorm:"not null;uniqueIndex:idx_market_city_kind" json:"for_rent"`
	ListingCount int64     `gorm:"not null" json:"listing_count"`
	AvgPrice     float64   `gorm:"not null" json:"avg_price"`
	MinPrice     int64     `gorm:"not null" json:"min_price"`
	MaxPrice     int64     `gorm:"not null" json:"max_price"`
	ComputedAt   time.Time `gorm:"type:datetime;not null" json:"computed_at"`
}

func (CityMarketStat) TableName() string {
	return "city_market_stats"
}
