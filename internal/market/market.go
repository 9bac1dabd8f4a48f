// Package market computes the public per-city aggregates over
// published listings. The aggregates carry no identifying data, so
// they sit outside row-level policy: anyone, including anonymous
// visitors, may read them.
package market

import (
	"log"
	"time"

	"realty-marketplace/internal/models"

	"gorm.io/gorm"
)

// Service recomputes and serves city market statistics.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Recompute rebuilds the aggregates from published listings with a
// non-empty city. Cities that no longer have published listings are
// removed, so stale aggregates cannot describe invisible inventory.
func (s *Service) Recompute() error {
	type row struct {
		City         string
		ForRent      bool
		ListingCount int64
		AvgPrice     float64
		MinPrice     int64
		MaxPrice     int64
	}

	var rows []row
	err := s.db.Model(&models.Property{}).
		Select("city, for_rent, count(*) as listing_count, avg(price) as avg_price, min(price) as min_price, max(price) as max_price").
		Where("status = ? AND city != ''", models.PropertyStatusPublished).
		Group("city, for_rent").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	now := recomputeTime()

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			stat := models.CityMarketStat{
				City:         r.City,
				ForRent:      r.ForRent,
				ListingCount: r.ListingCount,
				AvgPrice:     r.AvgPrice,
				MinPrice:     r.MinPrice,
				MaxPrice:     r.MaxPrice,
				ComputedAt:   now,
			}

			var existing models.CityMarketStat
			result := tx.Where("city = ? AND for_rent = ?", r.City, r.ForRent).First(&existing)
			if result.Error == gorm.ErrRecordNotFound {
				if err := tx.Create(&stat).Error; err != nil {
					return err
				}
				continue
			} else if result.Error != nil {
				return result.Error
			}

			stat.ID = existing.ID
			if err := tx.Save(&stat).Error; err != nil {
				return err
			}
		}

		// Drop aggregates for city/kind pairs that lost all published
		// listings in this cycle.
		if err := tx.Where("computed_at < ?", now).Delete(&models.CityMarketStat{}).Error; err != nil {
			return err
		}

		log.Printf("Market: Recomputed %d city aggregates", len(rows))
		return nil
	})
}

// recomputeTime returns the timestamp stamped on this run's rows. The
// computed_at column is a DATETIME holding whole seconds, so the value
// is truncated up front: a stored row compares equal to it in the
// stale sweep, never less, and survives its own run.
func recomputeTime() time.Time {
	return time.Now().Truncate(time.Second)
}

// Stats returns the current aggregates, optionally narrowed to one
// city.
func (s *Service) Stats(city string) ([]models.CityMarketStat, error) {
	tx := s.db.Order("city ASC, for_rent ASC")
	if city != "" {
		tx = tx.Where("city = ?", city)
	}

	var stats []models.CityMarketStat
	err := tx.Find(&stats).Error
	return stats, err
}
