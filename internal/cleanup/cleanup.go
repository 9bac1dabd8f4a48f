package cleanup

import (
	"fmt"
	"log"
	"time"

	"realty-marketplace/internal/models"

	"gorm.io/gorm"
)

// Service handles physical deletion of listings archived long enough
// ago. Deletion honors the cascade contract: photos, saves, messages,
// and pending index work go with the listing, in one transaction per
// row.
type Service struct {
	db *gorm.DB
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Config holds configuration for cleanup operations
type Config struct {
	RetentionDays    int  // Days to keep archived listings before physical deletion
	MaxDeletionCount int  // Maximum number of listings to delete in one run (safety limit)
	DryRun           bool // If true, only log what would be deleted without actually deleting
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RetentionDays:    90,
		MaxDeletionCount: 1000,
		DryRun:           false,
	}
}

// Result holds the result of a cleanup operation
type Result struct {
	TargetCount     int       `json:"target_count"`
	DeletedCount    int       `json:"deleted_count"`
	ErrorCount      int       `json:"error_count"`
	DryRun          bool      `json:"dry_run"`
	ExecutedAt      time.Time `json:"executed_at"`
	DeletedListings []string  `json:"deleted_listings"`
	Errors          []string  `json:"errors,omitempty"`
}

// FindExpiredListings finds archived listings older than the retention
// window.
func (s *Service) FindExpiredListings(retentionDays int) ([]models.Property, error) {
	var properties []models.Property

	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	err := s.db.Where("status = ? AND archived_at < ?",
		models.PropertyStatusArchived,
		cutoffDate,
	).Find(&properties).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find expired listings: %w", err)
	}

	log.Printf("Cleanup: Found %d listings archived before %s", len(properties), cutoffDate.Format("2006-01-02"))
	return properties, nil
}

// PhysicallyDelete purges expired archived listings with their
// dependent rows.
func (s *Service) PhysicallyDelete(config Config) (*Result, error) {
	result := &Result{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	expired, err := s.FindExpiredListings(config.RetentionDays)
	if err != nil {
		return nil, err
	}

	result.TargetCount = len(expired)

	if result.TargetCount == 0 {
		log.Println("Cleanup: No expired listings found for deletion")
		return result, nil
	}

	// Safety check: abort if too many listings would be deleted
	if result.TargetCount > config.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d listings exceed max deletion limit of %d",
			result.TargetCount, config.MaxDeletionCount)
	}

	log.Printf("Cleanup: Starting: %d listings to delete (retention: %d days, dry-run: %v)",
		result.TargetCount, config.RetentionDays, config.DryRun)

	for _, prop := range expired {
		if config.DryRun {
			log.Printf("Cleanup: [DRY-RUN] Would delete listing %s (Title: %s, ArchivedAt: %s)",
				prop.ID, prop.Title, prop.ArchivedAt.Format("2006-01-02"))
			result.DeletedListings = append(result.DeletedListings, prop.ID)
			result.DeletedCount++
			continue
		}

		prop := prop
		err := s.db.Transaction(func(tx *gorm.DB) error {
			deleteLog := models.DeleteLog{
				PropertyID: prop.ID,
				AgentID:    prop.AgentID,
				Title:      prop.Title,
				Reason:     models.DeleteReasonExpired,
			}
			if err := tx.Create(&deleteLog).Error; err != nil {
				return err
			}

			if err := tx.Where("property_id = ?", prop.ID).Delete(&models.PropertyPhoto{}).Error; err != nil {
				return err
			}
			if err := tx.Where("property_id = ?", prop.ID).Delete(&models.SavedProperty{}).Error; err != nil {
				return err
			}
			if err := tx.Where("property_id = ?", prop.ID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Where("property_id = ?", prop.ID).Delete(&models.SearchIndexQueue{}).Error; err != nil {
				return err
			}

			return tx.Delete(&prop).Error
		})

		if err != nil {
			errMsg := fmt.Sprintf("Failed to delete listing %s: %v", prop.ID, err)
			log.Printf("Cleanup: ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		log.Printf("Cleanup: Physically deleted listing %s (Title: %s)", prop.ID, prop.Title)
		result.DeletedListings = append(result.DeletedListings, prop.ID)
		result.DeletedCount++
	}

	log.Printf("Cleanup: Completed: %d/%d deleted, %d errors (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.ErrorCount, config.DryRun)

	return result, nil
}

// GetDeleteStats returns statistics about deleted listings
func (s *Service) GetDeleteStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalDeleted int64
	if err := s.db.Model(&models.DeleteLog{}).Count(&totalDeleted).Error; err != nil {
		return nil, err
	}
	stats["total_deleted"] = totalDeleted

	var reasonCounts []struct {
		Reason string
		Count  int64
	}
	if err := s.db.Model(&models.DeleteLog{}).
		Select("reason, count(*) as count").
		Group("reason").
		Scan(&reasonCounts).Error; err != nil {
		return nil, err
	}

	reasonMap := make(map[string]int64)
	for _, rc := range reasonCounts {
		reasonMap[rc.Reason] = rc.Count
	}
	stats["by_reason"] = reasonMap

	var recentDeleted int64
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if err := s.db.Model(&models.DeleteLog{}).
		Where("deleted_at >= ?", thirtyDaysAgo).
		Count(&recentDeleted).Error; err != nil {
		return nil, err
	}
	stats["deleted_last_30_days"] = recentDeleted

	var currentArchived int64
	if err := s.db.Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusArchived).
		Count(&currentArchived).Error; err != nil {
		return nil, err
	}
	stats["currently_archived"] = currentArchived

	return stats, nil
}

// GetRecentDeleteLogs returns recent delete log entries
func (s *Service) GetRecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	var logs []models.DeleteLog
	err := s.db.Order("deleted_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
