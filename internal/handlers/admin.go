package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"realty-marketplace/internal/cleanup"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/scheduler"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	db             *gorm.DB
	scheduler      *scheduler.Scheduler
	cleanupService *cleanup.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, sched *scheduler.Scheduler) *AdminHandler {
	return &AdminHandler{
		db:             db,
		scheduler:      sched,
		cleanupService: cleanup.NewService(db),
	}
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})

	// Listing counts by status
	var draftCount, publishedCount, archivedCount int64
	h.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusDraft).Count(&draftCount)
	h.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusPublished).Count(&publishedCount)
	h.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusArchived).Count(&archivedCount)

	stats["properties"] = map[string]interface{}{
		"draft":     draftCount,
		"published": publishedCount,
		"archived":  archivedCount,
		"total":     draftCount + publishedCount + archivedCount,
	}

	// Profile counts by role
	var roleCounts []struct {
		Role  string
		Count int64
	}
	h.db.Model(&models.Profile{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&roleCounts)

	roleMap := make(map[string]int64)
	for _, rc := range roleCounts {
		roleMap[rc.Role] = rc.Count
	}
	stats["profiles"] = roleMap

	// Inquiry counts by status
	var statusCounts []struct {
		Status string
		Count  int64
	}
	h.db.Model(&models.Message{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts)

	statusMap := make(map[string]int64)
	for _, sc := range statusCounts {
		statusMap[sc.Status] = sc.Count
	}
	stats["messages"] = statusMap

	// Recent activity (last 24 hours)
	last24h := time.Now().AddDate(0, 0, -1)
	var recentListings, recentMessages, recentSignups int64
	h.db.Model(&models.Property{}).Where("created_at >= ?", last24h).Count(&recentListings)
	h.db.Model(&models.Message{}).Where("created_at >= ?", last24h).Count(&recentMessages)
	h.db.Model(&models.Profile{}).Where("created_at >= ?", last24h).Count(&recentSignups)
	stats["recent_activity"] = map[string]interface{}{
		"listings_last_24h": recentListings,
		"messages_last_24h": recentMessages,
		"signups_last_24h":  recentSignups,
	}

	// Delete logs statistics
	deleteStats, err := h.cleanupService.GetDeleteStats()
	if err != nil {
		log.Printf("Admin: Failed to get delete stats: %v", err)
	} else {
		stats["deletions"] = deleteStats
	}

	c.JSON(http.StatusOK, stats)
}

// GetRecentActivity returns the most recently created listings
func (h *AdminHandler) GetRecentActivity(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, _ := strconv.Atoi(limitStr)

	var properties []models.Property
	err := h.db.Order("created_at DESC").Limit(limit).Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// TriggerMarketAggregation manually recomputes the market aggregates
func (h *AdminHandler) TriggerMarketAggregation(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Scheduler not available",
		})
		return
	}

	log.Println("Admin: Manual market aggregation trigger requested")

	// Run in goroutine to avoid blocking
	go func() {
		if err := h.scheduler.RunMarketNow(); err != nil {
			log.Printf("Admin: Manual market aggregation failed: %v", err)
		} else {
			log.Println("Admin: Manual market aggregation completed successfully")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Market aggregation started",
		"status":  "running",
	})
}

// RunCleanup executes physical deletion of old archived listings
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	var req struct {
		RetentionDays    int  `json:"retention_days"`
		MaxDeletionCount int  `json:"max_deletion_count"`
		DryRun           bool `json:"dry_run"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := cleanup.DefaultConfig()
	if req.RetentionDays > 0 {
		config.RetentionDays = req.RetentionDays
	}
	if req.MaxDeletionCount > 0 {
		config.MaxDeletionCount = req.MaxDeletionCount
	}
	config.DryRun = req.DryRun

	log.Printf("Admin: Running cleanup (retention: %d days, max: %d, dry-run: %v)",
		config.RetentionDays, config.MaxDeletionCount, config.DryRun)

	result, err := h.cleanupService.PhysicallyDelete(config)
	if err != nil {
		log.Printf("Admin: Cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Admin: Cleanup completed: %d/%d deleted (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.DryRun)

	c.JSON(http.StatusOK, result)
}

// GetDeleteLogs returns recent delete log entries
func (h *AdminHandler) GetDeleteLogs(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)

	logs, err := h.cleanupService.GetRecentDeleteLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}

// GetCityStats returns listing counts by city
func (h *AdminHandler) GetCityStats(c *gin.Context) {
	type CityStat struct {
		City  string `json:"city"`
		Count int64  `json:"count"`
	}

	var stats []CityStat
	err := h.db.Model(&models.Property{}).
		Select("city, count(*) as count").
		Where("status = ? AND city IS NOT NULL AND city != ''", models.PropertyStatusPublished).
		Group("city").
		Order("count DESC").
		Limit(20).
		Scan(&stats).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city_stats": stats,
		"count":      len(stats),
	})
}

// GetPriceDistribution returns published listing counts per price band
func (h *AdminHandler) GetPriceDistribution(c *gin.Context) {
	type PriceRange struct {
		RangeLabel string `json:"range_label"`
		MinPrice   int64  `json:"min_price"`
		MaxPrice   int64  `json:"max_price"`
		Count      int64  `json:"count"`
	}

	ranges := []PriceRange{
		{RangeLabel: "under 100k", MinPrice: 0, MaxPrice: 100_000},
		{RangeLabel: "100k-250k", MinPrice: 100_000, MaxPrice: 250_000},
		{RangeLabel: "250k-500k", MinPrice: 250_000, MaxPrice: 500_000},
		{RangeLabel: "500k-1m", MinPrice: 500_000, MaxPrice: 1_000_000},
		{RangeLabel: "over 1m", MinPrice: 1_000_000, MaxPrice: 1_000_000_000},
	}

	for i := range ranges {
		var count int64
		h.db.Model(&models.Property{}).
			Where("status = ? AND price >= ? AND price < ?",
				models.PropertyStatusPublished, ranges[i].MinPrice, ranges[i].MaxPrice).
			Count(&count)
		ranges[i].Count = count
	}

	c.JSON(http.StatusOK, gin.H{
		"price_distribution": ranges,
	})
}
