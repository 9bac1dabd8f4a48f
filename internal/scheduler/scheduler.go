package scheduler

import (
	"fmt"
	"log"

	"realty-marketplace/internal/cleanup"
	"realty-marketplace/internal/config"
	"realty-marketplace/internal/market"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the nightly maintenance jobs: market aggregation and,
// when enabled, the archived-listing purge.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	market    *market.Service
	cleanup   *cleanup.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(db *gorm.DB, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		db:      db,
		market:  market.NewService(db),
		cleanup: cleanup.NewService(db),
		config:  cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if s.config.Market.DailyRunEnabled {
		cronSpec := parseDailyRunTime(s.config.Market.DailyRunTime)

		_, err := s.cron.AddFunc(cronSpec, func() {
			log.Println("Scheduler: Starting market aggregation job...")
			if err := s.market.Recompute(); err != nil {
				log.Printf("Scheduler: Market aggregation failed: %v", err)
			} else {
				log.Println("Scheduler: Market aggregation completed successfully")
			}
		})
		if err != nil {
			return err
		}
		log.Printf("Scheduler: Market aggregation scheduled at %s (cron: %s)", s.config.Market.DailyRunTime, cronSpec)
	} else {
		log.Println("Scheduler: Market aggregation daily run is disabled in configuration")
	}

	if s.config.Cleanup.DailyRunEnabled {
		// Purge runs an hour after aggregation to keep the jobs apart.
		_, err := s.cron.AddFunc("0 4 * * *", func() {
			log.Println("Scheduler: Starting retention cleanup job...")
			cfg := cleanup.DefaultConfig()
			cfg.RetentionDays = s.config.Cleanup.RetentionDays
			cfg.MaxDeletionCount = s.config.Cleanup.MaxDeletionCount

			result, err := s.cleanup.PhysicallyDelete(cfg)
			if err != nil {
				log.Printf("Scheduler: Retention cleanup failed: %v", err)
				return
			}
			log.Printf("Scheduler: Retention cleanup completed: %d/%d deleted",
				result.DeletedCount, result.TargetCount)
		})
		if err != nil {
			return err
		}
		log.Println("Scheduler: Retention cleanup scheduled at 04:00")
	}

	s.cron.Start()
	s.isRunning = true

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunMarketNow immediately executes the market aggregation job (for
// manual trigger).
func (s *Scheduler) RunMarketNow() error {
	log.Println("Scheduler: Manual trigger - starting market aggregation...")
	return s.market.Recompute()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "03:00" -> "0 3 * * *" (run at 3:00 AM every day)
func parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to 3:00 AM if parsing fails
	log.Printf("Scheduler: Failed to parse time '%s', using default 03:00", timeStr)
	return "0 3 * * *"
}
