package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"realty-marketplace/internal/models"
	"realty-marketplace/internal/search"

	"gorm.io/gorm"
)

// IndexWorker drains search_index_queue, pushing publish/update events
// into Meilisearch and removals out of it. Syncs retry with backoff so
// a search outage delays indexing instead of losing writes.
type IndexWorker struct {
	db           *gorm.DB
	search       *search.SearchClient
	stopChan     chan struct{}
	pollInterval time.Duration

	// mu guards isRunning; stats requests read it from other goroutines.
	mu        sync.Mutex
	isRunning bool
}

// NewIndexWorker creates a new index worker
func NewIndexWorker(db *gorm.DB, searchClient *search.SearchClient) *IndexWorker {
	return &IndexWorker{
		db:           db,
		search:       searchClient,
		stopChan:     make(chan struct{}),
		pollInterval: 10 * time.Second,
	}
}

// Start starts the index worker
func (w *IndexWorker) Start() {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		log.Println("IndexWorker: Already running")
		return
	}
	w.isRunning = true
	w.mu.Unlock()

	log.Printf("IndexWorker: Started (poll_interval=%v)", w.pollInterval)

	go w.run()
}

// Stop stops the index worker
func (w *IndexWorker) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	w.mu.Unlock()

	log.Println("IndexWorker: Stopping...")
	close(w.stopChan)
}

// Running reports whether the worker loop is active.
func (w *IndexWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// run is the main worker loop
func (w *IndexWorker) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("IndexWorker: Stopped")
			return
		case <-ticker.C:
			w.processNext()
		}
	}
}

// processNext picks the oldest runnable queue item and syncs it.
func (w *IndexWorker) processNext() {
	var item models.SearchIndexQueue
	now := time.Now()

	// Pending items first, then failed items whose retry time passed.
	result := w.db.Where("status = ?", models.QueueStatusPending).
		Order("created_at ASC").
		First(&item)

	if result.Error == gorm.ErrRecordNotFound {
		result = w.db.Where("status = ? AND attempts < ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?",
			models.QueueStatusFailed, models.MaxIndexAttempts, now).
			Order("created_at ASC").
			First(&item)
	}

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			log.Printf("IndexWorker: Error fetching next queue item: %v", result.Error)
		}
		return
	}

	w.processItem(&item)
}

// processItem syncs a single queue item to the search index.
func (w *IndexWorker) processItem(item *models.SearchIndexQueue) {
	log.Printf("IndexWorker: Processing id=%d property_id=%s op=%s attempt=%d",
		item.ID, item.PropertyID, item.Op, item.Attempts+1)

	item.Status = models.QueueStatusProcessing
	item.Attempts++
	if err := w.db.Save(item).Error; err != nil {
		log.Printf("IndexWorker: Failed to update status to processing: %v", err)
		return
	}

	var err error
	switch item.Op {
	case models.IndexOpDelete:
		err = w.search.RemoveProperty(item.PropertyID)
	case models.IndexOpIndex:
		err = w.syncProperty(item.PropertyID)
	default:
		err = fmt.Errorf("unknown op %q", item.Op)
	}

	if err != nil {
		w.handleSyncError(item, err)
		return
	}

	item.Status = models.QueueStatusDone
	item.LastError = ""
	completedAt := time.Now()
	item.CompletedAt = &completedAt
	item.NextRetryAt = nil

	if err := w.db.Save(item).Error; err != nil {
		log.Printf("IndexWorker: Failed to mark item as done: %v", err)
	} else {
		log.Printf("IndexWorker: Completed id=%d property_id=%s op=%s", item.ID, item.PropertyID, item.Op)
	}
}

// syncProperty pushes the listing's current row into the index, or
// removes it if the listing has meanwhile left public visibility. The
// row is re-read at sync time so the index always reflects the latest
// committed state, not the state when the event was queued.
func (w *IndexWorker) syncProperty(propertyID string) error {
	var p models.Property
	result := w.db.Where("id = ?", propertyID).First(&p)

	if result.Error == gorm.ErrRecordNotFound {
		return w.search.RemoveProperty(propertyID)
	}
	if result.Error != nil {
		return result.Error
	}

	if !p.IsPublished() {
		return w.search.RemoveProperty(propertyID)
	}
	return w.search.IndexProperty(&p)
}

// handleSyncError schedules a retry with backoff or parks the item as
// failed after the attempt budget is spent.
func (w *IndexWorker) handleSyncError(item *models.SearchIndexQueue, err error) {
	log.Printf("IndexWorker: Sync failed for id=%d: %v", item.ID, err)

	item.Status = models.QueueStatusFailed
	item.LastError = err.Error()

	if item.Attempts >= models.MaxIndexAttempts {
		log.Printf("IndexWorker: Max attempts exceeded for id=%d (%d attempts)", item.ID, item.Attempts)
		completedAt := time.Now()
		item.CompletedAt = &completedAt
		item.NextRetryAt = nil
	} else {
		delay := models.NextIndexRetryDelay(item.Attempts - 1)
		nextRetry := time.Now().Add(delay)
		item.NextRetryAt = &nextRetry
		log.Printf("IndexWorker: Scheduling retry for id=%d in %v (attempt %d/%d)",
			item.ID, delay, item.Attempts, models.MaxIndexAttempts)
	}

	if err := w.db.Save(item).Error; err != nil {
		log.Printf("IndexWorker: Failed to save retry status: %v", err)
	}
}

// GetQueueStats returns current queue statistics
func (w *IndexWorker) GetQueueStats() map[string]interface{} {
	var stats struct {
		Pending    int64
		Processing int64
		Done       int64
		Failed     int64
	}

	w.db.Model(&models.SearchIndexQueue{}).Where("status = ?", models.QueueStatusPending).Count(&stats.Pending)
	w.db.Model(&models.SearchIndexQueue{}).Where("status = ?", models.QueueStatusProcessing).Count(&stats.Processing)
	w.db.Model(&models.SearchIndexQueue{}).Where("status = ?", models.QueueStatusDone).Count(&stats.Done)
	w.db.Model(&models.SearchIndexQueue{}).Where("status = ?", models.QueueStatusFailed).Count(&stats.Failed)

	return map[string]interface{}{
		"pending":    stats.Pending,
		"processing": stats.Processing,
		"done":       stats.Done,
		"failed":     stats.Failed,
		"is_running": w.Running(),
	}
}
