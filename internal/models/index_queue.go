package models

import (
	"time"
)

// SearchIndexQueue defers search-index updates so that a slow or
// unreachable Meilisearch never blocks a listing write. One row per
// pending sync; the worker drains them in order with bounded retries.
type SearchIndexQueue struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID  string     `gorm:"type:varchar(36);not null;index:idx_index_queue_property" json:"property_id"`
	Op          string     `gorm:"type:varchar(20);not null" json:"op"` // index, delete
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_index_queue_status" json:"status"`
	Attempts    int        `gorm:"default:0" json:"attempts"`
	LastError   string     `gorm:"type:text" json:"last_error,omitempty"`
	NextRetryAt *time.Time `gorm:"index:idx_index_queue_retry" json:"next_retry_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (SearchIndexQueue) TableName() string {
	return "search_index_queue"
}

// Queue ops.
const (
	IndexOpIndex  = "index"
	IndexOpDelete = "delete"
)

// Queue statuses.
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusDone       = "done"
	QueueStatusFailed     = "failed"
)

// MaxIndexAttempts before a queue item is left in failed state.
const MaxIndexAttempts = 5

// NextIndexRetryDelay returns the backoff before the next sync attempt.
func NextIndexRetryDelay(attempts int) time.Duration {
	delays := []time.Duration{
		30 * time.Second,
		2 * time.Minute,
		10 * time.Minute,
		30 * time.Minute,
		1 * time.Hour,
	}

	if attempts >= len(delays) {
		return delays[len(delays)-1]
	}
	return delays[attempts]
}
