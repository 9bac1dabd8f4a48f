package database

import (
	"errors"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"
	"realty-marketplace/internal/validate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsertMessage runs the full write gate for an inquiry: policy first,
// then every payload check, then the insert. The agent_id is taken
// from the listing row, never from the payload, so it always equals
// the owning agent. The listing must be visible to the sender.
func (gdb *GormDB) InsertMessage(actor policy.Actor, m *models.Message) error {
	if err := policy.CanInsertMessage(actor, m); err != nil {
		return err
	}
	if err := validate.MessageInsert(actor.ID, m); err != nil {
		return err
	}

	p, err := gdb.GetProperty(actor, m.PropertyID)
	if err != nil {
		return err
	}

	m.ID = uuid.NewString()
	m.AgentID = p.AgentID
	m.Status = models.MessageStatusUnread
	return gdb.db.Create(m).Error
}

// ListMessages returns the actor's conversations, newest first. The
// scope keeps everyone else's messages out of the result set.
func (gdb *GormDB) ListMessages(actor policy.Actor, propertyID string, limit, offset int) ([]models.Message, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	tx := gdb.db.Scopes(policy.MessageReadScope(actor))
	if propertyID != "" {
		tx = tx.Where("property_id = ?", propertyID)
	}

	var messages []models.Message
	err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, err
}

// GetMessage fetches one inquiry the actor is a party of.
func (gdb *GormDB) GetMessage(actor policy.Actor, id string) (*models.Message, error) {
	var m models.Message
	err := gdb.db.Scopes(policy.MessageReadScope(actor)).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMessageStatus moves an inquiry forward through
// unread -> read -> responded. Only the receiving agent may do this.
func (gdb *GormDB) UpdateMessageStatus(actor policy.Actor, id string, status models.MessageStatus) (*models.Message, error) {
	m, err := gdb.GetMessage(actor, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateMessageStatus(actor, m); err != nil {
		return nil, err
	}
	if !models.ValidStatusTransition(m.Status, status) {
		return nil, apperr.Validation("invalid status transition")
	}

	m.Status = status
	if err := gdb.db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// CountMessagesByStatus returns inquiry counts keyed by status.
func (gdb *GormDB) CountMessagesByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := gdb.db.Model(&models.Message{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
