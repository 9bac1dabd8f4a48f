package models

import "time"

// Message is an inquiry from a seeker to the agent owning a listing.
// Contact fields are optional reply-to details supplied by the seeker;
// they are validated but never required.
type Message struct {
	ID         string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string        `gorm:"type:varchar(36);not null;index" json:"property_id"`
	SeekerID   string        `gorm:"type:varchar(36);not null;index" json:"seeker_id"`
	AgentID    string        `gorm:"type:varchar(36);not null;index" json:"agent_id"`
	Body       string        `gorm:"type:text;not null" json:"body"`
	Email      string        `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone      string        `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Status     MessageStatus `gorm:"type:varchar(20);not null;default:'unread';index" json:"status"`
	CreatedAt  time.Time     `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

type MessageStatus string

const (
	MessageStatusUnread    MessageStatus = "unread"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusResponded MessageStatus = "responded"
)

func (Message) TableName() string {
	return "messages"
}

// ValidStatusTransition reports whether a status change is one of the
// allowed forward steps: unread -> read -> responded.
func ValidStatusTransition(from, to MessageStatus) bool {
	switch from {
	case MessageStatusUnread:
		return to == MessageStatusRead || to == MessageStatusResponded
	case MessageStatusRead:
		return to == MessageStatusResponded
	default:
		return false
	}
}
