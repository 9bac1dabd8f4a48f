package models

import "time"

// Profile is the single per-identity record created at registration.
// Email, phone, and the password hash never leave the owner's own read
// path; every other reader goes through PublicAgentProfile.
type Profile struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_profiles_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'seeker';index" json:"role"`
	Verified     bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt    time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// Role is fixed at registration and never changes afterwards.
type Role string

const (
	RoleSeeker Role = "seeker"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

func (Profile) TableName() string {
	return "profiles"
}

// PublicAgentProfile is the public projection of an agent's profile.
// It is a separate type, not a filtered Profile: a code path that only
// has this type cannot leak contact fields because they are not there.
type PublicAgentProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicView projects an agent profile into its public shape. Seeker
// and admin profiles have no public shape at all.
func (p *Profile) PublicView() (PublicAgentProfile, bool) {
	if p.Role != RoleAgent {
		return PublicAgentProfile{}, false
	}
	return PublicAgentProfile{
		ID:        p.ID,
		Name:      p.Name,
		Role:      p.Role,
		Verified:  p.Verified,
		CreatedAt: p.CreatedAt,
	}, true
}
