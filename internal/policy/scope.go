package policy

import (
	"realty-marketplace/internal/models"

	"gorm.io/gorm"
)

// Query scopes mirror the row predicates in policy.go at the SQL
// level, so invisible rows never reach the application at all. Every
// store query for a policy-guarded entity must apply the matching
// scope; handlers never query these tables directly.

// PropertyReadScope narrows a properties query to rows visible to the
// actor: published rows, plus the actor's own rows of any status.
func PropertyReadScope(a Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if a.IsAnonymous() {
			return tx.Where("status = ?", models.PropertyStatusPublished)
		}
		return tx.Where("status = ? OR agent_id = ?", models.PropertyStatusPublished, a.ID)
	}
}

// SavedReadScope restricts saves to the actor's own rows. Anonymous
// actors match nothing.
func SavedReadScope(a Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if a.IsAnonymous() {
			return tx.Where("1 = 0")
		}
		return tx.Where("user_id = ?", a.ID)
	}
}

// MessageReadScope restricts inquiries to conversations the actor is a
// party of.
func MessageReadScope(a Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if a.IsAnonymous() {
			return tx.Where("1 = 0")
		}
		return tx.Where("seeker_id = ? OR agent_id = ?", a.ID, a.ID)
	}
}

// PublicAgentScope is the public profile path: agent rows only. The
// column projection itself is fixed by the SELECT list in the store
// (see database.ListPublicAgents), not by this scope.
func PublicAgentScope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("role = ?", models.RoleAgent)
	}
}
