package database

import (
	"errors"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProfile inserts the one profile an identity gets at
// registration. A duplicate email surfaces as gorm.ErrDuplicatedKey
// for the handler to map to a conflict response.
func (gdb *GormDB) CreateProfile(p *models.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Role == "" {
		p.Role = models.RoleSeeker
	}
	return gdb.db.Create(p).Error
}

// GetProfileByEmail is the login lookup. It is not a policy-guarded
// read path: callers must never return the row to anyone but its owner.
func (gdb *GormDB) GetProfileByEmail(email string) (*models.Profile, error) {
	var p models.Profile
	err := gdb.db.Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOwnProfile returns the actor's full row, email and phone
// included. This is the only read path that yields a full profile, and
// it is structurally restricted to self: the actor id is the lookup
// key, so there is no way to request someone else's row through it.
func (gdb *GormDB) GetOwnProfile(actor policy.Actor) (*models.Profile, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrNotFound
	}

	var p models.Profile
	err := gdb.db.Where("id = ?", actor.ID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateOwnProfile updates the mutable fields of the actor's own row.
// Email and role are immutable after registration.
func (gdb *GormDB) UpdateOwnProfile(actor policy.Actor, name, phone string) (*models.Profile, error) {
	p, err := gdb.GetOwnProfile(actor)
	if err != nil {
		return nil, err
	}

	err = gdb.db.Model(p).Updates(map[string]interface{}{
		"name":  name,
		"phone": phone,
	}).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// publicAgentColumns is the entire public surface of a profile row.
// Email, phone, and the password hash are not in this list, and the
// projection below selects nothing else.
var publicAgentColumns = []string{"id", "name", "role", "verified", "created_at"}

// ListPublicAgents is the public profile path: agent rows only,
// safe columns only, selected straight into the narrow type. It is
// independent of GetOwnProfile: disabling either path leaves the
// other intact.
func (gdb *GormDB) ListPublicAgents(limit, offset int) ([]models.PublicAgentProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var agents []models.PublicAgentProfile
	err := gdb.db.Model(&models.Profile{}).
		Select(publicAgentColumns).
		Scopes(policy.PublicAgentScope()).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&agents).Error
	return agents, err
}

// GetPublicAgent returns the public projection of one agent. Non-agent
// profiles are not found, indistinguishably from absent ids.
func (gdb *GormDB) GetPublicAgent(id string) (*models.PublicAgentProfile, error) {
	var agent models.PublicAgentProfile
	err := gdb.db.Model(&models.Profile{}).
		Select(publicAgentColumns).
		Scopes(policy.PublicAgentScope()).
		Where("id = ?", id).
		Take(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// CountProfilesByRole returns profile counts keyed by role.
func (gdb *GormDB) CountProfilesByRole() (map[string]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := gdb.db.Model(&models.Profile{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Role] = r.Count
	}
	return counts, nil
}
