package database

import (
	"errors"
	"fmt"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyFilters are the browse-path query parameters. They narrow
// within the rows the policy scope already made visible; they can
// never widen visibility.
type PropertyFilters struct {
	City     string
	Region   string
	ForRent  *bool
	MinPrice *int64
	MaxPrice *int64
	MinBeds  int
	MinBaths int
	SortBy   string
	Limit    int
	Offset   int
}

func applyPropertyFilters(tx *gorm.DB, f PropertyFilters) *gorm.DB {
	if f.City != "" {
		tx = tx.Where("city = ?", f.City)
	}
	if f.Region != "" {
		tx = tx.Where("region = ?", f.Region)
	}
	if f.ForRent != nil {
		tx = tx.Where("for_rent = ?", *f.ForRent)
	}
	if f.MinPrice != nil {
		tx = tx.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinBeds > 0 {
		tx = tx.Where("beds >= ?", f.MinBeds)
	}
	if f.MinBaths > 0 {
		tx = tx.Where("baths >= ?", f.MinBaths)
	}
	return tx
}

func propertyOrderClause(sortBy string) string {
	switch sortBy {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "created_at_asc":
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}

// ListProperties returns the listings visible to the actor, filtered
// and sorted. Draft and archived rows of other agents are absent from
// the result, not blanked.
func (gdb *GormDB) ListProperties(actor policy.Actor, f PropertyFilters) ([]models.Property, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	base := gdb.db.Model(&models.Property{}).Scopes(policy.PropertyReadScope(actor))
	base = applyPropertyFilters(base, f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := base.
		Order(propertyOrderClause(f.SortBy)).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&properties).Error
	return properties, total, err
}

// ListOwnProperties returns every listing the agent owns, drafts and
// archived included.
func (gdb *GormDB) ListOwnProperties(actor policy.Actor) ([]models.Property, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	var properties []models.Property
	err := gdb.db.Where("agent_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

// GetProperty returns one listing if the actor may see it. Absent and
// invisible are the same ErrNotFound.
func (gdb *GormDB) GetProperty(actor policy.Actor, id string) (*models.Property, error) {
	var p models.Property
	err := gdb.db.Scopes(policy.PropertyReadScope(actor)).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty inserts a listing owned by the actor. Policy has
// already required the agent role; ownership is forced here rather
// than read from the payload.
func (gdb *GormDB) CreateProperty(actor policy.Actor, p *models.Property) error {
	if err := policy.CanCreateProperty(actor); err != nil {
		return err
	}

	p.ID = uuid.NewString()
	p.AgentID = actor.ID
	if p.Status == "" {
		p.Status = models.PropertyStatusDraft
	}
	return gdb.db.Create(p).Error
}

// UpdateProperty saves edits to an owned listing and keeps the search
// index queue in step when the row is published.
func (gdb *GormDB) UpdateProperty(actor policy.Actor, p *models.Property) error {
	existing, err := gdb.GetProperty(actor, p.ID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyProperty(actor, existing); err != nil {
		return err
	}

	// Ownership and lifecycle fields are not editable through updates.
	p.AgentID = existing.AgentID
	p.Status = existing.Status
	p.ArchivedAt = existing.ArchivedAt
	p.CreatedAt = existing.CreatedAt

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if p.IsPublished() {
			return enqueueIndexOp(tx, p.ID, models.IndexOpIndex)
		}
		return nil
	})
}

// SetPropertyStatus moves a listing through its lifecycle. Publishing
// enqueues an index sync; unpublishing enqueues a removal so drafts
// and archived rows never linger in search results.
func (gdb *GormDB) SetPropertyStatus(actor policy.Actor, id string, status models.PropertyStatus) (*models.Property, error) {
	switch status {
	case models.PropertyStatusDraft, models.PropertyStatusPublished, models.PropertyStatusArchived:
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", status))
	}

	p, err := gdb.GetProperty(actor, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModifyProperty(actor, p); err != nil {
		return nil, err
	}

	if status == models.PropertyStatusArchived {
		p.MarkArchived()
	} else {
		p.Status = status
		p.ArchivedAt = nil
	}

	err = gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		op := models.IndexOpDelete
		if p.IsPublished() {
			op = models.IndexOpIndex
		}
		return enqueueIndexOp(tx, p.ID, op)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProperty removes a listing and everything hanging off it:
// photos, saves, messages, and pending index work, in one transaction.
// A delete log row records the removal.
func (gdb *GormDB) DeleteProperty(actor policy.Actor, id, reason string) error {
	p, err := gdb.GetProperty(actor, id)
	if err != nil {
		return err
	}
	if err := policy.CanModifyProperty(actor, p); err != nil {
		return err
	}

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.SavedProperty{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ? AND status = ?", id, models.QueueStatusPending).
			Delete(&models.SearchIndexQueue{}).Error; err != nil {
			return err
		}

		deleteLog := models.DeleteLog{
			PropertyID: p.ID,
			AgentID:    p.AgentID,
			Title:      p.Title,
			Reason:     reason,
		}
		if err := tx.Create(&deleteLog).Error; err != nil {
			return err
		}

		if err := tx.Delete(p).Error; err != nil {
			return err
		}
		return enqueueIndexOp(tx, p.ID, models.IndexOpDelete)
	})
}
