package database

import (
	"errors"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaveProperty bookmarks a listing for the actor. A second save of the
// same pair, including one lost to a concurrent insert racing on the
// unique index, comes back as ErrAlreadySaved, which callers treat as
// success.
func (gdb *GormDB) SaveProperty(actor policy.Actor, propertyID string) (*models.SavedProperty, error) {
	p, err := gdb.GetProperty(actor, propertyID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanSave(actor, p); err != nil {
		return nil, err
	}

	saved := &models.SavedProperty{
		ID:         uuid.NewString(),
		UserID:     actor.ID,
		PropertyID: propertyID,
	}
	if err := translateSaveError(gdb.db.Create(saved).Error); err != nil {
		return nil, err
	}
	return saved, nil
}

// translateSaveError maps the unique-index violation of a duplicate
// (user_id, property_id) insert, including one lost to a concurrent
// save, onto the benign ErrAlreadySaved.
func translateSaveError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrAlreadySaved
	}
	return err
}

// ListSavedProperties returns the actor's bookmarks joined to the
// listings they point at. Rows whose listing has since left the
// actor's visibility (unpublished by its agent) drop out silently.
func (gdb *GormDB) ListSavedProperties(actor policy.Actor) ([]models.Property, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}

	var properties []models.Property
	err := gdb.db.Model(&models.Property{}).
		Joins("JOIN saved_properties ON saved_properties.property_id = properties.id").
		Where("saved_properties.user_id = ?", actor.ID).
		Scopes(policy.PropertyReadScope(actor)).
		Order("saved_properties.created_at DESC").
		Find(&properties).Error
	return properties, err
}

// DeleteSaved removes the actor's own bookmark. Removing a bookmark
// that does not exist is a no-op.
func (gdb *GormDB) DeleteSaved(actor policy.Actor, propertyID string) error {
	if actor.IsAnonymous() {
		return apperr.ErrPermissionDenied
	}
	return gdb.db.Scopes(policy.SavedReadScope(actor)).
		Where("property_id = ?", propertyID).
		Delete(&models.SavedProperty{}).Error
}
