package database

import (
	"errors"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPhotos returns a listing's photos in display order. Visibility
// is the parent listing's: if the actor cannot see the property, the
// photos do not exist for them either.
func (gdb *GormDB) ListPhotos(actor policy.Actor, propertyID string) ([]models.PropertyPhoto, error) {
	if _, err := gdb.GetProperty(actor, propertyID); err != nil {
		return nil, err
	}

	var photos []models.PropertyPhoto
	err := gdb.db.Where("property_id = ?", propertyID).
		Order("ordering ASC, created_at ASC").
		Find(&photos).Error
	return photos, err
}

// CreatePhoto attaches an uploaded photo record to an owned listing.
func (gdb *GormDB) CreatePhoto(actor policy.Actor, photo *models.PropertyPhoto) error {
	parent, err := gdb.GetProperty(actor, photo.PropertyID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyPhoto(actor, parent); err != nil {
		return err
	}
	if photo.Ordering < 0 {
		return apperr.Validation("ordering must not be negative")
	}

	photo.ID = uuid.NewString()
	return gdb.db.Create(photo).Error
}

// GetPhoto fetches one photo under the parent's visibility rule.
func (gdb *GormDB) GetPhoto(actor policy.Actor, id string) (*models.PropertyPhoto, error) {
	var photo models.PropertyPhoto
	err := gdb.db.Where("id = ?", id).First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := gdb.GetProperty(actor, photo.PropertyID); err != nil {
		return nil, err
	}
	return &photo, nil
}

// ReorderPhotos sets the display ordering for an owned listing's
// photos. Orderings need not be contiguous; unmentioned photos keep
// their current slot.
func (gdb *GormDB) ReorderPhotos(actor policy.Actor, propertyID string, ordering map[string]int) error {
	parent, err := gdb.GetProperty(actor, propertyID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyPhoto(actor, parent); err != nil {
		return err
	}
	for _, ord := range ordering {
		if ord < 0 {
			return apperr.Validation("ordering must not be negative")
		}
	}

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		for photoID, ord := range ordering {
			err := tx.Model(&models.PropertyPhoto{}).
				Where("id = ? AND property_id = ?", photoID, propertyID).
				Update("ordering", ord).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePhoto removes a photo record from an owned listing and returns
// the stored row so the caller can remove the underlying files.
func (gdb *GormDB) DeletePhoto(actor policy.Actor, id string) (*models.PropertyPhoto, error) {
	photo, err := gdb.GetPhoto(actor, id)
	if err != nil {
		return nil, err
	}

	parent, err := gdb.GetProperty(actor, photo.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModifyPhoto(actor, parent); err != nil {
		return nil, err
	}

	if err := gdb.db.Delete(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}
