package handlers

import (
	"log"
	"net/http"

	"realty-marketplace/internal/auth"
	"realty-marketplace/internal/database"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"
	"realty-marketplace/internal/storage"

	"github.com/gin-gonic/gin"
)

// PhotoHandler handles listing photo uploads and management
type PhotoHandler struct {
	db        *database.GormDB
	store     *storage.Store
	maxUpload int64
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(db *database.GormDB, store *storage.Store, maxUpload int64) *PhotoHandler {
	return &PhotoHandler{db: db, store: store, maxUpload: maxUpload}
}

// List returns a listing's photos under the parent's visibility rule.
func (h *PhotoHandler) List(c *gin.Context) {
	actor := auth.CurrentActor(c)

	photos, err := h.db.ListPhotos(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photos": photos,
		"count":  len(photos),
	})
}

// Upload stores a photo file and records it against an owned listing.
// The object path is namespaced under the actor's identity, which is
// also the storage write grant.
func (h *PhotoHandler) Upload(c *gin.Context) {
	actor := auth.CurrentActor(c)
	propertyID := c.Param("id")

	// Ownership first, before touching the upload.
	property, err := h.db.GetProperty(actor, propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := policy.CanModifyPhoto(actor, property); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds upload size limit"})
		return
	}

	path, err := storage.ObjectPath(actor.ID, propertyID, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	if _, err := h.store.Save(actor, path, file); err != nil {
		respondError(c, err)
		return
	}

	thumb, med := storage.DerivedPaths(path)
	photo := models.PropertyPhoto{
		PropertyID:  propertyID,
		StoragePath: path,
		ThumbPath:   thumb,
		MedPath:     med,
	}

	if err := h.db.CreatePhoto(actor, &photo); err != nil {
		// The row failed; don't leave an orphaned object behind.
		if rmErr := h.store.Remove(path); rmErr != nil {
			log.Printf("Photos: Failed to remove orphaned object %s: %v", path, rmErr)
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

type reorderRequest struct {
	Ordering map[string]int `json:"ordering"`
}

// Reorder updates display order for an owned listing's photos.
func (h *PhotoHandler) Reorder(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Ordering) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ordering is required"})
		return
	}

	if err := h.db.ReorderPhotos(actor, c.Param("id"), req.Ordering); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reordered"})
}

// Delete removes a photo record and its stored files.
func (h *PhotoHandler) Delete(c *gin.Context) {
	actor := auth.CurrentActor(c)

	photo, err := h.db.DeletePhoto(actor, c.Param("photoID"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.Remove(photo.StoragePath); err != nil {
		log.Printf("Photos: Failed to remove stored object %s: %v", photo.StoragePath, err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
